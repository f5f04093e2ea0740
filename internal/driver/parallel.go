package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"vaporgen/internal/codegen"
)

// IRExt is the file suffix CompileDir looks for.
const IRExt = ".ir.json"

// listIRFiles returns the sorted list of IR documents under dir.
func listIRFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, IRExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Sorted for deterministic ordering.
	sort.Strings(files)
	return files, nil
}

// CompileDir compiles every IR document under dir in parallel. Each
// document gets its own generation context, so the only coordination
// needed is the bounded worker group. Results come back in path order.
func CompileDir(ctx context.Context, dir string, opts codegen.Options, cache *DiskCache, jobs int) ([]*Output, error) {
	files, err := listIRFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// One slot per goroutine, no mutex needed.
	results := make([]*Output, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			out, err := CompileCached(cache, path, opts)
			if err != nil {
				return err
			}
			results[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
