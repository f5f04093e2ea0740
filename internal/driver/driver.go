// Package driver orchestrates code generation for the CLI: it decodes IR
// documents, runs codegen, caches artifacts on disk and compiles whole
// directories in parallel. One generation context per document; nothing is
// shared between documents, so parallelism is safe.
package driver

import (
	"crypto/sha256"
	"fmt"
	"os"

	"vaporgen/internal/codegen"
	"vaporgen/internal/ir"
	"vaporgen/internal/source"
)

// Digest identifies one IR document plus the options it was compiled with.
type Digest = [sha256.Size]byte

// Output is the generated artifact for one IR document.
type Output struct {
	Path         string // input path
	Code         string
	Preamble     string
	MapJSON      []byte // nil when source maps are disabled
	Helpers      []string
	VaporHelpers []string
	Cached       bool
}

// Compile reads one IR document and generates code for it.
func Compile(path string, opts codegen.Options) (*Output, error) {
	// #nosec G304 -- path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return compileData(path, data, opts)
}

// CompileCached is Compile behind a disk cache keyed by the document
// content and the options fingerprint. A nil cache degrades to Compile.
func CompileCached(cache *DiskCache, path string, opts codegen.Options) (*Output, error) {
	// #nosec G304 -- path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	key := artifactKey(data, opts)
	var payload DiskPayload
	if hit, err := cache.Get(key, &payload); err == nil && hit && payload.Schema == diskCacheSchemaVersion {
		return &Output{
			Path:         path,
			Code:         payload.Code,
			Preamble:     payload.Preamble,
			MapJSON:      payload.MapJSON,
			Helpers:      payload.Helpers,
			VaporHelpers: payload.VaporHelpers,
			Cached:       true,
		}, nil
	}

	out, err := compileData(path, data, opts)
	if err != nil {
		return nil, err
	}
	if err := cache.Put(key, outputToDiskPayload(out)); err != nil {
		// A failed cache write never fails the compilation.
		fmt.Fprintf(os.Stderr, "vaporgen: cache write failed: %v\n", err)
	}
	return out, nil
}

func compileData(path string, data []byte, opts codegen.Options) (*Output, error) {
	root, err := ir.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	attachSource(root, opts)
	res, err := codegen.Generate(root, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	out := &Output{
		Path:         path,
		Code:         res.Code,
		Preamble:     res.Preamble,
		Helpers:      res.Helpers,
		VaporHelpers: res.VaporHelpers,
	}
	if res.Map != nil {
		out.MapJSON, err = res.Map.JSON()
		if err != nil {
			return nil, fmt.Errorf("%s: serialize map: %w", path, err)
		}
	}
	return out, nil
}

// attachSource loads the original template from disk when the IR does not
// embed it, so the emitted map can still carry sourcesContent. Content is
// CRLF/BOM normalized by the FileSet exactly like any compiler input.
func attachSource(root *ir.RootNode, opts codegen.Options) {
	if !opts.SourceMap || root.Source != "" || opts.Filename == "" || opts.Filename == codegen.DefaultFilename {
		return
	}
	fset := source.NewFileSet()
	id, err := fset.Load(opts.Filename)
	if err != nil {
		return
	}
	root.Source = string(fset.Get(id).Content)
}

// artifactKey hashes the IR document together with every option that can
// change the emitted text or map.
func artifactKey(data []byte, opts codegen.Options) Digest {
	h := sha256.New()
	h.Write(data)
	fmt.Fprintf(h, "|mode=%s|prefix=%t|map=%t|file=%s|scope=%s|rt=%s|ssrrt=%s|inline=%t|ssr=%t|ts=%t",
		opts.Mode, opts.PrefixIdentifiers, opts.SourceMap, opts.Filename, opts.ScopeID,
		opts.RuntimeModuleName, opts.SSRRuntimeModuleName, opts.Inline, opts.SSR, opts.IsTS)
	var key Digest
	h.Sum(key[:0])
	return key
}
