package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"vaporgen/internal/codegen"
	"vaporgen/internal/driver"
	"vaporgen/internal/project"
)

var genCmd = &cobra.Command{
	Use:   "gen [flags] <path>",
	Short: "Generate code from IR documents",
	Long:  "Generate render functions (and source maps) from *.ir.json documents. Accepts a single document or a directory.",
	Args:  cobra.ExactArgs(1),
	RunE:  genExecution,
}

func init() {
	genCmd.Flags().String("out", "", "output directory (default: next to each input)")
	genCmd.Flags().Bool("source-map", false, "emit a .js.map next to each output")
	genCmd.Flags().Bool("inline", false, "emit a self-invoking expression instead of an exported function")
	genCmd.Flags().String("mode", "", "codegen mode (function|module)")
	genCmd.Flags().String("filename", "", "original source filename recorded in the map")
	genCmd.Flags().Int("jobs", 0, "parallel compilations for directories (0 = GOMAXPROCS)")
	genCmd.Flags().Bool("no-cache", false, "bypass the artifact cache")
	genCmd.Flags().Bool("debug-checks", false, "validate fragment invariants during emission")
}

func genExecution(cmd *cobra.Command, args []string) error {
	if err := setupColor(cmd); err != nil {
		return err
	}
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return err
	}

	path := args[0]
	opts, err := resolveOptions(cmd, path)
	if err != nil {
		return err
	}

	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	var cache *driver.DiskCache
	if !noCache {
		// Cache failures only cost us recompilation.
		cache, _ = driver.OpenDiskCache("vaporgen")
	}

	outDir, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	var outputs []*driver.Output
	if info.IsDir() {
		jobs, err := cmd.Flags().GetInt("jobs")
		if err != nil {
			return err
		}
		outputs, err = driver.CompileDir(cmd.Context(), path, opts, cache, jobs)
		if err != nil {
			return err
		}
	} else {
		out, err := driver.CompileCached(cache, path, opts)
		if err != nil {
			return err
		}
		outputs = append(outputs, out)
	}

	if len(outputs) == 0 {
		return fmt.Errorf("no %s documents under %s", driver.IRExt, path)
	}

	for _, out := range outputs {
		if err := writeOutput(out, outDir, quiet); err != nil {
			return err
		}
	}
	return nil
}

// resolveOptions layers explicit flags over the project manifest (when one
// exists) over codegen defaults.
func resolveOptions(cmd *cobra.Command, path string) (codegen.Options, error) {
	var opts codegen.Options

	dir := path
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		dir = filepath.Dir(path)
	}
	if manifestPath, err := project.Find(dir); err == nil {
		m, err := project.Load(manifestPath)
		if err != nil {
			return opts, err
		}
		opts = m.Codegen.Options()
	} else if !errors.Is(err, project.ErrNoManifest) {
		return opts, err
	}

	flags := cmd.Flags()
	if flags.Changed("source-map") {
		opts.SourceMap, _ = flags.GetBool("source-map")
	}
	if flags.Changed("inline") {
		opts.Inline, _ = flags.GetBool("inline")
	}
	if flags.Changed("mode") {
		mode, _ := flags.GetString("mode")
		if mode != string(codegen.ModeFunction) && mode != string(codegen.ModeModule) {
			return opts, fmt.Errorf("invalid --mode %q (want function or module)", mode)
		}
		opts.Mode = codegen.Mode(mode)
	}
	if flags.Changed("filename") {
		opts.Filename, _ = flags.GetString("filename")
	}
	if flags.Changed("debug-checks") {
		opts.DebugChecks, _ = flags.GetBool("debug-checks")
	}
	return opts, nil
}

// writeOutput writes <input minus .ir.json>.js and, when present, the
// sibling .js.map with a sourceMappingURL trailer on the code.
func writeOutput(out *driver.Output, outDir string, quiet bool) error {
	base := filepath.Base(out.Path)
	base = strings.TrimSuffix(base, driver.IRExt)
	dir := filepath.Dir(out.Path)
	if outDir != "" {
		dir = outDir
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	jsPath := filepath.Join(dir, base+".js")
	code := out.Code
	if out.MapJSON != nil {
		mapName := base + ".js.map"
		code += "\n//# sourceMappingURL=" + mapName + "\n"
		if err := os.WriteFile(filepath.Join(dir, mapName), out.MapJSON, 0o644); err != nil {
			return err
		}
	}
	if err := os.WriteFile(jsPath, []byte(code), 0o644); err != nil {
		return err
	}

	if !quiet {
		status := ""
		if out.Cached {
			status = color.CyanString(" (cached)")
		}
		fmt.Printf("%s %s%s\n", color.GreenString("wrote"), jsPath, status)
	}
	return nil
}
