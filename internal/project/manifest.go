// Package project loads the vaporgen.toml manifest that pins codegen
// options for a project, so repeated CLI runs and CI agree on the output
// shape without repeating flags.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"vaporgen/internal/codegen"
)

// ManifestName is the file the CLI looks for next to the IR documents.
const ManifestName = "vaporgen.toml"

// ErrNoManifest indicates no manifest file was found.
var ErrNoManifest = errors.New("no " + ManifestName + " found")

// CodegenConfig mirrors the [codegen] table.
type CodegenConfig struct {
	Mode              string `toml:"mode"`
	PrefixIdentifiers bool   `toml:"prefix-identifiers"`
	SourceMap         bool   `toml:"source-map"`
	Filename          string `toml:"filename"`
	ScopeID           string `toml:"scope-id"`
	OptimizeImports   bool   `toml:"optimize-imports"`
	RuntimeModule     string `toml:"runtime-module"`
	SSRRuntimeModule  string `toml:"ssr-runtime-module"`
	SSR               bool   `toml:"ssr"`
	Inline            bool   `toml:"inline"`
}

// Manifest is a parsed vaporgen.toml.
type Manifest struct {
	Codegen CodegenConfig `toml:"codegen"`
}

// Load parses a manifest file. A missing [codegen] table is not an error;
// it yields the zero config, which resolves to codegen defaults.
func Load(path string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return &m, nil
}

// Find locates the manifest in dir or any parent directory.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoManifest
		}
		dir = parent
	}
}

// Options converts the manifest table into codegen options. Zero fields
// stay zero so codegen fills its own defaults.
func (c CodegenConfig) Options() codegen.Options {
	return codegen.Options{
		Mode:                 codegen.Mode(c.Mode),
		PrefixIdentifiers:    c.PrefixIdentifiers,
		SourceMap:            c.SourceMap,
		Filename:             c.Filename,
		ScopeID:              c.ScopeID,
		OptimizeImports:      c.OptimizeImports,
		RuntimeModuleName:    c.RuntimeModule,
		SSRRuntimeModuleName: c.SSRRuntimeModule,
		SSR:                  c.SSR,
		Inline:               c.Inline,
	}
}
