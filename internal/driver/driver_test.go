package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vaporgen/internal/codegen"
)

const sampleIR = `{
	"templates": [{"html": "<div></div>"}],
	"block": {"operations": [
		{"kind": "createText", "id": 0, "expr": {"content": "msg"}},
		{"kind": "return", "expr": {"content": "n0", "isStatic": true}}
	]}
}`

func writeIR(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCompile(t *testing.T) {
	path := writeIR(t, t.TempDir(), "sample"+IRExt, sampleIR)

	out, err := Compile(path, codegen.Options{Mode: codegen.ModeModule})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.Code, "export function render(_ctx) {") {
		t.Errorf("Code = %q", out.Code)
	}
	if !strings.Contains(out.Code, "_createTextNode(_toDisplayString(_ctx.msg))") {
		t.Errorf("Code = %q", out.Code)
	}
	if out.Cached {
		t.Error("uncached compile must not report Cached")
	}
	if out.MapJSON != nil {
		t.Error("MapJSON should be nil without source maps")
	}
}

func TestCompileBadIR(t *testing.T) {
	path := writeIR(t, t.TempDir(), "bad"+IRExt, "{broken")
	if _, err := Compile(path, codegen.Options{}); err == nil {
		t.Error("expected decode error")
	}
}

func TestCompileSourceMap(t *testing.T) {
	path := writeIR(t, t.TempDir(), "sample"+IRExt, sampleIR)

	out, err := Compile(path, codegen.Options{Mode: codegen.ModeModule, SourceMap: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.MapJSON) == 0 {
		t.Fatal("MapJSON missing")
	}
	if !strings.Contains(string(out.MapJSON), `"version":3`) {
		t.Errorf("MapJSON = %s", out.MapJSON)
	}
}

func TestCompileCached(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := writeIR(t, t.TempDir(), "sample"+IRExt, sampleIR)
	opts := codegen.Options{Mode: codegen.ModeModule}

	first, err := CompileCached(cache, path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Cached {
		t.Error("first run must miss the cache")
	}

	second, err := CompileCached(cache, path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.Cached {
		t.Error("second run must hit the cache")
	}
	if second.Code != first.Code {
		t.Error("cached code differs from compiled code")
	}
}

func TestCompileCachedDistinguishesOptions(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := writeIR(t, t.TempDir(), "sample"+IRExt, sampleIR)

	if _, err := CompileCached(cache, path, codegen.Options{Mode: codegen.ModeModule}); err != nil {
		t.Fatal(err)
	}
	out, err := CompileCached(cache, path, codegen.Options{Inline: true})
	if err != nil {
		t.Fatal(err)
	}
	if out.Cached {
		t.Error("different options must not share a cache entry")
	}
	if !strings.HasPrefix(out.Code, "(() => {") {
		t.Errorf("Code = %q", out.Code)
	}
}

func TestCompileDir(t *testing.T) {
	dir := t.TempDir()
	writeIR(t, dir, "b"+IRExt, sampleIR)
	writeIR(t, dir, "a"+IRExt, sampleIR)
	writeIR(t, dir, "skip.json", sampleIR)

	outs, err := CompileDir(context.Background(), dir, codegen.Options{Mode: codegen.ModeModule}, nil, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(outs) != 2 {
		t.Fatalf("outputs = %d, want 2", len(outs))
	}
	// Path order regardless of completion order.
	if filepath.Base(outs[0].Path) != "a"+IRExt || filepath.Base(outs[1].Path) != "b"+IRExt {
		t.Errorf("order = %q, %q", outs[0].Path, outs[1].Path)
	}
}

func TestCompileDirEmpty(t *testing.T) {
	outs, err := CompileDir(context.Background(), t.TempDir(), codegen.Options{}, nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	if outs != nil {
		t.Errorf("outputs = %v, want nil", outs)
	}
}

func TestCompileDirPropagatesErrors(t *testing.T) {
	dir := t.TempDir()
	writeIR(t, dir, "good"+IRExt, sampleIR)
	writeIR(t, dir, "bad"+IRExt, "{broken")

	if _, err := CompileDir(context.Background(), dir, codegen.Options{}, nil, 4); err == nil {
		t.Error("expected error from the broken document")
	}
}

func TestAttachSourceLoadsTemplate(t *testing.T) {
	dir := t.TempDir()
	tpl := filepath.Join(dir, "demo.vue")
	if err := os.WriteFile(tpl, []byte("{{ msg }}"), 0o644); err != nil {
		t.Fatal(err)
	}
	path := writeIR(t, dir, "sample"+IRExt, sampleIR)

	out, err := Compile(path, codegen.Options{Mode: codegen.ModeModule, SourceMap: true, Filename: tpl})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out.MapJSON), "{{ msg }}") {
		t.Error("sourcesContent missing loaded template text")
	}
}

func TestArtifactKeyVariesWithOptions(t *testing.T) {
	data := []byte(sampleIR)
	a := artifactKey(data, codegen.Options{Mode: codegen.ModeModule})
	b := artifactKey(data, codegen.Options{Mode: codegen.ModeModule, SourceMap: true})
	if a == b {
		t.Error("option changes must change the key")
	}
	if a != artifactKey(data, codegen.Options{Mode: codegen.ModeModule}) {
		t.Error("identical inputs must produce identical keys")
	}
}
