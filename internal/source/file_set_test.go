package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetAddVirtual(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("mem.html", []byte("a\nb"))

	f := fs.Get(id)
	if f.Path != "mem.html" {
		t.Errorf("Path = %q", f.Path)
	}
	if f.Flags&FileVirtual == 0 {
		t.Error("virtual flag not set")
	}
	if got := fs.LineCol(id, 2); (got != LineCol{Line: 2, Col: 1}) {
		t.Errorf("LineCol = %+v", got)
	}
}

func TestFileSetAddAssignsSequentialIDs(t *testing.T) {
	fs := NewFileSet()
	a := fs.AddVirtual("a", nil)
	b := fs.AddVirtual("b", nil)
	if a != 0 || b != 1 {
		t.Errorf("ids = %d, %d", a, b)
	}
}

func TestFileSetGetByPathTracksLatest(t *testing.T) {
	fs := NewFileSet()
	fs.AddVirtual("t.html", []byte("old"))
	fs.AddVirtual("t.html", []byte("new"))

	f, ok := fs.GetByPath("t.html")
	if !ok {
		t.Fatal("path not found")
	}
	if string(f.Content) != "new" {
		t.Errorf("Content = %q, want latest version", f.Content)
	}

	if _, ok := fs.GetByPath("missing.html"); ok {
		t.Error("missing path should not resolve")
	}
}

func TestFileSetLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "t.html")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("a\r\nb")...)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}

	f := fs.Get(id)
	if string(f.Content) != "a\nb" {
		t.Errorf("Content = %q, want normalized", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("Flags = %v, want BOM and CRLF recorded", f.Flags)
	}
}

func TestFileSetLoadMissing(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "absent.html")); err == nil {
		t.Error("expected error for missing file")
	}
}
