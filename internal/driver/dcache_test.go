package driver

import (
	"crypto/sha256"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func testPayload() *DiskPayload {
	return &DiskPayload{
		Schema:       diskCacheSchemaVersion,
		Code:         "export function render(_ctx) {}",
		Preamble:     "\nimport { template as _template } from 'vue/vapor';\n",
		MapJSON:      []byte(`{"version":3}`),
		Helpers:      []string{"toDisplayString"},
		VaporHelpers: []string{"template"},
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	key := sha256.Sum256([]byte("doc"))
	if err := cache.Put(key, testPayload()); err != nil {
		t.Fatal(err)
	}

	var got DiskPayload
	hit, err := cache.Get(key, &got)
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Fatal("expected a hit after Put")
	}
	if !reflect.DeepEqual(&got, testPayload()) {
		t.Errorf("payload = %+v", got)
	}
}

func TestDiskCacheMiss(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	var got DiskPayload
	hit, err := cache.Get(sha256.Sum256([]byte("absent")), &got)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("expected a miss")
	}
}

func TestNilDiskCache(t *testing.T) {
	var cache *DiskCache

	key := sha256.Sum256([]byte("doc"))
	if err := cache.Put(key, testPayload()); err != nil {
		t.Errorf("nil Put: %v", err)
	}
	hit, err := cache.Get(key, &DiskPayload{})
	if err != nil || hit {
		t.Errorf("nil Get = %v, %v", hit, err)
	}
	if err := cache.DropAll(); err != nil {
		t.Errorf("nil DropAll: %v", err)
	}
}

func TestDiskCacheDropAll(t *testing.T) {
	dir := t.TempDir()
	cache, err := OpenDiskCacheAt(dir)
	if err != nil {
		t.Fatal(err)
	}

	key := sha256.Sum256([]byte("doc"))
	if err := cache.Put(key, testPayload()); err != nil {
		t.Fatal(err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(filepath.Join(dir, "gen")); !os.IsNotExist(err) {
		t.Error("gen directory should be gone after DropAll")
	}
}
