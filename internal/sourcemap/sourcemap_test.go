package sourcemap

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestAddSourceInterns(t *testing.T) {
	b := NewBuilder("out.js")

	if id := b.AddSource("a.vue"); id != 0 {
		t.Errorf("first source id = %d, want 0", id)
	}
	if id := b.AddSource("b.vue"); id != 1 {
		t.Errorf("second source id = %d, want 1", id)
	}
	if id := b.AddSource("a.vue"); id != 0 {
		t.Errorf("repeated source id = %d, want 0", id)
	}

	m := b.Finalize()
	if !reflect.DeepEqual(m.Sources, []string{"a.vue", "b.vue"}) {
		t.Errorf("Sources = %v", m.Sources)
	}
}

func TestInternName(t *testing.T) {
	b := NewBuilder("out.js")

	if id := b.InternName("msg"); id != 0 {
		t.Errorf("first name id = %d, want 0", id)
	}
	if id := b.InternName("count"); id != 1 {
		t.Errorf("second name id = %d, want 1", id)
	}
	if id := b.InternName("msg"); id != 0 {
		t.Errorf("repeated name id = %d, want 0", id)
	}
}

func TestSetSourceContentRegistersSource(t *testing.T) {
	b := NewBuilder("out.js")
	b.SetSourceContent("a.vue", "<div/>")

	m := b.Finalize()
	if !reflect.DeepEqual(m.Sources, []string{"a.vue"}) {
		t.Fatalf("Sources = %v", m.Sources)
	}
	if len(m.SourcesContent) != 1 || m.SourcesContent[0] == nil || *m.SourcesContent[0] != "<div/>" {
		t.Errorf("SourcesContent = %v", m.SourcesContent)
	}
}

func TestFinalizeAlignsMissingContent(t *testing.T) {
	b := NewBuilder("out.js")
	b.AddSource("a.vue")
	b.SetSourceContent("b.vue", "text")

	m := b.Finalize()
	if len(m.SourcesContent) != 2 {
		t.Fatalf("SourcesContent length = %d, want 2", len(m.SourcesContent))
	}
	if m.SourcesContent[0] != nil {
		t.Error("source without content must map to null")
	}
	if m.SourcesContent[1] == nil || *m.SourcesContent[1] != "text" {
		t.Error("source with content must carry it")
	}
}

func TestFinalizeEmptyBuilder(t *testing.T) {
	m := NewBuilder("out.js").Finalize()

	if m.Version != 3 {
		t.Errorf("Version = %d, want 3", m.Version)
	}
	if m.Sources == nil || m.Names == nil {
		t.Error("Sources and Names must be non-nil for JSON array encoding")
	}
	if m.SourcesContent != nil {
		t.Error("SourcesContent should be omitted when no content is set")
	}
}

func TestMapJSON(t *testing.T) {
	b := NewBuilder("out.js")
	src := b.AddSource("a.vue")
	b.AddMapping(Mapping{GenLine: 1, GenColumn: 0, OrigLine: 1, OrigColumn: 0, Source: src, Name: NoName})

	data, err := b.Finalize().JSON()
	if err != nil {
		t.Fatal(err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if doc["version"] != float64(3) {
		t.Errorf("version = %v", doc["version"])
	}
	if doc["file"] != "out.js" {
		t.Errorf("file = %v", doc["file"])
	}
	if doc["mappings"] != "AAAA" {
		t.Errorf("mappings = %v", doc["mappings"])
	}
	if _, ok := doc["sourcesContent"]; ok {
		t.Error("sourcesContent must be omitted when empty")
	}
}
