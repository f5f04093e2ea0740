// Package sourcemap implements a minimal Source Map v3 builder tailored to
// the code generator: raw mapping entries are appended without validation
// (the emitter guarantees well-formed input) and finalized into the JSON
// document format in one pass.
package sourcemap

import "encoding/json"

// Version is the source map specification revision emitted in the document.
const Version = 3

// NoName marks a mapping entry without an identifier name.
const NoName int32 = -1

// Mapping is one generated-position to original-position correspondence.
// Lines are 1-based, columns 0-based; Finalize rebases lines.
type Mapping struct {
	GenLine    int32
	GenColumn  int32
	OrigLine   int32
	OrigColumn int32
	Source     int32
	Name       int32 // NoName when absent
}

// Builder accumulates raw mappings plus interned source and name tables.
// One Builder belongs to exactly one generation context.
type Builder struct {
	file        string
	sources     []string
	sourceIndex map[string]int32
	contents    map[string]string
	names       []string
	nameIndex   map[string]int32
	mappings    []Mapping
}

// NewBuilder creates a Builder for the given generated file name.
func NewBuilder(file string) *Builder {
	return &Builder{
		file:        file,
		sourceIndex: make(map[string]int32),
		contents:    make(map[string]string),
		nameIndex:   make(map[string]int32),
	}
}

// AddSource interns a source path and returns its id. Repeated calls with
// the same path return the id of the first registration.
func (b *Builder) AddSource(path string) int32 {
	if id, ok := b.sourceIndex[path]; ok {
		return id
	}
	id := int32(len(b.sources))
	b.sources = append(b.sources, path)
	b.sourceIndex[path] = id
	return id
}

// SetSourceContent attaches original text to a source, registering the
// source if needed. This is the only registration path for content; the
// sources table itself is owned by AddSource.
func (b *Builder) SetSourceContent(path, content string) {
	b.AddSource(path)
	b.contents[path] = content
}

// InternName interns an identifier name and returns its id.
func (b *Builder) InternName(name string) int32 {
	if id, ok := b.nameIndex[name]; ok {
		return id
	}
	id := int32(len(b.names))
	b.names = append(b.names, name)
	b.nameIndex[name] = id
	return id
}

// AddMapping appends a raw mapping entry. Entries must arrive in generated
// order; no reordering or validation happens here.
func (b *Builder) AddMapping(m Mapping) {
	b.mappings = append(b.mappings, m)
}

// Mappings returns the raw entries accumulated so far, in append order.
func (b *Builder) Mappings() []Mapping {
	return b.mappings
}

// Map is the finalized Source Map v3 document.
type Map struct {
	Version        int       `json:"version"`
	File           string    `json:"file,omitempty"`
	Sources        []string  `json:"sources"`
	SourcesContent []*string `json:"sourcesContent,omitempty"`
	Names          []string  `json:"names"`
	Mappings       string    `json:"mappings"`
}

// JSON serializes the map document.
func (m *Map) JSON() ([]byte, error) {
	return json.Marshal(m)
}

// Finalize encodes the accumulated mappings into the v3 document. The
// Builder must not be mutated afterwards.
func (b *Builder) Finalize() *Map {
	m := &Map{
		Version:  Version,
		File:     b.file,
		Sources:  b.sources,
		Names:    b.names,
		Mappings: encodeMappings(b.mappings),
	}
	if m.Sources == nil {
		m.Sources = []string{}
	}
	if m.Names == nil {
		m.Names = []string{}
	}
	if len(b.contents) > 0 {
		m.SourcesContent = make([]*string, len(b.sources))
		for i, src := range b.sources {
			if content, ok := b.contents[src]; ok {
				c := content
				m.SourcesContent[i] = &c
			}
		}
	}
	return m
}
