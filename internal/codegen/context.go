package codegen

import (
	"vaporgen/internal/ir"
	"vaporgen/internal/sourcemap"
)

// Context accumulates the state of one code generation run: the fragment
// sequence, the referenced runtime helpers, and identifier usage counters.
// A Context serves exactly one compilation and is not safe for concurrent
// use; independent compilations may run in parallel on separate Contexts.
type Context struct {
	root         *ir.RootNode
	opts         Options
	fragments    []Fragment
	helpers      *orderedSet
	vaporHelpers *orderedSet
	identifiers  map[string]int
	smap         *sourcemap.Builder
}

func newContext(root *ir.RootNode, opts Options) *Context {
	cx := &Context{
		root:         root,
		opts:         opts,
		helpers:      newOrderedSet(),
		vaporHelpers: newOrderedSet(),
		identifiers:  make(map[string]int),
	}
	if opts.SourceMap {
		cx.smap = sourcemap.NewBuilder(opts.Filename)
		cx.smap.AddSource(opts.Filename)
		if root.Source != "" {
			cx.smap.SetSourceContent(opts.Filename, root.Source)
		}
	}
	return cx
}

// Options returns the resolved configuration of this run.
func (cx *Context) Options() Options {
	return cx.opts
}

// Push appends fragments in argument order. It is the only mutation
// primitive exposed to generation collaborators.
func (cx *Context) Push(frags ...Fragment) {
	cx.fragments = append(cx.fragments, frags...)
}

// Helper registers a core runtime helper and returns the reference form to
// embed in generated text. Registration is idempotent and emits nothing.
func (cx *Context) Helper(name string) string {
	cx.helpers.add(name)
	return "_" + name
}

// VaporHelper registers an extension runtime helper and returns its
// reference form.
func (cx *Context) VaporHelper(name string) string {
	cx.vaporHelpers.add(name)
	return "_" + name
}

// Helpers returns the core helper names in first-registration order.
func (cx *Context) Helpers() []string {
	return cx.helpers.names()
}

// VaporHelpers returns the extension helper names in first-registration
// order.
func (cx *Context) VaporHelpers() []string {
	return cx.vaporHelpers.names()
}

// WithID runs fn with each identifier's usage counter incremented and
// restores the counters afterwards, also when fn panics. Counters rather
// than booleans so the same name can be shadowed re-entrantly.
func (cx *Context) WithID(ids []string, fn func() []Fragment) []Fragment {
	for _, id := range ids {
		cx.identifiers[id]++
	}
	defer func() {
		for _, id := range ids {
			cx.identifiers[id]--
		}
	}()
	return fn()
}

// IdentifierInUse reports whether an enclosing WithID call currently binds
// the name.
func (cx *Context) IdentifierInUse(name string) bool {
	return cx.identifiers[name] > 0
}

// Delims is the (left, right, separator) triple consumed by Multi.
type Delims struct {
	Left, Right, Sep string
}

// Multi wraps the present parts in delimiters, interleaving the separator
// between consecutive present parts. Nil parts are dropped before
// interleaving, so separators never touch an omitted slot.
func Multi(delims Delims, parts ...[]Fragment) []Fragment {
	present := make([][]Fragment, 0, len(parts))
	for _, part := range parts {
		if len(part) > 0 {
			present = append(present, part)
		}
	}
	frags := []Fragment{Text(delims.Left)}
	for i, part := range present {
		if i > 0 {
			frags = append(frags, Text(delims.Sep))
		}
		frags = append(frags, part...)
	}
	return append(frags, Text(delims.Right))
}

// Call produces a function-call fragment sequence: name followed by the
// parenthesized, comma-separated arguments.
func Call(name string, args ...[]Fragment) []Fragment {
	return append(Str(name), Multi(Delims{"(", ")", ", "}, args...)...)
}

// orderedSet is a deduplicating string set that remembers insertion order,
// which fixes the order of names inside synthesized import statements.
type orderedSet struct {
	items []string
	index map[string]struct{}
}

func newOrderedSet() *orderedSet {
	return &orderedSet{index: make(map[string]struct{})}
}

func (s *orderedSet) add(name string) {
	if _, ok := s.index[name]; ok {
		return
	}
	s.index[name] = struct{}{}
	s.items = append(s.items, name)
}

func (s *orderedSet) empty() bool {
	return len(s.items) == 0
}

func (s *orderedSet) names() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}
