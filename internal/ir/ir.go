// Package ir defines the intermediate representation consumed by the code
// generator. The IR is produced by upstream transform passes (or decoded
// from a serialized document) and is assumed to be well formed: codegen
// does not validate template semantics.
package ir

import "vaporgen/internal/source"

// RootNode is one top-level compilation unit.
type RootNode struct {
	// Source is the original template text, attached to emitted source
	// maps as sourcesContent when non-empty.
	Source    string     `json:"source,omitempty"`
	Templates []Template `json:"templates,omitempty"`
	Block     Block      `json:"block"`
}

// Template is a top-level template descriptor registered as a hoisted
// constant in the generated output.
type Template struct {
	HTML string `json:"html"`
}

// Block describes the statements of the render function body.
type Block struct {
	Operations []Operation `json:"operations,omitempty"`
}

// OpKind discriminates the operations the built-in block generator
// understands. Richer node kinds belong to external collaborators.
type OpKind string

const (
	// OpRaw emits the expression verbatim as a statement.
	OpRaw OpKind = "raw"
	// OpCreateText creates a text node from the display form of the
	// expression: const n<ID> = _createTextNode(_toDisplayString(expr)).
	OpCreateText OpKind = "createText"
	// OpSetText updates a node's text: _setText(n<ID>, _toDisplayString(expr)).
	OpSetText OpKind = "setText"
	// OpFor emits a keyed repeat: const n<ID> = _createFor(expr, (item) => { body }).
	OpFor OpKind = "for"
	// OpReturn returns the expression from the render function.
	OpReturn OpKind = "return"
)

// Operation is one body statement.
type Operation struct {
	Kind OpKind      `json:"kind"`
	ID   int         `json:"id,omitempty"`
	Expr *Expression `json:"expr,omitempty"`

	// Item and Body are used by OpFor only.
	Item string      `json:"item,omitempty"`
	Body []Operation `json:"body,omitempty"`
}

// Expression is a piece of user source text with an optional original
// location for source mapping.
type Expression struct {
	Content  string           `json:"content"`
	IsStatic bool             `json:"isStatic,omitempty"`
	Loc      *source.Location `json:"loc,omitempty"`
}
