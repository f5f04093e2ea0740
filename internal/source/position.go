package source

import "fmt"

// Position is a point in the original template text. Line and Column are
// 1-based; Offset is the absolute byte offset from the start of the text.
type Position struct {
	Line   uint32 `json:"line"`
	Column uint32 `json:"column"`
	Offset uint32 `json:"offset"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Location is a half-open range [Start, End) in the original template text.
// Source optionally carries the covered slice of the original text.
type Location struct {
	Start  Position `json:"start"`
	End    Position `json:"end"`
	Source string   `json:"source,omitempty"`
}

// LocStub marks locations of synthesized fragments that have no real
// counterpart in the original text. Compared by pointer identity: a
// fragment carrying LocStub contributes a start mapping but never an
// end-of-range mapping.
var LocStub = &Location{
	Start: Position{Line: 1, Column: 1},
	End:   Position{Line: 1, Column: 1},
}
