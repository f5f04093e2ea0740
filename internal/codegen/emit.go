package codegen

import (
	"errors"
	"fmt"
	"strings"

	"fortio.org/safecast"

	"vaporgen/internal/source"
	"vaporgen/internal/sourcemap"
)

// ErrInternal marks invariant violations inside the generator itself,
// as opposed to bad user input: a mis-described fragment means a defect
// in the code that produced it.
var ErrInternal = errors.New("codegen: internal invariant violation")

const indentUnit = "  "

// emitter linearizes a finished fragment sequence in a single pass,
// tracking the cursor position of the next character to be written.
// Line and column are 1-based; mapping entries convert columns to
// 0-based at the boundary.
type emitter struct {
	opts     Options
	buf      strings.Builder
	line     int
	column   int
	offset   int
	indent   int
	smap     *sourcemap.Builder
	sourceID int32
}

func emit(frags []Fragment, opts Options, smap *sourcemap.Builder) (string, error) {
	e := &emitter{opts: opts, line: 1, column: 1, smap: smap}
	if smap != nil {
		e.sourceID = smap.AddSource(opts.Filename)
	}
	for _, frag := range frags {
		switch frag.Kind {
		case FragNone:
			// Omitted slot, nothing to do.
		case FragIndentStart:
			e.indent++
		case FragIndentEnd:
			e.indent--
		case FragLineFeed:
			e.line++
			e.column = 0
			e.offset++
		case FragNewline:
			nl := Fragment{
				Kind:    FragText,
				Text:    "\n" + strings.Repeat(indentUnit, e.indent),
				Newline: NewlineInfo{Kind: NewlineAt, Index: 0},
			}
			if err := e.text(nl); err != nil {
				return "", err
			}
		case FragText:
			if err := e.text(frag); err != nil {
				return "", err
			}
		}
	}
	return e.buf.String(), nil
}

// text appends an annotated fragment, records its start mapping, advances
// the cursor per the newline descriptor and closes the mapped range.
func (e *emitter) text(frag Fragment) error {
	e.buf.WriteString(frag.Text)

	if e.smap != nil && frag.Loc != nil {
		name := sourcemap.NoName
		if frag.Name != "" {
			name = e.smap.InternName(frag.Name)
		}
		e.addMapping(frag.Loc.Start, name)
	}

	n := len(frag.Text)
	switch frag.Newline.Kind {
	case NewlineUnknown:
		// Correctness fallback: full rescan.
		for i := 0; i < n; i++ {
			e.offset++
			if frag.Text[i] == '\n' {
				e.line++
				e.column = 1
			} else {
				e.column++
			}
		}
	case NewlineNone:
		if e.opts.DebugChecks && strings.IndexByte(frag.Text, '\n') >= 0 {
			return fmt.Errorf("%w: fragment %q declared newline-free but contains a line break", ErrInternal, frag.Text)
		}
		e.column += n
		e.offset += n
	case NewlineAt, NewlineAtEnd:
		idx := frag.Newline.Index
		if frag.Newline.Kind == NewlineAtEnd {
			idx = n - 1
		}
		if e.opts.DebugChecks {
			if idx < 0 || idx >= n || frag.Text[idx] != '\n' || strings.Count(frag.Text, "\n") != 1 {
				return fmt.Errorf("%w: fragment %q declares a single line break at %d", ErrInternal, frag.Text, idx)
			}
		}
		e.line++
		e.column = n - idx
		e.offset += n
	}

	if e.smap != nil && frag.Loc != nil && frag.Loc != source.LocStub {
		e.addMapping(frag.Loc.End, sourcemap.NoName)
	}
	return nil
}

// addMapping records one entry at the current cursor. Entries go straight
// into the builder's raw store; the descriptor invariants above are what
// keep them well formed.
func (e *emitter) addMapping(pos source.Position, name int32) {
	e.smap.AddMapping(sourcemap.Mapping{
		GenLine:    conv32(e.line),
		GenColumn:  conv32(e.column - 1),
		OrigLine:   conv32(int(pos.Line)),
		OrigColumn: conv32(int(pos.Column) - 1),
		Source:     e.sourceID,
		Name:       name,
	})
}

func conv32(v int) int32 {
	n, err := safecast.Conv[int32](v)
	if err != nil {
		panic(fmt.Errorf("position overflow: %w", err))
	}
	return n
}
