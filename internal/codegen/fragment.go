package codegen

import (
	"strings"

	"vaporgen/internal/source"
)

// FragKind tags the closed set of fragment variants.
type FragKind uint8

const (
	// FragNone is the zero fragment; the emitter skips it.
	FragNone FragKind = iota
	// FragText is literal output text, optionally annotated with a
	// newline descriptor, an original location and an identifier name.
	FragText
	// FragNewline emits a line break followed by the current indentation.
	FragNewline
	// FragLineFeed advances the tracked position by one raw line without
	// emitting text; it pads for preamble lines prepended after emission.
	FragLineFeed
	// FragIndentStart increases the indentation level.
	FragIndentStart
	// FragIndentEnd decreases the indentation level.
	FragIndentEnd
)

// NewlineKind describes where line breaks occur inside a text fragment so
// the emitter can advance its cursor without rescanning the text.
type NewlineKind uint8

const (
	// NewlineNone declares the text contains no line break.
	NewlineNone NewlineKind = iota
	// NewlineAt declares exactly one line break at NewlineInfo.Index.
	NewlineAt
	// NewlineAtEnd declares exactly one line break as the last byte.
	NewlineAtEnd
	// NewlineUnknown forces the emitter onto the full-rescan path.
	NewlineUnknown
)

// NewlineInfo pairs a NewlineKind with the break offset for NewlineAt.
type NewlineInfo struct {
	Kind  NewlineKind
	Index int
}

// Fragment is the atomic emission unit. Marker kinds carry no text.
type Fragment struct {
	Kind    FragKind
	Text    string
	Newline NewlineInfo
	Loc     *source.Location
	Name    string
}

// Marker singletons. Identity is tag identity: compare Kind.
var (
	Newline     = Fragment{Kind: FragNewline}
	LineFeed    = Fragment{Kind: FragLineFeed}
	IndentStart = Fragment{Kind: FragIndentStart}
	IndentEnd   = Fragment{Kind: FragIndentEnd}
)

// Text builds a plain text fragment. The text must not contain a line
// break; use Annotated with a truthful descriptor for text that does.
func Text(text string) Fragment {
	return Fragment{Kind: FragText, Text: text}
}

// Annotated builds a text fragment carrying a newline descriptor and
// optional location and identifier name.
func Annotated(text string, nl NewlineInfo, loc *source.Location, name string) Fragment {
	return Fragment{Kind: FragText, Text: text, Newline: nl, Loc: loc, Name: name}
}

// Str wraps a plain string as a single-fragment sequence for Multi/Call.
func Str(text string) []Fragment {
	return []Fragment{Text(text)}
}

// DescribeNewlines computes the cheapest truthful descriptor for text:
// none, a single break at a known offset, or unknown for anything richer.
func DescribeNewlines(text string) NewlineInfo {
	first := strings.IndexByte(text, '\n')
	if first < 0 {
		return NewlineInfo{Kind: NewlineNone}
	}
	if strings.IndexByte(text[first+1:], '\n') >= 0 {
		return NewlineInfo{Kind: NewlineUnknown}
	}
	if first == len(text)-1 {
		return NewlineInfo{Kind: NewlineAtEnd}
	}
	return NewlineInfo{Kind: NewlineAt, Index: first}
}
