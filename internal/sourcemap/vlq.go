package sourcemap

import "strings"

const base64Chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

const (
	vlqBaseShift       = 5
	vlqBase            = 1 << vlqBaseShift // 32
	vlqBaseMask        = vlqBase - 1       // 0b11111
	vlqContinuationBit = vlqBase
)

// appendVLQ writes one base64 VLQ value. The sign lives in the lowest bit
// of the first digit.
func appendVLQ(b *strings.Builder, value int32) {
	var vlq uint32
	if value < 0 {
		vlq = (uint32(-value) << 1) | 1
	} else {
		vlq = uint32(value) << 1
	}
	for {
		digit := vlq & vlqBaseMask
		vlq >>= vlqBaseShift
		if vlq > 0 {
			digit |= vlqContinuationBit
		}
		b.WriteByte(base64Chars[digit])
		if vlq == 0 {
			return
		}
	}
}

// encodeMappings renders raw entries into the v3 "mappings" string:
// one ';'-separated group per generated line, ','-separated segments,
// every field delta-encoded against the previous segment.
func encodeMappings(mappings []Mapping) string {
	var b strings.Builder

	line := int32(1)
	var prevGenCol, prevSource, prevOrigLine, prevOrigCol, prevName int32

	for i, m := range mappings {
		for line < m.GenLine {
			b.WriteByte(';')
			line++
			prevGenCol = 0
		}
		if i > 0 && line == m.GenLine && mappings[i-1].GenLine == line {
			b.WriteByte(',')
		}

		appendVLQ(&b, m.GenColumn-prevGenCol)
		prevGenCol = m.GenColumn

		appendVLQ(&b, m.Source-prevSource)
		prevSource = m.Source

		// Original lines are tracked 1-based and stored 0-based.
		appendVLQ(&b, (m.OrigLine-1)-prevOrigLine)
		prevOrigLine = m.OrigLine - 1

		appendVLQ(&b, m.OrigColumn-prevOrigCol)
		prevOrigCol = m.OrigColumn

		if m.Name != NoName {
			appendVLQ(&b, m.Name-prevName)
			prevName = m.Name
		}
	}
	return b.String()
}
