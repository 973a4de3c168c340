// Package token defines source positions and comment records shared by the
// dump scanner and the statement parsers.
package token

import "fmt"

// Position represents a location in the dump text.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number, counted in runes
	Offset int // 0-based byte offset
}

// Begin returns the position of the first byte of a text.
func Begin() Position {
	return Position{Line: 1, Column: 1}
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// String formats the position as "line L, column C".
func (p Position) String() string {
	if !p.IsValid() {
		return "unknown position"
	}
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// Advance returns the position reached after reading text starting at p.
// UTF-8 continuation bytes move the offset but not the column.
func (p Position) Advance(text string) Position {
	for i := 0; i < len(text); i++ {
		b := text[i]
		p.Offset++
		switch {
		case b == '\n':
			p.Line++
			p.Column = 1
		case b&0xC0 != 0x80:
			p.Column++
		}
	}
	return p
}

// Span represents a range in the dump text.
type Span struct {
	Start Position
	End   Position
}

// Contains returns true if the span contains the given offset.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start.Offset && offset < s.End.Offset
}

// IsValid returns true if both start and end positions are valid.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid()
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}
