// Package source provides position tracking over the raw byte stream that
// the syntax and envelope layers scan. A Position is always reconstructed
// from a byte offset into the original File, never threaded separately,
// so there is exactly one source of truth for "where did this come from".
package source

import "fmt"

// Position identifies a single point within a File: a 1-indexed line and
// column, plus the byte offset it was derived from.
type Position struct {
	Line   int
	Column int
	Offset int
}

// String renders a position as "line:column", the form used throughout
// diagnostics and error messages.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is a half-open byte range [Start, End) within a File.
type Span struct {
	Start int
	End   int
}

// Length returns the number of bytes covered by this span.
func (s Span) Length() int {
	return s.End - s.Start
}

// File wraps the raw bytes being parsed along with an identifying name
// (typically a filename, but may be synthetic for in-memory input).
type File struct {
	name     string
	contents []byte
}

// NewFile constructs a File from raw bytes with an identifying name.
func NewFile(name string, contents []byte) *File {
	return &File{name: name, contents: contents}
}

// Name returns the identifying name of this file.
func (f *File) Name() string {
	return f.name
}

// Contents returns the raw bytes of this file.
func (f *File) Contents() []byte {
	return f.contents
}

// PositionAt reconstructs the 1-indexed line/column for a byte offset by
// counting newlines up to that offset. Callers capture this once (e.g. at
// segment start) rather than calling it per-byte, since it is O(offset).
func (f *File) PositionAt(offset int) Position {
	line, col := 1, 1

	limit := offset
	if limit > len(f.contents) {
		limit = len(f.contents)
	}

	for i := 0; i < limit; i++ {
		if f.contents[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}

	return Position{Line: line, Column: col, Offset: offset}
}
