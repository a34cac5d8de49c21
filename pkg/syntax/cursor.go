// Package syntax implements the EDIFACT syntax layer (spec component C1):
// a pull reader over an immutable byte slice that understands the
// service-string separators and release-character escaping, but performs
// no envelope- or segment-level interpretation of its own. It never
// fails; malformed input is surfaced by the caller (pkg/edifact) as a
// Parse error carrying a position.
package syntax

import "github.com/errfld/rsedi-sub001/pkg/source"

// Cursor is a mutable-position reader over an immutable byte slice. All
// operations that don't match leave the cursor where it started.
type Cursor struct {
	file       *source.File
	data       []byte
	index      int
	Separators Separators
}

// NewCursor constructs a Cursor over data, detecting and consuming a
// leading UNA service string if present, otherwise defaulting to the
// canonical separator set.
func NewCursor(name string, data []byte) *Cursor {
	c := &Cursor{
		file:       source.NewFile(name, data),
		data:       data,
		Separators: DefaultSeparators(),
	}
	c.detectUNA()

	return c
}

// Position returns the current cursor position within the source file.
func (c *Cursor) Position() source.Position {
	return c.file.PositionAt(c.index)
}

// PositionAt returns the position of an arbitrary byte offset, used by
// callers that captured an offset earlier (e.g. at segment start).
func (c *Cursor) PositionAt(offset int) source.Position {
	return c.file.PositionAt(offset)
}

// Offset returns the current byte offset of the cursor.
func (c *Cursor) Offset() int {
	return c.index
}

// Len returns the total number of bytes in the underlying slice.
func (c *Cursor) Len() int {
	return len(c.data)
}

// AtEOF reports whether the cursor has consumed all input.
func (c *Cursor) AtEOF() bool {
	return c.index >= len(c.data)
}

// Peek returns the byte at the cursor without advancing, and false if at
// EOF.
func (c *Cursor) Peek() (byte, bool) {
	if c.AtEOF() {
		return 0, false
	}

	return c.data[c.index], true
}

// Advance returns the byte at the cursor and moves past it, or false at
// EOF.
func (c *Cursor) Advance() (byte, bool) {
	b, ok := c.Peek()
	if ok {
		c.index++
	}

	return b, ok
}

// SkipWhitespace advances past any run of space, tab, CR or LF bytes.
func (c *Cursor) SkipWhitespace() {
	for {
		b, ok := c.Peek()
		if !ok || !isWhitespace(b) {
			return
		}

		c.index++
	}
}

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func isAlphaNumeric(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}

// ReadTag attempts to read a 3-character segment tag at the cursor. It
// succeeds only when the next three bytes are all ASCII alphanumerics;
// otherwise it leaves the cursor untouched and returns false.
func (c *Cursor) ReadTag() (string, bool) {
	if c.index+3 > len(c.data) {
		return "", false
	}

	tag := c.data[c.index : c.index+3]
	for _, b := range tag {
		if !isAlphaNumeric(b) {
			return "", false
		}
	}

	c.index += 3

	return string(tag), true
}

// ReadUntilDelimiter copies bytes from the cursor into a fresh buffer
// until one of the given delimiter bytes is found outside of a release
// escape, or EOF is reached. The release rule: when a release byte is
// seen, the following byte (of any class) is appended literally and the
// release byte itself is dropped; two consecutive release bytes encode a
// single literal release byte. If the input ends immediately after a
// dangling release byte, danglingRelease is true and the byte is dropped.
//
// The returned delimiter is the byte that stopped the scan, with ok=true;
// ok is false if EOF was reached with no terminating delimiter.
func (c *Cursor) ReadUntilDelimiter(delimiters ...byte) (value []byte, delim byte, ok bool, danglingRelease bool) {
	var buf []byte

	for {
		b, more := c.Peek()
		if !more {
			return buf, 0, false, false
		}

		if b == c.Separators.Release {
			c.index++

			next, hasNext := c.Advance()
			if !hasNext {
				return buf, 0, false, true
			}

			buf = append(buf, next)

			continue
		}

		if containsByte(delimiters, b) {
			c.index++
			return buf, b, true, false
		}

		buf = append(buf, b)
		c.index++
	}
}

func containsByte(set []byte, b byte) bool {
	for _, s := range set {
		if s == b {
			return true
		}
	}

	return false
}

// detectUNA inspects the first three bytes of the input; if they spell
// "UNA", it reads the following six bytes as component, element,
// decimal, release, reserved (must be a space) and segment-terminator,
// then advances past any whitespace immediately following. Otherwise the
// cursor is left at offset 0 with the default separator set.
func (c *Cursor) detectUNA() {
	if len(c.data) < 9 || string(c.data[0:3]) != "UNA" {
		return
	}

	body := c.data[3:9]
	c.Separators = Separators{
		Component: body[0],
		Element:   body[1],
		Decimal:   body[2],
		Release:   body[3],
		Segment:   body[5],
	}
	c.index = 9
	c.SkipWhitespace()
}
