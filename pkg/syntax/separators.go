package syntax

// Separators holds the five service-string bytes that delimit an EDIFACT
// interchange: component, element, decimal point, release (escape), and
// segment terminator. The zero value is never valid on its own; use
// DefaultSeparators, or let NewCursor read them from a UNA service string.
type Separators struct {
	Component byte
	Element   byte
	Decimal   byte
	Release   byte
	Segment   byte
}

// DefaultSeparators returns the canonical EDIFACT separator set used when
// no UNA service string is present, and used unconditionally on
// serialisation unless a non-default set was requested.
func DefaultSeparators() Separators {
	return Separators{
		Component: ':',
		Element:   '+',
		Decimal:   '.',
		Release:   '?',
		Segment:   '\'',
	}
}

// IsDefault reports whether s is exactly the canonical separator set. A
// serializer uses this to decide whether a UNA segment needs to be
// emitted at all.
func (s Separators) IsDefault() bool {
	return s == DefaultSeparators()
}

// IsSeparator reports whether b is one of the five separator bytes.
func (s Separators) IsSeparator(b byte) bool {
	return b == s.Component || b == s.Element || b == s.Decimal || b == s.Release || b == s.Segment
}
