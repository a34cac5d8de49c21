package ir

import (
	"fmt"
	"time"
)

// ValueKind discriminates the variants a Value can hold.
type ValueKind uint8

// The value kinds named in the data model: every leaf node carries
// exactly one of these, including Null, which is distinct from a node
// simply having no Value at all (composite/container nodes).
const (
	KindString ValueKind = iota
	KindInteger
	KindDecimal
	KindBoolean
	KindDate
	KindTime
	KindDateTime
	KindBinary
	KindNull
)

func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "String"
	case KindInteger:
		return "Integer"
	case KindDecimal:
		return "Decimal"
	case KindBoolean:
		return "Boolean"
	case KindDate:
		return "Date"
	case KindTime:
		return "Time"
	case KindDateTime:
		return "DateTime"
	case KindBinary:
		return "Binary"
	case KindNull:
		return "Null"
	default:
		return "Unknown"
	}
}

// Decimal is a fixed-point decimal value represented as an unscaled
// integer and a scale (number of digits after the decimal point), so
// that "9.50" round-trips exactly rather than through a binary float.
type Decimal struct {
	Unscaled int64
	Scale    int
}

// String renders the decimal in plain notation, e.g. Decimal{950, 2} ->
// "9.50".
func (d Decimal) String() string {
	if d.Scale <= 0 {
		return fmt.Sprintf("%d", d.Unscaled)
	}

	neg := d.Unscaled < 0

	u := d.Unscaled
	if neg {
		u = -u
	}

	s := fmt.Sprintf("%0*d", d.Scale+1, u)
	whole, frac := s[:len(s)-d.Scale], s[len(s)-d.Scale:]

	sign := ""
	if neg {
		sign = "-"
	}

	return fmt.Sprintf("%s%s.%s", sign, whole, frac)
}

// Value is the tagged union of leaf-node content described in spec.md
// §3. Exactly one of the typed fields is meaningful, selected by Kind;
// Null carries none.
type Value struct {
	Kind     ValueKind
	Str      string
	Int      int64
	Dec      Decimal
	Bool     bool
	Time     time.Time
	Binary   []byte
}

// NullValue returns the Null value variant.
func NullValue() Value { return Value{Kind: KindNull} }

// StringValue wraps a string as a Value.
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// IntegerValue wraps an integer as a Value.
func IntegerValue(i int64) Value { return Value{Kind: KindInteger, Int: i} }

// DecimalValue wraps a Decimal as a Value.
func DecimalValue(d Decimal) Value { return Value{Kind: KindDecimal, Dec: d} }

// BooleanValue wraps a bool as a Value.
func BooleanValue(b bool) Value { return Value{Kind: KindBoolean, Bool: b} }

// DateValue wraps a calendar date (time-of-day ignored) as a Value.
func DateValue(t time.Time) Value { return Value{Kind: KindDate, Time: t} }

// TimeValue wraps a time-of-day (date ignored) as a Value.
func TimeValue(t time.Time) Value { return Value{Kind: KindTime, Time: t} }

// DateTimeValue wraps a combined date and time as a Value.
func DateTimeValue(t time.Time) Value { return Value{Kind: KindDateTime, Time: t} }

// BinaryValue wraps raw bytes as a Value.
func BinaryValue(b []byte) Value { return Value{Kind: KindBinary, Binary: b} }

// IsNull reports whether this value is the Null variant.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// AsString renders any value kind as a string, the representation used
// for wire serialisation and most validator comparisons.
func (v Value) AsString() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindInteger:
		return fmt.Sprintf("%d", v.Int)
	case KindDecimal:
		return v.Dec.String()
	case KindBoolean:
		if v.Bool {
			return "1"
		}

		return "0"
	case KindDate:
		return v.Time.Format("20060102")
	case KindTime:
		return v.Time.Format("1504")
	case KindDateTime:
		return v.Time.Format("200601021504")
	case KindBinary:
		return string(v.Binary)
	case KindNull:
		return ""
	default:
		return ""
	}
}
