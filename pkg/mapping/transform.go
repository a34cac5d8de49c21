package mapping

import (
	"strings"
	"time"
)

// TransformKind discriminates the transform shapes named in spec.md
// §3/§4.5.
type TransformKind uint8

// The transform variants.
const (
	TransformDateFormat TransformKind = iota
	TransformPad
	TransformCase
	TransformAdd
	TransformSub
	TransformMul
	TransformDiv
	TransformChain
	TransformConditional
	TransformLookup
	TransformDefault
)

// PadSide selects which end of a value TransformPad pads.
type PadSide uint8

// The two pad sides.
const (
	PadLeft PadSide = iota
	PadRight
)

// CaseMode selects the case TransformCase folds a value to.
type CaseMode uint8

// The two case modes.
const (
	CaseUpper CaseMode = iota
	CaseLower
)

// Transform is a single transform step. Like schema.Constraint, it is one
// flat struct with a Kind discriminator rather than one interface per
// variant, since Chain and Conditional need to hold child Transforms of
// the same type and a flat struct avoids an extra layer of boxing.
type Transform struct {
	Kind TransformKind

	// DateFormat
	InFormat  string
	OutFormat string

	// Pad
	Side  PadSide
	Width int
	Fill  string

	// Case
	Case CaseMode

	// Add/Sub/Mul/Div: the second operand, a literal or another source
	// path resolved against the active scope.
	Operand string

	// Chain
	Steps []Transform

	// Conditional
	Predicate *Predicate
	Then      *Transform
	Else      *Transform

	// Lookup
	Table string

	// Default
	DefaultValue string
}

// Apply runs t against input, resolving any path-valued operands (Add's
// Operand, Conditional's Predicate) against scope. It returns the
// transformed string, or an error satisfying one of TransformError,
// InvalidNumberError, or UnknownLookupTableError.
func (t *Transform) Apply(rt *Runtime, scope Scope, input string) (string, error) {
	switch t.Kind {
	case TransformDateFormat:
		return t.applyDateFormat(input)

	case TransformPad:
		return t.applyPad(input), nil

	case TransformCase:
		return t.applyCase(input), nil

	case TransformAdd, TransformSub, TransformMul, TransformDiv:
		return t.applyArithmetic(rt, scope, input)

	case TransformChain:
		cur := input
		for i := range t.Steps {
			var err error
			cur, err = t.Steps[i].Apply(rt, scope, cur)
			if err != nil {
				return "", err
			}
		}
		return cur, nil

	case TransformConditional:
		ok, err := t.Predicate.Evaluate(rt, scope)
		if err != nil {
			return "", err
		}
		if ok {
			if t.Then == nil {
				return input, nil
			}
			return t.Then.Apply(rt, scope, input)
		}
		if t.Else == nil {
			return input, nil
		}
		return t.Else.Apply(rt, scope, input)

	case TransformLookup:
		table, ok := rt.Tables[t.Table]
		if !ok {
			return "", &UnknownLookupTableError{Table: t.Table}
		}
		out, found := table[input]
		if !found {
			return "", nil
		}
		return out, nil

	case TransformDefault:
		if input == "" {
			return t.DefaultValue, nil
		}
		return input, nil

	default:
		return "", &TransformError{Transform: "unknown", Message: "unrecognised transform kind"}
	}
}

func (t *Transform) applyDateFormat(input string) (string, error) {
	if input == "" {
		return "", nil
	}

	parsed, err := time.Parse(goLayout(t.InFormat), input)
	if err != nil {
		return "", &TransformError{Transform: "DateFormat", Message: err.Error()}
	}

	return parsed.Format(goLayout(t.OutFormat)), nil
}

// goLayout translates the small set of EDIFACT-style date tokens used in
// mapping programs (YYYY, MM, DD, hh, mm) into Go's reference-time
// layout. Only the tokens spec.md's scenarios exercise are supported.
func goLayout(pattern string) string {
	r := strings.NewReplacer(
		"YYYY", "2006",
		"MM", "01",
		"DD", "02",
		"hh", "15",
		"mm", "04",
	)
	return r.Replace(pattern)
}

func (t *Transform) applyPad(input string) string {
	if len(input) >= t.Width {
		return input
	}

	fill := t.Fill
	if fill == "" {
		fill = " "
	}

	padding := strings.Repeat(fill, t.Width-len(input))

	if t.Side == PadLeft {
		return padding + input
	}

	return input + padding
}

func (t *Transform) applyCase(input string) string {
	if t.Case == CaseUpper {
		return strings.ToUpper(input)
	}

	return strings.ToLower(input)
}

func (t *Transform) applyArithmetic(rt *Runtime, scope Scope, input string) (string, error) {
	left, err := ParseNumber(input)
	if err != nil {
		return "", err
	}

	right, err := rt.resolveOperand(scope, t.Operand)
	if err != nil {
		return "", err
	}

	var result float64

	switch t.Kind {
	case TransformAdd:
		result = left + right
	case TransformSub:
		result = left - right
	case TransformMul:
		result = left * right
	case TransformDiv:
		if right == 0 {
			return "", &TransformError{Transform: "Div", Message: "division by zero"}
		}
		result = left / right
	}

	return FormatNumber(result), nil
}
