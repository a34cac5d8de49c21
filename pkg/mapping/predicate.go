package mapping

// PredicateKind discriminates the predicate expression shapes evaluated
// by Condition rules and Conditional transforms, per spec.md §3
// ("Predicate: an expression tree over the current scope").
type PredicateKind uint8

// The predicate variants.
const (
	PredicateExists PredicateKind = iota
	PredicateEquals
	PredicateNotEquals
	PredicateLessThan
	PredicateGreaterThan
	PredicateAnd
	PredicateOr
	PredicateNot
)

// Predicate is one node of a predicate expression tree. As with
// Transform, a flat struct with a Kind discriminator is used rather than
// one interface per variant so And/Or/Not can hold child Predicates
// uniformly.
type Predicate struct {
	Kind PredicateKind

	// Exists/Equals/NotEquals/LessThan/GreaterThan: the source path to
	// test.
	Path string

	// Equals/NotEquals/LessThan/GreaterThan: the literal to compare
	// against.
	Value string

	// And/Or
	Operands []Predicate

	// Not
	Operand *Predicate
}

// Evaluate resolves p against scope, returning its boolean result or a
// path-resolution error.
func (p *Predicate) Evaluate(rt *Runtime, scope Scope) (bool, error) {
	switch p.Kind {
	case PredicateExists:
		nodes, err := rt.resolveSource(scope, p.Path)
		if err != nil {
			return false, err
		}
		return len(nodes) > 0, nil

	case PredicateEquals, PredicateNotEquals, PredicateLessThan, PredicateGreaterThan:
		nodes, err := rt.resolveSource(scope, p.Path)
		if err != nil {
			return false, err
		}

		actual := ""
		if len(nodes) > 0 && nodes[0].Value != nil {
			actual = nodes[0].Value.AsString()
		}

		switch p.Kind {
		case PredicateEquals:
			return actual == p.Value, nil
		case PredicateNotEquals:
			return actual != p.Value, nil
		case PredicateLessThan, PredicateGreaterThan:
			left, err := ParseNumber(actual)
			if err != nil {
				return false, err
			}
			right, err := ParseNumber(p.Value)
			if err != nil {
				return false, err
			}
			if p.Kind == PredicateLessThan {
				return left < right, nil
			}
			return left > right, nil
		}

	case PredicateAnd:
		for i := range p.Operands {
			ok, err := p.Operands[i].Evaluate(rt, scope)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil

	case PredicateOr:
		for i := range p.Operands {
			ok, err := p.Operands[i].Evaluate(rt, scope)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil

	case PredicateNot:
		ok, err := p.Operand.Evaluate(rt, scope)
		if err != nil {
			return false, err
		}
		return !ok, nil
	}

	return false, &TransformError{Transform: "Predicate", Message: "unrecognised predicate kind"}
}
