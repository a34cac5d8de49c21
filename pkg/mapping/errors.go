// Package mapping implements the mapping runtime (part of spec component
// C5): it evaluates an ordered rule list against a source IR, building a
// fresh target IR via a scratch builder and a scope stack that binds
// "item" during Foreach execution. Rule lists are walked with an explicit
// stack rather than recursion, per spec.md §9; transforms (Chain,
// Conditional) and predicates (And, Or, Not) are applied recursively.
package mapping

import "fmt"

// TransformError reports a transform that could not be applied to its
// input, per spec.md §7.
type TransformError struct {
	Transform string
	Path      string
	Message   string
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("transform %s at %s: %s", e.Transform, e.Path, e.Message)
}

// InvalidNumberError reports a numeric transform or arithmetic operand
// that could not be parsed, per spec.md §4.5 ("empty -> error
// InvalidNumber").
type InvalidNumberError struct {
	Input string
}

func (e *InvalidNumberError) Error() string {
	return fmt.Sprintf("invalid number: %q", e.Input)
}

// UnknownLookupTableError reports a Lookup transform or rule naming a
// table the runtime was not given.
type UnknownLookupTableError struct {
	Table string
}

func (e *UnknownLookupTableError) Error() string {
	return fmt.Sprintf("unknown lookup table: %q", e.Table)
}

// PathError reports a source or target path that could not be resolved
// (e.g. "item" used outside a Foreach scope, or a malformed path
// string).
type PathError struct {
	Path    string
	Message string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("path %q: %s", e.Path, e.Message)
}

// UnsupportedTargetError reports a mapping program whose target_type
// mixes a non-EDIFACT target with EDIFACT positional target paths (e.g.
// "BGM.e1"), raised before any writes per spec.md §4.5.
type UnsupportedTargetError struct {
	TargetType string
	Path       string
}

func (e *UnsupportedTargetError) Error() string {
	return fmt.Sprintf("unsupported mapping target_type %q: positional EDIFACT path %q requires target_type \"edifact\"", e.TargetType, e.Path)
}
