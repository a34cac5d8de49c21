package mapping

import "github.com/errfld/rsedi-sub001/pkg/ir"

// Scope is the evaluation context a rule runs under: the overall source
// root, the item currently bound by an enclosing Foreach (nil at top
// level), and the target container rule-level Field/Lookup/Foreach
// writes are relative to, per spec.md §3 ("item within a Foreach
// addresses the current element of the iteration").
type Scope struct {
	SourceRoot      *ir.Node
	Item            *ir.Node
	TargetContainer *ir.Node
}

// contextNode returns the node bare (non-"item"-prefixed) source paths
// resolve against: the bound item if one is in scope, else the source
// root.
func (s Scope) contextNode() *ir.Node {
	if s.Item != nil {
		return s.Item
	}

	return s.SourceRoot
}

// withItem returns a copy of s with Item rebound, used when a Foreach
// rule pushes a new iteration.
func (s Scope) withItem(item *ir.Node) Scope {
	s.Item = item
	return s
}

// withTarget returns a copy of s with TargetContainer rebound, used when
// a Foreach rule creates a fresh child row/record in the target tree.
func (s Scope) withTarget(target *ir.Node) Scope {
	s.TargetContainer = target
	return s
}
