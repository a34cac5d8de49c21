package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// frame is one level of an explicit traversal stack: the node being
// visited and the index of the next child to descend into.
type frame struct {
	node  *Node
	index int
}

// Cursor walks an IR tree using an explicit stack of (node, child_index)
// frames rather than recursion, so traversal state can be paused,
// inspected, and resumed by callers.
type Cursor struct {
	stack []frame
}

// NewCursor constructs a cursor positioned at root.
func NewCursor(root *Node) *Cursor {
	return &Cursor{stack: []frame{{node: root}}}
}

// Current returns the node the cursor currently sits on, or nil if the
// traversal is exhausted.
func (c *Cursor) Current() *Node {
	if len(c.stack) == 0 {
		return nil
	}

	return c.stack[len(c.stack)-1].node
}

// NextPreOrder advances the cursor to the next node in pre-order
// (node, then its children left-to-right) and returns it, or nil when
// the traversal is complete.
func (c *Cursor) NextPreOrder() *Node {
	for len(c.stack) > 0 {
		top := &c.stack[len(c.stack)-1]

		if top.index == 0 {
			top.index++
			return top.node
		}

		if top.index-1 < len(top.node.Children) {
			child := top.node.Children[top.index-1]
			top.index++
			c.stack = append(c.stack, frame{node: child})

			return c.NextPreOrder()
		}

		c.stack = c.stack[:len(c.stack)-1]
	}

	return nil
}

// LevelOrder returns every node in the tree rooted at root in
// breadth-first order.
func LevelOrder(root *Node) []*Node {
	var out []*Node

	queue := []*Node{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		out = append(out, n)
		queue = append(queue, n.Children...)
	}

	return out
}

// step is one parsed path segment: a name plus an optional explicit
// index, or one of the wildcard forms ("*", "item").
type step struct {
	name     string
	index    int
	hasIndex bool
	wildcard bool
	isItem   bool
}

// ParsePath parses the path grammar from spec.md §4.3:
//
//	path := '/'? step ('/' step)*
//	step := name | name '[' index ']' | '*' | 'item'
func ParsePath(path string) ([]step, error) {
	trimmed := strings.TrimPrefix(path, "/")
	if trimmed == "" {
		return nil, fmt.Errorf("ir: empty path")
	}

	parts := strings.Split(trimmed, "/")
	steps := make([]step, 0, len(parts))

	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("ir: empty path segment in %q", path)
		}

		s, err := parseStep(p)
		if err != nil {
			return nil, fmt.Errorf("ir: %w", err)
		}

		steps = append(steps, s)
	}

	return steps, nil
}

func parseStep(p string) (step, error) {
	if p == "*" {
		return step{wildcard: true}, nil
	}

	if p == "item" {
		return step{isItem: true, name: "item"}, nil
	}

	open := strings.IndexByte(p, '[')
	if open < 0 {
		return step{name: p}, nil
	}

	if !strings.HasSuffix(p, "]") {
		return step{}, fmt.Errorf("unterminated index in step %q", p)
	}

	name := p[:open]

	idxStr := p[open+1 : len(p)-1]

	idx, err := strconv.Atoi(idxStr)
	if err != nil {
		return step{}, fmt.Errorf("invalid index in step %q: %w", p, err)
	}

	return step{name: name, index: idx, hasIndex: true}, nil
}

// Resolve walks from root following the parsed path and returns every
// matching node, in document order. A bare name step matches all
// same-named children at that level (so a path may resolve to multiple
// nodes, per the "first wins" rule applied by Field rules); an indexed
// step ('[n]') selects the nth (0-based) match at that level; '*'
// matches every child regardless of name; 'item' is only meaningful
// inside a Foreach scope and is resolved by the caller before reaching
// here (see pkg/mapping), so a literal "item" step against a plain tree
// is treated as a name lookup.
func Resolve(root *Node, path string) ([]*Node, error) {
	steps, err := ParsePath(path)
	if err != nil {
		return nil, err
	}

	current := []*Node{root}

	for _, s := range steps {
		var next []*Node

		for _, n := range current {
			next = append(next, matchStep(n, s)...)
		}

		current = next
	}

	return current, nil
}

func matchStep(n *Node, s step) []*Node {
	if s.wildcard {
		return append([]*Node(nil), n.Children...)
	}

	matches := n.ChildrenNamed(s.name)
	if !s.hasIndex {
		return matches
	}

	if s.index < 0 || s.index >= len(matches) {
		return nil
	}

	return []*Node{matches[s.index]}
}

// Path reconstructs an addressing path that resolves back to target,
// searching the subtree rooted at root. It returns ok=false if target is
// not reachable from root. This underlies the "for every IR node, the
// path returned by the cursor resolves back to the same node" invariant.
// The path is relative to root, as Resolve expects. For target == root it
// returns "/"+root.Name, which Resolve does not map back to root, since
// Resolve only addresses root's descendants.
func Path(root, target *Node) (string, bool) {
	if root == target {
		return "/" + root.Name, true
	}

	var walk func(n *Node, prefix string) (string, bool)

	walk = func(n *Node, prefix string) (string, bool) {
		counts := make(map[string]int)

		for _, c := range n.Children {
			idx := counts[c.Name]
			counts[c.Name]++

			segment := fmt.Sprintf("%s[%d]", c.Name, idx)
			path := prefix + "/" + segment

			if c == target {
				return path, true
			}

			if found, ok := walk(c, path); ok {
				return found, true
			}
		}

		return "", false
	}

	return walk(root, "")
}
