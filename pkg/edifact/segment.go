package edifact

import (
	"strconv"

	"github.com/errfld/rsedi-sub001/pkg/ir"
	"github.com/errfld/rsedi-sub001/pkg/source"
	"github.com/errfld/rsedi-sub001/pkg/syntax"
)

// rawSegment is the cursor-level view of one segment before it is
// projected into an ir.Node: a tag, an ordered list of elements (each a
// list of one or more raw component byte slices), and the position the
// segment started at.
type rawSegment struct {
	tag      string
	elements [][][]byte
	pos      source.Position
}

// readSegment reads one segment starting at the cursor, which must be
// positioned at (or before, across whitespace) a tag. ok is false with
// no error when the cursor is at clean EOF (no more segments). err is a
// *ParseError when fewer than three bytes remain but it isn't clean EOF,
// per the "segment tag of fewer than three bytes at EOF fails with Parse"
// boundary behaviour.
func readSegment(c *syntax.Cursor) (seg rawSegment, ok bool, warnings []Warning, err error) {
	c.SkipWhitespace()

	if c.AtEOF() {
		return rawSegment{}, false, nil, nil
	}

	startPos := c.Position()

	tag, tagOK := c.ReadTag()
	if !tagOK {
		return rawSegment{}, false, nil, &ParseError{Position: startPos, Message: "expected a 3-character segment tag"}
	}

	seg.tag = tag
	seg.pos = startPos

	// The tag is followed by the element separator that opens the first
	// element, or directly by the terminator of a segment with no elements.
	if b, ok := c.Peek(); ok {
		switch b {
		case c.Separators.Element:
			c.Advance()
		case c.Separators.Segment:
			c.Advance()
			return seg, true, nil, nil
		}
	}

	for {
		components, term, termOK, dangling := readElement(c)

		seg.elements = append(seg.elements, components)

		if dangling {
			warnings = append(warnings, Warning{
				Code:     WarnDanglingRelease,
				Message:  "dangling release character at end of input",
				Position: c.Position(),
			})

			return seg, true, warnings, nil
		}

		if !termOK {
			// EOF reached without a segment terminator; accept what was
			// read, matching the syntax layer's "never fail" contract.
			return seg, true, warnings, nil
		}

		if term == c.Separators.Segment {
			return seg, true, warnings, nil
		}
		// term == Separators.Element: loop for the next element.
	}
}

// readElement reads one element's components, stopping at the element
// or segment delimiter. A simple element yields a single-entry slice;
// a composite element yields one entry per component.
func readElement(c *syntax.Cursor) (components [][]byte, term byte, ok bool, dangling bool) {
	for {
		value, delim, delimOK, wasDangling := c.ReadUntilDelimiter(c.Separators.Component, c.Separators.Element, c.Separators.Segment)

		components = append(components, value)

		if wasDangling {
			return components, 0, false, true
		}

		if !delimOK {
			return components, 0, false, false
		}

		if delim == c.Separators.Component {
			continue
		}

		return components, delim, true, false
	}
}

// trimTrailingEmpty drops trailing elements that are entirely empty
// (every component zero-length), per spec.md §4.2 ("trailing empty
// elements: not preserved"). It never trims a non-trailing empty
// element.
func trimTrailingEmpty(elements [][][]byte) [][][]byte {
	end := len(elements)

	for end > 0 && isEmptyElement(elements[end-1]) {
		end--
	}

	return elements[:end]
}

func isEmptyElement(components [][]byte) bool {
	for _, c := range components {
		if len(c) > 0 {
			return false
		}
	}

	return true
}

// buildSegmentNode projects a rawSegment into an ir.Node tree: one
// Segment node named after the tag, with one Element child per
// (trailing-trimmed) element, each either a leaf (simple) or a container
// of Component children (composite).
func buildSegmentNode(seg rawSegment) *ir.Node {
	node := ir.NewNode(seg.tag, ir.KindSegment)
	pos := seg.pos
	node.Position = &pos

	elements := trimTrailingEmpty(seg.elements)

	for i, components := range elements {
		name := elementName(i + 1)

		if len(components) == 1 {
			node.AppendChild(ir.NewLeaf(name, ir.KindElement, valueFor(components[0])))
			continue
		}

		elemNode := ir.NewNode(name, ir.KindElement)
		for j, comp := range components {
			elemNode.AppendChild(ir.NewLeaf(componentName(j+1), ir.KindComponent, valueFor(comp)))
		}

		node.AppendChild(elemNode)
	}

	return node
}

func valueFor(raw []byte) ir.Value {
	if len(raw) == 0 {
		return ir.NullValue()
	}

	return ir.StringValue(string(raw))
}

func elementName(position int) string {
	return "e" + strconv.Itoa(position)
}

func componentName(position int) string {
	return "c" + strconv.Itoa(position)
}

// elementAt returns the i'th (1-based) element node of a segment node, or
// nil if absent.
func elementAt(segNode *ir.Node, position int) *ir.Node {
	return segNode.FirstChild(elementName(position))
}

// elementString returns the plain string value of a segment's i'th
// simple element, or "" if absent/null/composite.
func elementString(segNode *ir.Node, position int) string {
	e := elementAt(segNode, position)
	if e == nil || e.Value == nil {
		return ""
	}

	return e.Value.AsString()
}

// componentString returns the plain string value of the j'th (1-based)
// component of a composite element, or the element's own simple value if
// it has no components, falling back to "".
func componentString(segNode *ir.Node, elemPos, compPos int) string {
	e := elementAt(segNode, elemPos)
	if e == nil {
		return ""
	}

	if e.Value != nil {
		if compPos == 1 {
			return e.Value.AsString()
		}

		return ""
	}

	c := e.FirstChild(componentName(compPos))
	if c == nil || c.Value == nil {
		return ""
	}

	return c.Value.AsString()
}
