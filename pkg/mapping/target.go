package mapping

import (
	"regexp"
	"strings"

	"github.com/errfld/rsedi-sub001/pkg/ir"
)

// edifactPositionalPath matches a target path that addresses an EDIFACT
// segment/element position directly (e.g. "BGM.e1" or "/BGM/e1"),
// regardless of whether it is written with the dot shorthand used in
// spec.md §4.5's error example or the slash grammar used everywhere
// else. Any such path requires target_type "edifact".
var edifactPositionalPath = regexp.MustCompile(`[A-Z]{3}[./]e\d+`)

// checkTargetPath validates a single target path against the program's
// declared target_type, per spec.md §4.5: "a mapping program whose
// target_type is not edifact but whose rules reference EDIFACT
// positional target paths ... is rejected with Unsupported mapping
// target_type before any writes occur."
func checkTargetPath(targetType, path string) error {
	if targetType == "edifact" {
		return nil
	}

	if edifactPositionalPath.MatchString(path) {
		return &UnsupportedTargetError{TargetType: targetType, Path: path}
	}

	return nil
}

// containerKind picks the Node kind created for an intermediate (or
// Foreach-created) container, matching the target's declared shape:
// Segment/Element for an edifact target, Record/Field otherwise.
func containerKind(targetType string, depth int) ir.Kind {
	if targetType == "edifact" {
		if depth == 0 {
			return ir.KindSegment
		}
		return ir.KindElement
	}

	if depth == 0 {
		return ir.KindRecord
	}

	return ir.KindField
}

// splitTargetPath splits a target path (either "/" grammar or the dotted
// EDIFACT shorthand) into plain name steps. Index suffixes ("[n]") are
// not meaningful on the write side, since writeField decides
// overwrite-vs-append itself from the existing tree shape.
func splitTargetPath(path string) []string {
	normalized := strings.ReplaceAll(path, ".", "/")
	normalized = strings.TrimPrefix(normalized, "/")

	var steps []string
	for _, p := range strings.Split(normalized, "/") {
		if p != "" {
			steps = append(steps, p)
		}
	}

	return steps
}

// writeField writes value at path under container, creating intermediate
// container nodes on demand. Per spec.md §4.5: writing the same path
// twice overwrites the prior value, unless the prior value is itself a
// container, in which case the new value is appended as another child
// (the mechanism that lets a Foreach's per-iteration Field calls build up
// repeated elements without an explicit "append" rule).
func writeField(container *ir.Node, targetType, path string, value ir.Value) error {
	if err := checkTargetPath(targetType, path); err != nil {
		return err
	}

	steps := splitTargetPath(path)
	if len(steps) == 0 {
		return &PathError{Path: path, Message: "empty target path"}
	}

	cur := container
	for depth, name := range steps[:len(steps)-1] {
		existing := cur.FirstChild(name)
		if existing == nil {
			existing = ir.NewNode(name, containerKind(targetType, depth))
			cur.AppendChild(existing)
		}
		cur = existing
	}

	last := steps[len(steps)-1]
	leafKind := containerKind(targetType, len(steps)-1)

	existing := cur.FirstChild(last)
	switch {
	case existing == nil:
		cur.AppendChild(ir.NewLeaf(last, leafKind, value))
	case existing.IsLeaf():
		v := value
		existing.Value = &v
	default:
		// existing is a container: append the new value as a sibling
		// child rather than clobbering the container.
		cur.AppendChild(ir.NewLeaf(last, leafKind, value))
	}

	return nil
}

// newContainerChild creates and appends a fresh named container node
// under parent (the mechanism a Foreach rule uses to start a new
// row/record per iteration), returning it as the new TargetContainer for
// the iteration's scope.
func newContainerChild(parent *ir.Node, targetType, name string, depth int) *ir.Node {
	child := ir.NewNode(name, containerKind(targetType, depth))
	parent.AppendChild(child)
	return child
}
