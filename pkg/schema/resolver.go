package schema

import (
	"sort"
)

// Resolver folds an ordered inheritance chain (base -> version -> message
// -> partner, any layer may be absent from the slice) into a single
// effective Schema, applying the folding rules in spec.md §4.4 pairwise,
// left to right. ResolveChain([A,B,C,D]) is defined to equal
// ResolveChain([ResolveChain([A,B,C]), D]) — the fold is associative by
// construction, since each step only ever merges two schemas using the
// same rules.
type Resolver struct{}

// NewResolver constructs a Resolver. It carries no state of its own; all
// state (the name->schema lookup and the cycle-detection edge set) lives
// in the Registry, which is the thing that actually needs to persist
// across resolutions.
func NewResolver() *Resolver {
	return &Resolver{}
}

// ResolveChain folds chain left-to-right into one effective schema. An
// empty chain resolves to an empty, unnamed schema.
func (r *Resolver) ResolveChain(chain []*Schema) *Schema {
	if len(chain) == 0 {
		return NewSchema("", "")
	}

	effective := chain[0].Clone()
	for _, next := range chain[1:] {
		effective = foldPair(effective, next)
	}

	return effective
}

// foldPair merges child on top of parent, with child winning ties, per
// spec.md §4.4 rules 1-3. The result names/versions itself after child,
// since child is always the more specific layer.
func foldPair(parent, child *Schema) *Schema {
	result := NewSchema(child.Name, child.Version)
	result.Parent = child.Parent

	result.Segments = foldSegments(parent.Segments, child.Segments)
	result.Constraints = foldConstraints(parent.Constraints, child.Constraints)
	result.CodeLists = foldCodeLists(parent.CodeLists, child.CodeLists)

	return result
}

// foldSegments implements rule 1: the effective set is the union keyed
// by tag; on a shared tag, child wins for scalar fields (IsMandatory,
// MaxRepetitions) and elements merge by id with child winning (rule 2).
func foldSegments(parentSegs, childSegs []SegmentDefinition) []SegmentDefinition {
	order := make([]string, 0, len(parentSegs)+len(childSegs))
	byTag := make(map[string]SegmentDefinition, len(parentSegs)+len(childSegs))

	for _, seg := range parentSegs {
		if _, seen := byTag[seg.Tag]; !seen {
			order = append(order, seg.Tag)
		}

		byTag[seg.Tag] = seg.Clone()
	}

	for _, childSeg := range childSegs {
		parentSeg, exists := byTag[childSeg.Tag]
		if !exists {
			order = append(order, childSeg.Tag)
			byTag[childSeg.Tag] = childSeg.Clone()

			continue
		}

		byTag[childSeg.Tag] = foldSegment(parentSeg, childSeg)
	}

	out := make([]SegmentDefinition, 0, len(order))
	for _, tag := range order {
		out = append(out, byTag[tag])
	}

	return out
}

// foldSegment merges a single shared-tag segment: child wins for
// IsMandatory and MaxRepetitions; elements merge by id, child winning,
// parent-only elements retained.
func foldSegment(parent, child SegmentDefinition) SegmentDefinition {
	result := child.Clone()
	result.Elements = foldElements(parent.Elements, child.Elements)

	return result
}

func foldElements(parentElems, childElems []ElementDefinition) []ElementDefinition {
	order := make([]string, 0, len(parentElems)+len(childElems))
	byID := make(map[string]ElementDefinition, len(parentElems)+len(childElems))

	for _, e := range parentElems {
		if _, seen := byID[e.ID]; !seen {
			order = append(order, e.ID)
		}

		byID[e.ID] = e
	}

	for _, e := range childElems {
		if _, seen := byID[e.ID]; !seen {
			order = append(order, e.ID)
		}

		byID[e.ID] = e
	}

	out := make([]ElementDefinition, 0, len(order))
	for _, id := range order {
		out = append(out, byID[id])
	}

	return out
}

// foldConstraints implements rule 3: child replaces parent constraints
// sharing the same (variant, path) discriminator; otherwise appended.
func foldConstraints(parentCs, childCs []Constraint) []Constraint {
	type key struct {
		v ConstraintVariant
		p string
	}

	order := make([]key, 0, len(parentCs)+len(childCs))
	byKey := make(map[key]Constraint, len(parentCs)+len(childCs))

	for _, c := range parentCs {
		k := key{c.Variant, c.Path}
		if _, seen := byKey[k]; !seen {
			order = append(order, k)
		}

		byKey[k] = c
	}

	for _, c := range childCs {
		k := key{c.Variant, c.Path}
		if _, seen := byKey[k]; !seen {
			order = append(order, k)
		}

		byKey[k] = c
	}

	out := make([]Constraint, 0, len(order))
	for _, k := range order {
		out = append(out, byKey[k])
	}

	return out
}

// foldCodeLists merges code lists by name, child winning on conflict.
func foldCodeLists(parent, child map[string]CodeList) map[string]CodeList {
	out := make(map[string]CodeList, len(parent)+len(child))

	for name, cl := range parent {
		out[name] = cl.Clone()
	}

	for name, cl := range child {
		out[name] = cl.Clone()
	}

	return out
}

// sortedTags returns the tags of segs in sorted order, a deterministic
// segment ordering independent of declaration order. Nothing in the
// module calls it.
func sortedTags(segs []SegmentDefinition) []string {
	tags := make([]string, 0, len(segs))
	for _, s := range segs {
		tags = append(tags, s.Tag)
	}

	sort.Strings(tags)

	return tags
}
