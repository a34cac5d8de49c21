package schema

import "testing"

func TestResolveChainIsAssociative(t *testing.T) {
	a := NewSchema("a", "1.0")
	a.Constraints = append(a.Constraints, Required("BGM"))

	b := NewSchema("b", "1.0")
	b.Constraints = append(b.Constraints, Length("BGM.e1", 1, 3))

	c := NewSchema("c", "1.0")
	c.Constraints = append(c.Constraints, Required("BGM")) // overrides a's

	d := NewSchema("d", "1.0")
	d.Constraints = append(d.Constraints, Pattern("BGM.e1", "^[0-9]+$"))

	r := NewResolver()

	direct := r.ResolveChain([]*Schema{a, b, c, d})

	prefix := r.ResolveChain([]*Schema{a, b, c})
	staged := r.ResolveChain([]*Schema{prefix, d})

	if len(direct.Constraints) != len(staged.Constraints) {
		t.Fatalf("direct fold produced %d constraints, staged fold produced %d", len(direct.Constraints), len(staged.Constraints))
	}

	for i := range direct.Constraints {
		if direct.Constraints[i].Discriminator() != staged.Constraints[i].Discriminator() {
			t.Errorf("constraint %d differs: %+v vs %+v", i, direct.Constraints[i], staged.Constraints[i])
		}
	}
}

func TestFoldConstraintsChildWinsOnSharedDiscriminator(t *testing.T) {
	parent := NewSchema("parent", "1.0")
	parent.Constraints = append(parent.Constraints, Length("BGM.e1", 1, 3))

	child := NewSchema("child", "1.0")
	child.Constraints = append(child.Constraints, Length("BGM.e1", 1, 9))

	resolved := NewResolver().ResolveChain([]*Schema{parent, child})

	if len(resolved.Constraints) != 1 {
		t.Fatalf("want 1 merged constraint, got %d", len(resolved.Constraints))
	}
	if resolved.Constraints[0].MaxLength != 9 {
		t.Errorf("want child's MaxLength=9 to win, got %d", resolved.Constraints[0].MaxLength)
	}
}

func TestFoldElementsMergesByIDPreservingParentOnlyEntries(t *testing.T) {
	parent := NewSchema("parent", "1.0")
	parent.Segments = append(parent.Segments, SegmentDefinition{
		Tag: "BGM",
		Elements: []ElementDefinition{
			{ID: "1", Name: "doc_code", DataType: "an", MaxLength: 3},
			{ID: "2", Name: "doc_number", DataType: "an", MaxLength: 35},
		},
	})

	child := NewSchema("child", "1.0")
	child.Segments = append(child.Segments, SegmentDefinition{
		Tag: "BGM",
		Elements: []ElementDefinition{
			{ID: "1", Name: "doc_code", DataType: "an", MaxLength: 9},
		},
	})

	resolved := NewResolver().ResolveChain([]*Schema{parent, child})

	seg, ok := resolved.SegmentByTag("BGM")
	if !ok {
		t.Fatal("want BGM segment in resolved schema")
	}
	if len(seg.Elements) != 2 {
		t.Fatalf("want 2 elements (parent's element 2 preserved), got %d", len(seg.Elements))
	}

	e1, _ := seg.ElementByID("1")
	if e1.MaxLength != 9 {
		t.Errorf("want child's element 1 (MaxLength=9) to win, got %d", e1.MaxLength)
	}
}
