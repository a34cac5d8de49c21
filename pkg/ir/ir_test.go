package ir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func sampleTree() *Node {
	root := NewNode("root", KindRoot)

	bgm := NewNode("BGM", KindSegment)
	bgm.AppendChild(NewLeaf("e1", KindElement, StringValue("220")))
	root.AppendChild(bgm)

	lin := NewNode("LIN", KindSegment)
	lin.AppendChild(NewLeaf("e1", KindElement, IntegerValue(1)))
	root.AppendChild(lin)

	lin2 := NewNode("LIN", KindSegment)
	lin2.AppendChild(NewLeaf("e1", KindElement, IntegerValue(2)))
	root.AppendChild(lin2)

	return root
}

func TestPathResolvesBackToSameNode(t *testing.T) {
	root := sampleTree()

	for _, target := range []*Node{root.Children[0], root.Children[1], root.Children[2], root.Children[2].Children[0]} {
		path, ok := Path(root, target)
		if !ok {
			t.Fatalf("Path did not find target %+v", target)
		}

		resolved, err := Resolve(root, path)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", path, err)
		}

		if len(resolved) != 1 || resolved[0] != target {
			t.Errorf("Resolve(%q) = %v, want exactly [target]", path, resolved)
		}
	}
}

func TestResolveBareNameMatchesAllRepeats(t *testing.T) {
	root := sampleTree()

	nodes, err := Resolve(root, "LIN")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if len(nodes) != 2 {
		t.Fatalf("want 2 LIN matches, got %d", len(nodes))
	}
}

func TestResolveIndexedStepSelectsOneRepeat(t *testing.T) {
	root := sampleTree()

	nodes, err := Resolve(root, "LIN[1]/e1")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if len(nodes) != 1 || nodes[0].Value.AsString() != "2" {
		t.Errorf("LIN[1]/e1 = %v, want the second LIN's e1 (value 2)", nodes)
	}
}

func TestNextPreOrderVisitsEveryNodeOnce(t *testing.T) {
	root := sampleTree()

	cursor := NewCursor(root)

	var visited []*Node
	for {
		n := cursor.NextPreOrder()
		if n == nil {
			break
		}
		visited = append(visited, n)
	}

	if len(visited) != 7 {
		t.Fatalf("want 7 nodes visited (root + 3 segments + 3 leaves), got %d", len(visited))
	}
	if visited[0] != root {
		t.Errorf("pre-order must visit root first")
	}
}

func TestCloneIsDeepAndIndependent(t *testing.T) {
	root := sampleTree()
	clone := root.Clone()

	if diff := cmp.Diff(root, clone, cmpopts.IgnoreFields(Node{}, "Position")); diff != "" {
		t.Errorf("clone differs from original (-original +clone):\n%s", diff)
	}

	clone.Children[0].Value.Str = "mutated"
	if root.Children[0].Value.Str == "mutated" {
		t.Error("mutating the clone's leaf affected the original: Clone is not deep")
	}
}

func TestDecimalString(t *testing.T) {
	cases := []struct {
		d    Decimal
		want string
	}{
		{Decimal{Unscaled: 950, Scale: 2}, "9.50"},
		{Decimal{Unscaled: -125, Scale: 2}, "-1.25"},
		{Decimal{Unscaled: 7, Scale: 0}, "7"},
	}

	for _, c := range cases {
		if got := c.d.String(); got != c.want {
			t.Errorf("Decimal%+v.String() = %q, want %q", c.d, got, c.want)
		}
	}
}
