package source

import "testing"

func TestPositionAtCountsLinesAndColumns(t *testing.T) {
	f := NewFile("test.edi", []byte("abc\ndef\nghi"))

	cases := []struct {
		offset int
		want   Position
	}{
		{0, Position{Line: 1, Column: 1, Offset: 0}},
		{3, Position{Line: 1, Column: 4, Offset: 3}},
		{4, Position{Line: 2, Column: 1, Offset: 4}},
		{8, Position{Line: 3, Column: 1, Offset: 8}},
	}

	for _, c := range cases {
		got := f.PositionAt(c.offset)
		if got != c.want {
			t.Errorf("PositionAt(%d) = %+v, want %+v", c.offset, got, c.want)
		}
	}
}

func TestPositionString(t *testing.T) {
	p := Position{Line: 2, Column: 5}
	if p.String() != "2:5" {
		t.Errorf("String() = %q, want \"2:5\"", p.String())
	}
}

func TestSpanLength(t *testing.T) {
	s := Span{Start: 4, End: 10}
	if s.Length() != 6 {
		t.Errorf("Length() = %d, want 6", s.Length())
	}
}
