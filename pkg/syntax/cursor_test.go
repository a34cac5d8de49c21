package syntax

import "testing"

func TestNewCursorDetectsUNA(t *testing.T) {
	c := NewCursor("t", []byte("UNA:+.? 'BGM+220'"))

	if c.Separators != DefaultSeparators() {
		t.Errorf("want default separators after UNA restates them, got %+v", c.Separators)
	}

	tag, ok := c.ReadTag()
	if !ok || tag != "BGM" {
		t.Errorf("ReadTag after UNA = (%q, %v), want (\"BGM\", true)", tag, ok)
	}
}

func TestNewCursorWithoutUNAUsesDefaults(t *testing.T) {
	c := NewCursor("t", []byte("BGM+220'"))
	if c.Separators != DefaultSeparators() {
		t.Errorf("want default separators, got %+v", c.Separators)
	}
}

func TestReadUntilDelimiterHandlesReleaseEscape(t *testing.T) {
	// "abc?'def" with release '?' before the segment terminator '\'' means
	// the terminator is a literal data byte, not a delimiter.
	c := NewCursor("t", []byte("abc?'def'"))

	value, delim, ok, dangling := c.ReadUntilDelimiter(c.Separators.Segment)
	if dangling {
		t.Fatal("unexpected dangling release")
	}
	if !ok || delim != c.Separators.Segment {
		t.Fatalf("want terminated by segment delimiter, got delim=%q ok=%v", delim, ok)
	}
	if string(value) != "abc'def" {
		t.Errorf("value = %q, want \"abc'def\"", value)
	}
}

func TestReadUntilDelimiterDanglingRelease(t *testing.T) {
	c := NewCursor("t", []byte("abc?"))

	_, _, ok, dangling := c.ReadUntilDelimiter(c.Separators.Segment)
	if ok {
		t.Error("want ok=false for dangling release at EOF")
	}
	if !dangling {
		t.Error("want dangling=true")
	}
}

func TestReadTagFailsWithFewerThanThreeBytes(t *testing.T) {
	c := NewCursor("t", []byte("AB"))

	_, ok := c.ReadTag()
	if ok {
		t.Error("want ReadTag to fail with only 2 bytes remaining")
	}
}

func TestIsSeparator(t *testing.T) {
	seps := DefaultSeparators()

	for _, b := range []byte{':', '+', '.', '?', '\''} {
		if !seps.IsSeparator(b) {
			t.Errorf("IsSeparator(%q) = false, want true", b)
		}
	}

	if seps.IsSeparator('A') {
		t.Error("IsSeparator('A') = true, want false")
	}
}
