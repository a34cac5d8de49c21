package edifact

import (
	"strings"
	"testing"

	"github.com/errfld/rsedi-sub001/pkg/syntax"
)

func TestSerializeRoundTripsParsedMessage(t *testing.T) {
	docs, _, err := Parse("t", minimalOrders())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	// Serialize emits the message alone; the reparse goes through a
	// UNB/UNZ wrapper so the parser sees the message inside an interchange.
	out := SerializeInterchange(docs, syntax.DefaultSeparators())

	reparsed, warnings, err := Parse("t2", out)
	if err != nil {
		t.Fatalf("re-Parse: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("want no warnings reparsing a canonical serialization, got %+v", warnings)
	}
	if len(reparsed) != 1 {
		t.Fatalf("want 1 document, got %d", len(reparsed))
	}

	bgm := reparsed[0].Root.FirstChild("BGM")
	if bgm == nil || bgm.FirstChild("e1").Value.AsString() != "220" {
		t.Errorf("want BGM.e1=220 preserved across round trip, got %+v", bgm)
	}
}

func TestSerializeEscapesSeparatorCollisions(t *testing.T) {
	data := []byte("UNH+1+ORDERS:D:96A:UN'FTX++++abc?'def'UNT+3+1'")

	docs, _, err := Parse("t", data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	out := Serialize(docs[0])
	if !strings.Contains(string(out), "abc?'def") {
		t.Errorf("want the embedded segment terminator escaped with the release character, got %q", out)
	}

	reparsed, _, err := Parse("t2", out)
	if err != nil {
		t.Fatalf("re-Parse: %v", err)
	}

	ftx := reparsed[0].Root.FirstChild("FTX")
	if ftx == nil || ftx.FirstChild("e4").Value.AsString() != "abc'def" {
		t.Errorf("want the escaped value to decode back to \"abc'def\", got %+v", ftx)
	}
}

func TestSerializeInterchangeWrapsUNBUNZ(t *testing.T) {
	docs, _, err := Parse("t", minimalOrders())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	out := SerializeInterchange(docs, syntax.DefaultSeparators())
	s := string(out)

	if !strings.HasPrefix(s, "UNB+") {
		t.Errorf("want interchange to start with a synthetic UNB, got %q", s)
	}
	if !strings.Contains(s, "UNZ+1+") {
		t.Errorf("want a UNZ trailer counting 1 message, got %q", s)
	}
}

func TestSerializeInterchangeEmitsUNAForNonDefaultSeparators(t *testing.T) {
	docs, _, err := Parse("t", minimalOrders())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	seps := syntax.DefaultSeparators()
	seps.Segment = '~'

	out := SerializeInterchange(docs, seps)
	if !strings.HasPrefix(string(out), "UNA") {
		t.Errorf("want a leading UNA service string for non-default separators, got %q", out)
	}
}
