package edifact

import (
	"testing"
)

func minimalOrders() []byte {
	return []byte("UNB+UNOA:3+SENDER+RECEIVER+060101:0900+1'" +
		"UNH+1+ORDERS:D:96A:UN'" +
		"BGM+220+ORD123'" +
		"UNT+3+1'" +
		"UNZ+1+1'")
}

func TestParseMinimalOrdersInterchange(t *testing.T) {
	docs, warnings, err := Parse("t", minimalOrders())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("want no warnings for a well-formed interchange, got %+v", warnings)
	}
	if len(docs) != 1 {
		t.Fatalf("want 1 document, got %d", len(docs))
	}

	doc := docs[0]
	if doc.Metadata.DocType != "ORDERS" {
		t.Errorf("want DocType=ORDERS, got %q", doc.Metadata.DocType)
	}
	if doc.Metadata.InterchangeRef != "1" {
		t.Errorf("want InterchangeRef=1, got %q", doc.Metadata.InterchangeRef)
	}

	bgm := doc.Root.FirstChild("BGM")
	if bgm == nil {
		t.Fatal("want a BGM segment node")
	}
}

func TestParseReportsTrailerRefMismatch(t *testing.T) {
	data := []byte("UNH+1+ORDERS:D:96A:UN'BGM+220'UNT+2+999'")

	_, warnings, err := Parse("t", data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	found := false
	for _, w := range warnings {
		if w.Code == WarnTrailerRefMismatch {
			found = true
		}
	}
	if !found {
		t.Errorf("want TRAILER_REF_MISMATCH warning, got %+v", warnings)
	}
}

func TestParsePartialMessageAtEOFWarns(t *testing.T) {
	data := []byte("UNH+1+ORDERS:D:96A:UN'BGM+220'")

	docs, warnings, err := Parse("t", data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("want the partial message still synthesized as a document, got %d", len(docs))
	}

	found := false
	for _, w := range warnings {
		if w.Code == WarnPartialMessageAtEOF {
			found = true
		}
	}
	if !found {
		t.Errorf("want PARTIAL_MESSAGE_AT_EOF warning, got %+v", warnings)
	}
}

func TestParseTruncatedTagAtEOFFails(t *testing.T) {
	// "BG" is 2 bytes: not clean EOF (EOF requires zero remaining bytes
	// after whitespace skip) and not a valid 3-byte tag either.
	_, _, err := Parse("t", []byte("UNH+1+ORDERS:D:96A:UN'BG"))
	if err == nil {
		t.Fatal("want a ParseError for a truncated segment tag at EOF")
	}

	if _, ok := err.(*ParseError); !ok {
		t.Errorf("want *ParseError, got %T", err)
	}
}

func TestParseReleaseCharacterEscaping(t *testing.T) {
	data := []byte("UNH+1+ORDERS:D:96A:UN'FTX++++abc?'def'UNT+3+1'")

	docs, _, err := Parse("t", data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	ftx := docs[0].Root.FirstChild("FTX")
	if ftx == nil {
		t.Fatal("want an FTX segment")
	}

	e4 := ftx.FirstChild("e4")
	if e4 == nil || e4.Value == nil || e4.Value.AsString() != "abc'def" {
		t.Errorf("want FTX.e4 = \"abc'def\", got %+v", e4)
	}
}

func TestParseNoMessagesInInterchangeWarns(t *testing.T) {
	data := []byte("UNB+UNOA:3+SENDER+RECEIVER+060101:0900+1'UNZ+0+1'")

	_, warnings, err := Parse("t", data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	found := false
	for _, w := range warnings {
		if w.Code == WarnNoMessagesInInterchange {
			found = true
		}
	}
	if !found {
		t.Errorf("want NO_MESSAGES_IN_INTERCHANGE warning, got %+v", warnings)
	}
}

func TestTrimTrailingEmptyElements(t *testing.T) {
	data := []byte("UNH+1+ORDERS:D:96A:UN'BGM+220++'UNT+3+1'")

	docs, _, err := Parse("t", data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	bgm := docs[0].Root.FirstChild("BGM")
	if len(bgm.Children) != 1 {
		t.Errorf("want trailing empty elements trimmed, got %d element children: %+v", len(bgm.Children), bgm.Children)
	}
}
