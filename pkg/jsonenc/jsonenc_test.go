package jsonenc

import (
	"strings"
	"testing"
	"time"

	"github.com/errfld/rsedi-sub001/pkg/ir"
)

func TestEncodeOmitsValueKeyForNull(t *testing.T) {
	root := ir.NewNode("root", ir.KindRoot)
	seg := ir.NewNode("BGM", ir.KindSegment)
	seg.AppendChild(ir.NewLeaf("e1", ir.KindElement, ir.NullValue()))
	seg.AppendChild(ir.NewLeaf("e2", ir.KindElement, ir.StringValue("220")))
	root.AppendChild(seg)

	doc := ir.NewDocument(root)
	doc.Metadata.DocType = "ORDERS"

	out, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	s := string(out)
	if !strings.Contains(s, `"kind":"Null"`) {
		t.Errorf("want Null kind present, got %s", s)
	}
	if strings.Contains(s, `"kind":"Null","value"`) {
		t.Errorf("want no value key alongside Null, got %s", s)
	}
	if !strings.Contains(s, `"doc_type":"ORDERS"`) {
		t.Errorf("want doc_type in metadata, got %s", s)
	}
	if !strings.Contains(s, `"node_type":"Segment"`) {
		t.Errorf("want node kind encoded under the node_type key, got %s", s)
	}
}

func TestEncodeDecodeRoundTripsSchemaTypeAndCreatedAt(t *testing.T) {
	root := ir.NewNode("root", ir.KindRoot)
	bgm := ir.NewNode("BGM", ir.KindSegment)
	bgm.SchemaType = "document_header"
	root.AppendChild(bgm)

	doc := ir.NewDocument(root)
	doc.Metadata.CreatedAt = time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)

	data, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	s := string(data)
	if !strings.Contains(s, `"schema_type":"document_header"`) {
		t.Errorf("want schema_type on the node, got %s", s)
	}
	if !strings.Contains(s, `"created_at":"2026-07-31T12:00:00Z"`) {
		t.Errorf("want RFC3339 created_at in metadata, got %s", s)
	}

	back, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if back.Root.Children[0].SchemaType != "document_header" {
		t.Errorf("round trip lost schema_type: %+v", back.Root.Children[0])
	}
	if !back.Metadata.CreatedAt.Equal(doc.Metadata.CreatedAt) {
		t.Errorf("round trip lost created_at: got %v, want %v", back.Metadata.CreatedAt, doc.Metadata.CreatedAt)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	root := ir.NewNode("root", ir.KindRoot)
	root.AppendChild(ir.NewLeaf("BGM", ir.KindSegment, ir.StringValue("x")))

	doc := ir.NewDocument(root)

	data, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	back, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if back.Root.Children[0].Name != "BGM" {
		t.Errorf("round trip lost child name: %+v", back.Root)
	}
	if back.Root.Children[0].Value.AsString() != "x" {
		t.Errorf("round trip lost value: %+v", back.Root.Children[0].Value)
	}
}
