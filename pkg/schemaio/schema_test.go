package schemaio

import "testing"

const sampleSchemaYAML = `
name: orders-base
version: "1.0"
segments:
  - tag: BGM
    mandatory: true
    elements:
      - id: "1001"
        name: document_name_code
        data_type: an
        min_length: 1
        max_length: 3
        mandatory: true
code_lists:
  - name: document_name_codes
    codes: ["220", "221"]
    case_sensitive: false
constraints:
  - type: required
    path: BGM
`

func TestLoadSchemaRoundTrip(t *testing.T) {
	s, err := LoadSchema([]byte(sampleSchemaYAML))
	if err != nil {
		t.Fatalf("LoadSchema: %v", err)
	}

	if s.Name != "orders-base" {
		t.Errorf("want name orders-base, got %q", s.Name)
	}

	seg, ok := s.SegmentByTag("BGM")
	if !ok {
		t.Fatal("want BGM segment")
	}
	if !seg.IsMandatory {
		t.Error("want BGM mandatory")
	}
	if len(seg.Elements) != 1 || seg.Elements[0].ID != "1001" {
		t.Errorf("unexpected elements: %+v", seg.Elements)
	}

	cl, ok := s.CodeLists["document_name_codes"]
	if !ok {
		t.Fatal("want document_name_codes code list")
	}
	if !cl.Contains("220") || cl.Contains("999") {
		t.Error("code list membership wrong")
	}

	out, err := DumpSchema(s)
	if err != nil {
		t.Fatalf("DumpSchema: %v", err)
	}

	reloaded, err := LoadSchema(out)
	if err != nil {
		t.Fatalf("reload dumped schema: %v", err)
	}

	if reloaded.Name != s.Name || len(reloaded.Segments) != len(s.Segments) {
		t.Errorf("round trip mismatch: %+v vs %+v", reloaded, s)
	}
}
