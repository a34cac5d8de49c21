package validate

import (
	"fmt"
	"testing"

	"github.com/errfld/rsedi-sub001/pkg/ir"
	"github.com/errfld/rsedi-sub001/pkg/schema"
)

func ordersSchema() *schema.Schema {
	s := schema.NewSchema("orders", "1.0")
	s.Segments = []schema.SegmentDefinition{
		{
			Tag:         "BGM",
			IsMandatory: true,
			Elements: []schema.ElementDefinition{
				{ID: "1", Name: "doc_name_code", DataType: "n", MinLength: 1, MaxLength: 3, IsMandatory: true},
			},
		},
	}
	return s
}

func segment(tag string, values ...string) *ir.Node {
	n := ir.NewNode(tag, ir.KindSegment)
	for i, v := range values {
		n.AppendChild(ir.NewLeaf(fmt.Sprintf("e%d", i+1), ir.KindElement, ir.StringValue(v)))
	}
	return n
}

func TestValidateMissingMandatorySegment(t *testing.T) {
	root := ir.NewNode("root", ir.KindRoot)

	result := Validate(ir.NewDocument(root), ordersSchema(), Config{Strictness: Standard})

	if result.IsValid {
		t.Fatal("want invalid: mandatory BGM is missing")
	}
	if len(result.Errors) != 1 || result.Errors[0].Code != CodeMissingMandatorySegment {
		t.Errorf("want 1 MISSING_MANDATORY_SEGMENT error, got %+v", result.Errors)
	}
}

func TestValidateExtraElementIsWarningNotError(t *testing.T) {
	root := ir.NewNode("root", ir.KindRoot)
	root.AppendChild(segment("BGM", "220", "unexpected"))

	result := Validate(ir.NewDocument(root), ordersSchema(), Config{Strictness: Standard})

	if !result.IsValid {
		t.Fatalf("want valid under Standard strictness despite the extra element, got errors=%+v", result.Errors)
	}
	if len(result.Warnings) != 1 || result.Warnings[0].Code != CodeExtraElement {
		t.Errorf("want 1 EXTRA_ELEMENT warning, got %+v", result.Warnings)
	}
}

func TestValidateCleanDocumentIsValid(t *testing.T) {
	root := ir.NewNode("root", ir.KindRoot)
	root.AppendChild(segment("BGM", "220"))

	result := Validate(ir.NewDocument(root), ordersSchema(), Config{Strictness: Standard})

	if !result.IsValid {
		t.Errorf("want valid, got errors=%+v warnings=%+v", result.Errors, result.Warnings)
	}
}

func TestStrictStrictnessFailsOnWarnings(t *testing.T) {
	root := ir.NewNode("root", ir.KindRoot)
	root.AppendChild(segment("BGM", "220", "unexpected"))

	result := Validate(ir.NewDocument(root), ordersSchema(), Config{Strictness: Strict})

	if result.IsValid {
		t.Error("want Strict strictness to fail validity on a warning-level finding")
	}
}

func TestValidateTypeMismatch(t *testing.T) {
	root := ir.NewNode("root", ir.KindRoot)
	root.AppendChild(segment("BGM", "not-numeric"))

	result := Validate(ir.NewDocument(root), ordersSchema(), Config{Strictness: Standard})

	if result.IsValid {
		t.Fatal("want invalid: BGM.e1 is declared numeric")
	}

	found := false
	for _, e := range result.Errors {
		if e.Code == CodeTypeMismatch {
			found = true
		}
	}
	if !found {
		t.Errorf("want a TYPE_MISMATCH error, got %+v", result.Errors)
	}
}

func TestWalkConstraintsAppliesCodeList(t *testing.T) {
	s := ordersSchema()
	s.CodeLists["doc_codes"] = schema.NewCodeList("doc_codes", []string{"220"}, true, "")
	s.Constraints = append(s.Constraints, schema.CodeListConstraint("BGM/e1", "doc_codes"))

	root := ir.NewNode("root", ir.KindRoot)
	root.AppendChild(segment("BGM", "999"))

	result := Validate(ir.NewDocument(root), s, Config{Strictness: Standard})

	if result.IsValid {
		t.Fatal("want invalid: 999 is not in doc_codes")
	}

	found := false
	for _, e := range result.Errors {
		if e.Code == CodeCodeListViolation {
			found = true
		}
	}
	if !found {
		t.Errorf("want a CODE_LIST_VIOLATION error, got %+v", result.Errors)
	}
}
