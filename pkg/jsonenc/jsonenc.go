// Package jsonenc implements the canonical JSON projection of an IR
// document named in spec.md §6. It is deliberately separate from
// pkg/ir: the IR tree itself carries no encoding concerns, and the wire
// shape here is free to diverge from Node's in-memory layout (e.g.
// encoding a Null value as {"kind":"Null"} with no "value" key rather
// than {"kind":"Null","value":""}).
package jsonenc

import (
	"time"

	"github.com/segmentio/encoding/json"

	"github.com/errfld/rsedi-sub001/pkg/ir"
)

// documentJSON is the wire shape of an ir.Document.
type documentJSON struct {
	Metadata metadataJSON `json:"metadata"`
	Root     *nodeJSON    `json:"root"`
}

type metadataJSON struct {
	SourceID       string   `json:"source_id,omitempty"`
	DocType        string   `json:"doc_type,omitempty"`
	Version        string   `json:"version,omitempty"`
	PartnerID      string   `json:"partner_id,omitempty"`
	InterchangeRef string   `json:"interchange_ref,omitempty"`
	MessageRefs    []string `json:"message_refs,omitempty"`
	CreatedAt      string   `json:"created_at,omitempty"`
	SchemaRef      string   `json:"schema_ref,omitempty"`
}

// nodeJSON is the wire shape of an ir.Node, matching spec.md §6's
// documented projection: {name, node_type, value?, attributes,
// schema_type?, children}.
type nodeJSON struct {
	Name       string            `json:"name"`
	NodeType   string            `json:"node_type"`
	Value      *valueJSON        `json:"value,omitempty"`
	Attributes map[string]string `json:"attributes"`
	SchemaType string            `json:"schema_type,omitempty"`
	Children   []*nodeJSON       `json:"children"`
}

type valueJSON struct {
	Kind  string `json:"kind"`
	Value string `json:"value,omitempty"`
}

// Encode renders doc to its canonical JSON projection.
func Encode(doc *ir.Document) ([]byte, error) {
	return json.Marshal(toDocumentJSON(doc))
}

// EncodeIndent renders doc to indented canonical JSON, for CLI output.
func EncodeIndent(doc *ir.Document) ([]byte, error) {
	return json.MarshalIndent(toDocumentJSON(doc), "", "  ")
}

func toDocumentJSON(doc *ir.Document) documentJSON {
	var createdAt string
	if !doc.Metadata.CreatedAt.IsZero() {
		createdAt = doc.Metadata.CreatedAt.UTC().Format(time.RFC3339)
	}

	return documentJSON{
		Metadata: metadataJSON{
			SourceID:       doc.Metadata.SourceID,
			DocType:        doc.Metadata.DocType,
			Version:        doc.Metadata.Version,
			PartnerID:      doc.Metadata.PartnerID,
			InterchangeRef: doc.Metadata.InterchangeRef,
			MessageRefs:    doc.Metadata.MessageRefs,
			CreatedAt:      createdAt,
			SchemaRef:      doc.Metadata.SchemaRef,
		},
		Root: toNodeJSON(doc.Root),
	}
}

func toNodeJSON(n *ir.Node) *nodeJSON {
	if n == nil {
		return nil
	}

	out := &nodeJSON{
		Name:       n.Name,
		NodeType:   n.NodeKind.String(),
		Attributes: n.Attributes,
		SchemaType: n.SchemaType,
		Children:   []*nodeJSON{},
	}

	if out.Attributes == nil {
		out.Attributes = map[string]string{}
	}

	if n.Value != nil {
		out.Value = toValueJSON(*n.Value)
	}

	for _, c := range n.Children {
		out.Children = append(out.Children, toNodeJSON(c))
	}

	return out
}

func toValueJSON(v ir.Value) *valueJSON {
	if v.Kind == ir.KindNull {
		return &valueJSON{Kind: "Null"}
	}

	return &valueJSON{Kind: v.Kind.String(), Value: v.AsString()}
}

// Decode parses the canonical JSON projection back into an ir.Document.
// Every non-null value (Integer, Decimal, Date, Time, DateTime, Binary
// as well as String) is decoded as a String ir.Value carrying the
// already-rendered AsString() text; the stated kind is not restored, so
// re-encoding a decoded document reports those values with kind
// "String".
func Decode(data []byte) (*ir.Document, error) {
	var doc documentJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	var createdAt time.Time
	if doc.Metadata.CreatedAt != "" {
		// Best-effort: a malformed timestamp decodes as the zero time
		// rather than failing the whole document decode.
		if t, err := time.Parse(time.RFC3339, doc.Metadata.CreatedAt); err == nil {
			createdAt = t
		}
	}

	result := ir.NewDocument(fromNodeJSON(doc.Root))
	result.Metadata = ir.Metadata{
		SourceID:       doc.Metadata.SourceID,
		DocType:        doc.Metadata.DocType,
		Version:        doc.Metadata.Version,
		PartnerID:      doc.Metadata.PartnerID,
		InterchangeRef: doc.Metadata.InterchangeRef,
		MessageRefs:    doc.Metadata.MessageRefs,
		CreatedAt:      createdAt,
		SchemaRef:      doc.Metadata.SchemaRef,
	}

	return result, nil
}

func fromNodeJSON(n *nodeJSON) *ir.Node {
	if n == nil {
		return nil
	}

	out := &ir.Node{
		Name:       n.Name,
		NodeKind:   kindFromString(n.NodeType),
		Attributes: n.Attributes,
		SchemaType: n.SchemaType,
	}

	if n.Value != nil {
		v := fromValueJSON(*n.Value)
		out.Value = &v
	}

	for _, c := range n.Children {
		out.Children = append(out.Children, fromNodeJSON(c))
	}

	return out
}

func fromValueJSON(v valueJSON) ir.Value {
	if v.Kind == "Null" {
		return ir.NullValue()
	}

	// Every non-null kind is reconstructed as a String carrying the same
	// AsString() text: Decode is used for inspection/re-encoding, not as
	// an input to the validator (which type-checks the live Value.Kind
	// directly against a schema's declared data_type on freshly parsed
	// documents, not on round-tripped JSON).
	return ir.StringValue(v.Value)
}

func kindFromString(s string) ir.Kind {
	switch s {
	case "Interchange":
		return ir.KindInterchange
	case "Message":
		return ir.KindMessage
	case "SegmentGroup":
		return ir.KindSegmentGroup
	case "Segment":
		return ir.KindSegment
	case "Element":
		return ir.KindElement
	case "Component":
		return ir.KindComponent
	case "Field":
		return ir.KindField
	case "Record":
		return ir.KindRecord
	default:
		return ir.KindRoot
	}
}
