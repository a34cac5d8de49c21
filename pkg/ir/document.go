package ir

import "time"

// Metadata carries the document-level facts that don't belong on any
// single node: identity, EDIFACT message typing, and provenance.
type Metadata struct {
	SourceID       string
	DocType        string
	Version        string
	PartnerID      string
	InterchangeRef string
	MessageRefs    []string
	CreatedAt      time.Time
	SchemaRef      string
}

// Document owns a single root Node plus its Metadata. It is the unit of
// work passed between the parser, validator, and mapping runtime: created
// by the parser or by the mapping runtime's target builder, mutated only
// during that builder phase, and never touched again once handed to a
// consumer.
type Document struct {
	Root     *Node
	Metadata Metadata
}

// NewDocument constructs a Document with the given root node.
func NewDocument(root *Node) *Document {
	return &Document{Root: root}
}

// Clone produces a deep, independent copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}

	md := d.Metadata
	md.MessageRefs = append([]string(nil), d.Metadata.MessageRefs...)

	return &Document{
		Root:     d.Root.Clone(),
		Metadata: md,
	}
}

// NormalizeRoot renames a Message-kind root to Root, aligning a
// single-message document with a schema's root-level segment list, per
// the validator's normalisation step (spec.md §4.5 step 1).
func (d *Document) NormalizeRoot() {
	if d.Root != nil && d.Root.NodeKind == KindMessage {
		d.Root.NodeKind = KindRoot
	}
}
