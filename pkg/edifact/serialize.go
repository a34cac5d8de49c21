package edifact

import (
	"strconv"

	"github.com/errfld/rsedi-sub001/pkg/ir"
	"github.com/errfld/rsedi-sub001/pkg/syntax"
)

// Serialize re-serializes a single document's segment tree back to wire
// bytes using the canonical separator set. Per spec.md §9, segments are
// canonicalised on re-serialization: whatever UNA override was present
// on the original input is not reproduced, since the IR never retains
// it. A UNA service string is only ever emitted by SerializeInterchange
// when the caller explicitly asks for non-default separators.
func Serialize(doc *ir.Document) []byte {
	return SerializeWith(doc, syntax.DefaultSeparators())
}

// SerializeWith re-serializes doc using the given separator set,
// escaping any payload byte that collides with one of the five
// separators using the release character.
func SerializeWith(doc *ir.Document, seps syntax.Separators) []byte {
	var out []byte

	if doc.Root == nil {
		return out
	}

	for _, seg := range doc.Root.Children {
		if seg.NodeKind != ir.KindSegment {
			continue
		}

		out = append(out, writeSegment(seg, seps)...)
	}

	return out
}

// SerializeInterchange wraps one or more documents in a synthetic
// UNB/UNZ envelope, reconstructing the interchange control reference
// from the first document's metadata. Sender/receiver/date-time are not
// retained on Document (they are envelope-scoped, not message-scoped,
// per spec.md §3), so placeholders are emitted; callers that need
// byte-exact envelopes must track those fields themselves, which is
// explicitly out of scope (spec.md §1 Non-goals: "preserving original
// byte layout on round-trip").
func SerializeInterchange(docs []*ir.Document, seps syntax.Separators) []byte {
	var out []byte

	controlRef := "1"
	if len(docs) > 0 {
		if ref := docs[0].Metadata.InterchangeRef; ref != "" {
			controlRef = ref
		}
	}

	if !seps.IsDefault() {
		out = append(out, writeUNA(seps)...)
	}

	out = append(out, writeRaw(seps, "UNB", []string{"UNOA:3", "SENDER", "RECEIVER", "000101:0000", controlRef})...)

	for _, doc := range docs {
		out = append(out, SerializeWith(doc, seps)...)
	}

	out = append(out, writeRaw(seps, "UNZ", []string{strconv.Itoa(len(docs)), controlRef})...)

	return out
}

func writeUNA(seps syntax.Separators) []byte {
	return []byte{'U', 'N', 'A', seps.Component, seps.Element, seps.Decimal, seps.Release, ' ', seps.Segment}
}

// writeSegment serializes a single Segment node, escaping separator
// collisions in every leaf value with the release character.
func writeSegment(seg *ir.Node, seps syntax.Separators) []byte {
	var out []byte

	out = append(out, []byte(seg.Name)...)

	for _, elem := range seg.Children {
		out = append(out, seps.Element)
		out = append(out, writeElement(elem, seps)...)
	}

	out = append(out, seps.Segment)

	return out
}

func writeElement(elem *ir.Node, seps syntax.Separators) []byte {
	if elem.Value != nil {
		return escapeValue(elem.Value.AsString(), seps)
	}

	var out []byte

	for i, comp := range elem.Children {
		if i > 0 {
			out = append(out, seps.Component)
		}

		if comp.Value != nil {
			out = append(out, escapeValue(comp.Value.AsString(), seps)...)
		}
	}

	return out
}

func escapeValue(v string, seps syntax.Separators) []byte {
	var out []byte

	for i := 0; i < len(v); i++ {
		b := v[i]
		if seps.IsSeparator(b) {
			out = append(out, seps.Release)
		}

		out = append(out, b)
	}

	return out
}

// writeRaw serializes a synthetic segment from plain string field
// values, used for the reconstructed UNB/UNZ wrapper.
func writeRaw(seps syntax.Separators, tag string, fields []string) []byte {
	var out []byte

	out = append(out, []byte(tag)...)

	for _, f := range fields {
		out = append(out, seps.Element)
		out = append(out, escapeValue(f, seps)...)
	}

	out = append(out, seps.Segment)

	return out
}
