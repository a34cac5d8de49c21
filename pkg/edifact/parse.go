package edifact

import (
	"strconv"

	"github.com/errfld/rsedi-sub001/pkg/ir"
	"github.com/errfld/rsedi-sub001/pkg/source"
	"github.com/errfld/rsedi-sub001/pkg/syntax"
)

type parserState uint8

const (
	stateStart parserState = iota
	stateInInterchange
	stateInMessage
)

// interchangeFrame tracks the bookkeeping needed to validate a UNZ
// trailer against its UNB header.
type interchangeFrame struct {
	controlRef   string
	messageCount int
}

// messageFrame tracks the bookkeeping needed to validate a UNT trailer
// against its UNH header.
type messageFrame struct {
	node         *ir.Node
	messageRef   string
	segmentCount int // includes UNH itself, counted as each segment is appended
}

// Parse runs the full C1+C2 pipeline over data: it tokenises with
// pkg/syntax and drives the envelope/segment state machine from
// spec.md §4.2, producing zero or more documents (one per UNH..UNT
// message) plus any recoverable warnings. Parse never panics; the only
// error it returns is a *ParseError for wire syntax malformed beyond
// recovery (e.g. a truncated segment tag).
func Parse(name string, data []byte) ([]*ir.Document, []Warning, error) {
	cursor := syntax.NewCursor(name, data)

	var (
		documents []*ir.Document
		warnings  []Warning
		state     = stateStart
		ic        *interchangeFrame
		msg       *messageFrame
	)

	for {
		seg, ok, segWarnings, err := readSegment(cursor)
		warnings = append(warnings, segWarnings...)

		if err != nil {
			return documents, warnings, err
		}

		if !ok {
			break
		}

		segNode := buildSegmentNode(seg)

		switch seg.tag {
		case "UNA":
			// Already consumed by the syntax layer before any segment
			// read began; a literal "UNA" tag mid-stream is nonsensical
			// but accepted as an ordinary (likely unknown) segment.
			warnings = append(warnings, handleDefaultSegment(state, ic, msg, segNode, seg)...)

		case "UNB":
			ic = &interchangeFrame{
				controlRef: componentString(segNode, 5, 1),
			}
			state = stateInInterchange

		case "UNZ":
			if ic == nil {
				warnings = append(warnings, Warning{Code: WarnSegmentOutsideEnvelope, Message: "UNZ without a preceding UNB", Position: seg.pos})
				continue
			}

			expectCount := elementString(segNode, 1)
			expectRef := elementString(segNode, 2)

			if got, err := strconv.Atoi(expectCount); err != nil || got != ic.messageCount {
				warnings = append(warnings, Warning{
					Code:     WarnTrailerCountMismatch,
					Message:  "UNZ message count does not match number of messages parsed",
					Position: seg.pos,
				})
			}

			if expectRef != ic.controlRef {
				warnings = append(warnings, Warning{
					Code:     WarnTrailerRefMismatch,
					Message:  "UNZ control reference does not match UNB control reference",
					Position: seg.pos,
				})
			}

			if ic.messageCount == 0 {
				warnings = append(warnings, Warning{
					Code:     WarnNoMessagesInInterchange,
					Message:  "interchange contains no messages",
					Position: seg.pos,
				})
			}

			state = stateStart
			ic = nil

		case "UNH":
			if ic == nil {
				// A message outside any interchange: still processed,
				// matching the "unknown segment tags are accepted"
				// posture, but flagged.
				warnings = append(warnings, Warning{Code: WarnSegmentOutsideEnvelope, Message: "UNH without a preceding UNB", Position: seg.pos})
			}

			msg = &messageFrame{
				node:       ir.NewNode("message", ir.KindMessage),
				messageRef: elementString(segNode, 1),
			}
			pos := seg.pos
			msg.node.Position = &pos
			msg.node.AppendChild(segNode)
			msg.segmentCount++
			msg.node.SetAttribute("message_type", componentString(segNode, 2, 1))
			msg.node.SetAttribute("version", componentString(segNode, 2, 2))
			msg.node.SetAttribute("release", componentString(segNode, 2, 3))
			msg.node.SetAttribute("agency", componentString(segNode, 2, 4))
			state = stateInMessage

		case "UNT":
			if msg == nil {
				warnings = append(warnings, Warning{Code: WarnSegmentOutsideEnvelope, Message: "UNT without a preceding UNH", Position: seg.pos})
				continue
			}

			msg.node.AppendChild(segNode)
			msg.segmentCount++

			expectCount := elementString(segNode, 1)
			expectRef := elementString(segNode, 2)

			if got, err := strconv.Atoi(expectCount); err != nil || got != msg.segmentCount {
				warnings = append(warnings, Warning{
					Code:     WarnTrailerCountMismatch,
					Message:  "UNT segment count does not match number of segments in message",
					Position: seg.pos,
				})
			}

			if expectRef != msg.messageRef {
				warnings = append(warnings, Warning{
					Code:     WarnTrailerRefMismatch,
					Message:  "UNT message reference does not match UNH message reference",
					Position: seg.pos,
				})
			}

			documents = append(documents, finishMessage(msg, ic))

			if ic != nil {
				ic.messageCount++
			}

			msg = nil
			state = stateInInterchange

		default:
			warnings = append(warnings, handleDefaultSegment(state, ic, msg, segNode, seg)...)
		}
	}

	if msg != nil {
		// EOF inside a message: warn and synthesize the implicit UNT.
		warnings = append(warnings, Warning{
			Code:     WarnPartialMessageAtEOF,
			Message:  "message reached end of input without a UNT trailer",
			Position: partialEOFPosition(cursor),
		})

		documents = append(documents, finishMessage(msg, ic))

		if ic != nil {
			ic.messageCount++
		}
	}

	return documents, warnings, nil
}

// partialEOFPosition reports the position for the synthetic PARTIAL_MESSAGE_AT_EOF
// warning: the line immediately after the last segment, column 1, per
// spec.md §8.
func partialEOFPosition(c *syntax.Cursor) source.Position {
	p := c.Position()
	return source.Position{Line: p.Line, Column: 1, Offset: p.Offset}
}

func handleDefaultSegment(state parserState, ic *interchangeFrame, msg *messageFrame, segNode *ir.Node, seg rawSegment) []Warning {
	switch state {
	case stateInMessage:
		msg.node.AppendChild(segNode)
		msg.segmentCount++
		return nil
	case stateInInterchange, stateStart:
		return []Warning{{
			Code:     WarnSegmentOutsideEnvelope,
			Message:  "segment " + seg.tag + " appears outside any message",
			Position: seg.pos,
		}}
	default:
		return nil
	}
}

func finishMessage(msg *messageFrame, ic *interchangeFrame) *ir.Document {
	doc := ir.NewDocument(msg.node)
	doc.Metadata.MessageRefs = []string{msg.messageRef}

	if typ, ok := msg.node.GetAttribute("message_type"); ok {
		doc.Metadata.DocType = typ
	}

	if v, ok := msg.node.GetAttribute("version"); ok {
		doc.Metadata.Version = v
	}

	if ic != nil {
		doc.Metadata.InterchangeRef = ic.controlRef
	}

	return doc
}
