// Package edifact implements the envelope/segment parser (spec
// component C2): it consumes the syntax layer (pkg/syntax) and produces
// a slice of ir.Documents plus a slice of recoverable parse warnings.
// Envelope mismatches never abort parsing; only a handful of genuinely
// malformed inputs (e.g. a truncated segment tag) produce a ParseError.
package edifact

import (
	"fmt"

	"github.com/errfld/rsedi-sub001/pkg/source"
)

// ParseError reports malformed wire syntax the syntax layer could not
// make sense of at all, per spec.md §7. It always carries a position
// inside the input.
type ParseError struct {
	Position source.Position
	Message  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: parse error: %s", e.Position, e.Message)
}

// Warning codes, named exactly as spec.md refers to them.
const (
	WarnPartialMessageAtEOF     = "PARTIAL_MESSAGE_AT_EOF"
	WarnTrailerCountMismatch    = "TRAILER_COUNT_MISMATCH"
	WarnTrailerRefMismatch      = "TRAILER_REF_MISMATCH"
	WarnDanglingRelease         = "DANGLING_RELEASE_CHARACTER"
	WarnSegmentOutsideEnvelope  = "SEGMENT_OUTSIDE_ENVELOPE"
	WarnNoMessagesInInterchange = "NO_MESSAGES_IN_INTERCHANGE"
)

// Warning is a recoverable parse defect: the parser accepted the input
// but something about the envelope or trailer bookkeeping didn't line
// up, per spec.md §4.2/§7 ("envelope mismatch... emitted as warning, not
// error").
type Warning struct {
	Code     string
	Message  string
	Position source.Position
}

func (w Warning) String() string {
	return fmt.Sprintf("%s %s: %s", w.Position, w.Code, w.Message)
}
