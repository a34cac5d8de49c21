package mapping

import (
	"strconv"
	"strings"
)

// ParseNumber parses a mapping-runtime numeric literal or field value: an
// optional leading sign, digits, and an optional decimal point, per
// spec.md §4.5 ("arithmetic transforms parse both operands as decimal
// numbers"). It is the single shared implementation used by both the
// arithmetic transforms and the LessThan/GreaterThan predicates, so the
// two copies the source system carried (edi-mapping and edi-pipeline)
// collapse to one.
func ParseNumber(s string) (float64, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, &InvalidNumberError{Input: s}
	}

	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, &InvalidNumberError{Input: s}
	}

	return v, nil
}

// FormatNumber renders a float64 back to its shortest decimal
// representation, trimming a trailing ".0" introduced by formatting an
// integral value so that "3 + 4" yields "7" rather than "7.0".
func FormatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	return s
}
