package validate

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// checkDataType reports whether value matches the EDIFACT data type
// code: "n" digits and decimal points with an optional leading minus,
// "a" ASCII letters and spaces, "an" any
// alphanumeric content (never rejected), "d" an ISO-8601 calendar date.
// Unknown type codes are treated permissively, matching the validator's
// general stance that schema authoring mistakes should not crash
// validation of unrelated documents.
func checkDataType(dataType, value string) (ok bool, expected string) {
	switch dataType {
	case "n":
		return isNumeric(value), "numeric (n)"
	case "a":
		return isAlphabetic(value), "alphabetic (a)"
	case "an":
		return true, ""
	case "d":
		return isISODate(value), "ISO 8601 date (d)"
	default:
		return true, ""
	}
}

func isNumeric(v string) bool {
	if v == "" {
		return false
	}

	for i, r := range v {
		if r == '-' && i == 0 {
			continue
		}

		if (r < '0' || r > '9') && r != '.' {
			return false
		}
	}

	return true
}

func isAlphabetic(v string) bool {
	if v == "" {
		return false
	}

	for _, r := range v {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || r == ' ') {
			return false
		}
	}

	return true
}

func isISODate(v string) bool {
	formats := []string{"2006-01-02", "20060102"}
	for _, f := range formats {
		if _, err := time.Parse(f, v); err == nil {
			return true
		}
	}

	return false
}

// charLength returns the UTF-8 character count of v, the unit Length
// constraints are specified in (spec.md §4.5: "UTF-8 character count
// within range").
func charLength(v string) int {
	return utf8.RuneCountInString(v)
}

func addrSegment(tag string, index int) string {
	return fmt.Sprintf("/%s[%d]", tag, index)
}

func addrElement(tag string, segIndex, elemIndex int) string {
	return fmt.Sprintf("%s/e%d", addrSegment(tag, segIndex), elemIndex)
}

func addrComponent(tag string, segIndex, elemIndex, compIndex int) string {
	return fmt.Sprintf("%s.c%d", addrElement(tag, segIndex, elemIndex), compIndex)
}

// joinPath joins path parts with "/", without the segment/element syntax
// above. Nothing in the module calls it.
func joinPath(parts ...string) string {
	return strings.Join(parts, "/")
}
