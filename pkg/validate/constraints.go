package validate

import (
	"fmt"
	"regexp"

	"github.com/errfld/rsedi-sub001/pkg/ir"
	"github.com/errfld/rsedi-sub001/pkg/schema"
)

// walkConstraints applies every schema constraint in declaration order
// (spec.md §4.5 step 5), resolving each constraint's path against the
// document using the same addressing grammar the mapping runtime and IR
// cursor use (pkg/ir.Resolve).
func walkConstraints(root *ir.Node, s *schema.Schema, cfg Config, result *Result) {
	for _, c := range s.Constraints {
		nodes, err := ir.Resolve(root, c.Path)
		if err != nil {
			continue // an unaddressable path is a schema authoring issue, not a document defect
		}

		for _, n := range nodes {
			applyConstraint(c, n, s, cfg, result)

			if !cfg.ContinueOnError && len(result.Errors) > 0 {
				return
			}
		}
	}
}

func applyConstraint(c schema.Constraint, n *ir.Node, s *schema.Schema, cfg Config, result *Result) {
	switch c.Variant {
	case schema.ConstraintRequired:
		applyRequired(c, n, result)
	case schema.ConstraintLength:
		applyLength(c, n, cfg, result)
	case schema.ConstraintPattern:
		applyPattern(c, n, result)
	case schema.ConstraintCodeList:
		applyCodeList(c, n, s, result)
	}
}

func applyRequired(c schema.Constraint, n *ir.Node, result *Result) {
	if n.Value == nil || n.Value.IsNull() {
		result.add(Diagnostic{
			Severity: SeverityError,
			Code:     CodeRequiredViolation,
			Message:  fmt.Sprintf("%s is required", c.Path),
			Path:     c.Path,
		})
	}
}

func applyLength(c schema.Constraint, n *ir.Node, cfg Config, result *Result) {
	if n.Value == nil || n.Value.IsNull() {
		return
	}

	length := charLength(n.Value.AsString())
	if length >= c.MinLength && (c.MaxLength <= 0 || length <= c.MaxLength) {
		return
	}

	sev := SeverityWarning
	if cfg.Strictness == Strict {
		sev = SeverityError
	}

	result.add(Diagnostic{
		Severity: sev,
		Code:     CodeLengthViolation,
		Message:  fmt.Sprintf("%s has length %d, expected [%d,%d]", c.Path, length, c.MinLength, c.MaxLength),
		Path:     c.Path,
		Expected: fmt.Sprintf("[%d,%d]", c.MinLength, c.MaxLength),
	})
}

func applyPattern(c schema.Constraint, n *ir.Node, result *Result) {
	if n.Value == nil || n.Value.IsNull() {
		return
	}

	re, err := regexp.Compile("^(?:" + c.Regex + ")$")
	if err != nil {
		result.add(Diagnostic{
			Severity: SeverityWarning,
			Code:     CodeInvalidPattern,
			Message:  fmt.Sprintf("pattern %q for %s does not compile: %v", c.Regex, c.Path, err),
			Path:     c.Path,
		})

		return
	}

	value := n.Value.AsString()
	if !re.MatchString(value) {
		result.add(Diagnostic{
			Severity: SeverityError,
			Code:     CodePatternViolation,
			Message:  fmt.Sprintf("%s does not match pattern %q", c.Path, c.Regex),
			Path:     c.Path,
			Expected: c.Regex,
			Actual:   value,
		})
	}
}

func applyCodeList(c schema.Constraint, n *ir.Node, s *schema.Schema, result *Result) {
	if n.Value == nil || n.Value.IsNull() {
		return
	}

	list, ok := s.CodeLists[c.ListID]
	if !ok {
		return // unknown list names are permissive
	}

	value := n.Value.AsString()
	if !list.Contains(value) {
		msg := fmt.Sprintf("%s value %q is not in code list %q", c.Path, value, c.ListID)
		if list.Description != "" {
			msg = fmt.Sprintf("%s (%s)", msg, list.Description)
		}

		result.add(Diagnostic{
			Severity: SeverityError,
			Code:     CodeCodeListViolation,
			Message:  msg,
			Path:     c.Path,
			Expected: c.ListID,
			Actual:   value,
		})
	}
}
