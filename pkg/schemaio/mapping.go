package schemaio

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/errfld/rsedi-sub001/pkg/mapping"
)

type programDoc struct {
	TargetType string    `yaml:"target_type"`
	Rules      []ruleDoc `yaml:"rules"`
}

type ruleDoc struct {
	Type      string         `yaml:"type"`
	Source    string         `yaml:"source,omitempty"`
	Target    string         `yaml:"target,omitempty"`
	Table     string         `yaml:"table,omitempty"`
	Transform *transformDoc  `yaml:"transform,omitempty"`
	Predicate *predicateDoc  `yaml:"predicate,omitempty"`
	Rules     []ruleDoc      `yaml:"rules,omitempty"`
	Else      []ruleDoc      `yaml:"else,omitempty"`
}

type transformDoc struct {
	Type      string          `yaml:"type"`
	InFormat  string          `yaml:"in_format,omitempty"`
	OutFormat string          `yaml:"out_format,omitempty"`
	Side      string          `yaml:"side,omitempty"`
	Width     int             `yaml:"width,omitempty"`
	Fill      string          `yaml:"fill,omitempty"`
	Case      string          `yaml:"case,omitempty"`
	Operand   string          `yaml:"operand,omitempty"`
	Steps     []transformDoc  `yaml:"steps,omitempty"`
	Predicate *predicateDoc   `yaml:"predicate,omitempty"`
	Then      *transformDoc   `yaml:"then,omitempty"`
	Else      *transformDoc   `yaml:"else,omitempty"`
	Table     string          `yaml:"table,omitempty"`
	Default   string          `yaml:"default,omitempty"`
}

type predicateDoc struct {
	Type     string         `yaml:"type"`
	Path     string         `yaml:"path,omitempty"`
	Value    string         `yaml:"value,omitempty"`
	Operands []predicateDoc `yaml:"operands,omitempty"`
	Operand  *predicateDoc  `yaml:"operand,omitempty"`
}

// LoadMapping decodes a single YAML mapping-program document into a
// *mapping.Program.
func LoadMapping(data []byte) (*mapping.Program, error) {
	var doc programDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schemaio: decoding mapping program: %w", err)
	}

	rules, err := toRules(doc.Rules)
	if err != nil {
		return nil, err
	}

	return &mapping.Program{TargetType: doc.TargetType, Rules: rules}, nil
}

func toRules(docs []ruleDoc) ([]mapping.Rule, error) {
	rules := make([]mapping.Rule, 0, len(docs))

	for _, rd := range docs {
		r, err := toRule(rd)
		if err != nil {
			return nil, err
		}

		rules = append(rules, r)
	}

	return rules, nil
}

func toRule(rd ruleDoc) (mapping.Rule, error) {
	switch rd.Type {
	case "field":
		var t *mapping.Transform
		if rd.Transform != nil {
			conv, err := toTransform(*rd.Transform)
			if err != nil {
				return mapping.Rule{}, err
			}
			t = &conv
		}

		return mapping.Field(rd.Source, rd.Target, t), nil

	case "foreach":
		inner, err := toRules(rd.Rules)
		if err != nil {
			return mapping.Rule{}, err
		}

		return mapping.Foreach(rd.Source, rd.Target, inner), nil

	case "condition":
		pred, err := toPredicate(*rd.Predicate)
		if err != nil {
			return mapping.Rule{}, err
		}

		then, err := toRules(rd.Rules)
		if err != nil {
			return mapping.Rule{}, err
		}

		els, err := toRules(rd.Else)
		if err != nil {
			return mapping.Rule{}, err
		}

		return mapping.Condition(&pred, then, els), nil

	case "lookup":
		return mapping.Lookup(rd.Source, rd.Table, rd.Target), nil

	case "block":
		inner, err := toRules(rd.Rules)
		if err != nil {
			return mapping.Rule{}, err
		}

		return mapping.Block(inner), nil

	default:
		return mapping.Rule{}, fmt.Errorf("schemaio: unknown rule type %q", rd.Type)
	}
}

func toTransform(td transformDoc) (mapping.Transform, error) {
	switch td.Type {
	case "date_format":
		return mapping.Transform{Kind: mapping.TransformDateFormat, InFormat: td.InFormat, OutFormat: td.OutFormat}, nil

	case "pad":
		side := mapping.PadLeft
		if td.Side == "right" {
			side = mapping.PadRight
		}

		return mapping.Transform{Kind: mapping.TransformPad, Side: side, Width: td.Width, Fill: td.Fill}, nil

	case "case":
		mode := mapping.CaseUpper
		if td.Case == "lower" {
			mode = mapping.CaseLower
		}

		return mapping.Transform{Kind: mapping.TransformCase, Case: mode}, nil

	case "add", "sub", "mul", "div":
		kind := map[string]mapping.TransformKind{
			"add": mapping.TransformAdd,
			"sub": mapping.TransformSub,
			"mul": mapping.TransformMul,
			"div": mapping.TransformDiv,
		}[td.Type]

		return mapping.Transform{Kind: kind, Operand: td.Operand}, nil

	case "chain":
		steps := make([]mapping.Transform, 0, len(td.Steps))
		for _, sd := range td.Steps {
			conv, err := toTransform(sd)
			if err != nil {
				return mapping.Transform{}, err
			}
			steps = append(steps, conv)
		}

		return mapping.Transform{Kind: mapping.TransformChain, Steps: steps}, nil

	case "conditional":
		pred, err := toPredicate(*td.Predicate)
		if err != nil {
			return mapping.Transform{}, err
		}

		result := mapping.Transform{Kind: mapping.TransformConditional, Predicate: &pred}

		if td.Then != nil {
			then, err := toTransform(*td.Then)
			if err != nil {
				return mapping.Transform{}, err
			}
			result.Then = &then
		}

		if td.Else != nil {
			els, err := toTransform(*td.Else)
			if err != nil {
				return mapping.Transform{}, err
			}
			result.Else = &els
		}

		return result, nil

	case "lookup":
		return mapping.Transform{Kind: mapping.TransformLookup, Table: td.Table}, nil

	case "default":
		return mapping.Transform{Kind: mapping.TransformDefault, DefaultValue: td.Default}, nil

	default:
		return mapping.Transform{}, fmt.Errorf("schemaio: unknown transform type %q", td.Type)
	}
}

func toPredicate(pd predicateDoc) (mapping.Predicate, error) {
	switch pd.Type {
	case "exists":
		return mapping.Predicate{Kind: mapping.PredicateExists, Path: pd.Path}, nil
	case "equals":
		return mapping.Predicate{Kind: mapping.PredicateEquals, Path: pd.Path, Value: pd.Value}, nil
	case "not_equals":
		return mapping.Predicate{Kind: mapping.PredicateNotEquals, Path: pd.Path, Value: pd.Value}, nil
	case "less_than":
		return mapping.Predicate{Kind: mapping.PredicateLessThan, Path: pd.Path, Value: pd.Value}, nil
	case "greater_than":
		return mapping.Predicate{Kind: mapping.PredicateGreaterThan, Path: pd.Path, Value: pd.Value}, nil
	case "and", "or":
		operands := make([]mapping.Predicate, 0, len(pd.Operands))
		for _, od := range pd.Operands {
			conv, err := toPredicate(od)
			if err != nil {
				return mapping.Predicate{}, err
			}
			operands = append(operands, conv)
		}

		kind := mapping.PredicateAnd
		if pd.Type == "or" {
			kind = mapping.PredicateOr
		}

		return mapping.Predicate{Kind: kind, Operands: operands}, nil
	case "not":
		inner, err := toPredicate(*pd.Operand)
		if err != nil {
			return mapping.Predicate{}, err
		}

		return mapping.Predicate{Kind: mapping.PredicateNot, Operand: &inner}, nil
	default:
		return mapping.Predicate{}, fmt.Errorf("schemaio: unknown predicate type %q", pd.Type)
	}
}

// SkeletonMapping returns a minimal mapping program with an empty rule
// list, a starting point for a caller to fill in. No command of the
// edicore CLI calls it.
func SkeletonMapping(targetType string) *mapping.Program {
	return &mapping.Program{TargetType: targetType}
}
