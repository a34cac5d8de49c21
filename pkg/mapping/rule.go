package mapping

// RuleKind discriminates the mapping rule shapes named in spec.md §3
// ("Mapping program").
type RuleKind uint8

// The rule variants.
const (
	RuleField RuleKind = iota
	RuleForeach
	RuleCondition
	RuleLookup
	RuleBlock
)

// Rule is a single mapping rule. As with schema.Constraint and
// Transform, it is one flat struct with a Kind discriminator rather than
// one interface per variant, so Foreach/Condition/Block can hold nested
// Rule slices uniformly and a YAML-decoded rule list (pkg/schemaio) can
// unmarshal into a single concrete type keyed by a "type" field.
type Rule struct {
	Kind RuleKind

	// Field: source_path -> target_path, optionally transformed.
	// Foreach: source_path is the repeating collection, target_path is
	// the name of the fresh child created per iteration.
	// Lookup: source_path -> table -> target_path.
	SourcePath string
	TargetPath string

	// Field/Lookup (post-transform or post-lookup, values go here)
	Transform *Transform

	// Foreach/Condition(then-branch)/Block
	Rules []Rule

	// Condition
	Predicate *Predicate
	ElseRules []Rule

	// Lookup
	Table string
}

// Field constructs a Field rule.
func Field(sourcePath, targetPath string, transform *Transform) Rule {
	return Rule{Kind: RuleField, SourcePath: sourcePath, TargetPath: targetPath, Transform: transform}
}

// Foreach constructs a Foreach rule.
func Foreach(sourcePath, targetPath string, rules []Rule) Rule {
	return Rule{Kind: RuleForeach, SourcePath: sourcePath, TargetPath: targetPath, Rules: rules}
}

// Condition constructs a Condition rule.
func Condition(predicate *Predicate, then, els []Rule) Rule {
	return Rule{Kind: RuleCondition, Predicate: predicate, Rules: then, ElseRules: els}
}

// Lookup constructs a Lookup rule. Unlike the Lookup Transform variant,
// the rule-level form has no Default fallback: on a miss, the target is
// simply left unwritten (chain a Field's transform with Lookup+Default
// when a fallback value is needed).
func Lookup(sourcePath, table, targetPath string) Rule {
	return Rule{Kind: RuleLookup, SourcePath: sourcePath, Table: table, TargetPath: targetPath}
}

// Block constructs a Block rule: a sequence of rules sharing the
// enclosing scope, used to group related rules without introducing a
// Foreach or Condition.
func Block(rules []Rule) Rule {
	return Rule{Kind: RuleBlock, Rules: rules}
}

// Program is a complete mapping program: the target's shape and its
// ordered top-level rule list, per spec.md §3.
type Program struct {
	TargetType string // "edifact", "tabular", or "json"
	Rules      []Rule
}
