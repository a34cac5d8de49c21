package mapping

import (
	"strings"

	"github.com/errfld/rsedi-sub001/pkg/ir"
)

// Runtime evaluates a mapping Program against a source document. Its
// Tables field supplies every lookup table a Lookup rule or transform
// might reference; a name absent from Tables raises
// UnknownLookupTableError at the point it is used, not eagerly.
type Runtime struct {
	Tables map[string]map[string]string
}

// NewRuntime constructs a Runtime backed by the given lookup tables (may
// be nil if the program uses none).
func NewRuntime(tables map[string]map[string]string) *Runtime {
	return &Runtime{Tables: tables}
}

// Run evaluates program against source, producing a freshly built target
// Document. Per spec.md §4.5/§9, the runtime aborts the whole document on
// the first Transform, InvalidNumber, UnknownLookupTable, or path
// resolution error, discarding the partially-built target.
func (rt *Runtime) Run(program *Program, source *ir.Document) (*ir.Document, error) {
	if err := validateTargetPaths(program.TargetType, program.Rules); err != nil {
		return nil, err
	}

	targetRoot := ir.NewNode("root", ir.KindRoot)

	rootScope := Scope{
		SourceRoot:      source.Root,
		TargetContainer: targetRoot,
	}

	if err := rt.runRules(program.TargetType, program.Rules, rootScope); err != nil {
		return nil, err
	}

	return ir.NewDocument(targetRoot), nil
}

// frame is one level of the explicit rule-evaluation stack: the rule
// list being walked, the index of the next rule to run, and the scope it
// runs under.
type frame struct {
	rules []Rule
	index int
	scope Scope
}

// runRules walks rules (and every nested rule list a Foreach/Condition/
// Block rule introduces) using an explicit stack of frames rather than
// recursive descent, per spec.md §9's note that the mapping DSL's
// recursive structures are walked iteratively.
func (rt *Runtime) runRules(targetType string, rules []Rule, scope Scope) error {
	stack := []frame{{rules: rules, scope: scope}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		if top.index >= len(top.rules) {
			stack = stack[:len(stack)-1]
			continue
		}

		rule := top.rules[top.index]
		top.index++
		ruleScope := top.scope

		switch rule.Kind {
		case RuleField:
			if err := rt.applyField(targetType, rule, ruleScope); err != nil {
				return err
			}

		case RuleLookup:
			if err := rt.applyLookup(targetType, rule, ruleScope); err != nil {
				return err
			}

		case RuleBlock:
			stack = append(stack, frame{rules: rule.Rules, scope: ruleScope})

		case RuleCondition:
			ok, err := rule.Predicate.Evaluate(rt, ruleScope)
			if err != nil {
				return err
			}
			branch := rule.ElseRules
			if ok {
				branch = rule.Rules
			}
			if len(branch) > 0 {
				stack = append(stack, frame{rules: branch, scope: ruleScope})
			}

		case RuleForeach:
			items, err := rt.resolveSource(ruleScope, rule.SourcePath)
			if err != nil {
				return err
			}

			depth := containerDepth(ruleScope)

			// Containers are created in source order; the frames are
			// pushed in reverse so the stack (LIFO) processes items in
			// source order too.
			children := make([]*ir.Node, len(items))
			for i := range items {
				children[i] = newContainerChild(ruleScope.TargetContainer, targetType, rule.TargetPath, depth)
			}

			for i := len(items) - 1; i >= 0; i-- {
				itemScope := ruleScope.withItem(items[i]).withTarget(children[i])
				stack = append(stack, frame{rules: rule.Rules, scope: itemScope})
			}
		}
	}

	return nil
}

// containerDepth is a heuristic for which ir.Kind a newly created
// container should carry: 0 at the target root, 1 once nested inside
// another Foreach-created container (at any nesting depth).
func containerDepth(scope Scope) int {
	if scope.TargetContainer == nil || scope.TargetContainer.NodeKind == ir.KindRoot {
		return 0
	}

	return 1
}

func (rt *Runtime) applyField(targetType string, rule Rule, scope Scope) error {
	nodes, err := rt.resolveSource(scope, rule.SourcePath)
	if err != nil {
		return err
	}

	raw := ""
	if len(nodes) > 0 && nodes[0].Value != nil {
		raw = nodes[0].Value.AsString()
	}

	out := raw
	if rule.Transform != nil {
		out, err = rule.Transform.Apply(rt, scope, raw)
		if err != nil {
			return err
		}
	}

	return writeField(scope.TargetContainer, targetType, rule.TargetPath, ir.StringValue(out))
}

func (rt *Runtime) applyLookup(targetType string, rule Rule, scope Scope) error {
	nodes, err := rt.resolveSource(scope, rule.SourcePath)
	if err != nil {
		return err
	}

	raw := ""
	if len(nodes) > 0 && nodes[0].Value != nil {
		raw = nodes[0].Value.AsString()
	}

	table, ok := rt.Tables[rule.Table]
	if !ok {
		return &UnknownLookupTableError{Table: rule.Table}
	}

	out, found := table[raw]
	if !found {
		// Miss with no Default fallback available at the rule level: the
		// target is simply left unwritten.
		return nil
	}

	return writeField(scope.TargetContainer, targetType, rule.TargetPath, ir.StringValue(out))
}

// resolveSource resolves a source-side path against scope: a leading
// "item" step is resolved against scope.Item explicitly; otherwise bare
// paths resolve against the current context node, which is scope.Item
// when one is bound (implicit relative addressing inside a Foreach) and
// scope.SourceRoot otherwise.
func (rt *Runtime) resolveSource(scope Scope, path string) ([]*ir.Node, error) {
	trimmed := strings.TrimPrefix(path, "/")

	if trimmed == "item" {
		if scope.Item == nil {
			return nil, &PathError{Path: path, Message: "\"item\" used outside a Foreach scope"}
		}
		return []*ir.Node{scope.Item}, nil
	}

	if rest, ok := strings.CutPrefix(trimmed, "item/"); ok {
		if scope.Item == nil {
			return nil, &PathError{Path: path, Message: "\"item\" used outside a Foreach scope"}
		}
		nodes, err := ir.Resolve(scope.Item, rest)
		if err != nil {
			return nil, &PathError{Path: path, Message: err.Error()}
		}
		return nodes, nil
	}

	nodes, err := ir.Resolve(scope.contextNode(), path)
	if err != nil {
		return nil, &PathError{Path: path, Message: err.Error()}
	}

	return nodes, nil
}

// resolveOperand resolves an arithmetic transform's second operand:
// first as a numeric literal, falling back to a source path lookup.
func (rt *Runtime) resolveOperand(scope Scope, operand string) (float64, error) {
	if v, err := ParseNumber(operand); err == nil {
		return v, nil
	}

	nodes, err := rt.resolveSource(scope, operand)
	if err != nil {
		return 0, err
	}

	raw := ""
	if len(nodes) > 0 && nodes[0].Value != nil {
		raw = nodes[0].Value.AsString()
	}

	return ParseNumber(raw)
}

// validateTargetPaths walks the full rule tree up front, per spec.md
// §4.5, so an Unsupported mapping target_type error is raised before any
// writes occur rather than partway through evaluation.
func validateTargetPaths(targetType string, rules []Rule) error {
	for _, r := range rules {
		if r.TargetPath != "" {
			if err := checkTargetPath(targetType, r.TargetPath); err != nil {
				return err
			}
		}

		if err := validateTargetPaths(targetType, r.Rules); err != nil {
			return err
		}

		if err := validateTargetPaths(targetType, r.ElseRules); err != nil {
			return err
		}
	}

	return nil
}
