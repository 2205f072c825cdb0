// Package rules decides whether a scouted target may be attacked. Conditions
// are expr-lang expressions compiled once against TargetEnv.
package rules

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// NoDefensesRule is always part of a policy: only undefended targets are attacked.
const NoDefensesRule = "Defenses == 0"

// DefaultRules returns the rules every policy starts from.
func DefaultRules() []*Rule {
	return []*Rule{
		{Name: "no-defenses", Priority: 1000, ConditionSrc: NoDefensesRule},
	}
}

// Policy evaluates compiled rules against targets.
type Policy struct {
	rules  []*Rule
	logger *slog.Logger
}

// NewPolicy compiles the default rules plus extra conditions. Extra
// conditions can only narrow the default; they are named "custom-<n>" and
// evaluated after the default rules in the given order.
func NewPolicy(logger *slog.Logger, extra ...string) (*Policy, error) {
	rules := DefaultRules()
	for i, src := range extra {
		rules = append(rules, &Rule{
			Name:         fmt.Sprintf("custom-%d", i+1),
			Priority:     100 - i,
			ConditionSrc: src,
		})
	}
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Policy{rules: compiled, logger: logger}, nil
}

// Eligible reports whether env satisfies every rule. When it does not, the
// name of the first failing rule is returned.
func (p *Policy) Eligible(env TargetEnv) (bool, string, error) {
	for _, r := range p.rules {
		result, err := vm.Run(r.program, env)
		if err != nil {
			return false, r.Name, fmt.Errorf("evaluate rule %q: %w", r.Name, err)
		}
		if match, ok := result.(bool); !ok || !match {
			p.logger.Debug("rule rejected target", "rule", r.Name, "galaxy", env.Galaxy, "system", env.System, "position", env.Position)
			return false, r.Name, nil
		}
	}
	return true, "", nil
}

// Rules returns the names of the compiled rules in evaluation order.
func (p *Policy) Rules() []string {
	names := make([]string, len(p.rules))
	for i, r := range p.rules {
		names[i] = r.Name
	}
	return names
}

func compileRules(rules []*Rule) ([]*Rule, error) {
	for _, r := range rules {
		prog, err := expr.Compile(r.ConditionSrc, expr.Env(TargetEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", r.Name, err)
		}
		r.program = prog
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})
	return rules, nil
}
