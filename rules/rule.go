package rules

import "github.com/expr-lang/expr/vm"

// Rule is one eligibility condition over a target. A target is eligible only
// when every rule of the policy holds.
type Rule struct {
	Name         string      // human-readable identifier
	Priority     int         // higher = evaluated first
	ConditionSrc string      // expr source
	program      *vm.Program // compiled bytecode
}
