// Package validation performs structural validation of rule definitions
// before they enter the store. The output is an explicit error list, never a
// panic or an error return: validation is advisory to the caller, who decides
// whether to save anyway.
package validation

import (
	"fmt"
	"strings"

	"fjacquet/tx-rules/internal/models"
)

// Result is the outcome of validating one rule definition.
type Result struct {
	IsValid bool
	Errors  []string
}

// ValidateRule checks a rule definition for structural problems: a missing
// name, empty condition or action lists, conditions without values, a
// between without its upper bound, non-skip actions without values, and
// operators that cannot apply to their field's type.
func ValidateRule(rule models.Rule) Result {
	var errs []string

	if strings.TrimSpace(rule.Name) == "" {
		errs = append(errs, "rule name must not be empty")
	}
	if len(rule.Conditions) == 0 {
		errs = append(errs, "rule must have at least one condition")
	}
	if len(rule.Actions) == 0 {
		errs = append(errs, "rule must have at least one action")
	}

	for i, cond := range rule.Conditions {
		if !models.HasValue(cond.Value) {
			errs = append(errs, fmt.Sprintf("condition %d: value must not be empty", i+1))
		}
		if cond.Operator == models.OperatorBetween && !models.HasValue(cond.Value2) {
			errs = append(errs, fmt.Sprintf("condition %d: between requires an upper bound (value2)", i+1))
		}
		if !cond.Operator.SupportsKind(cond.Field.Kind()) {
			errs = append(errs, fmt.Sprintf("condition %d: operator %q does not apply to field %q",
				i+1, cond.Operator, cond.Field))
		}
	}

	for i, action := range rule.Actions {
		switch {
		case action.Type == models.ActionSkip:
			// skip carries no payload
		case action.Type == models.ActionModifyDescription && action.Modification == models.ModificationRegex:
			if strings.TrimSpace(action.Pattern) == "" {
				errs = append(errs, fmt.Sprintf("action %d: regex modification requires a pattern", i+1))
			}
		default:
			if strings.TrimSpace(action.Value) == "" {
				errs = append(errs, fmt.Sprintf("action %d: value must not be empty", i+1))
			}
		}
	}

	return Result{IsValid: len(errs) == 0, Errors: errs}
}
