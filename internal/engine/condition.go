package engine

import (
	"regexp"
	"strings"

	"fjacquet/tx-rules/internal/models"

	"github.com/shopspring/decimal"
)

// amountTolerance absorbs rounding noise in imported amounts: equality on the
// amount field holds when |field - value| < 0.01.
var amountTolerance = decimal.New(1, -2)

// EvaluateCondition reports whether a single condition matches a transaction.
// It never fails: missing field values, operators that do not fit the field's
// kind, unparsable numbers, and invalid regex patterns all evaluate to false.
func EvaluateCondition(cond models.Condition, tx models.Transaction) bool {
	kind := cond.Field.Kind()
	if !cond.Operator.SupportsKind(kind) {
		return false
	}

	switch kind {
	case models.KindString:
		return evaluateString(cond, stringField(cond.Field, tx))
	case models.KindNumber:
		// Conditions compare against the magnitude of the amount, so a rule
		// on "50" matches both a 50.00 credit and a -50.00 debit.
		return evaluateNumber(cond, tx.Amount.Abs())
	default:
		// The operator set defines no date predicates, so a date condition
		// can never match.
		return false
	}
}

// RuleMatches reports whether every condition of the rule matches the
// transaction. A rule with no conditions matches everything.
func RuleMatches(rule models.Rule, tx models.Transaction) bool {
	for _, cond := range rule.Conditions {
		if !EvaluateCondition(cond, tx) {
			return false
		}
	}
	return true
}

func stringField(field models.Field, tx models.Transaction) string {
	switch field {
	case models.FieldDescription:
		return tx.Description
	case models.FieldAccountID:
		return tx.AccountID
	default:
		return ""
	}
}

func evaluateString(cond models.Condition, fieldValue string) bool {
	target, ok := models.StringValue(cond.Value)
	if !ok {
		return false
	}

	if cond.Operator == models.OperatorRegex {
		pattern := target
		if !cond.CaseSensitive {
			pattern = "(?i)" + pattern
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return false
		}
		return re.MatchString(fieldValue)
	}

	if !cond.CaseSensitive {
		fieldValue = strings.ToLower(fieldValue)
		target = strings.ToLower(target)
	}

	switch cond.Operator {
	case models.OperatorContains:
		return strings.Contains(fieldValue, target)
	case models.OperatorStartsWith:
		return strings.HasPrefix(fieldValue, target)
	case models.OperatorEndsWith:
		return strings.HasSuffix(fieldValue, target)
	case models.OperatorEquals:
		return fieldValue == target
	default:
		return false
	}
}

func evaluateNumber(cond models.Condition, fieldValue decimal.Decimal) bool {
	target, ok := models.DecimalValue(cond.Value)
	if !ok {
		return false
	}

	switch cond.Operator {
	case models.OperatorEquals:
		return fieldValue.Sub(target).Abs().LessThan(amountTolerance)
	case models.OperatorGreaterThan:
		return fieldValue.GreaterThan(target)
	case models.OperatorLessThan:
		return fieldValue.LessThan(target)
	case models.OperatorBetween:
		upper, ok := models.DecimalValue(cond.Value2)
		if !ok {
			return false
		}
		return fieldValue.GreaterThanOrEqual(target) && fieldValue.LessThanOrEqual(upper)
	default:
		return false
	}
}
