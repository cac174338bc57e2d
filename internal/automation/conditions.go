package automation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/resume-screener/internal/types"
)

// matches reports whether every condition of the rule holds for the
// decision. A rule with no conditions always matches.
func matches(rule *types.AutomationRule, decision *types.ScreeningDecision) bool {
	for i := range rule.Conditions {
		if !evaluateCondition(&rule.Conditions[i], decision) {
			return false
		}
	}
	return true
}

// evaluateCondition applies one operator against a rule-addressable decision
// field. Unknown fields and operators never match.
func evaluateCondition(cond *types.Condition, decision *types.ScreeningDecision) bool {
	fieldValue := decision.Field(cond.Field)
	if fieldValue == nil {
		return false
	}

	switch cond.Operator {
	case types.OpEquals:
		return equals(fieldValue, cond.Value)
	case types.OpGreaterThan:
		return toNumber(fieldValue) > toNumber(cond.Value)
	case types.OpLessThan:
		return toNumber(fieldValue) < toNumber(cond.Value)
	case types.OpContains:
		return strings.Contains(
			strings.ToLower(stringify(fieldValue)),
			strings.ToLower(stringify(cond.Value)),
		)
	default:
		return false
	}
}

// equals compares after normalizing the condition value to the field's type:
// numeric fields compare numerically, string fields compare exactly.
func equals(fieldValue, condValue any) bool {
	switch fieldValue.(type) {
	case float64:
		return toNumber(fieldValue) == toNumber(condValue)
	default:
		return stringify(fieldValue) == stringify(condValue)
	}
}

// toNumber coerces a value to float64. Non-numeric values coerce to 0.
func toNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
