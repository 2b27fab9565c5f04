// Package rules evaluates manual categorization rules against transactions.
// Matching is pure: no I/O, no clock, no mutation of the rule set.
package rules

import (
	"strings"

	"jnovak/budget-categorizer/internal/models"
)

// FirstMatch returns the first rule that matches the transaction. Rules must
// already be sorted by priority descending; within equal priority the earlier
// rule wins, so matching stays deterministic across runs.
func FirstMatch(ruleSet []models.Rule, txn *models.Transaction) (*models.Rule, bool) {
	for i := range ruleSet {
		if Matches(&ruleSet[i], txn) {
			return &ruleSet[i], true
		}
	}
	return nil, false
}

// Matches reports whether every condition of the rule holds for the
// transaction. A rule with no conditions never matches; such rules are
// rejected at load time, this is the backstop.
func Matches(rule *models.Rule, txn *models.Transaction) bool {
	if len(rule.Conditions) == 0 {
		return false
	}
	for _, cond := range rule.Conditions {
		if !evaluate(cond, txn) {
			return false
		}
	}
	return true
}

func evaluate(cond models.Condition, txn *models.Transaction) bool {
	switch c := cond.(type) {
	case models.ContainsCondition:
		value, ok := txn.FieldValue(c.Field)
		return ok && containsFold(value, c.Value)

	case models.ExactCondition:
		value, ok := txn.FieldValue(c.Field)
		return ok && strings.EqualFold(strings.TrimSpace(value), strings.TrimSpace(c.Value))

	case *models.RegexCondition:
		value, ok := txn.FieldValue(c.Field)
		return ok && c.Match(value)

	case models.AmountRangeCondition:
		amount := txn.AmountCZK
		if c.Min != nil && amount.LessThan(*c.Min) {
			return false
		}
		if c.Max != nil && amount.GreaterThan(*c.Max) {
			return false
		}
		if c.DescriptionContains != "" && !containsFold(txn.Description, c.DescriptionContains) {
			return false
		}
		return true

	case models.AllCondition:
		for _, clause := range c.Clauses {
			if !evaluateClause(clause, txn) {
				return false
			}
		}
		return true

	default:
		return false
	}
}

func evaluateClause(clause models.Clause, txn *models.Transaction) bool {
	if clause.GreaterThan != nil || clause.LessThan != nil {
		amount, ok := txn.NumericFieldValue(clause.Field)
		if !ok {
			return false
		}
		if clause.GreaterThan != nil && !amount.GreaterThan(*clause.GreaterThan) {
			return false
		}
		if clause.LessThan != nil && !amount.LessThan(*clause.LessThan) {
			return false
		}
	}

	if clause.Contains != "" || clause.Equals != "" {
		value, ok := txn.FieldValue(clause.Field)
		if !ok {
			return false
		}
		if clause.Contains != "" && !containsFold(value, clause.Contains) {
			return false
		}
		if clause.Equals != "" && !strings.EqualFold(strings.TrimSpace(value), strings.TrimSpace(clause.Equals)) {
			return false
		}
	}

	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
