package rulestore

import (
	"fmt"
	"sort"

	"jnovak/budget-categorizer/internal/models"

	"github.com/shopspring/decimal"
)

// ConvertRules turns raw rule rows into typed rules, sorted by priority
// descending (ties keep source order). Rules without any usable condition are
// rejected: an unconditional rule would match every transaction and starve
// everything below it, so it fails the load instead of silently winning.
// An invalid regex pattern is non-fatal; the condition simply never matches
// and the problem is reported through warnings.
func ConvertRules(rows []RuleRow) ([]models.Rule, []string, error) {
	rules := make([]models.Rule, 0, len(rows))
	var warnings []string

	for i, row := range rows {
		name := row.Name
		if name == "" {
			name = fmt.Sprintf("rule-%d", i+1)
		}

		if row.Match == nil {
			return nil, warnings, fmt.Errorf("rule %q has no match condition", name)
		}

		cond, warn, err := convertMatch(name, row.Match)
		if err != nil {
			return nil, warnings, err
		}
		if warn != "" {
			warnings = append(warnings, warn)
		}

		rules = append(rules, models.Rule{
			Name:     name,
			Priority: row.Priority,
			Category: models.Category{
				Tier1: row.Category.Tier1,
				Tier2: row.Category.Tier2,
				Tier3: row.Category.Tier3,
			},
			Owner:      row.Owner,
			Conditions: []models.Condition{cond},
		})
	}

	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})

	return rules, warnings, nil
}

func convertMatch(ruleName string, m *MatchRow) (models.Condition, string, error) {
	switch m.Type {
	case "contains":
		if m.Value == "" {
			return nil, "", fmt.Errorf("rule %q: contains condition needs a value", ruleName)
		}
		return models.ContainsCondition{Field: m.Field, Value: m.Value}, "", nil

	case "exact":
		if m.Value == "" {
			return nil, "", fmt.Errorf("rule %q: exact condition needs a value", ruleName)
		}
		return models.ExactCondition{Field: m.Field, Value: m.Value}, "", nil

	case "regex":
		if m.Pattern == "" {
			return nil, "", fmt.Errorf("rule %q: regex condition needs a pattern", ruleName)
		}
		cond := &models.RegexCondition{Field: m.Field, Pattern: m.Pattern}
		if err := cond.Compile(); err != nil {
			warn := fmt.Sprintf("rule %q: invalid regex %q, rule will never match: %v", ruleName, m.Pattern, err)
			return cond, warn, nil
		}
		return cond, "", nil

	case "amount_range":
		if m.MinAmount == nil && m.MaxAmount == nil && m.DescriptionContains == "" {
			return nil, "", fmt.Errorf("rule %q: amount_range condition needs at least one bound", ruleName)
		}
		return models.AmountRangeCondition{
			Min:                 decimalPtr(m.MinAmount),
			Max:                 decimalPtr(m.MaxAmount),
			DescriptionContains: m.DescriptionContains,
		}, "", nil

	case "multi":
		if len(m.Conditions) == 0 {
			return nil, "", fmt.Errorf("rule %q: multi condition needs at least one clause", ruleName)
		}
		clauses := make([]models.Clause, 0, len(m.Conditions))
		for _, c := range m.Conditions {
			if c.Contains == "" && c.Equals == "" && c.GreaterThan == nil && c.LessThan == nil {
				return nil, "", fmt.Errorf("rule %q: multi clause on field %q has no comparison", ruleName, c.Field)
			}
			clauses = append(clauses, models.Clause{
				Field:       c.Field,
				Contains:    c.Contains,
				Equals:      c.Equals,
				GreaterThan: decimalPtr(c.GreaterThan),
				LessThan:    decimalPtr(c.LessThan),
			})
		}
		return models.AllCondition{Clauses: clauses}, "", nil

	default:
		return nil, "", fmt.Errorf("rule %q: unknown match type %q", ruleName, m.Type)
	}
}

func decimalPtr(f *float64) *decimal.Decimal {
	if f == nil {
		return nil
	}
	d := decimal.NewFromFloat(*f)
	return &d
}
