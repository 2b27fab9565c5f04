package rulestore

import (
	"testing"

	"jnovak/budget-categorizer/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func containsRow(name string, priority int, matchType, field, value string) RuleRow {
	row := RuleRow{Name: name, Priority: priority}
	row.Match = &MatchRow{Type: matchType, Field: field, Value: value}
	return row
}

func TestConvertRulesSortsByPriorityDescending(t *testing.T) {
	rows := []RuleRow{
		containsRow("low", 1, "contains", "description", "a"),
		containsRow("high", 10, "contains", "description", "b"),
		containsRow("mid", 5, "contains", "description", "c"),
	}

	rules, warnings, err := ConvertRules(rows)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, rules, 3)
	assert.Equal(t, "high", rules[0].Name)
	assert.Equal(t, "mid", rules[1].Name)
	assert.Equal(t, "low", rules[2].Name)
}

func TestConvertRulesEqualPriorityKeepsSourceOrder(t *testing.T) {
	rows := []RuleRow{
		containsRow("first", 5, "contains", "description", "a"),
		containsRow("second", 5, "contains", "description", "b"),
		containsRow("third", 5, "contains", "description", "c"),
	}

	rules, _, err := ConvertRules(rows)
	require.NoError(t, err)
	assert.Equal(t, "first", rules[0].Name)
	assert.Equal(t, "second", rules[1].Name)
	assert.Equal(t, "third", rules[2].Name)
}

func TestConvertRulesRejectsUnconditionalRule(t *testing.T) {
	rows := []RuleRow{
		{Name: "match-everything", Priority: 100},
	}

	_, _, err := ConvertRules(rows)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "match-everything")
	assert.Contains(t, err.Error(), "no match condition")
}

func TestConvertRulesRejectsEmptyMulti(t *testing.T) {
	rows := []RuleRow{
		{Name: "empty-multi", Priority: 1, Match: &MatchRow{Type: "multi"}},
	}

	_, _, err := ConvertRules(rows)
	require.Error(t, err)
}

func TestConvertRulesInvalidRegexIsNonFatal(t *testing.T) {
	rows := []RuleRow{
		{Name: "bad-regex", Priority: 1, Match: &MatchRow{Type: "regex", Field: "description", Pattern: "["}},
		containsRow("good", 2, "contains", "description", "ok"),
	}

	rules, warnings, err := ConvertRules(rows)
	require.NoError(t, err)
	require.Len(t, rules, 2)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "bad-regex")

	// The broken rule survives the load but can never match.
	cond, ok := rules[1].Conditions[0].(*models.RegexCondition)
	require.True(t, ok)
	assert.False(t, cond.Match("anything"))
}

func TestConvertRulesUnknownMatchType(t *testing.T) {
	rows := []RuleRow{
		{Name: "weird", Priority: 1, Match: &MatchRow{Type: "fuzzy", Field: "description", Value: "x"}},
	}

	_, _, err := ConvertRules(rows)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown match type")
}

func TestConvertRulesAmountRange(t *testing.T) {
	min, max := 100.0, 200.0
	rows := []RuleRow{
		{Name: "range", Priority: 1, Match: &MatchRow{Type: "amount_range", MinAmount: &min, MaxAmount: &max}},
	}

	rules, _, err := ConvertRules(rows)
	require.NoError(t, err)

	cond, ok := rules[0].Conditions[0].(models.AmountRangeCondition)
	require.True(t, ok)
	assert.Equal(t, "100", cond.Min.String())
	assert.Equal(t, "200", cond.Max.String())
}

func TestConvertRulesCarriesCategoryAndOwner(t *testing.T) {
	row := containsRow("groceries", 10, "contains", "description", "ALBERT")
	row.Category.Tier1 = "Living Expenses"
	row.Category.Tier2 = "Groceries"
	row.Category.Tier3 = "Supermarket"
	row.Owner = "Jana"

	rules, _, err := ConvertRules([]RuleRow{row})
	require.NoError(t, err)
	assert.Equal(t, models.Category{Tier1: "Living Expenses", Tier2: "Groceries", Tier3: "Supermarket"}, rules[0].Category)
	assert.Equal(t, "Jana", rules[0].Owner)
}
