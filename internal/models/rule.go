package models

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// Rule is a user-authored categorization rule. Rules are immutable once
// loaded; the active set is replaced wholesale on reload, never patched.
type Rule struct {
	Name       string
	Priority   int
	Category   Category
	Owner      string // optional owner override; empty falls through to the owner map
	Conditions []Condition
}

// Condition is a single match condition of a rule. The set of condition kinds
// is closed: Contains, Exact, Regex, AmountRange, and All. A rule matches when
// every one of its conditions holds.
type Condition interface {
	// condition restricts implementations to this package so the matcher can
	// switch over the variants exhaustively.
	condition()
}

// ContainsCondition is a case-insensitive substring test of a named field.
type ContainsCondition struct {
	Field string
	Value string
}

// ExactCondition is a case-insensitive equality test of a named field.
type ExactCondition struct {
	Field string
	Value string
}

// RegexCondition is a case-insensitive pattern match against a named field.
// The pattern is compiled once at rule-load time; a pattern that failed to
// compile never matches.
type RegexCondition struct {
	Field   string
	Pattern string

	re *regexp.Regexp
}

// Compile compiles the pattern case-insensitively. Must be called before
// Match; an error leaves the condition permanently non-matching.
func (c *RegexCondition) Compile() error {
	re, err := regexp.Compile("(?i)" + c.Pattern)
	if err != nil {
		return err
	}
	c.re = re
	return nil
}

// Match reports whether the compiled pattern matches the value.
func (c *RegexCondition) Match(value string) bool {
	if c.re == nil {
		return false
	}
	return c.re.MatchString(value)
}

// AmountRangeCondition tests that the currency-normalized amount falls inside
// an inclusive [Min, Max] range. Either bound may be nil (unbounded). An
// optional substring check on the description is ANDed in.
type AmountRangeCondition struct {
	Min                 *decimal.Decimal
	Max                 *decimal.Decimal
	DescriptionContains string
}

// Clause is one sub-condition of an AllCondition. Exactly one of the
// comparison fields is expected to be set.
type Clause struct {
	Field       string
	Contains    string
	Equals      string
	GreaterThan *decimal.Decimal
	LessThan    *decimal.Decimal
}

// AllCondition is a conjunction of clauses; all must hold.
type AllCondition struct {
	Clauses []Clause
}

func (ContainsCondition) condition()    {}
func (ExactCondition) condition()       {}
func (*RegexCondition) condition()      {}
func (AmountRangeCondition) condition() {}
func (AllCondition) condition()         {}
