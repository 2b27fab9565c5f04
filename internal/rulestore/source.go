// Package rulestore loads the category taxonomy, the manual categorization
// rules, and the account-owner map from a configurable source, with
// time-boxed caching and a local cache-file fallback for source outages.
package rulestore

import (
	"fmt"
	"os"

	"jnovak/budget-categorizer/internal/models"

	"gopkg.in/yaml.v3"
)

// Document is the raw rule-source payload: rule rows, owner mappings, and
// taxonomy rows exactly as the source provides them. Conversion into typed
// rules happens in the store, so sources stay dumb row fetchers.
type Document struct {
	Rules    []RuleRow         `yaml:"rules"`
	Owners   map[string]string `yaml:"owners"`
	Taxonomy models.Taxonomy   `yaml:"taxonomy"`
}

// RuleRow is one rule as authored in the source.
type RuleRow struct {
	Name     string `yaml:"name"`
	Priority int    `yaml:"priority"`
	Owner    string `yaml:"owner"`
	Category struct {
		Tier1 string `yaml:"tier1"`
		Tier2 string `yaml:"tier2"`
		Tier3 string `yaml:"tier3"`
	} `yaml:"category"`
	Match *MatchRow `yaml:"match"`
}

// MatchRow is the condition block of a rule row. Type selects the condition
// kind; the remaining fields are interpreted according to it.
type MatchRow struct {
	Type    string `yaml:"type"` // contains | exact | regex | amount_range | multi
	Field   string `yaml:"field"`
	Value   string `yaml:"value"`
	Pattern string `yaml:"pattern"`

	MinAmount           *float64 `yaml:"min_amount"`
	MaxAmount           *float64 `yaml:"max_amount"`
	DescriptionContains string   `yaml:"description_contains"`

	Conditions []ClauseRow `yaml:"conditions"`
}

// ClauseRow is one sub-condition of a "multi" match block.
type ClauseRow struct {
	Field       string   `yaml:"field"`
	Contains    string   `yaml:"contains"`
	Equals      string   `yaml:"equals"`
	GreaterThan *float64 `yaml:"greater_than"`
	LessThan    *float64 `yaml:"less_than"`
}

// Source fetches the current rule document from a backend. Implementations
// exist for local YAML files; the same boundary fits a spreadsheet or
// database backend.
type Source interface {
	Fetch() (*Document, error)
}

// FileSource reads the rule document from a single YAML file.
type FileSource struct {
	Path string
}

// NewFileSource creates a Source backed by the YAML file at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Fetch reads and parses the rule file.
func (s *FileSource) Fetch() (*Document, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("error reading rules file: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error parsing rules file %s: %w", s.Path, err)
	}

	return &doc, nil
}
