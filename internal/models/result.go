package models

// Source identifies which step of the categorization pipeline produced a
// result.
type Source string

const (
	SourceInternalTransfer Source = "internal_transfer"
	SourceManualRule       Source = "manual_rule"
	SourceAI               Source = "ai"
	SourceUncategorized    Source = "uncategorized"
)

// Result is the final decision for a single transaction. It is a plain value;
// the engine holds no reference to it after returning.
type Result struct {
	Category           Category `csv:"-" yaml:"category"`
	Owner              string   `csv:"owner" yaml:"owner"`
	IsInternalTransfer bool     `csv:"is_internal_transfer" yaml:"is_internal_transfer"`
	Source             Source   `csv:"categorization_source" yaml:"source"`

	// Confidence is the AI classification score (0-100). Only meaningful
	// when Source is SourceAI; zero otherwise.
	Confidence int `csv:"ai_confidence" yaml:"confidence,omitempty"`
}
