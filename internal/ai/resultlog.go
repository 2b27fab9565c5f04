package ai

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"jnovak/budget-categorizer/internal/models"

	"gopkg.in/yaml.v3"
)

// ResultLog is an append-only audit log of AI classification results. Each
// result is appended as one YAML list item, so the file stays a valid YAML
// sequence and doubles as review input for promoting AI guesses to rules.
type ResultLog struct {
	path string
	mu   sync.Mutex
}

type resultLogEntry struct {
	Timestamp    time.Time `yaml:"timestamp"`
	Description  string    `yaml:"description"`
	Counterparty string    `yaml:"counterparty,omitempty"`
	Amount       string    `yaml:"amount"`
	Tier1        string    `yaml:"tier1"`
	Tier2        string    `yaml:"tier2"`
	Tier3        string    `yaml:"tier3"`
	Confidence   int       `yaml:"confidence"`
	Accepted     bool      `yaml:"accepted"`
}

// NewResultLog creates a ResultLog writing to path. An empty path disables
// logging; Append becomes a no-op.
func NewResultLog(path string) *ResultLog {
	return &ResultLog{path: path}
}

// Append records one classification result.
func (l *ResultLog) Append(txn *models.Transaction, category models.Category, confidence int, accepted bool) error {
	if l == nil || l.path == "" {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entry := []resultLogEntry{{
		Timestamp:    time.Now().UTC(),
		Description:  txn.Description,
		Counterparty: txn.CounterpartyName,
		Amount:       txn.AmountCZK.String(),
		Tier1:        category.Tier1,
		Tier2:        category.Tier2,
		Tier3:        category.Tier3,
		Confidence:   confidence,
		Accepted:     accepted,
	}}

	data, err := yaml.Marshal(entry)
	if err != nil {
		return fmt.Errorf("error serializing result log entry: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("error creating result log directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("error opening result log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("error writing result log: %w", err)
	}
	return nil
}
