// Package transfer detects movements between the user's own accounts so they
// can be kept out of spending categories entirely.
package transfer

import (
	"strings"

	"jnovak/budget-categorizer/internal/accounts"
	"jnovak/budget-categorizer/internal/logging"
	"jnovak/budget-categorizer/internal/models"
)

// Method is one detection strategy. Disabled methods are skipped.
type Method struct {
	Type     string // own_account | self_transfer | keyword
	Enabled  bool
	Keywords []string
}

// Detector decides whether a transaction is an internal transfer. Exclusions
// are checked before any detection method: an excluded counterparty or
// transaction type is never a transfer, even when an account matches.
// Merchants sometimes collect through accounts that look like the user's own.
type Detector struct {
	ownAccounts            []string
	excludedCounterparties []string
	excludedTypes          []string
	methods                []Method
	logger                 logging.Logger
}

// Options configures a Detector.
type Options struct {
	OwnAccounts            []string
	ExcludedCounterparties []string
	ExcludedTypes          []string
	Methods                []Method
}

// NewDetector creates a Detector. With no methods configured, detection
// defaults to the own-account and self-transfer checks.
func NewDetector(opts Options, logger logging.Logger) *Detector {
	if logger == nil {
		logger = logging.GetLogger()
	}
	methods := opts.Methods
	if len(methods) == 0 {
		methods = []Method{
			{Type: "own_account", Enabled: true},
			{Type: "self_transfer", Enabled: true},
		}
	}
	return &Detector{
		ownAccounts:            opts.OwnAccounts,
		excludedCounterparties: opts.ExcludedCounterparties,
		excludedTypes:          opts.ExcludedTypes,
		methods:                methods,
		logger:                 logger,
	}
}

// Detect reports whether the transaction is an internal transfer, along with
// the method that decided it.
func (d *Detector) Detect(txn *models.Transaction) (bool, string) {
	if reason, excluded := d.excluded(txn); excluded {
		d.logger.WithFields(
			logging.Field{Key: "reason", Value: reason},
			logging.Field{Key: "counterparty", Value: txn.CounterpartyName},
		).Debug("Transfer detection vetoed by exclusion")
		return false, ""
	}

	for _, m := range d.methods {
		if !m.Enabled {
			continue
		}
		switch m.Type {
		case "own_account":
			if accounts.MatchAny(txn.CounterpartyAccount, d.ownAccounts) {
				return true, m.Type
			}
		case "self_transfer":
			if accounts.Same(txn.Account, txn.CounterpartyAccount) {
				return true, m.Type
			}
		case "keyword":
			if d.matchKeyword(txn, m.Keywords) {
				return true, m.Type
			}
		default:
			d.logger.WithField("type", m.Type).Warn("Unknown transfer detection method")
		}
	}

	return false, ""
}

// excluded reports whether any exclusion applies to the transaction.
// Both lists match by trimmed case-insensitive equality, not substring:
// exclusions are authored as exact counterparty names, and a substring test
// would also veto unrelated counterparties that merely contain one.
func (d *Detector) excluded(txn *models.Transaction) (string, bool) {
	counterparty := strings.TrimSpace(txn.CounterpartyName)
	for _, name := range d.excludedCounterparties {
		if name != "" && strings.EqualFold(counterparty, strings.TrimSpace(name)) {
			return "counterparty " + name, true
		}
	}
	for _, t := range d.excludedTypes {
		if t != "" && strings.EqualFold(strings.TrimSpace(txn.Type), strings.TrimSpace(t)) {
			return "transaction type " + t, true
		}
	}
	return "", false
}

func (d *Detector) matchKeyword(txn *models.Transaction, keywords []string) bool {
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if containsFold(txn.Description, kw) || containsFold(txn.CounterpartyName, kw) {
			return true
		}
	}
	return false
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
