// Package engine orchestrates the categorization pipeline: transfer
// detection first, then manual rules, then the AI fallback, then the
// explicit uncategorized bucket.
package engine

import (
	"context"
	"errors"
	"sync/atomic"

	"jnovak/budget-categorizer/internal/ai"
	"jnovak/budget-categorizer/internal/logging"
	"jnovak/budget-categorizer/internal/models"
	"jnovak/budget-categorizer/internal/rules"
	"jnovak/budget-categorizer/internal/rulestore"
	"jnovak/budget-categorizer/internal/transfer"
)

// Engine categorizes transactions. All collaborators are instance state;
// two engines with different configurations coexist in one process.
type Engine struct {
	store            *rulestore.Store
	detector         *transfer.Detector
	classifier       *ai.Classifier // nil means the AI fallback is disabled
	transferCategory models.Category
	defaultOwner     string
	logger           logging.Logger

	// Set once the daily AI budget is spent; read by concurrent Categorize
	// calls, hence atomic.
	aiQuotaExhausted atomic.Bool
}

// Options configures an Engine.
type Options struct {
	TransferCategory models.Category
	DefaultOwner     string
}

// CategorizeOptions are per-call switches.
type CategorizeOptions struct {
	// DisableAI skips the AI fallback for this call even when the engine
	// has a classifier. Unmatched transactions go straight to uncategorized,
	// which also makes the run deterministic.
	DisableAI bool

	// ForceReload bypasses the rule cache TTL for this call.
	ForceReload bool
}

// New creates an Engine. classifier may be nil to run without the AI
// fallback; that decision is made once at construction, not rechecked
// per transaction.
func New(store *rulestore.Store, detector *transfer.Detector, classifier *ai.Classifier, opts Options, logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.GetLogger()
	}
	transferCategory := opts.TransferCategory
	if transferCategory.IsZero() {
		transferCategory = models.CategoryInternalTransfer
	}
	defaultOwner := opts.DefaultOwner
	if defaultOwner == "" {
		defaultOwner = "Unknown"
	}
	return &Engine{
		store:            store,
		detector:         detector,
		classifier:       classifier,
		transferCategory: transferCategory,
		defaultOwner:     defaultOwner,
		logger:           logger,
	}
}

// Categorize runs the pipeline for one transaction. It always produces a
// result: AI failures are logged and degrade to the uncategorized bucket.
// The only returned error is context cancellation.
func (e *Engine) Categorize(ctx context.Context, txn *models.Transaction, opts CategorizeOptions) (models.Result, error) {
	if err := ctx.Err(); err != nil {
		return models.Result{}, err
	}

	bundle := e.store.Load(opts.ForceReload)
	owner := ResolveOwner(bundle.Owners, txn, e.defaultOwner)

	if isTransfer, method := e.detector.Detect(txn); isTransfer {
		e.logger.WithFields(
			logging.Field{Key: "method", Value: method},
			logging.Field{Key: "description", Value: txn.Description},
		).Debug("Transaction is an internal transfer")
		return models.Result{
			Category:           e.transferCategory,
			Owner:              owner,
			IsInternalTransfer: true,
			Source:             models.SourceInternalTransfer,
		}, nil
	}

	if rule, ok := rules.FirstMatch(bundle.Rules, txn); ok {
		if rule.Owner != "" {
			owner = rule.Owner
		}
		e.logger.WithFields(
			logging.Field{Key: "rule", Value: rule.Name},
			logging.Field{Key: "category", Value: rule.Category.String()},
		).Debug("Transaction matched manual rule")
		return models.Result{
			Category: rule.Category,
			Owner:    owner,
			Source:   models.SourceManualRule,
		}, nil
	}

	if e.classifier != nil && !opts.DisableAI && !e.aiQuotaExhausted.Load() {
		category, confidence, accepted, err := e.classifier.Classify(ctx, txn, bundle.Taxonomy)
		switch {
		case err == nil && accepted:
			return models.Result{
				Category:   category,
				Owner:      owner,
				Source:     models.SourceAI,
				Confidence: confidence,
			}, nil
		case err == nil:
			// Parsed but below the confidence threshold.
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			return models.Result{}, err
		case errors.Is(err, ai.ErrDailyQuotaExhausted):
			// Waiting will not refill the budget mid-run, so stop asking.
			e.aiQuotaExhausted.Store(true)
			e.logger.Warn("Daily AI quota exhausted, remaining transactions go uncategorized")
		default:
			e.logger.WithError(err).Warn("AI classification failed, leaving transaction uncategorized")
		}
	}

	return models.Result{
		Category: models.CategoryUncategorized,
		Owner:    owner,
		Source:   models.SourceUncategorized,
	}, nil
}

// CategorizeAll categorizes transactions in order, stopping only on context
// cancellation. Results align index for index with the input.
func (e *Engine) CategorizeAll(ctx context.Context, txns []models.Transaction, opts CategorizeOptions) ([]models.Result, error) {
	results := make([]models.Result, 0, len(txns))
	for i := range txns {
		result, err := e.Categorize(ctx, &txns[i], opts)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}
