package ai

import (
	"context"
	"time"

	"jnovak/budget-categorizer/internal/logging"
	"jnovak/budget-categorizer/internal/models"
)

// Classifier runs the full AI classification path for one transaction:
// rate limiting, the service call with retries, response parsing, the
// confidence gate, and the audit log.
type Classifier struct {
	client         Client
	limiter        *Limiter
	resultLog      *ResultLog
	logger         logging.Logger
	promptTemplate string
	threshold      int
	maxRetries     int
	retryBaseDelay time.Duration
}

// ClassifierOptions configures a Classifier.
type ClassifierOptions struct {
	PromptTemplate      string // empty uses DefaultPromptTemplate
	ConfidenceThreshold int    // 0-100; results below it are rejected
	MaxRetries          int
	RetryBaseDelay      time.Duration
	ResultLogFile       string
}

// NewClassifier creates a Classifier around the given client and limiter.
func NewClassifier(client Client, limiter *Limiter, opts ClassifierOptions, logger logging.Logger) *Classifier {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Classifier{
		client:         client,
		limiter:        limiter,
		resultLog:      NewResultLog(opts.ResultLogFile),
		logger:         logger,
		promptTemplate: opts.PromptTemplate,
		threshold:      opts.ConfidenceThreshold,
		maxRetries:     opts.MaxRetries,
		retryBaseDelay: opts.RetryBaseDelay,
	}
}

// Classify asks the service to categorize the transaction against the
// taxonomy. accepted is false when the response parsed but scored below the
// confidence threshold; a guess the user cannot trust is worse than an
// explicit "needs review". Errors cover transport failures, exhausted
// budgets, and unparseable responses.
func (c *Classifier) Classify(ctx context.Context, txn *models.Transaction, taxonomy models.Taxonomy) (category models.Category, confidence int, accepted bool, err error) {
	prompt, err := BuildPrompt(c.promptTemplate, txn, taxonomy)
	if err != nil {
		return models.Category{}, 0, false, err
	}

	var response string
	err = WithRetry(ctx, c.maxRetries, c.retryBaseDelay, c.logger, func() error {
		if err := c.limiter.Acquire(ctx); err != nil {
			return err
		}
		var callErr error
		response, callErr = c.client.Classify(ctx, prompt)
		return callErr
	})
	if err != nil {
		return models.Category{}, 0, false, err
	}

	category, confidence, err = ParseResponse(response)
	if err != nil {
		return models.Category{}, 0, false, err
	}

	accepted = confidence >= c.threshold
	if !accepted {
		c.logger.WithFields(
			logging.Field{Key: "category", Value: category.String()},
			logging.Field{Key: "confidence", Value: confidence},
			logging.Field{Key: "threshold", Value: c.threshold},
		).Info("AI classification below confidence threshold, rejecting")
	}

	if logErr := c.resultLog.Append(txn, category, confidence, accepted); logErr != nil {
		c.logger.WithError(logErr).Warn("Failed to write AI result log")
	}

	return category, confidence, accepted, nil
}
