// Package container wires configuration into ready-to-use application
// services. Construction decides once whether the AI fallback is on; nothing
// downstream rechecks the environment.
package container

import (
	"context"
	"fmt"
	"time"

	"jnovak/budget-categorizer/internal/ai"
	"jnovak/budget-categorizer/internal/config"
	"jnovak/budget-categorizer/internal/engine"
	"jnovak/budget-categorizer/internal/logging"
	"jnovak/budget-categorizer/internal/models"
	"jnovak/budget-categorizer/internal/rulestore"
	"jnovak/budget-categorizer/internal/transfer"
)

// Container holds the application's constructed services.
type Container struct {
	Config *config.Config
	Logger logging.Logger
	Store  *rulestore.Store
	Engine *engine.Engine

	geminiClient *ai.GeminiClient
}

// New builds the full service graph from configuration.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger := logging.NewLogrusAdapterFromLogger(config.ConfigureLoggingFromConfig(cfg))
	logging.SetLogger(logger)

	source := rulestore.NewFileSource(cfg.Rules.File)
	store := rulestore.NewStore(
		source,
		cfg.Rules.CacheFile,
		time.Duration(cfg.Rules.CacheTTLMinutes)*time.Minute,
		logger,
	)

	methods := make([]transfer.Method, 0, len(cfg.Transfers.DetectionMethods))
	for _, m := range cfg.Transfers.DetectionMethods {
		methods = append(methods, transfer.Method{
			Type:     m.Type,
			Enabled:  m.Enabled,
			Keywords: m.Keywords,
		})
	}
	detector := transfer.NewDetector(transfer.Options{
		OwnAccounts:            cfg.Transfers.OwnAccounts,
		ExcludedCounterparties: cfg.Transfers.Exclusions.CounterpartyNames,
		ExcludedTypes:          cfg.Transfers.Exclusions.TransactionTypes,
		Methods:                methods,
	}, logger)

	c := &Container{
		Config: cfg,
		Logger: logger,
		Store:  store,
	}

	var classifier *ai.Classifier
	switch {
	case !cfg.AI.Enabled:
		logger.Info("AI categorization disabled")
	case cfg.AI.APIKey == "":
		// Credential absence degrades to rules-only categorization; the
		// engine must keep working without the service.
		logger.Warn("GEMINI_API_KEY not set, AI categorization disabled")
	default:
		client, err := ai.NewGeminiClient(
			ctx,
			cfg.AI.APIKey,
			cfg.AI.Model,
			time.Duration(cfg.AI.TimeoutSeconds)*time.Second,
			logger,
		)
		if err != nil {
			return nil, fmt.Errorf("error initializing AI classifier: %w", err)
		}
		c.geminiClient = client

		limiter := ai.NewLimiter(cfg.AI.RequestsPerMinute, cfg.AI.RequestsPerDay)
		classifier = ai.NewClassifier(client, limiter, ai.ClassifierOptions{
			PromptTemplate:      cfg.AI.PromptTemplate,
			ConfidenceThreshold: cfg.AI.ConfidenceThreshold,
			MaxRetries:          cfg.AI.MaxRetries,
			RetryBaseDelay:      time.Duration(cfg.AI.RetryBaseDelaySeconds) * time.Second,
			ResultLogFile:       cfg.AI.ResultLogFile,
		}, logger)
		logger.WithField("model", cfg.AI.Model).Info("AI categorization enabled")
	}

	c.Engine = engine.New(store, detector, classifier, engine.Options{
		TransferCategory: models.Category{
			Tier1: cfg.Transfers.Category.Tier1,
			Tier2: cfg.Transfers.Category.Tier2,
			Tier3: cfg.Transfers.Category.Tier3,
		},
		DefaultOwner: cfg.Owners.Default,
	}, logger)

	return c, nil
}

// Close releases any held connections.
func (c *Container) Close() error {
	if c.geminiClient != nil {
		return c.geminiClient.Close()
	}
	return nil
}
