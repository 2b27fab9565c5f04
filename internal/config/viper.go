// Package config provides Viper-based hierarchical configuration management.
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// DetectionMethod configures one transfer-detection method. Disabled methods
// are skipped entirely during detection.
type DetectionMethod struct {
	Type     string   `mapstructure:"type" yaml:"type"`
	Enabled  bool     `mapstructure:"enabled" yaml:"enabled"`
	Keywords []string `mapstructure:"keywords" yaml:"keywords"`
}

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Rules struct {
		File            string `mapstructure:"file" yaml:"file"`
		CacheFile       string `mapstructure:"cache_file" yaml:"cache_file"`
		CacheTTLMinutes int    `mapstructure:"cache_ttl_minutes" yaml:"cache_ttl_minutes"`
	} `mapstructure:"rules" yaml:"rules"`

	Transfers struct {
		Category struct {
			Tier1 string `mapstructure:"tier1" yaml:"tier1"`
			Tier2 string `mapstructure:"tier2" yaml:"tier2"`
			Tier3 string `mapstructure:"tier3" yaml:"tier3"`
		} `mapstructure:"category" yaml:"category"`
		OwnAccounts []string `mapstructure:"own_accounts" yaml:"own_accounts"`
		Exclusions  struct {
			CounterpartyNames []string `mapstructure:"counterparty_names" yaml:"counterparty_names"`
			TransactionTypes  []string `mapstructure:"transaction_types" yaml:"transaction_types"`
		} `mapstructure:"exclusions" yaml:"exclusions"`
		DetectionMethods []DetectionMethod `mapstructure:"detection_methods" yaml:"detection_methods"`
	} `mapstructure:"transfers" yaml:"transfers"`

	Owners struct {
		Default string `mapstructure:"default" yaml:"default"`
	} `mapstructure:"owners" yaml:"owners"`

	AI struct {
		Enabled               bool   `mapstructure:"enabled" yaml:"enabled"`
		Model                 string `mapstructure:"model" yaml:"model"`
		APIKey                string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
		RequestsPerMinute     int    `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
		RequestsPerDay        int    `mapstructure:"requests_per_day" yaml:"requests_per_day"`
		TimeoutSeconds        int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		MaxRetries            int    `mapstructure:"max_retries" yaml:"max_retries"`
		RetryBaseDelaySeconds int    `mapstructure:"retry_base_delay_seconds" yaml:"retry_base_delay_seconds"`
		ConfidenceThreshold   int    `mapstructure:"confidence_threshold" yaml:"confidence_threshold"`
		PromptTemplate        string `mapstructure:"prompt_template" yaml:"prompt_template"`
		ResultLogFile         string `mapstructure:"result_log_file" yaml:"result_log_file"`
	} `mapstructure:"ai" yaml:"ai"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.budget-categorizer")
	v.AddConfigPath(".budget-categorizer")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix("BUDGET")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Log the error but don't fail - continue with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// 5. The API key always comes straight from the environment, unprefixed
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind GEMINI_API_KEY environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// CSV defaults
	v.SetDefault("csv.delimiter", ",")

	// Rule source defaults
	v.SetDefault("rules.file", "config/rules.yaml")
	v.SetDefault("rules.cache_file", "data/cache/rules_cache.yaml")
	v.SetDefault("rules.cache_ttl_minutes", 60)

	// Transfer detection defaults
	v.SetDefault("transfers.category.tier1", "Transfers")
	v.SetDefault("transfers.category.tier2", "Internal Transfer")
	v.SetDefault("transfers.category.tier3", "Between Own Accounts")
	v.SetDefault("transfers.own_accounts", []string{})

	// Owner defaults
	v.SetDefault("owners.default", "Unknown")

	// AI defaults (request budgets track the Gemini free tier)
	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.requests_per_minute", 15)
	v.SetDefault("ai.requests_per_day", 1500)
	v.SetDefault("ai.timeout_seconds", 30)
	v.SetDefault("ai.max_retries", 3)
	v.SetDefault("ai.retry_base_delay_seconds", 2)
	v.SetDefault("ai.confidence_threshold", 75)
	v.SetDefault("ai.result_log_file", "")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	// Validate CSV delimiter
	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	// Validate rule caching
	if config.Rules.CacheTTLMinutes < 0 {
		return fmt.Errorf("rules.cache_ttl_minutes must not be negative, got: %d", config.Rules.CacheTTLMinutes)
	}

	// Validate AI configuration. A missing API key is not an error here:
	// the container downgrades to rules-only categorization instead.
	if config.AI.Enabled {
		if config.AI.RequestsPerMinute < 1 || config.AI.RequestsPerMinute > 1000 {
			return fmt.Errorf("ai.requests_per_minute must be between 1 and 1000, got: %d", config.AI.RequestsPerMinute)
		}

		if config.AI.RequestsPerDay < 1 {
			return fmt.Errorf("ai.requests_per_day must be positive, got: %d", config.AI.RequestsPerDay)
		}

		if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
			return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d", config.AI.TimeoutSeconds)
		}

		if config.AI.ConfidenceThreshold < 0 || config.AI.ConfidenceThreshold > 100 {
			return fmt.Errorf("ai.confidence_threshold must be between 0 and 100, got: %d", config.AI.ConfidenceThreshold)
		}
	}

	return nil
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
