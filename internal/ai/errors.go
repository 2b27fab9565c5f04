// Package ai provides the AI classification fallback: a Gemini-backed
// classifier behind a client-side rate limiter with bounded retries.
package ai

import "errors"

var (
	// ErrRateLimited marks a transient refusal by the classification service.
	// It is the only error the retry loop backs off and retries on.
	ErrRateLimited = errors.New("rate limited by classification service")

	// ErrDailyQuotaExhausted means the local daily request budget is spent.
	// Waiting minutes will not help, so callers fail fast instead of queueing.
	ErrDailyQuotaExhausted = errors.New("daily AI request quota exhausted")

	// ErrMaxRetries means the retry budget ran out without a success.
	ErrMaxRetries = errors.New("max retries exceeded")
)
