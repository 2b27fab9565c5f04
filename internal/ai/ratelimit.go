package ai

import (
	"context"
	"sync"
	"time"
)

// Limiter enforces the local request budget ahead of the service's own
// limits: a sliding per-minute window that delays callers, and a daily
// counter that fails fast once spent. Both are process-local.
type Limiter struct {
	perMinute int
	perDay    int

	now   func() time.Time
	sleep func(time.Duration)

	mu       sync.Mutex
	window   []time.Time
	dayCount int
	dayStart time.Time
}

// NewLimiter creates a Limiter with the given per-minute and per-day budgets.
// Non-positive budgets disable the corresponding check.
func NewLimiter(perMinute, perDay int) *Limiter {
	return &Limiter{
		perMinute: perMinute,
		perDay:    perDay,
		now:       time.Now,
		sleep:     time.Sleep,
	}
}

// Acquire blocks until a request slot is available within the per-minute
// window, then consumes one daily unit. It returns ErrDailyQuotaExhausted
// when the daily budget is spent; the caller should not retry that.
func (l *Limiter) Acquire(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	if l.dayStart.IsZero() || now.Sub(l.dayStart) >= 24*time.Hour {
		l.dayStart = now
		l.dayCount = 0
	}
	if l.perDay > 0 && l.dayCount >= l.perDay {
		return ErrDailyQuotaExhausted
	}

	if l.perMinute > 0 {
		l.evict(now)
		// Holding the lock while waiting serializes callers behind the
		// window, which is the point of a client-side limiter.
		for len(l.window) >= l.perMinute {
			if err := ctx.Err(); err != nil {
				return err
			}
			wait := l.window[0].Add(time.Minute).Sub(now)
			if wait > 0 {
				l.sleep(wait)
			}
			now = l.now()
			l.evict(now)
		}
		l.window = append(l.window, now)
	}

	l.dayCount++
	return nil
}

// Remaining returns how many requests are left in the daily budget, or -1
// when the daily check is disabled.
func (l *Limiter) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.perDay <= 0 {
		return -1
	}
	remaining := l.perDay - l.dayCount
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (l *Limiter) evict(now time.Time) {
	cutoff := now.Add(-time.Minute)
	i := 0
	for i < len(l.window) && !l.window[i].After(cutoff) {
		i++
	}
	l.window = l.window[i:]
}
