package generate

import (
	"context"
	"sync"
	"time"
)

// limiter enforces a minimum interval between any two outbound generation
// requests. The last-request timestamp is shared across all calls through
// the owning client; this is a single process-wide quota, not per-language
// or per-item.
type limiter struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
	now      func() time.Time
	sleep    func(ctx context.Context, d time.Duration) error
}

func newLimiter(interval time.Duration) *limiter {
	return &limiter{
		interval: interval,
		now:      time.Now,
		sleep:    sleepContext,
	}
}

// wait blocks until the next request may start. The lock is held across the
// sleep so concurrent callers serialize and each observes the full interval.
func (l *limiter) wait(ctx context.Context) error {
	if l.interval <= 0 {
		return ctx.Err()
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.last.IsZero() {
		if remaining := l.interval - l.now().Sub(l.last); remaining > 0 {
			if err := l.sleep(ctx, remaining); err != nil {
				return err
			}
		}
	}
	l.last = l.now()
	return ctx.Err()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
