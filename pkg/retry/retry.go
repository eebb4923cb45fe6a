package retry

import (
	"context"
	"time"

	"github.com/angelmondragon/warehouse-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/warehouse-backend/pkg/errors"
)

const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = 1 * time.Second
	defaultMaxDelay    = 4 * time.Second
)

// Policy bounds a retried operation: attempt count, backoff schedule, and the
// predicate separating retryable from fatal failures.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration

	// Retryable decides whether a failed attempt is worth repeating.
	// Defaults to the error taxonomy's retryability metadata, so
	// validation-class failures are never retried.
	Retryable func(error) bool
}

// FromConfig builds a policy from the retry config section.
func FromConfig(cfg config.RetryConfig) Policy {
	return Policy{
		MaxAttempts: cfg.MaxAttempts,
		BaseDelay:   cfg.BaseDelay,
		MaxDelay:    cfg.MaxDelay,
	}
}

func (p Policy) normalized() Policy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = defaultMaxAttempts
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = defaultBaseDelay
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = defaultMaxDelay
	}
	if p.Retryable == nil {
		p.Retryable = pkgerrors.IsRetryable
	}
	return p
}

// Do runs fn up to the policy's attempt budget, sleeping an exponentially
// growing delay between attempts. Fatal failures return immediately;
// exhaustion surfaces the last error as a dependency failure.
func Do(ctx context.Context, policy Policy, fn func(context.Context) error) error {
	p := policy.normalized()

	var lastErr error
	delay := p.BaseDelay
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if !p.Retryable(lastErr) {
			return lastErr
		}
		if attempt == p.MaxAttempts {
			break
		}
		if err := sleep(ctx, delay); err != nil {
			return err
		}
		delay = nextBackoff(delay, p.MaxDelay)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, lastErr, "retries exhausted")
}

func nextBackoff(current, max time.Duration) time.Duration {
	next := current * 2
	if next > max {
		return max
	}
	return next
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return pkgerrors.Wrap(pkgerrors.CodeDependency, ctx.Err(), "retry interrupted")
	case <-timer.C:
		return nil
	}
}
