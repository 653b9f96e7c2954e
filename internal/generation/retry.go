package generation

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Default retry bounds: 3 total attempts (1 initial + 2 retries) with a fixed
// 2 second backoff. Provider latency dominates, so there is no exponential
// growth; the attempt bound already caps total wait.
const (
	DefaultMaxAttempts = 3
	DefaultBackoff     = 2 * time.Second
)

// RetryPolicy bounds repeated attempts against a single provider.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// Backoff is the fixed wait between attempts.
	Backoff time.Duration

	// AttemptTimeout bounds each individual attempt. Zero means the caller's
	// context deadline alone applies.
	AttemptTimeout time.Duration
}

// normalized returns the policy with invalid fields replaced by defaults.
func (p RetryPolicy) normalized() RetryPolicy {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = DefaultMaxAttempts
	}
	if p.Backoff < 0 {
		p.Backoff = DefaultBackoff
	}
	return p
}

// CallWithRetry attempts provider.Generate up to policy.MaxAttempts times
// with a fixed backoff between attempts.
//
// Only OutcomeTransient and OutcomeEmpty are retried. OutcomeSuccess,
// OutcomeConfig, and OutcomeSafetyBlocked stop immediately: a missing
// credential does not come back on retry, and a safety verdict will not
// change for the same prompt. When attempts are exhausted the last outcome
// observed is returned.
//
// Each attempt runs under AttemptTimeout when set. Cancellation of the
// caller's context is honored both during attempts and during backoff waits.
func CallWithRetry(
	ctx context.Context,
	logger *slog.Logger,
	provider Provider,
	prompt string,
	policy RetryPolicy,
) Outcome {
	policy = policy.normalized()

	var outcome Outcome
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		logger.InfoContext(ctx, "calling provider",
			"provider", provider.Name(),
			"attempt", attempt,
			"max_attempts", policy.MaxAttempts)

		outcome = generateOnce(ctx, provider, prompt, policy.AttemptTimeout)

		if outcome.Kind == OutcomeSuccess {
			logger.InfoContext(ctx, "provider call succeeded",
				"provider", provider.Name(),
				"attempt", attempt,
				"text_length", len(outcome.Text))
			return outcome
		}

		logger.WarnContext(ctx, "provider call failed",
			"provider", provider.Name(),
			"attempt", attempt,
			"outcome", outcome.Kind.String(),
			"error", outcome.Err)

		if !outcome.Kind.Retryable() {
			return outcome
		}

		if attempt == policy.MaxAttempts {
			break
		}

		select {
		case <-time.After(policy.Backoff):
		case <-ctx.Done():
			logger.WarnContext(ctx, "call cancelled during retry backoff",
				"provider", provider.Name(),
				"attempt", attempt)
			return Transient(fmt.Errorf("%w: %v", ErrTransientFailure, ctx.Err()))
		}
	}

	logger.WarnContext(ctx, "provider attempts exhausted",
		"provider", provider.Name(),
		"max_attempts", policy.MaxAttempts,
		"outcome", outcome.Kind.String())
	return outcome
}

// generateOnce runs a single attempt under the per-attempt timeout.
func generateOnce(ctx context.Context, provider Provider, prompt string, timeout time.Duration) Outcome {
	if timeout > 0 {
		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return provider.Generate(attemptCtx, prompt)
	}
	return provider.Generate(ctx, prompt)
}
