package customers

import (
	"context"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"rider-dispatch/internal/logx"
)

type directory interface {
	Exists(ctx context.Context, customerID string) (bool, error)
}

type counter interface {
	Inc()
}

// RetryConfig describes how RetryingDirectory retries.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	// AttemptTimeout bounds a single call; zero leaves the caller's deadline.
	AttemptTimeout time.Duration
}

// RetryingDirectory retries transient directory failures with capped
// exponential backoff.
type RetryingDirectory struct {
	next    directory
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
	sleep   func(context.Context, time.Duration) bool
}

// NewRetryingDirectory wraps next. It returns nil when next is nil.
func NewRetryingDirectory(next directory, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingDirectory {
	if next == nil {
		return nil
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &RetryingDirectory{next: next, logger: logger, retries: retries, cfg: cfg, sleep: sleepWithContext}
}

// Exists calls the wrapped directory, retrying Unavailable,
// ResourceExhausted and DeadlineExceeded.
func (g *RetryingDirectory) Exists(ctx context.Context, customerID string) (bool, error) {
	var lastErr error
	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		ok, err := g.call(ctx, customerID)
		if err == nil {
			return ok, nil
		}
		lastErr = err
		if ctx.Err() != nil || attempt == g.cfg.MaxAttempts || !isRetryable(err) {
			break
		}

		delay := backoff(g.cfg.BaseDelay, g.cfg.MaxDelay, attempt)
		if g.retries != nil {
			g.retries.Inc()
		}
		g.logger.Warn("customer directory retry",
			logx.String("customer_id", customerID),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Err(err),
		)
		if !g.sleep(ctx, delay) {
			break
		}
	}
	return false, lastErr
}

func (g *RetryingDirectory) call(ctx context.Context, customerID string) (bool, error) {
	if g.cfg.AttemptTimeout <= 0 {
		return g.next.Exists(ctx, customerID)
	}
	ctx, cancel := context.WithTimeout(ctx, g.cfg.AttemptTimeout)
	defer cancel()
	return g.next.Exists(ctx, customerID)
}

func isRetryable(err error) bool {
	st, ok := status.FromError(err)
	if !ok {
		return false
	}
	switch st.Code() {
	case codes.ResourceExhausted,
		codes.Unavailable,
		codes.DeadlineExceeded:
		return true
	default:
		return false
	}
}

func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max || d < 0 {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
