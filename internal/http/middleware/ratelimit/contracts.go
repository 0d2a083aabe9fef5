package ratelimit

import "time"

// Limiter decides whether a request under key may proceed. When it may not,
// retryAfter estimates how long until it would.
type Limiter interface {
	Allow(key string) (ok bool, retryAfter time.Duration)
}
