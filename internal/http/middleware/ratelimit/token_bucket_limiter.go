package ratelimit

import (
	"sync"
	"time"
)

// Config stores TokenBucketLimiter settings.
type Config struct {
	Rate       float64       // tokens per second
	Burst      int           // bucket capacity
	TTL        time.Duration // idle buckets are dropped after this (0 keeps them)
	MaxBuckets int           // new keys are refused beyond this (0 is unbounded)
}

// TokenBucketLimiter keeps one token bucket per key.
type TokenBucketLimiter struct {
	cfg   Config
	clock Clock

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

type bucket struct {
	tokens   float64
	refilled time.Time
	seen     time.Time
}

// NewTokenBucketLimiter creates a limiter; a nil clock uses wall time.
func NewTokenBucketLimiter(clock Clock, cfg Config) *TokenBucketLimiter {
	if clock == nil {
		clock = RealClock{}
	}
	if cfg.Rate <= 0 {
		cfg.Rate = 1
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.MaxBuckets < 0 {
		cfg.MaxBuckets = 0
	}
	return &TokenBucketLimiter{
		cfg:     cfg,
		clock:   clock,
		buckets: make(map[string]*bucket),
	}
}

// Allow takes one token from key's bucket.
func (l *TokenBucketLimiter) Allow(key string) (bool, time.Duration) {
	now := l.clock.Now()
	burst := float64(l.cfg.Burst)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now)

	b, ok := l.buckets[key]
	if !ok {
		if l.cfg.MaxBuckets > 0 && len(l.buckets) >= l.cfg.MaxBuckets {
			return false, time.Second
		}
		b = &bucket{tokens: burst, refilled: now}
		l.buckets[key] = b
	}
	b.seen = now

	if dt := now.Sub(b.refilled); dt > 0 {
		b.tokens += dt.Seconds() * l.cfg.Rate
		if b.tokens > burst {
			b.tokens = burst
		}
		b.refilled = now
	}
	if b.tokens >= 1 {
		b.tokens--
		return true, 0
	}
	missing := 1 - b.tokens
	return false, time.Duration(missing / l.cfg.Rate * float64(time.Second))
}

// Len reports how many buckets are tracked.
func (l *TokenBucketLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// sweep drops idle buckets at most once per max(TTL/2, 1m). Callers hold mu.
func (l *TokenBucketLimiter) sweep(now time.Time) {
	if l.cfg.TTL <= 0 {
		return
	}
	interval := time.Minute
	if half := l.cfg.TTL / 2; half > interval {
		interval = half
	}
	if !l.lastSweep.IsZero() && now.Sub(l.lastSweep) < interval {
		return
	}
	l.lastSweep = now
	for k, b := range l.buckets {
		if now.Sub(b.seen) > l.cfg.TTL {
			delete(l.buckets, k)
		}
	}
}
