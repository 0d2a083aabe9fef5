package sweeper

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"rider-dispatch/internal/logx"
	"rider-dispatch/internal/metrics"
)

type staleReleaser interface {
	ReleaseStale(ctx context.Context, before time.Time) ([]string, error)
}

// Sweeper force-releases courier locks that saw no progress for longer than the TTL.
type Sweeper struct {
	locks    staleReleaser
	ttl      time.Duration
	schedule string
	metrics  *metrics.Dispatch
	logger   logx.Logger
	now      func() time.Time

	mu   sync.Mutex
	cron *cron.Cron
}

// New creates a Sweeper.
func New(locks staleReleaser, ttl time.Duration, schedule string, m *metrics.Dispatch, logger logx.Logger) *Sweeper {
	if m == nil {
		m = metrics.NewDispatch()
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Sweeper{
		locks:    locks,
		ttl:      ttl,
		schedule: schedule,
		metrics:  m,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Sweep releases every stale lock once and returns the released courier IDs.
func (s *Sweeper) Sweep(ctx context.Context) ([]string, error) {
	cutoff := s.now().Add(-s.ttl)
	ids, err := s.locks.ReleaseStale(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("release stale locks: %w", err)
	}
	for _, id := range ids {
		s.logger.Warn("courier lock swept",
			logx.String("event", "courier_lock_swept"),
			logx.String("courier_id", id),
			logx.Time("cutoff", cutoff),
		)
	}
	s.metrics.SweptLocks.Add(float64(len(ids)))
	return ids, nil
}

// Start schedules Sweep. Runs that would overlap a previous one are skipped.
func (s *Sweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron != nil {
		return fmt.Errorf("sweeper already started")
	}

	cl := cronLogger{logger: s.logger}
	c := cron.New(cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)), cron.WithLogger(cl))
	_, err := c.AddFunc(s.schedule, func() {
		if _, err := s.Sweep(ctx); err != nil {
			s.logger.Error("lock sweep failed", logx.Err(err))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %q: %w", s.schedule, err)
	}
	c.Start()
	s.cron = c
	s.logger.Info("lock sweeper started",
		logx.String("schedule", s.schedule),
		logx.Duration("ttl", s.ttl),
	)
	return nil
}

// Stop stops the schedule and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()
	if c == nil {
		return
	}
	<-c.Stop().Done()
	s.logger.Info("lock sweeper stopped")
}

type cronLogger struct {
	logger logx.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, kvFields(keysAndValues)...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(kvFields(keysAndValues), logx.Err(err))...)
}

func kvFields(kv []any) []logx.Field {
	out := make([]logx.Field, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, logx.Any(fmt.Sprint(kv[i]), kv[i+1]))
	}
	return out
}
