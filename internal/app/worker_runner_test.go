package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	testlog "rider-dispatch/internal/testutil"
)

type fakeSweeper struct {
	startErr error
	started  bool
	stopped  bool
}

func (f *fakeSweeper) Start(context.Context) error {
	f.started = true
	return f.startErr
}

func (f *fakeSweeper) Stop() { f.stopped = true }

type fakeConsumer struct {
	err error
}

func (f fakeConsumer) Run(ctx context.Context) error {
	if f.err != nil {
		return f.err
	}
	<-ctx.Done()
	return ctx.Err()
}

func TestWorkerRunner_MustRun_NoPanicOnNil(t *testing.T) {
	r := &WorkerRunner{runFn: func(*dig.Container) error { return nil }}
	require.NotPanics(t, func() { r.MustRun(dig.New()) })
}

func TestWorkerRunner_MustRun_NoPanicOnCanceled(t *testing.T) {
	r := &WorkerRunner{runFn: func(*dig.Container) error { return context.Canceled }}
	require.NotPanics(t, func() { r.MustRun(dig.New()) })
}

func TestWorkerRunner_MustRun_PanicsOnOtherError(t *testing.T) {
	r := &WorkerRunner{runFn: func(*dig.Container) error { return errors.New("boom") }}
	require.Panics(t, func() { r.MustRun(dig.New()) })
}

func TestWorkerRun_WithoutConsumer_WaitsForContext(t *testing.T) {
	rec := testlog.New()
	res := newResources()
	closed := false
	res.add("probe", func() error {
		closed = true
		return nil
	})
	s := &fakeSweeper{}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := workerRun(ctx, s, nil, res, rec.Logger())

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, s.started)
	assert.True(t, s.stopped)
	assert.True(t, closed)
	e, ok := rec.Find("dispatch-worker started")
	require.True(t, ok)
	v, _ := e.Field("heartbeats")
	assert.Equal(t, false, v)
}

func TestWorkerRun_ConsumerError(t *testing.T) {
	s := &fakeSweeper{}
	sentinel := errors.New("broker gone")
	err := workerRun(context.Background(), s, fakeConsumer{err: sentinel}, newResources(), testlog.New().Logger())
	require.ErrorIs(t, err, sentinel)
	assert.True(t, s.stopped)
}

func TestWorkerRun_SweeperStartError(t *testing.T) {
	s := &fakeSweeper{startErr: errors.New("bad schedule")}
	err := workerRun(context.Background(), s, fakeConsumer{}, newResources(), testlog.New().Logger())
	require.EqualError(t, err, "bad schedule")
	assert.False(t, s.stopped)
}
