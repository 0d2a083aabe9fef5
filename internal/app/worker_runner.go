package app

import (
	"context"
	"errors"

	"go.uber.org/dig"

	"rider-dispatch/internal/logx"
	"rider-dispatch/internal/service/sweeper"
	"rider-dispatch/internal/transport/kafka"
)

// WorkerRunner runs the background worker: the lock sweeper and, when Kafka
// is configured, the heartbeat consumer.
type WorkerRunner struct {
	runFn func(*dig.Container) error
}

// NewWorkerRunner returns a new WorkerRunner.
func NewWorkerRunner() *WorkerRunner {
	return &WorkerRunner{runFn: runWorker}
}

// MustRun runs the worker and panics on any error other than cancellation.
func (r *WorkerRunner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	panic(err)
}

type lockSweeper interface {
	Start(ctx context.Context) error
	Stop()
}

type heartbeatConsumer interface {
	Run(ctx context.Context) error
}

func runWorker(container *dig.Container) error {
	return container.Invoke(func(
		ctx context.Context,
		s *sweeper.Sweeper,
		consumer *kafka.Consumer,
		res *resources,
		logger logx.Logger,
	) error {
		var c heartbeatConsumer
		if consumer != nil {
			c = consumer
		}
		return workerRun(ctx, s, c, res, logger)
	})
}

func workerRun(ctx context.Context, s lockSweeper, consumer heartbeatConsumer, res *resources, logger logx.Logger) error {
	defer res.closeAll(logger)

	if err := s.Start(ctx); err != nil {
		return err
	}
	defer s.Stop()

	logger.Info("dispatch-worker started", logx.Bool("heartbeats", consumer != nil))
	if consumer == nil {
		<-ctx.Done()
		return ctx.Err()
	}
	return consumer.Run(ctx)
}
