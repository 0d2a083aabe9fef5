package app

import (
	"context"
	"errors"

	"go.uber.org/dig"

	"rider-dispatch/internal/apperr"
	"rider-dispatch/internal/config"
	"rider-dispatch/internal/logx"
	"rider-dispatch/internal/service/courier"
	"rider-dispatch/internal/service/heartbeat"
	"rider-dispatch/internal/transport/kafka"
)

type heartbeatHandler interface {
	Handle(ctx context.Context, e heartbeat.Event) error
}

// makeHeartbeatKafka adapts the processor to the consumer. Events that can
// never succeed are marked permanent so the consumer skips them.
func makeHeartbeatKafka(p heartbeatHandler) kafka.HandleFunc {
	return func(ctx context.Context, e heartbeat.Event) error {
		err := p.Handle(ctx, e)
		if err == nil {
			return nil
		}
		if errors.Is(err, apperr.ErrInvalid) || errors.Is(err, apperr.ErrNotFound) {
			return kafka.Permanent(err)
		}
		return err
	}
}

func registerWorker(container *dig.Container) error {
	if err := registerDomain(container); err != nil {
		return err
	}
	return provideAll(container,
		func(svc *courier.Service, logger logx.Logger) *heartbeat.Processor {
			return heartbeat.NewProcessor(svc, logger.With(logx.String("component", "heartbeat")))
		},
		newHeartbeatConsumer,
	)
}

// newHeartbeatConsumer returns nil when Kafka is not configured.
func newHeartbeatConsumer(cfg *config.Config, p *heartbeat.Processor, res *resources, logger logx.Logger) (*kafka.Consumer, error) {
	k := cfg.Kafka
	if !k.Enabled() || k.HeartbeatTopic == "" {
		return nil, nil
	}
	c, err := kafka.NewConsumer(logger, k.Brokers, k.GroupID, k.HeartbeatTopic, makeHeartbeatKafka(p))
	if err != nil {
		return nil, err
	}
	if c != nil {
		res.add("kafka consumer", c.Close)
	}
	return c, nil
}
