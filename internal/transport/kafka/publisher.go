package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/IBM/sarama"

	"rider-dispatch/internal/domain"
)

var newSyncProducer = sarama.NewSyncProducer

// Publisher sends notifications and ledger records as JSON messages.
type Publisher struct {
	producer          sarama.SyncProducer
	notificationTopic string
	ledgerTopic       string
	now               func() time.Time
}

// NewPublisher connects a synchronous producer. It returns nil when no
// brokers or notification topic are configured.
func NewPublisher(brokers []string, notificationTopic, ledgerTopic string) (*Publisher, error) {
	if len(brokers) == 0 || strings.TrimSpace(notificationTopic) == "" {
		return nil, nil
	}
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3

	p, err := newSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return NewPublisherWithProducer(p, notificationTopic, ledgerTopic), nil
}

// NewPublisherWithProducer wraps an existing producer.
func NewPublisherWithProducer(p sarama.SyncProducer, notificationTopic, ledgerTopic string) *Publisher {
	return &Publisher{
		producer:          p,
		notificationTopic: strings.TrimSpace(notificationTopic),
		ledgerTopic:       strings.TrimSpace(ledgerTopic),
		now:               func() time.Time { return time.Now().UTC() },
	}
}

// Notify publishes n keyed by its target so one party's messages stay ordered.
func (p *Publisher) Notify(ctx context.Context, n domain.Notification) error {
	return p.send(ctx, p.notificationTopic, n.TargetID, NotificationDTO{
		TargetType: string(n.TargetType),
		TargetID:   n.TargetID,
		Message:    n.Message,
		Payload:    n.Payload,
		SentAt:     p.now(),
	})
}

// RecordDelivered publishes a completed delivery to the ledger topic, if any.
func (p *Publisher) RecordDelivered(ctx context.Context, d domain.Delivery) error {
	if p.ledgerTopic == "" {
		return nil
	}
	return p.send(ctx, p.ledgerTopic, d.ID, toLedger(d))
}

func (p *Publisher) send(ctx context.Context, topic, key string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s message: %w", topic, err)
	}
	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(b),
	})
	if err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}

// Close flushes and closes the producer.
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.producer.Close()
}
