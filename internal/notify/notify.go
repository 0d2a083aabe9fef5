// Package notify delivers courier/customer/merchant notifications and ledger
// events without ever blocking or failing the caller.
package notify

import (
	"context"
	"sync"
	"time"

	"rider-dispatch/internal/domain"
	"rider-dispatch/internal/logx"
)

const defaultTimeout = 5 * time.Second

// Notifier sends one notification.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification) error
}

// Ledger receives completed deliveries for earnings reconciliation.
type Ledger interface {
	RecordDelivered(ctx context.Context, d domain.Delivery) error
}

// FireAndForget runs every call in its own goroutine bounded by a timeout.
// Failures are logged and dropped.
type FireAndForget struct {
	notifier Notifier
	ledger   Ledger
	timeout  time.Duration
	logger   logx.Logger
	wg       sync.WaitGroup
}

// NewFireAndForget wraps a notifier and a ledger.
func NewFireAndForget(n Notifier, l Ledger, timeout time.Duration, logger logx.Logger) *FireAndForget {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &FireAndForget{notifier: n, ledger: l, timeout: timeout, logger: logger}
}

// Notify sends n in the background.
func (f *FireAndForget) Notify(n domain.Notification) {
	f.spawn(func(ctx context.Context) error {
		return f.notifier.Notify(ctx, n)
	}, logx.String("kind", "notification"),
		logx.String("target_type", string(n.TargetType)),
		logx.String("target_id", n.TargetID),
	)
}

// RecordDelivered hands d to the ledger in the background.
func (f *FireAndForget) RecordDelivered(d domain.Delivery) {
	if f.ledger == nil {
		return
	}
	f.spawn(func(ctx context.Context) error {
		return f.ledger.RecordDelivered(ctx, d)
	}, logx.String("kind", "ledger"), logx.String("delivery_id", d.ID))
}

func (f *FireAndForget) spawn(fn func(context.Context) error, fields ...logx.Field) {
	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				f.logger.Error("notification panicked", append(fields, logx.Any("panic", r))...)
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			f.logger.Warn("notification failed",
				append(fields, logx.String("event", "notification_failed"), logx.Err(err))...)
		}
	}()
}

// Wait blocks until every pending call has finished.
func (f *FireAndForget) Wait() {
	f.wg.Wait()
}

// LogNotifier writes notifications and ledger events to the log. It stands in
// when no broker is configured.
type LogNotifier struct {
	logger logx.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(logger logx.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs n.
func (l *LogNotifier) Notify(_ context.Context, n domain.Notification) error {
	l.logger.Info("notification",
		logx.String("target_type", string(n.TargetType)),
		logx.String("target_id", n.TargetID),
		logx.String("message", n.Message),
		logx.Any("payload", n.Payload),
	)
	return nil
}

// RecordDelivered logs the completed delivery.
func (l *LogNotifier) RecordDelivered(_ context.Context, d domain.Delivery) error {
	l.logger.Info("ledger delivery",
		logx.String("delivery_id", d.ID),
		logx.String("courier_id", d.CourierID),
		logx.Float64("total", d.Fare.Total),
		logx.String("currency", d.Fare.Currency),
	)
	return nil
}
