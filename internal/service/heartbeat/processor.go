package heartbeat

import (
	"context"
	"fmt"
	"strings"

	"rider-dispatch/internal/apperr"
	"rider-dispatch/internal/domain"
	"rider-dispatch/internal/logx"
)

// Processor turns courier presence events into courier service calls.
type Processor struct {
	couriers CourierPort
	factory  *actionFactory
	logger   logx.Logger
}

// NewProcessor creates a Processor.
func NewProcessor(couriers CourierPort, logger logx.Logger) *Processor {
	if logger == nil {
		logger = logx.Nop()
	}
	p := &Processor{couriers: couriers, logger: logger}
	p.factory = newActionFactory(
		p.report(domain.CourierAvailable),
		p.report(domain.CourierOffline),
		p.report(domain.CourierBusy),
		p.report(""),
	)
	return p
}

// Handle processes a single Event. Unknown kinds are ignored; malformed
// events fail with apperr.ErrInvalid.
func (p *Processor) Handle(ctx context.Context, e Event) error {
	if p.factory == nil {
		return nil
	}
	fn, ok := p.factory.get(e.Kind)
	if !ok {
		p.logger.Debug("heartbeat kind ignored",
			logx.String("courier_id", e.CourierID),
			logx.String("kind", e.Kind),
		)
		return nil
	}
	if strings.TrimSpace(e.CourierID) == "" {
		return fmt.Errorf("%w: heartbeat without courier id", apperr.ErrInvalid)
	}
	if e.Location == nil {
		return fmt.Errorf("%w: heartbeat for %s without location", apperr.ErrInvalid, e.CourierID)
	}
	return fn(ctx, e)
}

func (p *Processor) report(status domain.CourierStatus) actionFunc {
	return func(ctx context.Context, e Event) error {
		_, err := p.couriers.Heartbeat(ctx, domain.Heartbeat{
			CourierID: strings.TrimSpace(e.CourierID),
			Status:    status,
			Location:  *e.Location,
			At:        e.At,
		})
		if err != nil {
			return fmt.Errorf("heartbeat %s: %w", e.CourierID, err)
		}
		return nil
	}
}
