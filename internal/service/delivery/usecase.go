package delivery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rider-dispatch/internal/apperr"
	"rider-dispatch/internal/domain"
	"rider-dispatch/internal/logx"
	"rider-dispatch/internal/metrics"
)

// Service is the delivery state machine. Every status change is a
// conditional update on the status the change was validated against.
type Service struct {
	deliveries       deliveryStore
	locks            courierLocks
	couriers         courierStats
	notifier         notifier
	metrics          *metrics.Dispatch
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// NewService creates a delivery Service.
func NewService(
	d deliveryStore,
	l courierLocks,
	c courierStats,
	n notifier,
	m *metrics.Dispatch,
	timeout time.Duration,
	logger logx.Logger,
) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if m == nil {
		m = metrics.NewDispatch()
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		deliveries:       d,
		locks:            l,
		couriers:         c,
		notifier:         n,
		metrics:          m,
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

// Get returns a delivery visible to actor.
func (s *Service) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Delivery, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	d, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isParty(actor, d) {
		return nil, fmt.Errorf("%w: not a party to delivery %s", apperr.ErrForbidden, id)
	}
	return d, nil
}

// Active returns the active delivery of a customer, courier or merchant,
// checked in that order. It returns nil when there is none.
func (s *Service) Active(ctx context.Context, partyID string) (*domain.Delivery, error) {
	partyID = strings.TrimSpace(partyID)
	if partyID == "" {
		return nil, fmt.Errorf("%w: empty party id", apperr.ErrInvalid)
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	lookups := []func(context.Context, string) (*domain.Delivery, error){
		s.deliveries.ActiveByCustomer,
		s.deliveries.ActiveByCourier,
		s.deliveries.ActiveByMerchant,
	}
	for _, lookup := range lookups {
		d, err := lookup(ctx, partyID)
		if err != nil {
			return nil, err
		}
		if d != nil {
			return d, nil
		}
	}
	return nil, nil
}

// AssignCourier commits a courier already locked by dispatch to a pending delivery.
func (s *Service) AssignCourier(ctx context.Context, id, courierID string) (*domain.Delivery, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	d, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, domain.SystemActor, d, domain.Transition{
		To:        domain.DeliveryRiderAssigned,
		CourierID: courierID,
	})
}

// CancelNoRiders cancels a pending delivery after dispatch ran out of attempts.
func (s *Service) CancelNoRiders(ctx context.Context, id string) (*domain.Delivery, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	d, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.Status != domain.DeliveryPending {
		return nil, &domain.TransitionError{Current: d.Status, Requested: domain.DeliveryCancelled}
	}
	return s.apply(ctx, domain.SystemActor, d, domain.Transition{
		To:           domain.DeliveryCancelled,
		CancelReason: domain.CancelReasonNoRiders,
	})
}

// Accept lets a courier take a pending delivery directly.
func (s *Service) Accept(ctx context.Context, actor domain.Actor, id string) (*domain.Delivery, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	d, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.CheckTransition(d.Status, domain.DeliveryRiderAssigned, actor.Role); err != nil {
		return nil, err
	}

	locked, err := s.locks.LockCourier(ctx, actor.ID, d.ID, d.VehicleClass)
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, fmt.Errorf("%w: courier %s is not available for a %s delivery", apperr.ErrConflict, actor.ID, d.VehicleClass)
	}

	out, err := s.apply(ctx, actor, d, domain.Transition{
		To:        domain.DeliveryRiderAssigned,
		CourierID: actor.ID,
	})
	if err != nil {
		s.release(ctx, actor.ID, d.ID)
		return nil, err
	}
	return out, nil
}

// ArriveAtMerchant records that the courier reached the pickup point.
func (s *Service) ArriveAtMerchant(ctx context.Context, actor domain.Actor, id string) (*domain.Delivery, error) {
	return s.courierStep(ctx, actor, id, domain.DeliveryAtMerchant, nil)
}

// MarkPickedUp records that the courier collected the order.
func (s *Service) MarkPickedUp(ctx context.Context, actor domain.Actor, id string) (*domain.Delivery, error) {
	return s.courierStep(ctx, actor, id, domain.DeliveryPickedUp, nil)
}

// StartTransit records that the courier left for the drop-off.
func (s *Service) StartTransit(ctx context.Context, actor domain.Actor, id string) (*domain.Delivery, error) {
	return s.courierStep(ctx, actor, id, domain.DeliveryInTransit, nil)
}

// MarkArrived records that the courier reached the drop-off.
func (s *Service) MarkArrived(ctx context.Context, actor domain.Actor, id string) (*domain.Delivery, error) {
	return s.courierStep(ctx, actor, id, domain.DeliveryArrived, nil)
}

// Complete finishes the delivery with proof of handover.
func (s *Service) Complete(ctx context.Context, actor domain.Actor, id string, proof domain.Proof) (*domain.Delivery, error) {
	proof.RecipientName = strings.TrimSpace(proof.RecipientName)
	if proof.RecipientName == "" {
		return nil, fmt.Errorf("%w: recipient name is required", apperr.ErrInvalid)
	}
	return s.courierStep(ctx, actor, id, domain.DeliveryDelivered, &proof)
}

func (s *Service) courierStep(ctx context.Context, actor domain.Actor, id string, to domain.DeliveryStatus, proof *domain.Proof) (*domain.Delivery, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	d, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleCourier && d.CourierID != actor.ID {
		return nil, fmt.Errorf("%w: delivery %s is not assigned to courier %s", apperr.ErrForbidden, id, actor.ID)
	}
	return s.apply(ctx, actor, d, domain.Transition{To: to, Proof: proof})
}

// Cancel cancels a delivery before pickup on behalf of its customer or merchant.
func (s *Service) Cancel(ctx context.Context, actor domain.Actor, id, reason string) (*domain.Delivery, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	d, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	switch actor.Role {
	case domain.RoleCustomer, domain.RoleMerchant:
		if !isParty(actor, d) {
			return nil, fmt.Errorf("%w: not a party to delivery %s", apperr.ErrForbidden, id)
		}
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "cancelled_by_" + string(actor.Role)
	}
	return s.apply(ctx, actor, d, domain.Transition{
		To:           domain.DeliveryCancelled,
		CancelReason: reason,
	})
}

// Rate stores a 1..5 score on a delivered delivery, once per side. The
// customer rates the courier and the courier rates the customer.
func (s *Service) Rate(ctx context.Context, actor domain.Actor, id string, score int) (*domain.Delivery, error) {
	if score < 1 || score > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", apperr.ErrInvalid)
	}
	if actor.Role != domain.RoleCustomer && actor.Role != domain.RoleCourier {
		return nil, fmt.Errorf("%w: role %s cannot rate", apperr.ErrForbidden, actor.Role)
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	d, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isParty(actor, d) {
		return nil, fmt.Errorf("%w: not a party to delivery %s", apperr.ErrForbidden, id)
	}
	if d.Status != domain.DeliveryDelivered {
		return nil, fmt.Errorf("%w: delivery %s is %s, only delivered deliveries can be rated", apperr.ErrConflict, id, d.Status)
	}

	ok, err := s.deliveries.Rate(ctx, id, actor.Role, score)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: delivery %s already rated by %s", apperr.ErrConflict, id, actor.Role)
	}

	v := score
	if actor.Role == domain.RoleCustomer {
		d.CustomerRating = &v
		if err := s.couriers.RefreshRating(ctx, d.CourierID); err != nil {
			s.logger.Warn("refresh courier rating", logx.String("courier_id", d.CourierID), logx.Err(err))
		}
	} else {
		d.CourierRating = &v
	}
	return d, nil
}

func (s *Service) load(ctx context.Context, id string) (*domain.Delivery, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: empty delivery id", apperr.ErrInvalid)
	}
	d, err := s.deliveries.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, fmt.Errorf("%w: delivery %s", apperr.ErrNotFound, id)
	}
	return d, nil
}

// apply validates and commits t against d's current status, then runs the
// side effects of the new status.
func (s *Service) apply(ctx context.Context, actor domain.Actor, d *domain.Delivery, t domain.Transition) (*domain.Delivery, error) {
	if err := domain.CheckTransition(d.Status, t.To, actor.Role); err != nil {
		return nil, err
	}
	t.DeliveryID = d.ID
	t.From = d.Status
	t.At = s.now()

	ok, err := s.deliveries.Transition(ctx, t)
	if err != nil {
		return nil, err
	}
	if !ok {
		current := d.Status
		if fresh, gerr := s.deliveries.Get(ctx, d.ID); gerr == nil && fresh != nil {
			current = fresh.Status
		}
		return nil, &domain.TransitionError{Current: current, Requested: t.To}
	}

	out := *d
	out.Status = t.To
	out.Timestamps.Set(t.To, t.At)
	if t.CourierID != "" {
		out.CourierID = t.CourierID
	}
	if t.CancelReason != "" {
		out.CancelReason = t.CancelReason
	}
	if t.Proof != nil {
		out.Proof = t.Proof
	}

	s.metrics.Transitions.WithLabelValues(string(t.To)).Inc()
	s.logger.Info("delivery transition",
		logx.String("event", "delivery_transition"),
		logx.String("delivery_id", out.ID),
		logx.String("from", string(t.From)),
		logx.String("to", string(t.To)),
		logx.String("actor_role", string(actor.Role)),
		logx.String("actor_id", actor.ID),
	)

	s.afterTransition(ctx, actor, out)
	return &out, nil
}

func (s *Service) afterTransition(ctx context.Context, actor domain.Actor, d domain.Delivery) {
	if d.CourierID != "" {
		if d.Status.IsTerminal() {
			s.release(ctx, d.CourierID, d.ID)
		} else if _, err := s.locks.Touch(ctx, d.CourierID, d.ID); err != nil {
			s.logger.Warn("refresh courier lock", logx.String("courier_id", d.CourierID), logx.Err(err))
		}
	}
	if d.Status == domain.DeliveryDelivered {
		if err := s.couriers.IncrementDeliveries(ctx, d.CourierID); err != nil {
			s.logger.Warn("increment deliveries", logx.String("courier_id", d.CourierID), logx.Err(err))
		}
		s.notifier.RecordDelivered(d)
	}
	for _, n := range notificationsFor(d, actor) {
		s.notifier.Notify(n)
	}
}

func (s *Service) release(ctx context.Context, courierID, deliveryID string) {
	if _, err := s.locks.ReleaseFor(ctx, courierID, deliveryID); err != nil {
		s.logger.Warn("release courier lock",
			logx.String("courier_id", courierID),
			logx.String("delivery_id", deliveryID),
			logx.Err(err),
		)
	}
}

func isParty(actor domain.Actor, d *domain.Delivery) bool {
	switch actor.Role {
	case domain.RoleSystem:
		return true
	case domain.RoleCustomer:
		return actor.ID == d.CustomerID
	case domain.RoleCourier:
		return d.CourierID != "" && actor.ID == d.CourierID
	case domain.RoleMerchant:
		return actor.ID == d.MerchantRef
	}
	return false
}
