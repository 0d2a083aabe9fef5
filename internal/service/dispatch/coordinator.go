package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"rider-dispatch/internal/apperr"
	"rider-dispatch/internal/domain"
	"rider-dispatch/internal/logx"
	"rider-dispatch/internal/metrics"
	"rider-dispatch/internal/service/locator"
)

const (
	defaultVehicleClass = domain.VehicleMotorcycle
	resumeBatch         = 500
)

// Config tunes the assignment loop.
type Config struct {
	MaxAttempts      int
	InitialRadiusKm  float64
	RadiusStepKm     float64
	Backoff          time.Duration
	Workers          int
	OperationTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.InitialRadiusKm <= 0 {
		c.InitialRadiusKm = 5
	}
	if c.RadiusStepKm < 0 {
		c.RadiusStepKm = 0
	}
	if c.Workers <= 0 {
		c.Workers = 64
	}
	if c.OperationTimeout <= 0 {
		c.OperationTimeout = 3 * time.Second
	}
	return c
}

// RadiusKm returns the search radius of the given 1-based attempt.
func (c Config) RadiusKm(attempt int) float64 {
	return c.InitialRadiusKm + c.RadiusStepKm*float64(attempt-1)
}

// Receipt is returned to the customer as soon as a delivery is accepted.
type Receipt struct {
	DeliveryID string
	Status     domain.DeliveryStatus
	Fare       domain.FareQuote
}

// Option customises a Coordinator.
type Option func(*Coordinator)

// WithSleep replaces the backoff sleep.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Coordinator) {
		if fn != nil {
			c.sleep = fn
		}
	}
}

// WithClock replaces the clock used for fares and timestamps.
func WithClock(fn func() time.Time) Option {
	return func(c *Coordinator) {
		if fn != nil {
			c.now = fn
		}
	}
}

// WithIDGenerator replaces the delivery id generator.
func WithIDGenerator(fn func() string) Option {
	return func(c *Coordinator) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// Coordinator accepts delivery requests and assigns couriers in the background.
type Coordinator struct {
	customers  customerDirectory
	deliveries deliveryStore
	locator    courierLocator
	machine    stateMachine
	fares      fareQuoter
	cfg        Config
	metrics    *metrics.Dispatch
	logger     logx.Logger

	sem    *semaphore.Weighted
	wg     sync.WaitGroup
	base   context.Context
	cancel context.CancelFunc

	sleep func(ctx context.Context, d time.Duration) error
	now   func() time.Time
	newID func() string
}

// New creates a Coordinator. Assignment tasks run on a context owned by the
// Coordinator, so they outlive the request that scheduled them.
func New(
	customers customerDirectory,
	deliveries deliveryStore,
	loc courierLocator,
	machine stateMachine,
	fares fareQuoter,
	cfg Config,
	m *metrics.Dispatch,
	logger logx.Logger,
	opts ...Option,
) *Coordinator {
	cfg = cfg.withDefaults()
	if m == nil {
		m = metrics.NewDispatch()
	}
	if logger == nil {
		logger = logx.Nop()
	}
	base, cancel := context.WithCancel(context.Background())
	c := &Coordinator{
		customers:  customers,
		deliveries: deliveries,
		locator:    loc,
		machine:    machine,
		fares:      fares,
		cfg:        cfg,
		metrics:    m,
		logger:     logger,
		sem:        semaphore.NewWeighted(int64(cfg.Workers)),
		base:       base,
		cancel:     cancel,
		sleep:      sleepContext,
		now:        func() time.Time { return time.Now().UTC() },
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (c *Coordinator) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.cfg.OperationTimeout)
}

// Quote prices a request without persisting anything.
func (c *Coordinator) Quote(req domain.DeliveryRequest) (domain.FareQuote, error) {
	req, err := normalize(req)
	if err != nil {
		return domain.FareQuote{}, err
	}
	return c.fares.Quote(req.Pickup, req.Dropoff, req.VehicleClass, c.now())
}

// RequestDelivery creates a pending delivery for the customer and schedules
// courier assignment. It never waits for the search.
func (c *Coordinator) RequestDelivery(ctx context.Context, customerID string, req domain.DeliveryRequest) (Receipt, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return Receipt{}, fmt.Errorf("%w: empty customer id", apperr.ErrInvalid)
	}
	req, err := normalize(req)
	if err != nil {
		return Receipt{}, err
	}

	opCtx, cancel := c.withTimeout(ctx)
	defer cancel()

	ok, err := c.customers.Exists(opCtx, customerID)
	if err != nil {
		return Receipt{}, fmt.Errorf("lookup customer %s: %w", customerID, err)
	}
	if !ok {
		return Receipt{}, fmt.Errorf("%w: customer %s", apperr.ErrNotFound, customerID)
	}

	active, err := c.deliveries.ActiveByCustomer(opCtx, customerID)
	if err != nil {
		return Receipt{}, err
	}
	if active != nil {
		return Receipt{}, fmt.Errorf("%w: customer %s already has active delivery %s", apperr.ErrConflict, customerID, active.ID)
	}

	now := c.now()
	quote, err := c.fares.Quote(req.Pickup, req.Dropoff, req.VehicleClass, now)
	if err != nil {
		return Receipt{}, err
	}

	d := &domain.Delivery{
		ID:           c.newID(),
		CustomerID:   customerID,
		MerchantRef:  req.MerchantRef,
		Pickup:       req.Pickup,
		Dropoff:      req.Dropoff,
		VehicleClass: req.VehicleClass,
		ItemCount:    req.ItemCount,
		Instructions: req.Instructions,
		Status:       domain.DeliveryPending,
		Fare:         quote,
		Timestamps:   domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
	if err := c.deliveries.Create(opCtx, d); err != nil {
		return Receipt{}, err
	}

	c.logger.Info("delivery requested",
		logx.String("event", "delivery_requested"),
		logx.String("delivery_id", d.ID),
		logx.String("customer_id", customerID),
		logx.String("vehicle_class", string(d.VehicleClass)),
		logx.Float64("fare_total", quote.Total),
	)

	c.schedule(*d)
	return Receipt{DeliveryID: d.ID, Status: d.Status, Fare: quote}, nil
}

func normalize(req domain.DeliveryRequest) (domain.DeliveryRequest, error) {
	if err := req.Pickup.Validate(); err != nil {
		return req, fmt.Errorf("%w: pickup: %v", apperr.ErrInvalid, err)
	}
	if err := req.Dropoff.Validate(); err != nil {
		return req, fmt.Errorf("%w: dropoff: %v", apperr.ErrInvalid, err)
	}
	if req.VehicleClass == "" {
		req.VehicleClass = defaultVehicleClass
	}
	if !req.VehicleClass.Valid() {
		return req, fmt.Errorf("%w: unknown vehicle class %q", apperr.ErrInvalid, req.VehicleClass)
	}
	if req.ItemCount < 0 {
		return req, fmt.Errorf("%w: item count must not be negative", apperr.ErrInvalid)
	}
	if req.ItemCount == 0 {
		req.ItemCount = 1
	}
	req.MerchantRef = strings.TrimSpace(req.MerchantRef)
	req.Instructions = strings.TrimSpace(req.Instructions)
	return req, nil
}

// ResumePending schedules assignment for deliveries left pending by a
// previous process and returns how many were picked up.
func (c *Coordinator) ResumePending(ctx context.Context) (int, error) {
	opCtx, cancel := c.withTimeout(ctx)
	defer cancel()
	pending, err := c.deliveries.ListByStatus(opCtx, domain.DeliveryPending, resumeBatch)
	if err != nil {
		return 0, fmt.Errorf("list pending deliveries: %w", err)
	}
	for _, d := range pending {
		c.schedule(d)
	}
	if len(pending) > 0 {
		c.logger.Info("resumed pending deliveries", logx.Int("count", len(pending)))
	}
	return len(pending), nil
}

// Wait blocks until every scheduled assignment has finished.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

// Close stops the backoff of running assignments and waits for them.
func (c *Coordinator) Close() {
	c.cancel()
	c.wg.Wait()
}

func (c *Coordinator) schedule(d domain.Delivery) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := c.sem.Acquire(c.base, 1); err != nil {
			c.logger.Warn("dispatch not started", logx.String("delivery_id", d.ID), logx.Err(err))
			return
		}
		defer c.sem.Release(1)
		c.assign(c.base, d)
	}()
}

func (c *Coordinator) assign(ctx context.Context, d domain.Delivery) {
	logger := c.logger.With(logx.String("delivery_id", d.ID))
	var (
		excluded []string
		// lastErr is the failure of the latest attempt, nil when it was a miss
		lastErr error
	)

	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		if attempt > 1 {
			if err := c.sleep(ctx, c.cfg.Backoff); err != nil {
				logger.Warn("dispatch interrupted", logx.Int("attempt", attempt), logx.Err(err))
				return
			}
		}

		current, err := c.get(ctx, d.ID)
		if err != nil {
			c.metrics.Attempts.WithLabelValues(metrics.OutcomeError).Inc()
			logger.Error("reload delivery", logx.Int("attempt", attempt), logx.Err(err))
			lastErr = err
			continue
		}
		if current == nil || current.Status != domain.DeliveryPending {
			logger.Info("dispatch stopped, delivery no longer pending", logx.Int("attempt", attempt))
			return
		}

		radius := c.cfg.RadiusKm(attempt)
		res, err := c.findAndLock(ctx, locator.LockRequest{
			Pickup:       d.Pickup,
			VehicleClass: d.VehicleClass,
			DeliveryID:   d.ID,
			Excluded:     excluded,
			RadiusKm:     radius,
		})
		excluded = append(excluded, res.Tried...)
		if err != nil {
			c.metrics.Attempts.WithLabelValues(metrics.OutcomeError).Inc()
			logger.Error("courier search failed", logx.Int("attempt", attempt), logx.Err(err))
			lastErr = err
			continue
		}
		if res.Courier == nil {
			c.metrics.Attempts.WithLabelValues(metrics.OutcomeMiss).Inc()
			logger.Info("no courier in radius",
				logx.Int("attempt", attempt),
				logx.Float64("radius_km", radius),
				logx.Int("excluded", len(excluded)),
			)
			lastErr = nil
			continue
		}

		if err := c.commit(ctx, d.ID, res.Courier.ID); err != nil {
			c.metrics.Attempts.WithLabelValues(metrics.OutcomeError).Inc()
			var te *domain.TransitionError
			if errors.As(err, &te) {
				logger.Warn("assignment rolled back",
					logx.String("courier_id", res.Courier.ID),
					logx.String("status", string(te.Current)),
					logx.Err(err),
				)
				return
			}
			// the delivery is still pending; the courier was released
			logger.Error("assignment commit failed",
				logx.String("courier_id", res.Courier.ID),
				logx.Int("attempt", attempt),
				logx.Err(err),
			)
			lastErr = err
			continue
		}
		c.metrics.Attempts.WithLabelValues(metrics.OutcomeAssigned).Inc()
		logger.Info("rider assigned",
			logx.String("event", "rider_assigned"),
			logx.String("courier_id", res.Courier.ID),
			logx.Int("attempt", attempt),
			logx.Float64("radius_km", radius),
		)
		return
	}

	c.exhausted(ctx, d, lastErr, logger)
}

func (c *Coordinator) get(ctx context.Context, id string) (*domain.Delivery, error) {
	opCtx, cancel := c.withTimeout(ctx)
	defer cancel()
	return c.deliveries.Get(opCtx, id)
}

func (c *Coordinator) findAndLock(ctx context.Context, req locator.LockRequest) (locator.LockResult, error) {
	opCtx, cancel := c.withTimeout(ctx)
	defer cancel()
	return c.locator.FindAndLock(opCtx, req)
}

// commit moves the delivery to rider_assigned. On any failure the courier
// lock is handed back.
func (c *Coordinator) commit(ctx context.Context, deliveryID, courierID string) error {
	opCtx, cancel := c.withTimeout(ctx)
	defer cancel()
	_, err := c.machine.AssignCourier(opCtx, deliveryID, courierID)
	if err == nil {
		return nil
	}

	// the request context may be gone; the release must still happen
	relCtx, relCancel := c.withTimeout(context.WithoutCancel(ctx))
	defer relCancel()
	if _, rerr := c.locator.ReleaseFor(relCtx, courierID, deliveryID); rerr != nil {
		return errors.Join(err, fmt.Errorf("release courier %s: %w", courierID, rerr))
	}
	return err
}

// exhausted cancels the delivery once every attempt is used. When the last
// attempt failed on an error rather than an empty search, the outcome is
// logged as dispatch_failed and not counted as a capacity shortage.
func (c *Coordinator) exhausted(ctx context.Context, d domain.Delivery, lastErr error, logger logx.Logger) {
	opCtx, cancel := c.withTimeout(ctx)
	defer cancel()
	if _, err := c.machine.CancelNoRiders(opCtx, d.ID); err != nil {
		var te *domain.TransitionError
		if errors.As(err, &te) {
			logger.Info("dispatch stopped, delivery no longer pending", logx.String("status", string(te.Current)))
			return
		}
		logger.Error("cancel after exhausted dispatch", logx.Err(err))
		return
	}
	if lastErr != nil {
		logger.Error("dispatch failed",
			logx.String("event", "dispatch_failed"),
			logx.String("customer_id", d.CustomerID),
			logx.Int("attempts", c.cfg.MaxAttempts),
			logx.Err(lastErr),
		)
		return
	}
	c.metrics.NoRiders.Inc()
	logger.Warn("no riders available",
		logx.String("event", "no_riders_available"),
		logx.String("customer_id", d.CustomerID),
		logx.String("vehicle_class", string(d.VehicleClass)),
		logx.Int("attempts", c.cfg.MaxAttempts),
	)
}
