package locator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rider-dispatch/internal/domain"
	"rider-dispatch/internal/logx"
	"rider-dispatch/internal/metrics"
	"rider-dispatch/internal/ports"
)

const defaultCandidateLimit = 5

// Config tunes the candidate search.
type Config struct {
	CandidateLimit   int
	UnrankedFallback bool
}

// LockRequest describes one search for a courier.
type LockRequest struct {
	Pickup       domain.Point
	VehicleClass domain.VehicleClass
	DeliveryID   string
	Excluded     []string
	RadiusKm     float64
}

// LockResult is the outcome of FindAndLock. Courier is nil when nobody could
// be locked. Tried lists every courier a lock was attempted on, won or lost.
type LockResult struct {
	Courier *domain.Courier
	Tried   []string
}

// Locator finds the nearest eligible courier and reserves it.
type Locator struct {
	store   courierStore
	cfg     Config
	metrics *metrics.Dispatch
	logger  logx.Logger
	now     func() time.Time
}

// New creates a Locator.
func New(store courierStore, cfg Config, m *metrics.Dispatch, logger logx.Logger) *Locator {
	if cfg.CandidateLimit <= 0 {
		cfg.CandidateLimit = defaultCandidateLimit
	}
	if m == nil {
		m = metrics.NewDispatch()
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Locator{
		store:   store,
		cfg:     cfg,
		metrics: m,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// FindAndLock locks the nearest available courier matching req. A lock lost
// to a concurrent search excludes that courier and the search goes on; it is
// never reported as an error.
func (l *Locator) FindAndLock(ctx context.Context, req LockRequest) (LockResult, error) {
	excluded := make(map[string]struct{}, len(req.Excluded))
	exclusion := append([]string(nil), req.Excluded...)
	for _, id := range req.Excluded {
		excluded[id] = struct{}{}
	}

	var res LockResult
	for {
		candidates, err := l.candidates(ctx, req, exclusion)
		if err != nil {
			return res, err
		}

		fresh := 0
		for _, c := range candidates {
			if _, seen := excluded[c.CourierID]; seen {
				continue
			}
			fresh++
			excluded[c.CourierID] = struct{}{}
			exclusion = append(exclusion, c.CourierID)
			res.Tried = append(res.Tried, c.CourierID)

			ok, err := l.store.TryLock(ctx, c.CourierID, req.DeliveryID, req.VehicleClass, l.now())
			if err != nil {
				return res, fmt.Errorf("lock courier %s: %w", c.CourierID, err)
			}
			if !ok {
				l.metrics.LockContention.Inc()
				l.logger.Debug("courier lock contended",
					logx.String("event", "courier_lock_contended"),
					logx.String("courier_id", c.CourierID),
					logx.String("delivery_id", req.DeliveryID),
				)
				continue
			}

			courier, err := l.store.Get(ctx, c.CourierID)
			if err != nil || courier == nil {
				if _, rerr := l.store.ReleaseFor(ctx, c.CourierID, req.DeliveryID); rerr != nil {
					l.logger.Warn("release after failed read", logx.String("courier_id", c.CourierID), logx.Err(rerr))
				}
				if err == nil {
					err = fmt.Errorf("courier %s vanished after lock", c.CourierID)
				}
				return res, fmt.Errorf("read locked courier: %w", err)
			}

			l.logger.Info("courier locked",
				logx.String("event", "courier_locked"),
				logx.String("courier_id", courier.ID),
				logx.String("delivery_id", req.DeliveryID),
				logx.Float64("distance_km", c.DistanceKm),
				logx.Float64("radius_km", req.RadiusKm),
			)
			res.Courier = courier
			return res, nil
		}

		if fresh == 0 {
			return res, nil
		}
	}
}

func (l *Locator) candidates(ctx context.Context, req LockRequest, excluded []string) ([]domain.Candidate, error) {
	q := ports.CandidateQuery{
		Pickup:       req.Pickup,
		VehicleClass: req.VehicleClass,
		RadiusKm:     req.RadiusKm,
		Excluded:     excluded,
		Limit:        l.cfg.CandidateLimit,
	}
	out, err := l.store.NearestAvailable(ctx, q)
	if err == nil {
		return out, nil
	}
	if !errors.Is(err, ports.ErrProximityUnavailable) {
		return nil, fmt.Errorf("nearest available: %w", err)
	}
	if !l.cfg.UnrankedFallback {
		l.logger.Warn("proximity search unavailable",
			logx.String("event", "proximity_unavailable"),
			logx.String("delivery_id", req.DeliveryID),
			logx.Err(err),
		)
		return nil, nil
	}

	l.logger.Warn("falling back to unranked courier search",
		logx.String("event", "unranked_fallback"),
		logx.String("delivery_id", req.DeliveryID),
		logx.Err(err),
	)
	out, err = l.store.AnyAvailable(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("any available: %w", err)
	}
	return out, nil
}

// LockCourier reserves one specific courier for deliveryID. It reports false
// when the courier is not available or drives another vehicle class.
func (l *Locator) LockCourier(ctx context.Context, courierID, deliveryID string, class domain.VehicleClass) (bool, error) {
	ok, err := l.store.TryLock(ctx, courierID, deliveryID, class, l.now())
	if err != nil {
		return false, fmt.Errorf("lock courier %s: %w", courierID, err)
	}
	if ok {
		l.logger.Info("courier locked",
			logx.String("event", "courier_locked"),
			logx.String("courier_id", courierID),
			logx.String("delivery_id", deliveryID),
		)
	}
	return ok, nil
}

// Release clears the courier's lock. Releasing an unlocked courier is a no-op.
func (l *Locator) Release(ctx context.Context, courierID string) error {
	return l.store.Release(ctx, courierID)
}

// ReleaseFor releases the courier only while it is still locked for deliveryID.
func (l *Locator) ReleaseFor(ctx context.Context, courierID, deliveryID string) (bool, error) {
	return l.store.ReleaseFor(ctx, courierID, deliveryID)
}

// Touch records forward progress on the delivery the courier is locked for.
func (l *Locator) Touch(ctx context.Context, courierID, deliveryID string) (bool, error) {
	return l.store.Touch(ctx, courierID, deliveryID, l.now())
}

// ReleaseStale releases every lock older than the cutoff.
func (l *Locator) ReleaseStale(ctx context.Context, before time.Time) ([]string, error) {
	return l.store.ReleaseStale(ctx, before)
}
