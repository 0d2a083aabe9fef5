// Package ports declares the storage contracts shared by the Postgres and
// in-memory implementations.
package ports

import (
	"context"
	"errors"
	"time"

	"rider-dispatch/internal/domain"
)

// ErrProximityUnavailable is returned when the store cannot rank couriers by
// distance (for example a missing geo function or index).
var ErrProximityUnavailable = errors.New("proximity search unavailable")

// CandidateQuery filters couriers eligible for a delivery.
type CandidateQuery struct {
	Pickup       domain.Point
	VehicleClass domain.VehicleClass
	RadiusKm     float64
	Excluded     []string
	Limit        int
}

// CourierStore persists couriers. Every lock mutation is a single-record
// conditional update.
type CourierStore interface {
	Get(ctx context.Context, id string) (*domain.Courier, error)
	Create(ctx context.Context, c *domain.Courier) error
	ApplyHeartbeat(ctx context.Context, hb domain.Heartbeat) (bool, error)

	// NearestAvailable returns available couriers within the radius, nearest first.
	NearestAvailable(ctx context.Context, q CandidateQuery) ([]domain.Candidate, error)
	// AnyAvailable returns available couriers ignoring distance.
	AnyAvailable(ctx context.Context, q CandidateQuery) ([]domain.Candidate, error)
	// TryLock flips an available courier of the given class to busy and
	// stamps the lock; false means somebody else got there first.
	TryLock(ctx context.Context, courierID, deliveryID string, class domain.VehicleClass, at time.Time) (bool, error)
	// Release clears the lock and restores availability; repeated calls are no-ops.
	Release(ctx context.Context, courierID string) error
	// ReleaseFor releases the courier only while it is locked for deliveryID.
	ReleaseFor(ctx context.Context, courierID, deliveryID string) (bool, error)
	// Touch refreshes locked_at while the courier is locked for deliveryID.
	Touch(ctx context.Context, courierID, deliveryID string, at time.Time) (bool, error)
	// ReleaseStale releases every lock taken before the cutoff.
	ReleaseStale(ctx context.Context, before time.Time) ([]string, error)

	IncrementDeliveries(ctx context.Context, courierID string) error
	RefreshRating(ctx context.Context, courierID string) error
}

// DeliveryStore persists deliveries. Status changes are conditional on the
// current status.
type DeliveryStore interface {
	// Create inserts a pending delivery; a second active delivery for the same
	// customer yields apperr.ErrConflict.
	Create(ctx context.Context, d *domain.Delivery) error
	Get(ctx context.Context, id string) (*domain.Delivery, error)
	ActiveByCustomer(ctx context.Context, customerID string) (*domain.Delivery, error)
	ActiveByCourier(ctx context.Context, courierID string) (*domain.Delivery, error)
	ActiveByMerchant(ctx context.Context, merchantRef string) (*domain.Delivery, error)
	ListByStatus(ctx context.Context, status domain.DeliveryStatus, limit int) ([]domain.Delivery, error)
	Transition(ctx context.Context, t domain.Transition) (bool, error)
	// Rate stores the score given by role on a delivered delivery, once.
	Rate(ctx context.Context, id string, by domain.Role, score int) (bool, error)
}

// CustomerDirectory answers whether a customer exists.
type CustomerDirectory interface {
	Exists(ctx context.Context, customerID string) (bool, error)
}
