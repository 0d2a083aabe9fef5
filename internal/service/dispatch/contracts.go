//go:generate mockgen -source=contracts.go -destination=dispatch_mocks_test.go -package=dispatch_test

package dispatch

import (
	"context"
	"time"

	"rider-dispatch/internal/domain"
	"rider-dispatch/internal/service/locator"
)

type customerDirectory interface {
	Exists(ctx context.Context, customerID string) (bool, error)
}

type deliveryStore interface {
	Create(ctx context.Context, d *domain.Delivery) error
	Get(ctx context.Context, id string) (*domain.Delivery, error)
	ActiveByCustomer(ctx context.Context, customerID string) (*domain.Delivery, error)
	ListByStatus(ctx context.Context, status domain.DeliveryStatus, limit int) ([]domain.Delivery, error)
}

type courierLocator interface {
	FindAndLock(ctx context.Context, req locator.LockRequest) (locator.LockResult, error)
	ReleaseFor(ctx context.Context, courierID, deliveryID string) (bool, error)
}

type stateMachine interface {
	AssignCourier(ctx context.Context, id, courierID string) (*domain.Delivery, error)
	CancelNoRiders(ctx context.Context, id string) (*domain.Delivery, error)
}

type fareQuoter interface {
	Quote(pickup, dropoff domain.Point, class domain.VehicleClass, now time.Time) (domain.FareQuote, error)
}
