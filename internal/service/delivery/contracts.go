//go:generate mockgen -source=contracts.go -destination=delivery_mocks_test.go -package=delivery_test

package delivery

import (
	"context"

	"rider-dispatch/internal/domain"
)

type deliveryStore interface {
	Get(ctx context.Context, id string) (*domain.Delivery, error)
	ActiveByCustomer(ctx context.Context, customerID string) (*domain.Delivery, error)
	ActiveByCourier(ctx context.Context, courierID string) (*domain.Delivery, error)
	ActiveByMerchant(ctx context.Context, merchantRef string) (*domain.Delivery, error)
	Transition(ctx context.Context, t domain.Transition) (bool, error)
	Rate(ctx context.Context, id string, by domain.Role, score int) (bool, error)
}

type courierLocks interface {
	LockCourier(ctx context.Context, courierID, deliveryID string, class domain.VehicleClass) (bool, error)
	ReleaseFor(ctx context.Context, courierID, deliveryID string) (bool, error)
	Touch(ctx context.Context, courierID, deliveryID string) (bool, error)
}

type courierStats interface {
	IncrementDeliveries(ctx context.Context, courierID string) error
	RefreshRating(ctx context.Context, courierID string) error
}

type notifier interface {
	Notify(n domain.Notification)
	RecordDelivered(d domain.Delivery)
}
