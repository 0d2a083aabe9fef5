package locator

import (
	"context"
	"time"

	"rider-dispatch/internal/domain"
	"rider-dispatch/internal/ports"
)

type courierStore interface {
	Get(ctx context.Context, id string) (*domain.Courier, error)
	NearestAvailable(ctx context.Context, q ports.CandidateQuery) ([]domain.Candidate, error)
	AnyAvailable(ctx context.Context, q ports.CandidateQuery) ([]domain.Candidate, error)
	TryLock(ctx context.Context, courierID, deliveryID string, class domain.VehicleClass, at time.Time) (bool, error)
	Release(ctx context.Context, courierID string) error
	ReleaseFor(ctx context.Context, courierID, deliveryID string) (bool, error)
	Touch(ctx context.Context, courierID, deliveryID string, at time.Time) (bool, error)
	ReleaseStale(ctx context.Context, before time.Time) ([]string, error)
}
