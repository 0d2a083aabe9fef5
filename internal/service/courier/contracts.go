package courier

import (
	"context"

	"rider-dispatch/internal/domain"
)

// courierRepository defines storage operations required by the business layer.
type courierRepository interface {
	Get(ctx context.Context, id string) (*domain.Courier, error)
	Create(ctx context.Context, c *domain.Courier) error
	ApplyHeartbeat(ctx context.Context, hb domain.Heartbeat) (bool, error)
}
