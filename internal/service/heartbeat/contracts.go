//go:generate mockgen -source=contracts.go -destination=heartbeat_mocks_test.go -package=heartbeat_test

package heartbeat

import (
	"context"

	"rider-dispatch/internal/domain"
)

// CourierPort is the subset of the courier service the Processor drives.
type CourierPort interface {
	Heartbeat(ctx context.Context, hb domain.Heartbeat) (*domain.Courier, error)
}
