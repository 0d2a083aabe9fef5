package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/dig"

	"rider-dispatch/internal/config"
	"rider-dispatch/internal/logx"
	"rider-dispatch/internal/ports"
	"rider-dispatch/internal/repository"
	"rider-dispatch/internal/repository/memory"
)

// localDirectory is a customer directory the service owns and can seed.
type localDirectory interface {
	ports.CustomerDirectory
	Upsert(ctx context.Context, customerID string) error
}

type storage struct {
	couriers   ports.CourierStore
	deliveries ports.DeliveryStore
	customers  localDirectory
}

func registerStorage(container *dig.Container, connect dbConnectFunc) error {
	newStorage := func(ctx context.Context, cfg *config.Config, res *resources, logger logx.Logger) (*storage, error) {
		return openStorage(ctx, cfg, connect, res, logger)
	}
	return provideAll(container,
		newStorage,
		func(s *storage) ports.CourierStore { return s.couriers },
		func(s *storage) ports.DeliveryStore { return s.deliveries },
	)
}

func openStorage(ctx context.Context, cfg *config.Config, connect dbConnectFunc, res *resources, logger logx.Logger) (*storage, error) {
	var s *storage
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		st := memory.New()
		s = &storage{couriers: st.Couriers(), deliveries: st.Deliveries(), customers: st.Customers()}
	case config.DriverPostgres:
		pool, err := connect(ctx, logger, cfg.DB.DSN(), 10, time.Second)
		if err != nil {
			return nil, err
		}
		res.add("postgres", func() error {
			pool.Close()
			return nil
		})
		if err := repository.Migrate(ctx, pool); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		s = &storage{
			couriers:   repository.NewCourierRepo(pool),
			deliveries: repository.NewDeliveryRepo(pool),
			customers:  repository.NewCustomerRepo(pool),
		}
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	for _, id := range cfg.Customers.Seed {
		if err := s.customers.Upsert(ctx, id); err != nil {
			return nil, fmt.Errorf("seed customer %s: %w", id, err)
		}
	}
	logger.Info("storage ready",
		logx.String("driver", cfg.Storage.Driver),
		logx.Int("seeded_customers", len(cfg.Customers.Seed)),
	)
	return s, nil
}
