package app

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"rider-dispatch/internal/config"
	"rider-dispatch/internal/domain"
	"rider-dispatch/internal/gateway/customers"
	"rider-dispatch/internal/logx"
	"rider-dispatch/internal/metrics"
	"rider-dispatch/internal/notify"
	"rider-dispatch/internal/ports"
	"rider-dispatch/internal/service/courier"
	"rider-dispatch/internal/service/delivery"
	"rider-dispatch/internal/service/dispatch"
	"rider-dispatch/internal/service/fare"
	"rider-dispatch/internal/service/locator"
	"rider-dispatch/internal/service/sweeper"
	"rider-dispatch/internal/transport/kafka"
)

const notifyTimeout = 5 * time.Second

// registerDomain provides what both binaries share.
func registerDomain(container *dig.Container) error {
	return provideAll(container,
		newLocator,
		newCourierService,
		newSweeper,
	)
}

func registerServices(container *dig.Container) error {
	if err := registerDomain(container); err != nil {
		return err
	}
	return provideAll(container,
		newFareCalculator,
		newNotifier,
		newDeliveryService,
		newCustomerDirectory,
		newCoordinator,
	)
}

func newLocator(cfg *config.Config, store ports.CourierStore, m *metrics.Dispatch, logger logx.Logger) *locator.Locator {
	return locator.New(store, locator.Config{
		CandidateLimit:   cfg.Dispatch.CandidateLimit,
		UnrankedFallback: cfg.Dispatch.UnrankedFallback,
	}, m, logger.With(logx.String("component", "locator")))
}

func newCourierService(cfg *config.Config, store ports.CourierStore, logger logx.Logger) *courier.Service {
	return courier.NewService(store, cfg.Dispatch.OperationTimeout, logger.With(logx.String("component", "courier")))
}

func newSweeper(cfg *config.Config, loc *locator.Locator, m *metrics.Dispatch, logger logx.Logger) *sweeper.Sweeper {
	return sweeper.New(loc, cfg.Sweeper.LockTTL, cfg.Sweeper.Schedule, m, logger.With(logx.String("component", "sweeper")))
}

func newFareCalculator(cfg *config.Config) (*fare.Calculator, error) {
	t, err := config.LoadTariff(cfg.Fare.TariffFile)
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(cfg.Fare.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("fare timezone: %w", err)
	}
	ft, err := toFareTariff(t)
	if err != nil {
		return nil, err
	}
	return fare.NewCalculator(ft, loc)
}

func toFareTariff(t config.Tariff) (fare.Tariff, error) {
	out := fare.Tariff{
		Currency:         t.Currency,
		BaseFees:         make(map[domain.VehicleClass]float64, len(t.BaseFees)),
		PerKmRate:        t.PerKmRate,
		LongDistanceKm:   t.LongDistanceKm,
		LongDistanceRate: t.LongDistanceRate,
		MinFee:           t.MinFee,
		MaxFee:           t.MaxFee,
		SurgeMultiplier:  t.SurgeMultiplier,
	}
	for class, fee := range t.BaseFees {
		out.BaseFees[domain.VehicleClass(class)] = fee
	}
	for _, w := range t.PeakWindows {
		start, err := config.ParseClock(w.Start)
		if err != nil {
			return fare.Tariff{}, err
		}
		end, err := config.ParseClock(w.End)
		if err != nil {
			return fare.Tariff{}, err
		}
		out.PeakWindows = append(out.PeakWindows, fare.Window{Start: start, End: end})
	}
	return out, nil
}

// newNotifier publishes to Kafka when brokers are configured and logs otherwise.
func newNotifier(cfg *config.Config, res *resources, logger logx.Logger) (*notify.FireAndForget, error) {
	var (
		n notify.Notifier
		l notify.Ledger
	)
	pub, err := kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.NotificationTopic, cfg.Kafka.LedgerTopic)
	if err != nil {
		return nil, err
	}
	if pub != nil {
		res.add("kafka publisher", pub.Close)
		n, l = pub, pub
	} else {
		ln := notify.NewLogNotifier(logger.With(logx.String("component", "notify")))
		n, l = ln, ln
	}
	f := notify.NewFireAndForget(n, l, notifyTimeout, logger)
	res.add("notifications", func() error {
		f.Wait()
		return nil
	})
	return f, nil
}

func newDeliveryService(
	cfg *config.Config,
	store ports.DeliveryStore,
	couriers ports.CourierStore,
	loc *locator.Locator,
	n *notify.FireAndForget,
	m *metrics.Dispatch,
	logger logx.Logger,
) *delivery.Service {
	return delivery.NewService(store, loc, couriers, n, m, cfg.Dispatch.OperationTimeout,
		logger.With(logx.String("component", "delivery")))
}

type directoryIn struct {
	dig.In
	Config  *config.Config
	Storage *storage
	Res     *resources
	Logger  logx.Logger
	Retries prometheus.Counter `name:"gateway_retries_total"`
}

// newCustomerDirectory prefers the remote gRPC directory and falls back to
// the local customers table.
func newCustomerDirectory(in directoryIn) (ports.CustomerDirectory, error) {
	c := in.Config.Customers
	if c.GRPCAddr == "" {
		return in.Storage.customers, nil
	}
	conn, err := customers.Dial(c.GRPCAddr)
	if err != nil {
		return nil, err
	}
	in.Res.add("customer directory", conn.Close)
	return customers.NewRetryingDirectory(
		customers.NewGRPCDirectory(conn),
		in.Logger.With(logx.String("component", "customers")),
		in.Retries,
		customers.RetryConfig{
			MaxAttempts:    c.MaxAttempts,
			BaseDelay:      c.BaseDelay,
			MaxDelay:       c.MaxDelay,
			AttemptTimeout: c.Timeout,
		},
	), nil
}

func newCoordinator(
	cfg *config.Config,
	directory ports.CustomerDirectory,
	store ports.DeliveryStore,
	loc *locator.Locator,
	machine *delivery.Service,
	fares *fare.Calculator,
	m *metrics.Dispatch,
	res *resources,
	logger logx.Logger,
) *dispatch.Coordinator {
	d := cfg.Dispatch
	c := dispatch.New(directory, store, loc, machine, fares, dispatch.Config{
		MaxAttempts:      d.MaxAttempts,
		InitialRadiusKm:  d.InitialRadiusKm,
		RadiusStepKm:     d.RadiusStepKm,
		Backoff:          d.Backoff,
		Workers:          d.Workers,
		OperationTimeout: d.OperationTimeout,
	}, m, logger.With(logx.String("component", "dispatch")))
	res.add("dispatch", func() error {
		c.Close()
		return nil
	})
	return c
}

// resumePending restarts assignment for deliveries a previous process left pending.
func resumePending(ctx context.Context, c *dispatch.Coordinator, logger logx.Logger) {
	n, err := c.ResumePending(ctx)
	if err != nil {
		logger.Error("resume pending deliveries failed", logx.Err(err))
		return
	}
	logger.Info("pending deliveries resumed", logx.Int("count", n))
}
