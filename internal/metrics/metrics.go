package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Dispatch attempt outcomes.
const (
	OutcomeAssigned = "assigned"
	OutcomeMiss     = "miss"
	OutcomeError    = "error"
)

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewGatewayRetriesTotal returns a Prometheus counter for the number of retry attempts performed by gateways
func NewGatewayRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gateway_retries_total",
		Help: "Total number of retry attempts performed by gateways",
	})
}

// Dispatch holds the counters of the matching engine.
type Dispatch struct {
	Attempts       *prometheus.CounterVec
	NoRiders       prometheus.Counter
	LockContention prometheus.Counter
	SweptLocks     prometheus.Counter
	Transitions    *prometheus.CounterVec
}

// NewDispatch returns unregistered dispatch counters.
func NewDispatch() *Dispatch {
	return &Dispatch{
		Attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_attempts_total",
			Help: "Dispatch attempts by outcome",
		}, []string{"outcome"}),
		NoRiders: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dispatch_no_riders_total",
			Help: "Deliveries cancelled because no courier could be locked",
		}),
		LockContention: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courier_lock_contention_total",
			Help: "Lock attempts lost to a concurrent dispatch",
		}),
		SweptLocks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courier_locks_swept_total",
			Help: "Stale courier locks released by the sweeper",
		}),
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "delivery_transitions_total",
			Help: "Applied delivery state transitions by target status",
		}, []string{"status"}),
	}
}

// Collectors lists every collector of d.
func (d *Dispatch) Collectors() []prometheus.Collector {
	return []prometheus.Collector{d.Attempts, d.NoRiders, d.LockContention, d.SweptLocks, d.Transitions}
}

// Register registers cs on reg; collectors that are already registered are skipped.
func Register(reg prometheus.Registerer, cs ...prometheus.Collector) error {
	for _, c := range cs {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}
