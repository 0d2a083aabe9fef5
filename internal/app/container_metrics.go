package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/dig"

	"rider-dispatch/internal/http/middleware"
	"rider-dispatch/internal/metrics"
)

type countersOut struct {
	dig.Out
	RateLimitExceeded prometheus.Counter `name:"rate_limit_exceeded_total"`
	GatewayRetries    prometheus.Counter `name:"gateway_retries_total"`
}

type registryIn struct {
	dig.In
	Dispatch          *metrics.Dispatch
	RateLimitExceeded prometheus.Counter `name:"rate_limit_exceeded_total"`
	GatewayRetries    prometheus.Counter `name:"gateway_retries_total"`
}

func registerMetrics(container *dig.Container) error {
	return provideAll(container,
		metrics.NewDispatch,
		func() countersOut {
			return countersOut{
				RateLimitExceeded: metrics.NewRateLimitExceededTotal(),
				GatewayRetries:    metrics.NewGatewayRetriesTotal(),
			}
		},
		newRegistry,
	)
}

func newRegistry(in registryIn) (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	cs := []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		in.RateLimitExceeded,
		in.GatewayRetries,
	}
	cs = append(cs, in.Dispatch.Collectors()...)
	cs = append(cs, middleware.Collectors()...)
	if err := metrics.Register(reg, cs...); err != nil {
		return nil, err
	}
	return reg, nil
}
