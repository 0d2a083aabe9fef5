package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/dig"

	"rider-dispatch/internal/config"
	"rider-dispatch/internal/http/handlers"
	"rider-dispatch/internal/http/middleware/ratelimit"
	"rider-dispatch/internal/http/pprofserver"
	"rider-dispatch/internal/http/router"
	"rider-dispatch/internal/logx"
	"rider-dispatch/internal/service/courier"
	"rider-dispatch/internal/service/delivery"
	"rider-dispatch/internal/service/dispatch"
)

type serversOut struct {
	dig.Out
	API   *http.Server `name:"api_server"`
	Pprof *http.Server `name:"pprof_server"`
}

type routerIn struct {
	dig.In
	Config     *config.Config
	Logger     logx.Logger
	Registry   *prometheus.Registry
	RateLimit  *ratelimit.Middleware
	Base       *handlers.Handlers
	Couriers   *handlers.CourierHandler
	Deliveries *handlers.DeliveryHandler
	Fares      *handlers.FareHandler
}

func registerHTTP(container *dig.Container) error {
	return provideAll(container,
		handlers.New,
		func(logger logx.Logger, svc *courier.Service) *handlers.CourierHandler {
			return handlers.NewCourierHandler(logger, svc)
		},
		func(logger logx.Logger, c *dispatch.Coordinator, svc *delivery.Service) *handlers.DeliveryHandler {
			return handlers.NewDeliveryHandler(logger, c, svc)
		},
		func(logger logx.Logger, c *dispatch.Coordinator) *handlers.FareHandler {
			return handlers.NewFareHandler(logger, c)
		},
		newRouter,
		newServers,
	)
}

func newRouter(in routerIn) http.Handler {
	return router.New(router.Deps{
		Base:       in.Base,
		Couriers:   in.Couriers,
		Deliveries: in.Deliveries,
		Fares:      in.Fares,
		Logger:     in.Logger,
		JWTSecret:  in.Config.Auth.JWTSecret,
		RateLimit:  in.RateLimit.Handler(),
		Metrics:    promhttp.HandlerFor(in.Registry, promhttp.HandlerOpts{}),
	})
}

// newServers builds the API server and, when enabled, the debug listener.
func newServers(cfg *config.Config, mux http.Handler, logger logx.Logger) serversOut {
	out := serversOut{API: newServer(fmt.Sprintf(":%d", cfg.Port), mux)}
	if cfg.Pprof.Enabled {
		out.Pprof = newServer(cfg.Pprof.Addr, pprofserver.Handler(pprofserver.Config{
			User: cfg.Pprof.User,
			Pass: cfg.Pprof.Pass,
		}, logger.With(logx.String("component", "pprof"))))
		// profiles stream for up to the requested duration
		out.Pprof.WriteTimeout = 0
	}
	return out
}

func newServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
