package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rider-dispatch/internal/domain"
	"rider-dispatch/internal/http/handlers"
	"rider-dispatch/internal/http/middleware"
	"rider-dispatch/internal/logx"
)

const defaultTimeout = 5 * time.Second

// Deps are the handlers and cross-cutting pieces the router mounts.
type Deps struct {
	Base       *handlers.Handlers
	Couriers   *handlers.CourierHandler
	Deliveries *handlers.DeliveryHandler
	Fares      *handlers.FareHandler

	Logger    logx.Logger
	JWTSecret string
	// RateLimit is optional and runs after authentication.
	RateLimit func(http.Handler) http.Handler
	// Metrics defaults to promhttp.Handler().
	Metrics http.Handler
	Timeout time.Duration
}

// New constructs the chi router with the middleware chain and every route.
func New(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = logx.Nop()
	}
	if d.Metrics == nil {
		d.Metrics = promhttp.Handler()
	}
	if d.Timeout <= 0 {
		d.Timeout = defaultTimeout
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Observability(d.Logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(d.Timeout))

	r.Get("/ping", d.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))
	r.Method(http.MethodGet, "/metrics", d.Metrics)
	r.NotFound(d.Base.NotFound)
	r.MethodNotAllowed(d.Base.MethodNotAllowed)

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(d.JWTSecret, d.Logger))
		if d.RateLimit != nil {
			r.Use(d.RateLimit)
		}

		r.Post("/fares/quote", d.Fares.Quote)
		r.Post("/couriers", d.Couriers.Register)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole())
			r.Get("/couriers/{id}", d.Couriers.GetByID)
			r.Get("/deliveries/active", d.Deliveries.Active)
			r.Get("/deliveries/{id}", d.Deliveries.Get)
			r.Post("/deliveries/{id}/cancel", d.Deliveries.Cancel)
			r.Post("/deliveries/{id}/rate", d.Deliveries.Rate)
		})

		r.With(middleware.RequireRole(domain.RoleCustomer)).Post("/deliveries", d.Deliveries.Request)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(domain.RoleCourier))
			r.Put("/couriers/me/heartbeat", d.Couriers.Heartbeat)
			r.Post("/deliveries/{id}/accept", d.Deliveries.Accept)
			r.Post("/deliveries/{id}/arrive-at-merchant", d.Deliveries.ArriveAtMerchant)
			r.Post("/deliveries/{id}/pick-up", d.Deliveries.PickUp)
			r.Post("/deliveries/{id}/start-transit", d.Deliveries.StartTransit)
			r.Post("/deliveries/{id}/arrive", d.Deliveries.Arrive)
			r.Post("/deliveries/{id}/complete", d.Deliveries.Complete)
		})
	})

	return r
}
