package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"rider-dispatch/internal/apperr"
	"rider-dispatch/internal/domain"
	"rider-dispatch/internal/http/handlers"
	"rider-dispatch/internal/service/dispatch"
)

type stubDispatcher struct {
	quoteFn   func(req domain.DeliveryRequest) (domain.FareQuote, error)
	requestFn func(ctx context.Context, customerID string, req domain.DeliveryRequest) (dispatch.Receipt, error)
}

func (s *stubDispatcher) Quote(req domain.DeliveryRequest) (domain.FareQuote, error) {
	return s.quoteFn(req)
}

func (s *stubDispatcher) RequestDelivery(ctx context.Context, customerID string, req domain.DeliveryRequest) (dispatch.Receipt, error) {
	return s.requestFn(ctx, customerID, req)
}

type actionCall struct {
	name  string
	actor domain.Actor
	id    string
	arg   any
}

type stubDeliveries struct {
	calls    []actionCall
	result   *domain.Delivery
	err      error
	activeFn func(ctx context.Context, partyID string) (*domain.Delivery, error)
}

func (s *stubDeliveries) record(name string, a domain.Actor, id string, arg any) (*domain.Delivery, error) {
	s.calls = append(s.calls, actionCall{name: name, actor: a, id: id, arg: arg})
	return s.result, s.err
}

func (s *stubDeliveries) Get(_ context.Context, a domain.Actor, id string) (*domain.Delivery, error) {
	return s.record("get", a, id, nil)
}

func (s *stubDeliveries) Active(ctx context.Context, partyID string) (*domain.Delivery, error) {
	return s.activeFn(ctx, partyID)
}

func (s *stubDeliveries) Accept(_ context.Context, a domain.Actor, id string) (*domain.Delivery, error) {
	return s.record("accept", a, id, nil)
}

func (s *stubDeliveries) ArriveAtMerchant(_ context.Context, a domain.Actor, id string) (*domain.Delivery, error) {
	return s.record("arrive-at-merchant", a, id, nil)
}

func (s *stubDeliveries) MarkPickedUp(_ context.Context, a domain.Actor, id string) (*domain.Delivery, error) {
	return s.record("pick-up", a, id, nil)
}

func (s *stubDeliveries) StartTransit(_ context.Context, a domain.Actor, id string) (*domain.Delivery, error) {
	return s.record("start-transit", a, id, nil)
}

func (s *stubDeliveries) MarkArrived(_ context.Context, a domain.Actor, id string) (*domain.Delivery, error) {
	return s.record("arrive", a, id, nil)
}

func (s *stubDeliveries) Complete(_ context.Context, a domain.Actor, id string, p domain.Proof) (*domain.Delivery, error) {
	return s.record("complete", a, id, p)
}

func (s *stubDeliveries) Cancel(_ context.Context, a domain.Actor, id, reason string) (*domain.Delivery, error) {
	return s.record("cancel", a, id, reason)
}

func (s *stubDeliveries) Rate(_ context.Context, a domain.Actor, id string, score int) (*domain.Delivery, error) {
	return s.record("rate", a, id, score)
}

const deliveryBody = `{"merchant_ref":"m-1","pickup":{"lat":-26.2,"lng":28.04},"dropoff":{"lat":-26.1,"lng":28.05},"vehicle_class":"motorcycle","item_count":2}`

func TestDeliveryHandler_Request_Accepted(t *testing.T) {
	t.Parallel()

	d := &stubDispatcher{
		requestFn: func(_ context.Context, customerID string, req domain.DeliveryRequest) (dispatch.Receipt, error) {
			require.Equal(t, "u1", customerID)
			require.Equal(t, "m-1", req.MerchantRef)
			require.Equal(t, domain.VehicleMotorcycle, req.VehicleClass)
			require.Equal(t, 2, req.ItemCount)
			require.Equal(t, domain.Point{Lat: -26.2, Lng: 28.04}, req.Pickup)
			return dispatch.Receipt{
				DeliveryID: "d-1",
				Status:     domain.DeliveryPending,
				Fare:       domain.FareQuote{Total: 42.5, Currency: "ZAR"},
			}, nil
		},
	}
	h := handlers.NewDeliveryHandler(testLogger(), d, &stubDeliveries{})

	req := asActor(httptest.NewRequest(http.MethodPost, "/v1/deliveries", strings.NewReader(deliveryBody)), domain.RoleCustomer, "u1")
	rr := httptest.NewRecorder()
	h.Request(rr, req)

	require.Equal(t, http.StatusAccepted, rr.Code)
	require.Equal(t, "/v1/deliveries/d-1", rr.Header().Get("Location"))
	var resp struct {
		DeliveryID string `json:"delivery_id"`
		Status     string `json:"status"`
		Fare       struct {
			Total    float64 `json:"total"`
			Currency string  `json:"currency"`
		} `json:"fare"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Equal(t, "d-1", resp.DeliveryID)
	require.Equal(t, "pending", resp.Status)
	require.Equal(t, 42.5, resp.Fare.Total)
}

func TestDeliveryHandler_Request_ConflictWhenActiveExists(t *testing.T) {
	t.Parallel()

	d := &stubDispatcher{
		requestFn: func(context.Context, string, domain.DeliveryRequest) (dispatch.Receipt, error) {
			return dispatch.Receipt{}, fmt.Errorf("%w: customer u1 already has an active delivery", apperr.ErrConflict)
		},
	}
	h := handlers.NewDeliveryHandler(testLogger(), d, &stubDeliveries{})

	rr := httptest.NewRecorder()
	h.Request(rr, asActor(httptest.NewRequest(http.MethodPost, "/v1/deliveries", strings.NewReader(deliveryBody)), domain.RoleCustomer, "u1"))
	require.Equal(t, http.StatusConflict, rr.Code)
}

func TestDeliveryHandler_Request_Anonymous(t *testing.T) {
	t.Parallel()

	h := handlers.NewDeliveryHandler(testLogger(), &stubDispatcher{}, &stubDeliveries{})
	rr := httptest.NewRecorder()
	h.Request(rr, httptest.NewRequest(http.MethodPost, "/v1/deliveries", strings.NewReader(deliveryBody)))
	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestDeliveryHandler_Active(t *testing.T) {
	t.Parallel()

	active := &domain.Delivery{ID: "d-1", CustomerID: "u1", Status: domain.DeliveryRiderAssigned}
	s := &stubDeliveries{
		activeFn: func(_ context.Context, partyID string) (*domain.Delivery, error) {
			if partyID == "u1" {
				return active, nil
			}
			return nil, nil
		},
	}
	h := handlers.NewDeliveryHandler(testLogger(), &stubDispatcher{}, s)

	rr := httptest.NewRecorder()
	h.Active(rr, asActor(httptest.NewRequest(http.MethodGet, "/v1/deliveries/active", nil), domain.RoleCustomer, "u1"))
	require.Equal(t, http.StatusOK, rr.Code)
	var got domain.Delivery
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	require.Equal(t, "d-1", got.ID)
	require.Equal(t, domain.DeliveryRiderAssigned, got.Status)

	rr = httptest.NewRecorder()
	h.Active(rr, asActor(httptest.NewRequest(http.MethodGet, "/v1/deliveries/active", nil), domain.RoleCustomer, "u2"))
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeliveryHandler_CourierSteps(t *testing.T) {
	t.Parallel()

	courier := domain.Actor{Role: domain.RoleCourier, ID: "c1"}
	steps := []struct {
		name   string
		handle func(h *handlers.DeliveryHandler) http.HandlerFunc
	}{
		{"accept", func(h *handlers.DeliveryHandler) http.HandlerFunc { return h.Accept }},
		{"arrive-at-merchant", func(h *handlers.DeliveryHandler) http.HandlerFunc { return h.ArriveAtMerchant }},
		{"pick-up", func(h *handlers.DeliveryHandler) http.HandlerFunc { return h.PickUp }},
		{"start-transit", func(h *handlers.DeliveryHandler) http.HandlerFunc { return h.StartTransit }},
		{"arrive", func(h *handlers.DeliveryHandler) http.HandlerFunc { return h.Arrive }},
		{"get", func(h *handlers.DeliveryHandler) http.HandlerFunc { return h.Get }},
	}
	for _, step := range steps {
		t.Run(step.name, func(t *testing.T) {
			s := &stubDeliveries{result: &domain.Delivery{ID: "d-1"}}
			h := handlers.NewDeliveryHandler(testLogger(), &stubDispatcher{}, s)

			req := httptest.NewRequest(http.MethodPost, "/v1/deliveries/d-1/"+step.name, nil)
			req = withURLParam(asActor(req, courier.Role, courier.ID), "id", "d-1")
			rr := httptest.NewRecorder()
			step.handle(h)(rr, req)

			require.Equal(t, http.StatusOK, rr.Code)
			require.Equal(t, []actionCall{{name: step.name, actor: courier, id: "d-1"}}, s.calls)
		})
	}
}

func TestDeliveryHandler_TransitionConflict(t *testing.T) {
	t.Parallel()

	s := &stubDeliveries{err: &domain.TransitionError{Current: domain.DeliveryPending, Requested: domain.DeliveryPickedUp}}
	h := handlers.NewDeliveryHandler(testLogger(), &stubDispatcher{}, s)

	req := withURLParam(asActor(httptest.NewRequest(http.MethodPost, "/", nil), domain.RoleCourier, "c1"), "id", "d-1")
	rr := httptest.NewRecorder()
	h.PickUp(rr, req)

	require.Equal(t, http.StatusConflict, rr.Code)
	require.JSONEq(t,
		`{"error":"invalid transition from pending to picked_up","current_status":"pending","requested_status":"picked_up"}`,
		rr.Body.String())
}

func TestDeliveryHandler_Complete(t *testing.T) {
	t.Parallel()

	s := &stubDeliveries{result: &domain.Delivery{ID: "d-1", Status: domain.DeliveryDelivered}}
	h := handlers.NewDeliveryHandler(testLogger(), &stubDispatcher{}, s)

	body := `{"recipient_name":"Thandi","photo_url":"https://img.example/p.jpg"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req = withURLParam(asActor(req, domain.RoleCourier, "c1"), "id", "d-1")
	rr := httptest.NewRecorder()
	h.Complete(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, s.calls, 1)
	require.Equal(t, domain.Proof{RecipientName: "Thandi", PhotoURL: "https://img.example/p.jpg"}, s.calls[0].arg)
}

func TestDeliveryHandler_Complete_RequiresRecipient(t *testing.T) {
	t.Parallel()

	s := &stubDeliveries{}
	h := handlers.NewDeliveryHandler(testLogger(), &stubDispatcher{}, s)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"notes":"left at door"}`))
	req = withURLParam(asActor(req, domain.RoleCourier, "c1"), "id", "d-1")
	rr := httptest.NewRecorder()
	h.Complete(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Empty(t, s.calls)
}

func TestDeliveryHandler_Cancel(t *testing.T) {
	t.Parallel()

	customer := domain.Actor{Role: domain.RoleCustomer, ID: "u1"}

	s := &stubDeliveries{result: &domain.Delivery{ID: "d-1", Status: domain.DeliveryCancelled}}
	h := handlers.NewDeliveryHandler(testLogger(), &stubDispatcher{}, s)

	req := withURLParam(asActor(httptest.NewRequest(http.MethodPost, "/", nil), customer.Role, customer.ID), "id", "d-1")
	rr := httptest.NewRecorder()
	h.Cancel(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"reason":"changed my mind"}`))
	req = withURLParam(asActor(req, customer.Role, customer.ID), "id", "d-1")
	rr = httptest.NewRecorder()
	h.Cancel(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	require.Equal(t, []actionCall{
		{name: "cancel", actor: customer, id: "d-1", arg: ""},
		{name: "cancel", actor: customer, id: "d-1", arg: "changed my mind"},
	}, s.calls)
}

func TestDeliveryHandler_Rate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body string
		err  error
		want int
	}{
		{"ok", `{"score":5}`, nil, http.StatusOK},
		{"out of range", `{"score":6}`, nil, http.StatusBadRequest},
		{"missing", `{}`, nil, http.StatusBadRequest},
		{"already rated", `{"score":3}`, fmt.Errorf("%w: already rated", apperr.ErrConflict), http.StatusConflict},
		{"not a party", `{"score":3}`, fmt.Errorf("%w: not a party", apperr.ErrForbidden), http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := &stubDeliveries{result: &domain.Delivery{ID: "d-1"}, err: tc.err}
			h := handlers.NewDeliveryHandler(testLogger(), &stubDispatcher{}, s)

			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			req = withURLParam(asActor(req, domain.RoleCustomer, "u1"), "id", "d-1")
			rr := httptest.NewRecorder()
			h.Rate(rr, req)

			require.Equal(t, tc.want, rr.Code)
		})
	}
}

func TestFareHandler_Quote(t *testing.T) {
	t.Parallel()

	d := &stubDispatcher{
		quoteFn: func(req domain.DeliveryRequest) (domain.FareQuote, error) {
			require.Equal(t, domain.VehicleMotorcycle, req.VehicleClass)
			return domain.FareQuote{BaseFee: 20, Total: 31.2, Currency: "ZAR"}, nil
		},
	}
	h := handlers.NewFareHandler(testLogger(), d)

	rr := httptest.NewRecorder()
	h.Quote(rr, httptest.NewRequest(http.MethodPost, "/v1/fares/quote", strings.NewReader(deliveryBody)))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Fare domain.FareQuote `json:"fare"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Equal(t, 31.2, resp.Fare.Total)
}

func TestFareHandler_Quote_Invalid(t *testing.T) {
	t.Parallel()

	d := &stubDispatcher{
		quoteFn: func(domain.DeliveryRequest) (domain.FareQuote, error) {
			return domain.FareQuote{}, fmt.Errorf("%w: pickup and dropoff coincide", apperr.ErrInvalid)
		},
	}
	h := handlers.NewFareHandler(testLogger(), d)

	rr := httptest.NewRecorder()
	h.Quote(rr, httptest.NewRequest(http.MethodPost, "/v1/fares/quote", strings.NewReader(deliveryBody)))
	require.Equal(t, http.StatusBadRequest, rr.Code)
}
