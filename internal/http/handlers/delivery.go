package handlers

import (
	"context"
	"net/http"

	"rider-dispatch/internal/domain"
	"rider-dispatch/internal/logx"
)

// DeliveryHandler serves the delivery lifecycle.
type DeliveryHandler struct {
	logger     logx.Logger
	dispatch   dispatcher
	deliveries deliveryUsecase
}

// NewDeliveryHandler creates a DeliveryHandler.
func NewDeliveryHandler(logger logx.Logger, d dispatcher, deliveries deliveryUsecase) *DeliveryHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &DeliveryHandler{logger: logger, dispatch: d, deliveries: deliveries}
}

// Request handles POST /v1/deliveries. Courier assignment continues in the
// background, so the response is 202 with the pending delivery's id.
func (h *DeliveryHandler) Request(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(h.logger, w, r)
	if !ok {
		return
	}
	var req deliveryRequestDTO
	if !decodeJSON(h.logger, w, r, &req) {
		return
	}
	receipt, err := h.dispatch.RequestDelivery(r.Context(), actor.ID, deliveryRequestToModel(req))
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	w.Header().Set("Location", "/v1/deliveries/"+receipt.DeliveryID)
	writeJSON(h.logger, w, r, http.StatusAccepted, receiptToDTO(receipt))
}

// Active handles GET /v1/deliveries/active for the calling party.
func (h *DeliveryHandler) Active(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(h.logger, w, r)
	if !ok {
		return
	}
	d, err := h.deliveries.Active(r.Context(), actor.ID)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	if d == nil {
		writeError(h.logger, w, r, http.StatusNotFound, "no active delivery")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, d)
}

// Get handles GET /v1/deliveries/{id}.
func (h *DeliveryHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.withDelivery(w, r, h.deliveries.Get)
}

// Accept handles POST /v1/deliveries/{id}/accept.
func (h *DeliveryHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.withDelivery(w, r, h.deliveries.Accept)
}

// ArriveAtMerchant handles POST /v1/deliveries/{id}/arrive-at-merchant.
func (h *DeliveryHandler) ArriveAtMerchant(w http.ResponseWriter, r *http.Request) {
	h.withDelivery(w, r, h.deliveries.ArriveAtMerchant)
}

// PickUp handles POST /v1/deliveries/{id}/pick-up.
func (h *DeliveryHandler) PickUp(w http.ResponseWriter, r *http.Request) {
	h.withDelivery(w, r, h.deliveries.MarkPickedUp)
}

// StartTransit handles POST /v1/deliveries/{id}/start-transit.
func (h *DeliveryHandler) StartTransit(w http.ResponseWriter, r *http.Request) {
	h.withDelivery(w, r, h.deliveries.StartTransit)
}

// Arrive handles POST /v1/deliveries/{id}/arrive.
func (h *DeliveryHandler) Arrive(w http.ResponseWriter, r *http.Request) {
	h.withDelivery(w, r, h.deliveries.MarkArrived)
}

// Complete handles POST /v1/deliveries/{id}/complete.
func (h *DeliveryHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var req completeRequest
	withBody(h, w, r, &req, func(ctx context.Context, a domain.Actor, id string) (*domain.Delivery, error) {
		return h.deliveries.Complete(ctx, a, id, completeRequestToProof(req))
	})
}

// Cancel handles POST /v1/deliveries/{id}/cancel. The body is optional.
func (h *DeliveryHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	var req cancelRequest
	if r.ContentLength == 0 {
		h.withDelivery(w, r, func(ctx context.Context, a domain.Actor, id string) (*domain.Delivery, error) {
			return h.deliveries.Cancel(ctx, a, id, "")
		})
		return
	}
	withBody(h, w, r, &req, func(ctx context.Context, a domain.Actor, id string) (*domain.Delivery, error) {
		return h.deliveries.Cancel(ctx, a, id, req.Reason)
	})
}

// Rate handles POST /v1/deliveries/{id}/rate.
func (h *DeliveryHandler) Rate(w http.ResponseWriter, r *http.Request) {
	var req rateRequest
	withBody(h, w, r, &req, func(ctx context.Context, a domain.Actor, id string) (*domain.Delivery, error) {
		return h.deliveries.Rate(ctx, a, id, req.Score)
	})
}

type deliveryAction func(ctx context.Context, actor domain.Actor, id string) (*domain.Delivery, error)

func (h *DeliveryHandler) withDelivery(w http.ResponseWriter, r *http.Request, action deliveryAction) {
	actor, ok := actorOr401(h.logger, w, r)
	if !ok {
		return
	}
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}
	d, err := action(r.Context(), actor, id)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, d)
}

func withBody[T any](h *DeliveryHandler, w http.ResponseWriter, r *http.Request, dst *T, action deliveryAction) {
	if _, ok := actorOr401(h.logger, w, r); !ok {
		return
	}
	if !decodeJSON(h.logger, w, r, dst) {
		return
	}
	h.withDelivery(w, r, action)
}
