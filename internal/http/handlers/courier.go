package handlers

import (
	"net/http"

	"rider-dispatch/internal/logx"
)

// CourierHandler serves courier registration, lookup and heartbeats.
type CourierHandler struct {
	logger logx.Logger
	uc     courierUsecase
}

// NewCourierHandler creates a CourierHandler.
func NewCourierHandler(logger logx.Logger, uc courierUsecase) *CourierHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &CourierHandler{logger: logger, uc: uc}
}

// Register handles POST /v1/couriers.
func (h *CourierHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerCourierRequest
	if !decodeJSON(h.logger, w, r, &req) {
		return
	}
	c, err := h.uc.Register(r.Context(), registerRequestToModel(req))
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	w.Header().Set("Location", "/v1/couriers/"+c.ID)
	writeJSON(h.logger, w, r, http.StatusCreated, courierToDTO(*c))
}

// GetByID handles GET /v1/couriers/{id}.
func (h *CourierHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}
	c, err := h.uc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, courierToDTO(*c))
}

// Heartbeat handles PUT /v1/couriers/me/heartbeat for the calling courier.
func (h *CourierHandler) Heartbeat(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(h.logger, w, r)
	if !ok {
		return
	}
	var req heartbeatRequest
	if !decodeJSON(h.logger, w, r, &req) {
		return
	}
	c, err := h.uc.Heartbeat(r.Context(), heartbeatRequestToModel(actor.ID, req))
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, courierToDTO(*c))
}
