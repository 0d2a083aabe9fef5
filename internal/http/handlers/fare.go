package handlers

import (
	"net/http"

	"rider-dispatch/internal/logx"
)

// FareHandler quotes prices without creating anything.
type FareHandler struct {
	logger   logx.Logger
	dispatch dispatcher
}

// NewFareHandler creates a FareHandler.
func NewFareHandler(logger logx.Logger, d dispatcher) *FareHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &FareHandler{logger: logger, dispatch: d}
}

// Quote handles POST /v1/fares/quote.
func (h *FareHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req deliveryRequestDTO
	if !decodeJSON(h.logger, w, r, &req) {
		return
	}
	q, err := h.dispatch.Quote(deliveryRequestToModel(req))
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, quoteDTO{Fare: q})
}
