package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"rider-dispatch/internal/apperr"
	"rider-dispatch/internal/domain"
	"rider-dispatch/internal/http/middleware"
	"rider-dispatch/internal/logx"
)

const bodyLimit = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func reqID(ctx context.Context) string {
	if id := chimw.GetReqID(ctx); id != "" {
		return id
	}
	return "-"
}

func writeJSON(logger logx.Logger, w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		logger.Error("json encode error",
			logx.String("request_id", reqID(r.Context())),
			logx.Err(err),
		)
	}
}

type errResponse struct {
	Error     string `json:"error"`
	Current   string `json:"current_status,omitempty"`
	Requested string `json:"requested_status,omitempty"`
}

func writeError(logger logx.Logger, w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(logger, w, r, status, errResponse{Error: msg})
}

// writeServiceError maps service errors onto HTTP statuses.
func writeServiceError(logger logx.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var te *domain.TransitionError
	switch {
	case errors.As(err, &te):
		writeJSON(logger, w, r, http.StatusConflict, errResponse{
			Error:     te.Error(),
			Current:   string(te.Current),
			Requested: string(te.Requested),
		})
	case errors.Is(err, apperr.ErrInvalid):
		writeError(logger, w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrForbidden):
		writeError(logger, w, r, http.StatusForbidden, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		writeError(logger, w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, apperr.ErrConflict):
		writeError(logger, w, r, http.StatusConflict, err.Error())
	default:
		logger.Error("request failed",
			logx.String("request_id", reqID(r.Context())),
			logx.String("path", r.URL.Path),
			logx.Err(err),
		)
		writeError(logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// decodeJSON reads a single JSON object into dst and validates it.
func decodeJSON[T any](logger logx.Logger, w http.ResponseWriter, r *http.Request, dst *T) bool {
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		writeError(logger, w, r, http.StatusBadRequest, "invalid json")
		return false
	}
	if err := dec.Decode(new(struct{})); err != io.EOF {
		writeError(logger, w, r, http.StatusBadRequest, "invalid json: trailing data")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		writeError(logger, w, r, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid input"
	}
	fe := verrs[0]
	field := fe.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}
	if fe.Param() != "" {
		return fmt.Sprintf("invalid input: %s must satisfy %s=%s", field, fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("invalid input: %s must satisfy %s", field, fe.Tag())
}

func idFromURL(r *http.Request, name string) (string, error) {
	id := strings.TrimSpace(chi.URLParam(r, name))
	if id == "" {
		return "", errors.New("invalid id")
	}
	return id, nil
}

// actorOr401 returns the authenticated actor or answers 401.
func actorOr401(logger logx.Logger, w http.ResponseWriter, r *http.Request) (domain.Actor, bool) {
	a, ok := middleware.ActorFrom(r.Context())
	if !ok {
		writeError(logger, w, r, http.StatusUnauthorized, "authentication required")
	}
	return a, ok
}
