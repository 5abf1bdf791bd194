package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	errs "github.com/coursedash/backend/internal/errors"
	"github.com/coursedash/backend/internal/middleware"
	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

// BaseHandler provides common handler functionality
type BaseHandler struct {
	logger *zap.Logger
}

// respondJSON sends a JSON response
func (h *BaseHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// respondError sends an error JSON response
func (h *BaseHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps a store error onto its HTTP status and sends it.
// Server-side failures are logged with the request ID, client errors are not.
func (h *BaseHandler) respondServiceError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	status, message := statusFromError(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(msg,
			zap.Error(err),
			zap.String("request_id", middleware.GetRequestID(r.Context())),
		)
	}
	h.respondError(w, status, message)
}

// logMutation logs a successful admin change together with the acting subject
func (h *BaseHandler) logMutation(r *http.Request, action string, fields ...zap.Field) {
	subject, _ := middleware.GetSubject(r.Context())
	h.logger.Info(action, append(fields,
		zap.String("subject", subject),
		zap.String("request_id", middleware.GetRequestID(r.Context())),
	)...)
}

// statusFromError normalizes store errors into an HTTP status and a client-facing message
func statusFromError(err error) (int, string) {
	var (
		validationErr *errs.ErrValidation
		notFoundErr   *errs.ErrNotFound
		corruptErr    *errs.ErrCorruptMetadata
		ioErr         *errs.ErrIO
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Error()
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound, notFoundErr.Error()
	case errors.As(err, &corruptErr):
		return http.StatusInternalServerError, "video metadata is corrupt"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "request canceled"
	case errors.As(err, &ioErr):
		return http.StatusInternalServerError, "storage failure"
	}
	return http.StatusInternalServerError, "internal server error"
}

// pathParam returns a decoded URL parameter.
// chi matches on the raw path when the request carries escaped separators, leaving the value escaped.
func pathParam(r *http.Request, name string) string {
	value := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return value
	}
	if unescaped, err := url.PathUnescape(value); err == nil {
		return unescaped
	}
	return value
}
