package web

// errors.go provides unified error response handling for the web
// layer. Every handler error is logged with full technical detail
// server-side and returned to the client as a user-friendly JSON
// message with an action suggestion and a support code, mapped via
// catalog.MapError.

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/minhtran/catalog-admin/internal/catalog"
)

// ErrorResponse is the JSON structure for API error responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError logs the technical error and writes the mapped user
// message with a status derived from the error kind.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	statusCode := statusFor(err)
	userMsg := catalog.MapError(err)

	slog.Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
		"request_id", middleware.GetReqID(r.Context()),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   userMsg.Message,
		Message: userMsg.Message,
		Action:  userMsg.Action,
		Code:    userMsg.Code,
	})
}

// statusFor maps the catalog error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	var verr *catalog.ValidationError
	if errors.As(err, &verr) {
		return http.StatusUnprocessableEntity
	}

	var nerr *catalog.NetworkError
	if errors.As(err, &nerr) {
		return http.StatusBadGateway
	}

	var ferr *catalog.NotFoundError
	if errors.As(err, &ferr) {
		return http.StatusNotFound
	}

	switch {
	case errors.Is(err, catalog.ErrNotLoaded):
		return http.StatusServiceUnavailable
	case errors.Is(err, catalog.ErrNothingToExport):
		return http.StatusConflict
	}

	return http.StatusInternalServerError
}

// writeError writes a bare JSON error response for middleware-level
// failures that never reach a handler.
func writeError(w http.ResponseWriter, status int, message string) {
	slog.Warn("request rejected", "status", status, "error", message)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"error":%q}`, message)
}

// writeJSON encodes v as JSON and writes it to w.
func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
