// internal/app/features/errors/errors.go

// Package errors writes the uniform JSON envelope used by every API
// endpoint and pairs each failure response with a server-side log line.
// Handlers never expose internal error text to clients; the user-facing
// message and the logged error are always separate.
package errors

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// envelope is the wire shape of every response.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// WriteOK writes 200 with {"success":true,"data":…}.
func WriteOK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

// WriteCreated writes 201 with {"success":true,"data":…}.
func WriteCreated(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusCreated, envelope{Success: true, Data: data})
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// ErrorLogger writes failure envelopes and logs the underlying cause.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger bound to the given logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{Log: logger}
}

// BadRequest logs a malformed-input failure and writes 400.
func (e *ErrorLogger) BadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg string) {
	e.log(r, logMsg, err)
	writeJSON(w, http.StatusBadRequest, envelope{Error: userMsg})
}

// NotFound writes 404 with the user-facing message. Lookups that miss are
// expected, so nothing is logged.
func (e *ErrorLogger) NotFound(w http.ResponseWriter, userMsg string) {
	writeJSON(w, http.StatusNotFound, envelope{Error: userMsg})
}

// Internal logs a server-side failure and writes 500 with a generic
// message.
func (e *ErrorLogger) Internal(w http.ResponseWriter, r *http.Request, logMsg string, err error) {
	e.log(r, logMsg, err)
	writeJSON(w, http.StatusInternalServerError, envelope{Error: "Something went wrong. Please try again."})
}

// Upstream logs a storage-backend failure and writes 502.
func (e *ErrorLogger) Upstream(w http.ResponseWriter, r *http.Request, logMsg string, err error) {
	e.log(r, logMsg, err)
	writeJSON(w, http.StatusBadGateway, envelope{Error: "A storage backend is unavailable. Please try again."})
}

func (e *ErrorLogger) log(r *http.Request, msg string, err error) {
	if e.Log == nil {
		return
	}
	e.Log.Error(msg,
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
}
