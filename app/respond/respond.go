// Package respond writes the JSON envelopes used by every endpoint:
// {"respuesta": ...} on success and {"Error": "..."} on failure.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/listacompras/listacompras/app/apperr"
)

type Envelope struct {
	Respuesta any `json:"respuesta"`
}

type ErrorEnvelope struct {
	Error string `json:"Error"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // the client may already be gone
	json.NewEncoder(w).Encode(v)
}

// OK writes result inside the success envelope.
func OK(w http.ResponseWriter, result any) {
	JSON(w, http.StatusOK, Envelope{Respuesta: result})
}

// Error writes err inside the error envelope with the status of its kind.
// Unexpected failures are logged with their cause.
func Error(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError && logger != nil {
		logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}
	JSON(w, status, ErrorEnvelope{Error: apperr.Message(err)})
}

// Status maps an error kind to its HTTP status code.
func Status(err error) int {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperr.ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed
	case errors.Is(err, apperr.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// DecodeJSON decodes the request body into v. A body cut off by
// http.MaxBytesReader is reported as too large rather than malformed.
func DecodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apperr.TooLarge(fmt.Sprintf("el cuerpo de la peticion supera el maximo de %d bytes", maxErr.Limit))
		}
		return apperr.Validation("el cuerpo de la peticion no es un JSON valido")
	}
	return nil
}

// ParseID parses a positive integer path parameter.
func ParseID(raw, name string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validation("el parametro " + name + " no es un id valido")
	}
	return uint(id), nil
}
