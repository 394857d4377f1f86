// Package handler turns HTTP requests into service calls and service
// results into JSON responses.
//
// Every error body has the same shape, {"error": "<message>"}, and the
// status code is chosen in one place, writeError.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/personal-site/internal/apperror"
)

// maxJSONBody caps JSON request bodies. Uploads go through the upload
// package and are not affected.
const maxJSONBody = 1 << 20

const msgInternal = "Internal server error"

type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse is the body of every successful write without a
// resource to return.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// CreatedResponse is returned by the create endpoints.
type CreatedResponse struct {
	ID       int64  `json:"id"`
	Filename string `json:"filename,omitempty"`
	Success  bool   `json:"success"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// headers are already sent
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps err to a status code and writes {"error": message}.
// Only AppError messages reach the client; anything else becomes a generic
// 500 and is logged with the request id.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		logServerError(r, logger, err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: msgInternal})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperror.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperror.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, apperror.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, apperror.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperror.ErrTooLarge):
		status = http.StatusRequestEntityTooLarge
	}

	if status == http.StatusInternalServerError {
		logServerError(r, logger, err)
	}

	writeJSON(w, status, ErrorResponse{Error: appErr.Message})
}

func logServerError(r *http.Request, logger *slog.Logger, err error) {
	logger.Error("request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("request_id", chimiddleware.GetReqID(r.Context())),
		slog.String("error", err.Error()),
	)
}

// decodeJSON reads a single JSON object from the request body into dst.
// Unknown fields are ignored.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return &apperror.AppError{
				Err:     apperror.ErrTooLarge,
				Message: fmt.Sprintf("Request body too large (limit %d bytes)", maxJSONBody),
			}
		}
		return apperror.ValidationFailed("body", "Invalid JSON body")
	}

	return nil
}

// idParam parses the {id} URL parameter. Only positive integers are ids.
func idParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.ValidationFailed("id", "Invalid id")
	}
	return id, nil
}
