package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/EzraElette/contacts-server/internal/model"
)

// writeError maps core errors onto HTTP status codes and writes a JSON error
// body. Validation failures carry their user-facing message through;
// anything unrecognized is an internal error and its detail stays
// server-side.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, model.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, model.ErrUsernameTaken):
		status = http.StatusConflict
		message = model.ErrUsernameTaken.Error()
	case errors.Is(err, model.ErrInvalidUsername),
		errors.Is(err, model.ErrPasswordMismatch),
		errors.Is(err, model.ErrPasswordLength),
		errors.Is(err, model.ErrInvalidName),
		errors.Is(err, model.ErrUnknownRelationship):
		status = http.StatusUnprocessableEntity
		message = err.Error()
	case errors.Is(err, model.ErrNotFound):
		status = http.StatusNotFound
		message = "not found"
	case errors.Is(err, model.ErrCollectionBusy):
		// Transient lock contention; the client may retry.
		status = http.StatusServiceUnavailable
		message = model.ErrCollectionBusy.Error()
	}

	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
