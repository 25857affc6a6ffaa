package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"event-ticketing-frontend/internal/models"
)

// apiResponse mirrors the backend's envelope so the browser sees one
// uniform shape whether data came from here or passed through.
type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(apiResponse{Success: true, Data: data}); err != nil {
		log.Printf("handlers: failed to encode response: %v", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiResponse{Success: status < 400, Message: message})
}

// writeError converts an error into a user-displayable envelope. Backend
// failures keep the status and message the backend chose; everything else
// maps through the sentinel errors.
func writeError(w http.ResponseWriter, err error) {
	var be *models.BackendError
	if errors.As(err, &be) {
		status := be.StatusCode
		if status < 400 {
			status = http.StatusBadGateway
		}
		writeMessage(w, status, be.Error())
		return
	}

	switch {
	case errors.Is(err, models.ErrEventNotFound),
		errors.Is(err, models.ErrSectionNotFound),
		errors.Is(err, models.ErrOrderNotFound),
		errors.Is(err, models.ErrPaymentNotFound):
		writeMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrNoActiveCheckout):
		writeMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrCheckoutInProgress):
		writeMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrCartEmpty),
		errors.Is(err, models.ErrUnknownProvider),
		errors.Is(err, models.ErrInvalidInput):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrUnauthorized):
		writeMessage(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, models.ErrBackendUnavailable):
		writeMessage(w, http.StatusBadGateway, "The ticketing service is unavailable. Please try again.")
	default:
		log.Printf("handlers: internal error: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}
}

func decodeJSON(r *http.Request, out interface{}) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return models.ErrInvalidInput
	}
	return nil
}

// bearerToken extracts the caller's bearer token for backend passthrough.
// Authentication itself lives in the backend; this layer only forwards.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}
