package utils

import (
	"encoding/json"
	"net/http"
	"time"

	"ms-booking/internal/apperr"
)

type APIResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	ErrorKind string      `json:"error_kind,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

func SuccessResponse(message string, data interface{}) APIResponse {
	return APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

func ErrorResponse(message string, kind apperr.Kind) APIResponse {
	return APIResponse{
		Success:   false,
		Message:   message,
		ErrorKind: string(kind),
		Timestamp: time.Now(),
	}
}

// WriteJSON writes v as a JSON response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteError maps a service error onto its HTTP status and structured
// failure body.
func WriteError(w http.ResponseWriter, err error) {
	WriteJSON(w, ErrorStatus(err), ErrorResponse(apperr.MessageOf(err), apperr.KindOf(err)))
}

// ErrorStatus maps an error kind to its HTTP status code.
func ErrorStatus(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConstraint:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
