package common

import (
	"encoding/json"
	"net/http"
	"time"

	"dream-analyzer/backend/internal/logging"
	"dream-analyzer/backend/internal/models/dtos"
)

// RespondSuccess sends a standardized JSON success response.
func RespondSuccess(w http.ResponseWriter, initTime time.Time, message string, data any, statusCode ...int) {
	code := http.StatusOK
	if len(statusCode) > 0 {
		code = statusCode[0]
	}

	response := dtos.APIResponse{
		Success:      true,
		Message:      message,
		ResponseTime: GetResponseTime(initTime),
		Data:         data,
	}

	WriteJSON(w, code, response)
}

// RespondError sends a standardized JSON error response.
func RespondError(w http.ResponseWriter, initTime time.Time, message string, statusCode ...int) {
	code := http.StatusInternalServerError
	if len(statusCode) > 0 {
		code = statusCode[0]
	}

	response := dtos.APIResponse{
		Success:      false,
		Error:        message,
		ResponseTime: GetResponseTime(initTime),
	}

	WriteJSON(w, code, response)
}

// WriteJSON marshals body and writes it to the HTTP response.
func WriteJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error("JSON encode failed", "error", err)
	}
}
