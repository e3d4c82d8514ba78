// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/tasteai/v2/pkg/errors"
	"go.uber.org/zap"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, response APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
	}
}

// writeError maps application errors to HTTP status codes and writes a
// JSON error response.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	var appErr *errors.AppError
	if e, ok := err.(*errors.AppError); ok {
		appErr = e
		status = appErr.StatusCode()
		message = appErr.Message
		if appErr.Details != "" {
			message = appErr.Message + ": " + appErr.Details
		}
	}

	if status >= 500 {
		logger.Error("Request failed", zap.Error(err))
		// Internal details stay out of responses
		message = "internal server error"
	}

	writeJSON(w, logger, status, APIResponse{
		Success: false,
		Error:   message,
	})
}

// decodeBody decodes a JSON request body into dst
func decodeBody(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.NewBadRequestError("invalid JSON body")
	}
	return nil
}
