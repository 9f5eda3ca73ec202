package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
)

func RespondJSON(w http.ResponseWriter, logger *slog.Logger, status int, payload any) {
	// Handle nil payload
	if payload == nil {
		w.WriteHeader(status)
		return
	}

	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Error encoding response to JSON", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	RespondJSON(w, logger, status, map[string]string{"error": message})
}

// RespondValidationError writes 400 with a validation_errors object keyed by struct field.
// Errors that are not validator.ValidationErrors are reported as a plain error message.
func RespondValidationError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		RespondError(w, logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	errorMessages := make(map[string]string, len(validationErrors))
	for _, fieldErr := range validationErrors {
		errorMessages[fieldErr.Field()] = fmt.Sprintf("failed on rule: %s", fieldErr.Tag())
	}
	RespondJSON(w, logger, http.StatusBadRequest, map[string]any{"validation_errors": errorMessages})
}

// DecodeJSON decodes the request body into dst, rejecting unknown fields and trailing data.
// On failure it has already written a 400 response.
func DecodeJSON(w http.ResponseWriter, r *http.Request, logger *slog.Logger, dst any) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		logger.WarnContext(r.Context(), "Failed to decode request body", "error", err)
		RespondError(w, logger, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if decoder.More() {
		logger.WarnContext(r.Context(), "Request body has trailing data")
		RespondError(w, logger, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// ParseID extracts the positive numeric {id} path value. Returns the ID and a boolean indicating success.
func ParseID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (int64, bool) {
	return ParsePathValue(r, w, logger, "id", gt(0))
}
