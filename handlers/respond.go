package handlers

import (
	"errors"
	"log"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase/core"

	"bomestimator/services"
)

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidBOM):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrIndex):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// jsonError writes {"error": message}.
func jsonError(e *core.RequestEvent, status int, message string) error {
	return e.JSON(status, map[string]any{"error": message})
}

// respondError writes the JSON error body for err. Field-level validation
// details are included under "details"; internal errors are logged and
// replaced with a generic message.
func respondError(e *core.RequestEvent, area string, err error) error {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("%s: %v", area, err)
		return jsonError(e, status, "Something went wrong. Please try again.")
	}

	body := map[string]any{"error": err.Error()}
	var fields validation.Errors
	if errors.As(err, &fields) {
		body["details"] = fields
	}
	return e.JSON(status, body)
}
