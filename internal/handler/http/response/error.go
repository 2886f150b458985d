package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/roster-viewer-go/internal/domain/roster"
	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Request errors
	case errors.Is(err, roster.ErrInvalidFocusDate):
		BadRequest(w, err.Error(), map[string]string{"date": err.Error()})
	case errors.Is(err, roster.ErrInvalidGranularity):
		BadRequest(w, err.Error(), map[string]string{"view": err.Error()})

	// Lookup errors
	case errors.Is(err, roster.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Load errors
	case errors.Is(err, roster.ErrSnapshotUnavailable):
		ServiceUnavailable(w, "Roster records are temporarily unavailable")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
