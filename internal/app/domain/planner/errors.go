package planner

import (
	"errors"
	"net/http"

	"github.com/FACorreiaa/go-routeplanner/internal/app/models"
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrIndexOutOfRange):
		return http.StatusNotFound
	case errors.Is(err, models.ErrNoItinerary), errors.Is(err, models.ErrExtractionInProgress):
		return http.StatusConflict
	case errors.Is(err, models.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrNoImages):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrExtractionFailed), errors.Is(err, models.ErrSuggestionFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
