package models

import "errors"

// Domain errors for itinerary editing and extraction.
var (
	ErrNoItinerary          = errors.New("no itinerary loaded")
	ErrIndexOutOfRange      = errors.New("index out of range")
	ErrValidation           = errors.New("validation failed")
	ErrExtractionInProgress = errors.New("an extraction is already in progress")
	ErrExtractionFailed     = errors.New("image extraction failed")
	ErrNoImages             = errors.New("no images provided")
	ErrSuggestionFailed     = errors.New("activity suggestion failed")
)
