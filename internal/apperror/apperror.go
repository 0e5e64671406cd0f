package apperror

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services. Controllers and the error middleware
// translate these into HTTP responses; everything else wraps them with %w so
// errors.Is keeps working through the layers.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrExtractionFailure   = errors.New("document extraction failed")
	ErrNoMeaningfulContent = errors.New("no meaningful content extracted")
	ErrInvalidCredentials  = errors.New("missing or invalid API credentials")
	ErrNoModelAvailable    = errors.New("no generation model available")
	ErrUpstreamTimeout     = errors.New("upstream request timed out")
	ErrUpstreamRateLimited = errors.New("upstream rate limit exceeded")
	ErrUpstreamFailure     = errors.New("upstream request failed")
	ErrSessionNotFound     = errors.New("session not found")
)

func Invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func Extraction(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrExtractionFailure, fmt.Sprintf(format, args...))
}

// IsClientError reports whether err should map to a 4xx status.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrExtractionFailure) ||
		errors.Is(err, ErrNoMeaningfulContent) ||
		errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrNoModelAvailable) ||
		errors.Is(err, ErrSessionNotFound)
}
