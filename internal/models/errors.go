package models

import (
	"fmt"
	"net/http"
)

// ErrorCode represents a custom error code for the application
type ErrorCode string

const (
	// General errors
	ErrCodeInternal   ErrorCode = "INTERNAL_ERROR"
	ErrCodeNotFound   ErrorCode = "NOT_FOUND"
	ErrCodeBadRequest ErrorCode = "BAD_REQUEST"
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"

	// Location resolution errors
	ErrCodeLocationNotFound  ErrorCode = "LOCATION_NOT_FOUND"
	ErrCodeUpstreamError     ErrorCode = "UPSTREAM_ERROR"
	ErrCodeInvalidCoordinate ErrorCode = "INVALID_COORDINATE"

	// Utterance errors
	ErrCodeDatetimeNotFound ErrorCode = "DATETIME_NOT_FOUND"
	ErrCodeInvalidTimezone  ErrorCode = "INVALID_TIMEZONE"

	// Service errors
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	ErrCodeRateLimitExceeded  ErrorCode = "RATE_LIMIT_EXCEEDED"
)

// AppError represents a structured application error
type AppError struct {
	Code       ErrorCode              `json:"code"`
	Message    string                 `json:"message"`
	Details    string                 `json:"details,omitempty"`
	StatusCode int                    `json:"-"`
	Internal   error                  `json:"-"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Code, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the internal error for error chain support
func (e *AppError) Unwrap() error {
	return e.Internal
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// WithMetadata adds metadata to the error
func (e *AppError) WithMetadata(key string, value interface{}) *AppError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// Common error constructors

func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Code:       ErrCodeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Internal:   err,
	}
}

func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:       ErrCodeBadRequest,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewValidationError(message string, details string) *AppError {
	return &AppError{
		Code:       ErrCodeValidation,
		Message:    message,
		Details:    details,
		StatusCode: http.StatusBadRequest,
	}
}

func NewLocationNotFoundError(location string, err error) *AppError {
	return &AppError{
		Code:       ErrCodeLocationNotFound,
		Message:    "Location is unknown",
		StatusCode: http.StatusNotFound,
		Internal:   err,
		Metadata: map[string]interface{}{
			"location": location,
		},
	}
}

func NewUpstreamError(operation string, err error) *AppError {
	return &AppError{
		Code:       ErrCodeUpstreamError,
		Message:    "Geocoding service is not reachable",
		StatusCode: http.StatusBadGateway,
		Internal:   err,
		Metadata: map[string]interface{}{
			"operation": operation,
		},
	}
}

func NewInvalidCoordinateError(details string) *AppError {
	return &AppError{
		Code:       ErrCodeInvalidCoordinate,
		Message:    "Coordinates are malformed or out of range",
		Details:    details,
		StatusCode: http.StatusBadRequest,
	}
}

func NewDatetimeNotFoundError(text string) *AppError {
	return &AppError{
		Code:       ErrCodeDatetimeNotFound,
		Message:    "Utterance contains no date or time",
		StatusCode: http.StatusNotFound,
		Metadata: map[string]interface{}{
			"text": text,
		},
	}
}

func NewInvalidTimezoneError(timezone string, err error) *AppError {
	return &AppError{
		Code:       ErrCodeInvalidTimezone,
		Message:    "Timezone identifier is unknown",
		StatusCode: http.StatusBadRequest,
		Internal:   err,
		Metadata: map[string]interface{}{
			"timezone": timezone,
		},
	}
}

func NewRateLimitError(message string) *AppError {
	return &AppError{
		Code:       ErrCodeRateLimitExceeded,
		Message:    message,
		StatusCode: http.StatusTooManyRequests,
	}
}
