package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType defines the category of the error
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "VALIDATION_ERROR"
	ErrorTypeFetch      ErrorType = "FETCH_ERROR"
	ErrorTypeAssistant  ErrorType = "ASSISTANT_ERROR"
	ErrorTypeRateLimit  ErrorType = "RATE_LIMIT_ERROR"
	ErrorTypeNotFound   ErrorType = "NOT_FOUND_ERROR"
	ErrorTypeInternal   ErrorType = "INTERNAL_ERROR"
)

// AppError represents a structured error for the application
type AppError struct {
	Type          ErrorType `json:"type"`
	Message       string    `json:"message"`
	StatusCode    int       `json:"statusCode"`
	ErrorCode     string    `json:"errorCode"`
	IsOperational bool      `json:"isOperational"`
	Recovery      string    `json:"recoverySuggestion,omitempty"`
	Err           error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is / errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Code returns the application-specific error code
func (e *AppError) Code() string {
	return e.ErrorCode
}

// RecoverySuggestion returns the suggestion on how to recover from the error
func (e *AppError) RecoverySuggestion() string {
	return e.Recovery
}

// IsRetryable determines if the operation that caused the error should be retried
func (e *AppError) IsRetryable() bool {
	switch e.Type {
	case ErrorTypeRateLimit:
		return true
	case ErrorTypeFetch, ErrorTypeAssistant:
		return e.StatusCode >= 500
	default:
		return false
	}
}

// As extracts an *AppError from err, if there is one in the chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsType reports whether err carries an AppError of the given type.
func IsType(err error, t ErrorType) bool {
	appErr, ok := As(err)
	return ok && appErr.Type == t
}

// NewValidationError creates a new validation error (400)
func NewValidationError(message string, errorCode string, suggestion string) *AppError {
	return &AppError{
		Type:          ErrorTypeValidation,
		Message:       message,
		StatusCode:    http.StatusBadRequest,
		ErrorCode:     errorCode,
		IsOperational: true,
		Recovery:      suggestion,
	}
}

// NewNotFoundError creates a new not found error (404)
func NewNotFoundError(message string, errorCode string, suggestion string) *AppError {
	return &AppError{
		Type:          ErrorTypeNotFound,
		Message:       message,
		StatusCode:    http.StatusNotFound,
		ErrorCode:     errorCode,
		IsOperational: true,
		Recovery:      suggestion,
	}
}

// NewRateLimitError creates a new rate limit error (429)
func NewRateLimitError(message string, errorCode string, err error) *AppError {
	return &AppError{
		Type:          ErrorTypeRateLimit,
		Message:       message,
		StatusCode:    http.StatusTooManyRequests,
		ErrorCode:     errorCode,
		IsOperational: true,
		Recovery:      "Wait a moment and try again.",
		Err:           err,
	}
}

// NewFetchError creates a new recipe service error (502).
// statusCode is the upstream status, or 0 for transport failures.
func NewFetchError(message string, errorCode string, statusCode int, err error) *AppError {
	status := http.StatusBadGateway
	if statusCode >= 500 {
		status = statusCode
	}
	return &AppError{
		Type:          ErrorTypeFetch,
		Message:       message,
		StatusCode:    status,
		ErrorCode:     errorCode,
		IsOperational: true,
		Recovery:      "Check your connection and try the search again.",
		Err:           err,
	}
}

// NewAssistantError creates a new language-model error (502)
func NewAssistantError(message string, errorCode string, statusCode int, err error) *AppError {
	status := http.StatusBadGateway
	if statusCode >= 400 {
		status = statusCode
	}
	return &AppError{
		Type:          ErrorTypeAssistant,
		Message:       message,
		StatusCode:    status,
		ErrorCode:     errorCode,
		IsOperational: true,
		Recovery:      "Ask again in a moment.",
		Err:           err,
	}
}

// NewInternalError creates a new internal error (500)
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		ErrorCode:  "INTERNAL",
		Err:        err,
	}
}
