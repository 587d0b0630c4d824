// Package apperror provides structured error handling following RFC 7807 Problem Details.
// Every error that reaches the HTTP layer should be an AppError.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	// Infrastructure errors (5xx)
	CodeInternal = "INTERNAL_ERROR"
	CodeUpstream = "UPSTREAM_UNAVAILABLE"
	CodeTimeout  = "TIMEOUT_ERROR"

	// Validation errors (400)
	CodeValidation   = "VALIDATION_ERROR"
	CodeInvalidInput = "INVALID_INPUT"

	// Payload errors (413, 415)
	CodePayloadTooLarge    = "PAYLOAD_TOO_LARGE"
	CodeUnsupportedPayload = "UNSUPPORTED_MEDIA_TYPE"

	// Not found (404)
	CodeNotFound = "NOT_FOUND"
)

// UpstreamMessage is shown to citizens whenever the registry API misbehaves.
const UpstreamMessage = "Aparentemente a API fornecida pela PJC pode estar fora do ar, " +
	"por isso esse serviço não funcionará como o esperado, tente novamente em alguns instantes"

// AppError is the standard error type of the portal.
// It implements error interface and provides structured details for API responses.
type AppError struct {
	// Code is a machine-readable error identifier
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Details contains additional context (field errors, ids, etc.)
	Details map[string]any `json:"details,omitempty"`

	// HTTPStatus is the suggested HTTP status code
	HTTPStatus int `json:"-"`

	// Err is the underlying error (not exposed in JSON)
	Err error `json:"-"`
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a key-value pair to error details
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// --- Factory functions for common errors ---

// NewValidation creates a validation error (400)
func NewValidation(message string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewRequiredFields creates a validation error listing missing form fields.
func NewRequiredFields(fields ...string) *AppError {
	return NewValidation("required fields are missing").WithDetail("fields", fields)
}

// NewInvalidInput creates an invalid input error (400) for a single field.
func NewInvalidInput(field, message string) *AppError {
	return &AppError{
		Code:       CodeInvalidInput,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"field": field},
	}
}

// NewNotFound creates a not found error (404)
func NewNotFound(entity string, id any) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", entity),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"entity": entity, "id": id},
	}
}

// NewUpstream creates an error for a failed registry API call (502).
// The cause is kept for logs only.
func NewUpstream(operation string, err error) *AppError {
	return &AppError{
		Code:       CodeUpstream,
		Message:    UpstreamMessage,
		HTTPStatus: http.StatusBadGateway,
		Details:    map[string]any{"operation": operation},
		Err:        err,
	}
}

// NewTimeout creates a gateway timeout error (504).
func NewTimeout(operation string, err error) *AppError {
	return &AppError{
		Code:       CodeTimeout,
		Message:    UpstreamMessage,
		HTTPStatus: http.StatusGatewayTimeout,
		Details:    map[string]any{"operation": operation},
		Err:        err,
	}
}

// NewPayloadTooLarge creates an error for oversized uploads (413).
func NewPayloadTooLarge(field string, limit int64) *AppError {
	return &AppError{
		Code:       CodePayloadTooLarge,
		Message:    "Uploaded file is too large",
		HTTPStatus: http.StatusRequestEntityTooLarge,
		Details:    map[string]any{"field": field, "limit_bytes": limit},
	}
}

// NewUnsupportedPayload creates an error for rejected upload types (415).
func NewUnsupportedPayload(field, contentType string) *AppError {
	return &AppError{
		Code:       CodeUnsupportedPayload,
		Message:    "Only image uploads are accepted",
		HTTPStatus: http.StatusUnsupportedMediaType,
		Details:    map[string]any{"field": field, "content_type": contentType},
	}
}

// NewInternal creates an internal server error (hides details from client)
func NewInternal(err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// --- Helper functions ---

// IsAppError checks if error is AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError extracts AppError from error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetHTTPStatus returns appropriate HTTP status for any error
func GetHTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// IsNotFound checks if error is CodeNotFound
func IsNotFound(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == CodeNotFound
	}
	return false
}

// IsUpstream checks if error came from the registry API (unavailable or timed out).
func IsUpstream(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == CodeUpstream || appErr.Code == CodeTimeout
	}
	return false
}

// IsValidation checks if error is a client input error.
func IsValidation(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == CodeValidation || appErr.Code == CodeInvalidInput
	}
	return false
}
