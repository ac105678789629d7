package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the broad category of an error
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeProcessing ErrorType = "processing"
	ErrorTypeNetwork    ErrorType = "network"
	ErrorTypeTimeout    ErrorType = "timeout"
	ErrorTypeRateLimit  ErrorType = "rate_limit"
	ErrorTypeInternal   ErrorType = "internal"
)

// Code is a stable, machine-readable error code exposed to callers.
type Code string

const (
	CodeUnsupportedFormat Code = "UNSUPPORTED_FORMAT"
	CodeFileTooLarge      Code = "FILE_TOO_LARGE"
	CodeEmptyFile         Code = "EMPTY_FILE"
	CodeSignatureMismatch Code = "SIGNATURE_MISMATCH"
	CodeDecodeFailed      Code = "DECODE_FAILED"
	CodeProcessingFailed  Code = "PROCESSING_FAILED"
	CodeExtractionFailed  Code = "EXTRACTION_FAILED"
	CodeInvalidResponse   Code = "INVALID_RESPONSE"
	CodeRateLimited       Code = "RATE_LIMITED"
	CodeTimeout           Code = "TIMEOUT"
	CodeInternal          Code = "INTERNAL_ERROR"
)

// ErrCancelled marks a cooperatively-cancelled operation. Cancellation is a
// first-class outcome, not a failure; callers check for it with errors.Is
// before mapping anything to an AppError.
var ErrCancelled = errors.New("operation cancelled")

// AppError is a structured application error carrying a stable code, a
// human-readable message and an HTTP-equivalent status.
type AppError struct {
	Type       ErrorType `json:"type"`
	Code       Code      `json:"code"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	StatusCode int       `json:"status_code"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s [%s]: %s (caused by: %v)", e.Type, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s [%s]: %s", e.Type, e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates an input-validation error with a specific code
func NewValidationError(code Code, message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
}

// NewProcessingError creates a pipeline-stage error. The stage name is carried
// in Details so the caller can decide whether to retry with other options.
func NewProcessingError(stage, message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeProcessing,
		Code:       CodeProcessingFailed,
		Message:    message,
		Details:    stage,
		StatusCode: http.StatusUnprocessableEntity,
		Cause:      cause,
	}
}

// NewNetworkError creates an error for a failed call to the AI service
func NewNetworkError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeNetwork,
		Code:       CodeExtractionFailed,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

// NewInvalidResponseError creates an error for an unparseable model response.
// rawExcerpt should be a truncated copy of the raw text for diagnostics.
func NewInvalidResponseError(message, rawExcerpt string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeProcessing,
		Code:       CodeInvalidResponse,
		Message:    message,
		Details:    rawExcerpt,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

// NewTimeoutError creates a timeout error
func NewTimeoutError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeTimeout,
		Code:       CodeTimeout,
		Message:    message,
		StatusCode: http.StatusGatewayTimeout,
		Cause:      cause,
	}
}

// NewRateLimitError creates an error for an HTTP 429 from the AI service
func NewRateLimitError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeRateLimit,
		Code:       CodeRateLimited,
		Message:    message,
		StatusCode: http.StatusTooManyRequests,
		Cause:      cause,
	}
}

// NewInternalError creates an internal error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       CodeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// IsType checks if the error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}

// GetCode extracts the stable error code, defaulting to CodeInternal
func GetCode(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// GetStatusCode extracts the HTTP status code from an error
func GetStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
