package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeUnavailable is used when a backing store cannot be reached
	ErrCodeUnavailable = "ERR_UNAVAILABLE"
	// ErrCodeRateLimited is used when a client exhausted its request budget
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// Validation error codes
const (
	ErrCodeValidation = "ERR_VALIDATION"
)

// Authentication error codes
const (
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeForbidden    = "ERR_FORBIDDEN"
)

// Resource error codes
const (
	ErrCodeNotFound      = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
	// ErrCodeRequestTooLarge is used when the body exceeds the configured limit
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:     http.StatusInternalServerError,
	ErrCodeInternal:    http.StatusInternalServerError,
	ErrCodeUnavailable: http.StatusServiceUnavailable,
	ErrCodeRateLimited: http.StatusTooManyRequests,

	ErrCodeValidation: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidState: http.StatusUnprocessableEntity,

	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps shared.DomainError codes to API error codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":      ErrCodeNotFound,
	"ALREADY_EXISTS": ErrCodeAlreadyExists,
	"INVALID_INPUT":  ErrCodeInvalidInput,
	"INVALID_STATE":  ErrCodeInvalidState,
	"UNAUTHORIZED":   ErrCodeUnauthorized,
	"FORBIDDEN":      ErrCodeForbidden,
	"UNAVAILABLE":    ErrCodeUnavailable,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Codes already in the API format, or unknown, are returned as-is.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := DomainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}
