package dto

import "net/http"

// Error codes returned by the API. Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeValidationRequired is used when a required field is missing
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	// ErrCodeValidationFormat is used when a field has invalid format
	ErrCodeValidationFormat = "ERR_VALIDATION_FORMAT"
)

// Resource error codes
const (
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Production error codes
const (
	// ErrCodeNoEligibleOrders is used when none of the selected customer orders can be produced
	ErrCodeNoEligibleOrders = "ERR_NO_ELIGIBLE_ORDERS"
	// ErrCodeNoEligibleLines is used when eligible orders have no lines for the selected areas
	ErrCodeNoEligibleLines = "ERR_NO_ELIGIBLE_LINES"
	// ErrCodeIllegalStateTransition is used for transitions the status machine forbids
	ErrCodeIllegalStateTransition = "ERR_ILLEGAL_STATE_TRANSITION"
	// ErrCodeCancelBlocked is used when a later execution must be cancelled first
	ErrCodeCancelBlocked = "ERR_CANCEL_BLOCKED"
	// ErrCodeConsistencyViolation is used when stored production data contradicts itself
	ErrCodeConsistencyViolation = "ERR_CONSISTENCY_VIOLATION"
	ErrCodeInvalidState         = "ERR_INVALID_STATE"
)

// Input error codes
const (
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON  = "ERR_INVALID_JSON"
	ErrCodeBodyTooLarge = "ERR_REQUEST_TOO_LARGE"
	ErrCodeForbidden    = "ERR_FORBIDDEN"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:           http.StatusBadRequest,
	ErrCodeValidationRequired:   http.StatusBadRequest,
	ErrCodeValidationFormat:     http.StatusBadRequest,
	ErrCodeConsistencyViolation: http.StatusBadRequest,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeNoEligibleOrders:       http.StatusUnprocessableEntity,
	ErrCodeNoEligibleLines:        http.StatusUnprocessableEntity,
	ErrCodeIllegalStateTransition: http.StatusUnprocessableEntity,
	ErrCodeCancelBlocked:          http.StatusUnprocessableEntity,
	ErrCodeInvalidState:           http.StatusUnprocessableEntity,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,
	ErrCodeBodyTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeForbidden:    http.StatusForbidden,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to API error codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":                ErrCodeNotFound,
	"ALREADY_EXISTS":           ErrCodeAlreadyExists,
	"INVALID_INPUT":            ErrCodeInvalidInput,
	"INVALID_STATE":            ErrCodeInvalidState,
	"CONCURRENCY_CONFLICT":     ErrCodeConcurrencyConflict,
	"VALIDATION_ERROR":         ErrCodeValidation,
	"NO_ELIGIBLE_ORDERS":       ErrCodeNoEligibleOrders,
	"NO_ELIGIBLE_LINES":        ErrCodeNoEligibleLines,
	"ILLEGAL_STATE_TRANSITION": ErrCodeIllegalStateTransition,
	"CANCEL_BLOCKED":           ErrCodeCancelBlocked,
	"CONSISTENCY_VIOLATION":    ErrCodeConsistencyViolation,
	"BAD_REQUEST":              ErrCodeBadRequest,
	"INTERNAL_ERROR":           ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to its API form.
// Codes already in API form, and unknown codes, are returned as-is.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := DomainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}
