package dto

import "net/http"

// Unified error codes
const (
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeInvalidCartID     = "INVALID_CART_ID"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeEmptyCatalog      = "EMPTY_CATALOG"
	ErrCodeNoShippingProfile = "NO_SHIPPING_PROFILE"
	ErrCodeNoServiceZones    = "NO_SERVICE_ZONES"
	ErrCodeUpstreamFailure   = "RATE_API_UNAVAILABLE"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInvalidInput:      http.StatusBadRequest,
	ErrCodeInvalidCartID:     http.StatusBadRequest,
	ErrCodeNotFound:          http.StatusNotFound,
	ErrCodeEmptyCatalog:      http.StatusUnprocessableEntity,
	ErrCodeNoShippingProfile: http.StatusUnprocessableEntity,
	ErrCodeNoServiceZones:    http.StatusUnprocessableEntity,
	ErrCodeUpstreamFailure:   http.StatusBadGateway,
	ErrCodeInternalError:     http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code
func GetHTTPStatus(errorCode string) int {
	if status, ok := ErrorCodeHTTPStatus[errorCode]; ok {
		return status
	}
	return http.StatusInternalServerError
}
