package utils

import (
	"encoding/json"
	"errors"
	"net/http"
)

const (
	// Request Error Codes
	ErrRequestInvalid           = "request/invalid_parameters"
	ErrRequestMissingHandle     = "request/missing_handle"
	ErrRequestBodyTooLarge      = "request/body_too_large"
	ErrRequestUnSupportedMedia  = "request/invalid_media"
	ErrRequestRateLimitExceeded = "request/rate_limit_exceeded"

	// Identity Error Codes
	ErrIdentityNotFound    = "identity/not_found"
	ErrIdentityUnsupported = "identity/unsupported_platform"

	// Image Error Codes
	ErrImageDecodeFailed     = "image/decode_failed"
	ErrImageTooLarge         = "image/too_large"
	ErrImageGenerationFailed = "image/generation_failed"

	// Server Error Codes
	ErrServerInternal = "server/internal_error"
	ErrServerTimeout  = "server/timeout"

	// Resource Error Codes
	ErrResourceNotFound = "resource/not_found"
	ErrUpstreamFailed   = "upstream/service_failed"
)

var (
	ErrOutfitNotFound = errors.New("outfit not found")
)

type APIError struct {
	Code    string `json:"code"`    // e.g., "request/invalid_parameters"
	Message string `json:"message"` // User-friendly message
	Status  int    `json:"status"`  // HTTP Status Code
}

// WriteError sends a JSON formatted error response
func WriteError(w http.ResponseWriter, status int, code string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(APIError{
		Code:    code,
		Message: message,
		Status:  status,
	})
}

func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
