// Package errors provides the coded error type used across headerchain and utilities for
// categorizing and handling those errors.
package errors

import (
	"context"
	"errors"
	"strings"
)

// IsValidationError reports whether err rejects a submitted header batch, as opposed to a
// failure of the service or its storage.
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}

	var tErr *Error
	if As(err, &tErr) {
		switch tErr.Code() {
		case ERR_MALFORMED_ENCODING,
			ERR_MALFORMED_HEADER,
			ERR_INSUFFICIENT_BATCH_SIZE,
			ERR_DIFFICULTY_EXCEEDS_THRESHOLD,
			ERR_CHAIN_LINK_MISMATCH,
			ERR_PROOF_OF_WORK_FAILED:
			return true
		}
	}

	return false
}

// IsRetryableError determines if an error is transient and the operation should be retried.
// This includes network timeouts, temporary unavailability, and other transient conditions.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Check if context was cancelled - not retryable
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var tErr *Error
	if As(err, &tErr) {
		switch tErr.Code() {
		case ERR_NETWORK_TIMEOUT,
			ERR_NETWORK_ERROR,
			ERR_SERVICE_UNAVAILABLE,
			ERR_STORAGE_UNAVAILABLE:
			return true
		case ERR_NETWORK_INVALID_RESPONSE:
			return false
		}
	}

	return false
}

// IsNetworkError determines if an error is network-related.
//
// Parameters:
//   - err: Error to check
//
// Returns:
//   - bool: true if error is network-related
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}

	var tErr *Error
	if As(err, &tErr) {
		switch tErr.Code() {
		case ERR_NETWORK_ERROR,
			ERR_NETWORK_TIMEOUT,
			ERR_NETWORK_INVALID_RESPONSE:
			return true
		}
	}

	errStr := strings.ToLower(err.Error())
	networkStrings := []string{
		"connection refused",
		"connection reset",
		"dial tcp",
		"no such host",
		"broken pipe",
		"i/o timeout",
	}

	for _, s := range networkStrings {
		if strings.Contains(errStr, s) {
			return true
		}
	}

	return false
}

// IsContextError determines if an error is related to context cancellation or deadline.
func IsContextError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var tErr *Error
	if As(err, &tErr) {
		if tErr.Code() == ERR_CONTEXT_CANCELED || tErr.Code() == ERR_CONTEXT {
			return true
		}
	}

	return false
}

// GetErrorCategory returns a string representing the category of the error.
// This is useful for logging and metrics.
//
// Parameters:
//   - err: Error to categorize
//
// Returns:
//   - string: Error category (e.g., "context", "validation", "storage", "network", "unknown")
func GetErrorCategory(err error) string {
	if err == nil {
		return "none"
	}

	if IsContextError(err) {
		return "context"
	}

	var tErr *Error
	if As(err, &tErr) {
		code := tErr.Code()

		switch {
		case code >= 10 && code <= 19:
			return "validation"
		case code >= 50 && code <= 59:
			return "service"
		case code >= 60 && code <= 69:
			return "storage"
		case code >= 100 && code <= 109:
			return "state"
		case code >= 110 && code <= 119:
			return "network"
		}
	}

	if IsNetworkError(err) {
		return "network"
	}

	return "unknown"
}
