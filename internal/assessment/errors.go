package assessment

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"google.golang.org/api/googleapi"
)

// ErrorKind classifies an inference failure for retry policy purposes.
type ErrorKind string

const (
	// KindTransient marks network/service errors that are eligible for retry.
	KindTransient ErrorKind = "transient"
	// KindMalformed marks responses that could not be parsed into the
	// assessment schema. Not retried; treated as permanent for the candidate.
	KindMalformed ErrorKind = "malformed"
)

// InferenceError represents a failure to obtain a usable assessment from the
// inference service.
type InferenceError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *InferenceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("inference failed (%s): %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("inference failed (%s): %s", e.Kind, e.Message)
}

func (e *InferenceError) Unwrap() error {
	return e.Cause
}

// IsTransient reports whether err is a retryable inference error.
func IsTransient(err error) bool {
	var infErr *InferenceError
	return errors.As(err, &infErr) && infErr.Kind == KindTransient
}

// classifyServiceError wraps a raw provider error as an InferenceError.
// Cancellations pass through untouched so the orchestrator can distinguish
// a cancelled batch from a failed candidate.
func classifyServiceError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && !isRetryableHTTPStatus(apiErr.Code) {
		return &InferenceError{Kind: KindMalformed, Message: "inference service rejected request", Cause: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return &InferenceError{Kind: KindTransient, Message: "network error calling inference service", Cause: err}
	}

	return &InferenceError{Kind: KindTransient, Message: "inference service error", Cause: err}
}

func isRetryableHTTPStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusRequestTimeout, http.StatusTooManyRequests, http.StatusInternalServerError,
		http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
