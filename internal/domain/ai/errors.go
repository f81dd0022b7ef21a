package ai

import (
	"errors"
	"fmt"
)

// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")

// ReasonCode classifies adapter failures.
type ReasonCode string

const (
	ReasonParseError    ReasonCode = "parse_error"
	ReasonNetworkError  ReasonCode = "network_error"
	ReasonQuotaExceeded ReasonCode = "quota_exceeded"
	ReasonUnknown       ReasonCode = "unknown"
)

// ServiceError is the one failure type the adapter boundary produces.
// It always carries a reason code so callers can build a user-facing
// message without inspecting provider internals.
type ServiceError struct {
	Code ReasonCode
	Err  error
}

func (e *ServiceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("ai service error: %s", e.Code)
	}
	return fmt.Sprintf("ai service error (%s): %v", e.Code, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

func (e *ServiceError) Is(target error) bool {
	return target == ErrQuotaExceeded && e.Code == ReasonQuotaExceeded
}

// Message returns the human-readable text surfaced to API clients.
func (e *ServiceError) Message() string {
	switch e.Code {
	case ReasonParseError:
		return "AI returned a response that could not be parsed."
	case ReasonNetworkError:
		return "Could not reach the AI provider."
	case ReasonQuotaExceeded:
		return "AI provider quota exceeded. Try again later."
	default:
		return "AI provider error."
	}
}
