package errors

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Sentinel errors used across the service. Failures from the remote invoice
// and catalog services keep their own classifications (upstream vs transport)
// so callers can tell them apart from a plain missing resource.
var (
	ErrNotFound              = newSentinel(ErrCodeNotFound, "resource not found")
	ErrValidation            = newSentinel(ErrCodeValidation, "validation error")
	ErrInvalidOperation      = newSentinel(ErrCodeInvalidOperation, "invalid operation")
	ErrUpstream              = newSentinel(ErrCodeUpstream, "upstream service error")
	ErrCommunication         = newSentinel(ErrCodeCommunication, "service communication failure")
	ErrDependencyUnavailable = newSentinel(ErrCodeDependencyUnavailable, "dependency unavailable")
	ErrHTTPClient            = newSentinel(ErrCodeHTTPClient, "http client error")
	ErrDatabase              = newSentinel(ErrCodeDatabase, "database error")
	ErrSystem                = newSentinel(ErrCodeSystemError, "system error")

	// maps errors to http status codes, checked in order. A strict-read
	// failure wrapping a remote not-found matches both ErrDependencyUnavailable
	// and ErrNotFound, so the dependency classification has to win.
	statusCodeMap = []struct {
		sentinel error
		status   int
	}{
		{ErrDependencyUnavailable, http.StatusBadGateway},
		{ErrNotFound, http.StatusNotFound},
		{ErrValidation, http.StatusBadRequest},
		{ErrInvalidOperation, http.StatusBadRequest},
		{ErrUpstream, http.StatusBadGateway},
		{ErrCommunication, http.StatusServiceUnavailable},
		{ErrHTTPClient, http.StatusInternalServerError},
		{ErrDatabase, http.StatusInternalServerError},
		{ErrSystem, http.StatusInternalServerError},
	}
)

const (
	ErrCodeNotFound              = "not_found"
	ErrCodeValidation            = "validation_error"
	ErrCodeInvalidOperation      = "invalid_operation"
	ErrCodeUpstream              = "upstream_error"
	ErrCodeCommunication         = "communication_failure"
	ErrCodeDependencyUnavailable = "dependency_unavailable"
	ErrCodeHTTPClient            = "http_client_error"
	ErrCodeDatabase              = "database_error"
	ErrCodeSystemError           = "system_error"
)

// InternalError represents a domain error
type InternalError struct {
	Code    string // Machine-readable error code
	Message string // Human-readable error message
	Err     error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is implements error matching for wrapped errors
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

func newSentinel(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

// New creates a new InternalError with the given code and message
func New(code string, message string) *InternalError {
	return newSentinel(code, message)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsUpstream checks if an error is an upstream service error
func IsUpstream(err error) bool {
	return errors.Is(err, ErrUpstream)
}

// IsCommunication checks if an error is a transport-level failure
func IsCommunication(err error) bool {
	return errors.Is(err, ErrCommunication)
}

// IsDependencyUnavailable checks if an error is a dependency failure
// classified by the orchestrator
func IsDependencyUnavailable(err error) bool {
	return errors.Is(err, ErrDependencyUnavailable)
}

// IsDatabase checks if an error is a database error
func IsDatabase(err error) bool {
	return errors.Is(err, ErrDatabase)
}

func HTTPStatusFromErr(err error) int {
	for _, entry := range statusCodeMap {
		if errors.Is(err, entry.sentinel) {
			return entry.status
		}
	}
	return http.StatusInternalServerError
}
