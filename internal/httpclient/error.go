package httpclient

import (
	goerrors "errors"
	"net/http"

	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/errors"
)

// Error represents a non-2xx HTTP response from a remote service
type Error struct {
	*errors.InternalError
	StatusCode int
	Response   []byte
}

func (e *Error) Unwrap() error {
	return e.InternalError.Unwrap()
}

func (e *Error) Error() string {
	return e.InternalError.Error()
}

// IsNotFound reports whether the remote signalled a missing resource
func (e *Error) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// NewError creates a new HTTP client error
func NewError(statusCode int, response []byte) *Error {
	return &Error{
		InternalError: errors.New(errors.ErrCodeHTTPClient, "http client error"),
		StatusCode:    statusCode,
		Response:      response,
	}
}

// IsHTTPError checks if an error is an HTTP client error
func IsHTTPError(err error) (*Error, bool) {
	var httpErr *Error
	if goerrors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}
