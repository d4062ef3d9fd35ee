package errors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusFromErr(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{
			name:   "not found",
			err:    NewError("invoice not found").Mark(ErrNotFound),
			status: http.StatusNotFound,
		},
		{
			name:   "validation",
			err:    NewError("invoice_id is required").Mark(ErrValidation),
			status: http.StatusBadRequest,
		},
		{
			name:   "upstream",
			err:    NewError("catalog returned 500").Mark(ErrUpstream),
			status: http.StatusBadGateway,
		},
		{
			name:   "communication",
			err:    NewError("connection refused").Mark(ErrCommunication),
			status: http.StatusServiceUnavailable,
		},
		{
			name:   "dependency unavailable",
			err:    NewError("invoice service down").Mark(ErrDependencyUnavailable),
			status: http.StatusBadGateway,
		},
		{
			name:   "database",
			err:    NewError("query failed").Mark(ErrDatabase),
			status: http.StatusInternalServerError,
		},
		{
			name:   "unclassified",
			err:    NewError("something odd").Mark(ErrSystem),
			status: http.StatusInternalServerError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, HTTPStatusFromErr(tc.err))
		})
	}
}

func TestHTTPStatusFromErrDependencyWrapsNotFound(t *testing.T) {
	// a strict read wraps a remote not-found in a dependency classification;
	// the error then matches both sentinels and the dependency one must win
	inner := NewError("invoice not found").Mark(ErrNotFound)
	wrapped := WithError(inner).
		WithHint("Failed to resolve line item dependencies").
		Mark(ErrDependencyUnavailable)

	assert.True(t, IsNotFound(wrapped))
	assert.True(t, IsDependencyUnavailable(wrapped))
	assert.Equal(t, http.StatusBadGateway, HTTPStatusFromErr(wrapped))
}

func TestErrorBuilderMarks(t *testing.T) {
	err := NewErrorf("line item not found: %s", "line_123").
		WithHint("Line item not found").
		Mark(ErrNotFound)

	assert.True(t, IsNotFound(err))
	assert.False(t, IsValidation(err))
	assert.Contains(t, err.Error(), "line_123")
}
