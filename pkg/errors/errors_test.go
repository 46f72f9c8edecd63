package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFound(t *testing.T) {
	err := NotFound("review", "rev-1")

	assert.Equal(t, "NOT_FOUND", err.Code)
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "rev-1")
}

func TestInvalidInput(t *testing.T) {
	err := InvalidInput("rating must be between 1 and 5")

	assert.Equal(t, "INVALID_INPUT", err.Code)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestInternal_WrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal(cause)

	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.ErrorIs(t, err, cause)
}

func TestUnavailable(t *testing.T) {
	err := Unavailable("generation service down")

	assert.Equal(t, http.StatusServiceUnavailable, err.Status)
	assert.ErrorIs(t, err, ErrServiceUnavail)
}

func TestWrap_PreservesSentinel(t *testing.T) {
	err := Wrap(ErrNotFound, "load review")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "load review")
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"app error", NotFound("review", "x"), http.StatusNotFound},
		{"wrapped sentinel", fmt.Errorf("outer: %w", ErrInvalidInput), http.StatusBadRequest},
		{"unavailable sentinel", ErrServiceUnavail, http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
