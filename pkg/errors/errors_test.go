package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound, ErrAlreadyExists, ErrInvalidInput,
		ErrConflict, ErrServiceUnavail, ErrPaymentFailed, ErrGone,
	}

	for i := 0; i < len(sentinels); i++ {
		for j := i + 1; j < len(sentinels); j++ {
			assert.NotEqual(t, sentinels[i], sentinels[j],
				"sentinels %d and %d should be distinct", i, j)
		}
	}
}

func TestAppError_ErrorString(t *testing.T) {
	withInner := &AppError{Code: "INTERNAL_ERROR", Message: "something broke", Err: fmt.Errorf("redis down")}
	assert.Equal(t, "INTERNAL_ERROR: something broke: redis down", withInner.Error())

	bare := &AppError{Code: "NOT_FOUND", Message: "post not found"}
	assert.Equal(t, "NOT_FOUND: post not found", bare.Error())
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		code     string
		status   int
		sentinel error
	}{
		{"not found", NotFound("product", "7"), "NOT_FOUND", http.StatusNotFound, ErrNotFound},
		{"already exists", AlreadyExists("subscriber", "email", "a@b.co"), "ALREADY_EXISTS", http.StatusConflict, ErrAlreadyExists},
		{"invalid input", InvalidInput("quantity is required"), "INVALID_INPUT", http.StatusBadRequest, ErrInvalidInput},
		{"conflict", Conflict("cart changed"), "CONFLICT", http.StatusConflict, ErrConflict},
		{"gone", Gone("session expired"), "GONE", http.StatusGone, ErrGone},
		{"payment failed", PaymentFailed("card declined"), "PAYMENT_FAILED", http.StatusUnprocessableEntity, ErrPaymentFailed},
		{"unavailable", ServiceUnavailable("mailer down"), "SERVICE_UNAVAILABLE", http.StatusServiceUnavailable, ErrServiceUnavail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotNil(t, tt.err)
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.Status)
			assert.True(t, errors.Is(tt.err, tt.sentinel))
		})
	}
}

func TestInternal_KeepsCause(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := Internal(cause)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.ErrorIs(t, err, cause)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"app error", InvalidInput("x"), http.StatusBadRequest},
		{"wrapped app error", fmt.Errorf("ctx: %w", NotFound("post", "a")), http.StatusNotFound},
		{"wrapped sentinel", fmt.Errorf("insert: %w", ErrAlreadyExists), http.StatusConflict},
		{"conflict sentinel", ErrConflict, http.StatusConflict},
		{"payment sentinel", ErrPaymentFailed, http.StatusUnprocessableEntity},
		{"unavailable sentinel", ErrServiceUnavail, http.StatusServiceUnavailable},
		{"gone sentinel", ErrGone, http.StatusGone},
		{"plain error", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestClassify(t *testing.T) {
	app := NotFound("post", "care-guide")
	assert.Same(t, app, Classify(fmt.Errorf("handler: %w", app)))

	declined := Classify(fmt.Errorf("charge: %w", ErrPaymentFailed))
	assert.Equal(t, "PAYMENT_FAILED", declined.Code)
	assert.Equal(t, http.StatusUnprocessableEntity, declined.Status)
	assert.Equal(t, "payment failed", declined.Message)

	invalid := Classify(fmt.Errorf("quantity out of range: %w", ErrInvalidInput))
	assert.Equal(t, "INVALID_INPUT", invalid.Code)
	assert.Equal(t, "quantity out of range: invalid input", invalid.Message)

	cause := fmt.Errorf("dial tcp: refused")
	internal := Classify(cause)
	assert.Equal(t, "INTERNAL_ERROR", internal.Code)
	assert.Equal(t, "an internal error occurred", internal.Message)
	assert.ErrorIs(t, internal, cause)
}
