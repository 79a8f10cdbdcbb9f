package httpclient

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Mwasi-svg/kranian-farms-kenya-sub000/pkg/errors"
)

func fakeResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestParseResponseError_StructuredBody(t *testing.T) {
	err := ParseResponseError(fakeResponse(http.StatusBadRequest,
		`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`), "gemini")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, "gemini: API key not valid", appErr.Message)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestParseResponseError_StringError(t *testing.T) {
	err := ParseResponseError(fakeResponse(http.StatusConflict, `{"error":"duplicate"}`), "webhook")
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
	assert.Contains(t, err.Error(), "duplicate")
}

func TestParseResponseError_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		target error
	}{
		{http.StatusNotFound, apperrors.ErrNotFound},
		{http.StatusGone, apperrors.ErrGone},
		{http.StatusTooManyRequests, apperrors.ErrServiceUnavail},
		{http.StatusServiceUnavailable, apperrors.ErrServiceUnavail},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			err := ParseResponseError(fakeResponse(tt.status, "plain text"), "webhook")
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestParseResponseError_ServerErrorIsPlain(t *testing.T) {
	err := ParseResponseError(fakeResponse(http.StatusBadGateway, "upstream down"), "webhook")
	require.Error(t, err)

	var appErr *apperrors.AppError
	assert.False(t, errors.As(err, &appErr))
	assert.Contains(t, err.Error(), "webhook server error (502): upstream down")
}

func TestParseResponseError_OtherClientError(t *testing.T) {
	err := ParseResponseError(fakeResponse(http.StatusForbidden, "nope"), "webhook")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "UPSTREAM_ERROR", appErr.Code)
	assert.Equal(t, http.StatusForbidden, appErr.Status)
}

func TestIsSuccess(t *testing.T) {
	assert.True(t, IsSuccess(200))
	assert.True(t, IsSuccess(204))
	assert.False(t, IsSuccess(302))
	assert.False(t, IsSuccess(500))
}
