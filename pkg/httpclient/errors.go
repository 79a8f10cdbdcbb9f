package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/Mwasi-svg/kranian-farms-kenya-sub000/pkg/errors"
)

// maxErrorBody caps how much of a failed response is read.
const maxErrorBody = 1 << 20

// upstreamError covers the two shapes third-party APIs tend to use:
// {"error":{"code":...,"message":...}} and {"error":"..."}.
type upstreamError struct {
	Error json.RawMessage `json:"error"`
}

type upstreamErrorBody struct {
	Code    any    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// ParseResponseError consumes and closes the body of a non-2xx response and
// maps it to an AppError. Callers must only use it for error statuses.
func ParseResponseError(resp *http.Response, upstream string) error {
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body: %w)", upstream, resp.StatusCode, err)
	}

	message := string(raw)
	var env upstreamError
	if json.Unmarshal(raw, &env) == nil && len(env.Error) > 0 {
		var body upstreamErrorBody
		var text string
		switch {
		case json.Unmarshal(env.Error, &body) == nil && body.Message != "":
			message = body.Message
		case json.Unmarshal(env.Error, &text) == nil && text != "":
			message = text
		}
	}

	return mapStatus(resp.StatusCode, message, upstream)
}

func mapStatus(status int, message, upstream string) error {
	qualified := fmt.Sprintf("%s: %s", upstream, message)

	switch {
	case status == http.StatusNotFound:
		return apperrors.NotFound(upstream, message)
	case status == http.StatusBadRequest:
		return apperrors.InvalidInput(qualified)
	case status == http.StatusConflict:
		return apperrors.Conflict(qualified)
	case status == http.StatusGone:
		return apperrors.Gone(qualified)
	case status == http.StatusTooManyRequests, status == http.StatusServiceUnavailable:
		return apperrors.ServiceUnavailable(qualified)
	case status >= 500:
		return fmt.Errorf("%s server error (%d): %s", upstream, status, message)
	default:
		return &apperrors.AppError{
			Code:    "UPSTREAM_ERROR",
			Message: qualified,
			Status:  status,
		}
	}
}

// IsSuccess reports whether status is 2xx.
func IsSuccess(status int) bool {
	return status >= 200 && status < 300
}
