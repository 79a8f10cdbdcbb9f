// Package errors carries the storefront's error vocabulary: sentinel kinds,
// the AppError that handlers render, and the kind to status/code mapping.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound       = errors.New("resource not found")
	ErrAlreadyExists  = errors.New("resource already exists")
	ErrInvalidInput   = errors.New("invalid input")
	ErrConflict       = errors.New("conflict")
	ErrServiceUnavail = errors.New("service unavailable")
	ErrPaymentFailed  = errors.New("payment failed")
	ErrGone           = errors.New("gone")
)

type kind struct {
	sentinel error
	code     string
	status   int
	message  string
}

// kinds is checked in order; the first sentinel matched by errors.Is wins.
var kinds = []kind{
	{ErrNotFound, "NOT_FOUND", http.StatusNotFound, "resource not found"},
	{ErrAlreadyExists, "ALREADY_EXISTS", http.StatusConflict, "resource already exists"},
	{ErrInvalidInput, "INVALID_INPUT", http.StatusBadRequest, ""},
	{ErrConflict, "CONFLICT", http.StatusConflict, "request conflicts with current state"},
	{ErrPaymentFailed, "PAYMENT_FAILED", http.StatusUnprocessableEntity, "payment failed"},
	{ErrServiceUnavail, "SERVICE_UNAVAILABLE", http.StatusServiceUnavailable, "a downstream service is unavailable"},
	{ErrGone, "GONE", http.StatusGone, "resource is no longer available"},
}

const (
	internalCode    = "INTERNAL_ERROR"
	internalMessage = "an internal error occurred"
)

// AppError is an error with the code, message and status a client sees.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func newAppError(sentinel error, message string) *AppError {
	for _, k := range kinds {
		if k.sentinel == sentinel {
			return &AppError{Code: k.code, Message: message, Status: k.status, Err: sentinel}
		}
	}
	return &AppError{Code: internalCode, Message: message, Status: http.StatusInternalServerError, Err: sentinel}
}

// NotFound reports a missing product, post or other resource by id.
func NotFound(resource, id string) *AppError {
	return newAppError(ErrNotFound, fmt.Sprintf("%s with id %s not found", resource, id))
}

// AlreadyExists reports a uniqueness clash, e.g. a repeated newsletter email.
func AlreadyExists(resource, field, value string) *AppError {
	return newAppError(ErrAlreadyExists, fmt.Sprintf("%s with %s %q already exists", resource, field, value))
}

func InvalidInput(message string) *AppError {
	return newAppError(ErrInvalidInput, message)
}

func Conflict(message string) *AppError {
	return newAppError(ErrConflict, message)
}

func Gone(message string) *AppError {
	return newAppError(ErrGone, message)
}

// PaymentFailed is returned when the provider declines or fails a charge.
func PaymentFailed(message string) *AppError {
	return newAppError(ErrPaymentFailed, message)
}

// ServiceUnavailable is returned when a collaborator (payment provider,
// mailer, chat API) cannot be reached.
func ServiceUnavailable(message string) *AppError {
	return newAppError(ErrServiceUnavail, message)
}

// Internal hides err behind a generic 500 message.
func Internal(err error) *AppError {
	return &AppError{
		Code:    internalCode,
		Message: internalMessage,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// Classify returns the AppError for err. An AppError anywhere in the chain is
// returned as is; a wrapped sentinel gets its kind's code, status and a
// generic message (invalid input keeps err's own text); anything else is
// Internal.
func Classify(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	for _, k := range kinds {
		if errors.Is(err, k.sentinel) {
			msg := k.message
			if msg == "" {
				msg = err.Error()
			}
			return &AppError{Code: k.code, Message: msg, Status: k.status, Err: err}
		}
	}
	return Internal(err)
}

// HTTPStatus returns the response status for err.
func HTTPStatus(err error) int {
	return Classify(err).Status
}
