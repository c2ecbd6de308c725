package http

import (
	"fmt"
	"net/http"
)

// AppError is an error that knows the HTTP status it should be answered with.
// It is serialised into the data array of the response envelope.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error { return e.Err }

// WithError attaches the cause; it is logged but never sent to the client.
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// NewAppError creates an application error for field (may be empty).
func NewAppError(code, field, message string, status int) *AppError {
	return &AppError{Code: code, Field: field, Message: message, Status: status}
}

var statusCodes = map[int]string{
	http.StatusBadRequest:          "ERR_BAD_REQUEST",
	http.StatusUnauthorized:        "ERR_UNAUTHORIZED",
	http.StatusNotFound:            "ERR_NOT_FOUND",
	http.StatusMethodNotAllowed:    "ERR_METHOD_NOT_ALLOWED",
	http.StatusTooManyRequests:     "ERR_RATE_LIMITED",
	http.StatusInternalServerError: "ERR_INTERNAL",
}

func statusError(status int, message string) *AppError {
	return NewAppError(statusCodes[status], "", message, status)
}

func BadRequestError(message string) *AppError {
	return statusError(http.StatusBadRequest, message)
}

func UnauthorizedError(message string) *AppError {
	return statusError(http.StatusUnauthorized, message)
}

func NotFoundError(message string) *AppError {
	return statusError(http.StatusNotFound, message)
}

func MethodNotAllowedError(message string) *AppError {
	return statusError(http.StatusMethodNotAllowed, message)
}

func TooManyRequestsError(message string) *AppError {
	return statusError(http.StatusTooManyRequests, message)
}

func InternalError(message string) *AppError {
	return statusError(http.StatusInternalServerError, message)
}

// UpstreamAppError passes an upstream error status through; anything outside 4xx/5xx becomes 502.
func UpstreamAppError(status int, message string) *AppError {
	if status < 400 || status > 599 {
		status = http.StatusBadGateway
	}
	return NewAppError("ERR_UPSTREAM", "", message, status)
}

// StatusError is a non-2xx response seen by Client. Body is truncated.
type StatusError struct {
	Code int
	Body []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}
