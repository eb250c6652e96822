package server

import "fmt"

// HTTPError carries an HTTP status with an error. Handlers and injectables
// return it to control the response code; any other error becomes a 500.
type HTTPError struct {
	Code    int
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *HTTPError) Unwrap() error { return e.Err }

// StatusCode returns the HTTP status code for this error.
func (e *HTTPError) StatusCode() int { return e.Code }

// Unauthorized creates a 401 error. Use when authentication is required but
// missing or invalid.
func Unauthorized(message ...string) *HTTPError {
	msg := "unauthorized"
	if len(message) > 0 {
		msg = message[0]
	}
	return &HTTPError{Code: 401, Message: msg}
}

// Forbidden creates a 403 error. Use when the caller is authenticated but
// lacks permission.
func Forbidden(message ...string) *HTTPError {
	msg := "forbidden"
	if len(message) > 0 {
		msg = message[0]
	}
	return &HTTPError{Code: 403, Message: msg}
}

// BadRequestf creates a 400 error with a formatted message.
func BadRequestf(format string, args ...any) *HTTPError {
	return &HTTPError{Code: 400, Message: fmt.Sprintf(format, args...)}
}

// InternalError wraps an error as a 500.
func InternalError(err error) *HTTPError {
	msg := "internal server error"
	if err != nil {
		msg = err.Error()
	}
	return &HTTPError{Code: 500, Message: msg, Err: err}
}
