// Package apperr defines the application error taxonomy used at the HTTP
// boundary. Every failure, wherever it originates (data layer, auth layer,
// request binding), is normalized into a single AppError value carrying an
// HTTP status, a stable symbolic code, and a human-readable message.
//
// Conventions:
//   - Operational errors are expected client-facing conditions; their
//     messages are safe to return verbatim.
//   - Non-operational errors indicate a defect; they are logged with full
//     detail and surface to the client only as a generic message.
//   - Classification happens once, at the boundary (see Classify). Lower
//     layers return plain typed errors and never build envelopes.
package apperr

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
)

// Symbolic codes returned in the error envelope. Codes are stable and
// machine-readable; clients branch on them, not on messages.
const (
	CodeBadRequest     = "BAD_REQUEST"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeForbidden      = "FORBIDDEN"
	CodeRouteNotFound  = "ROUTE_NOT_FOUND"
	CodeResourceMissed = "RESOURCE_NOT_FOUND"
	CodeConflict       = "CONFLICT"
	CodeValidation     = "VALIDATION_ERROR"
	CodeRateLimited    = "RATE_LIMIT_EXCEEDED"
	CodeMethodNotAllow = "METHOD_NOT_ALLOWED"
	CodeServerError    = "SERVER_ERROR"
	CodeInternal       = "INTERNAL_SERVER_ERROR"
)

// GenericMessage replaces the real message of non-operational errors in
// production responses.
const GenericMessage = "Internal server error. Please try again later."

// FieldError describes a single field-level validation failure. Order is
// preserved from the validator.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError is the normalized representation of any failure crossing the
// HTTP boundary.
//
// Fields:
//   - Status: HTTP status in [400,599].
//   - Code: symbolic code (see constants above).
//   - Message: human-readable description; client-safe iff Operational.
//   - Operational: true for expected, recoverable-by-client conditions.
//   - Name: short error kind name included in development responses.
//   - Fields: optional ordered field-level sub-errors.
type AppError struct {
	Status      int
	Code        string
	Message     string
	Operational bool
	Name        string
	Fields      []FieldError

	cause error
	stack []byte
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.cause != nil {
		return fmt.Sprintf("%s (%d): %s: %v", e.Code, e.Status, e.Message, e.cause)
	}
	return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *AppError) Unwrap() error { return e.cause }

// Cause returns the underlying error, if any. It is never sent to clients;
// it exists for server-side logging.
func (e *AppError) Cause() error { return e.cause }

// Stack returns the stack trace captured at construction time for
// non-operational errors, or nil.
func (e *AppError) Stack() []byte { return e.stack }

// newOperational builds an operational AppError, clamping the status into
// the valid error range.
func newOperational(status int, code, msg string) *AppError {
	if status < 400 || status > 599 {
		status = http.StatusInternalServerError
	}
	return &AppError{
		Status:      status,
		Code:        code,
		Message:     msg,
		Operational: true,
		Name:        http.StatusText(status),
	}
}

// BadRequest builds a 400 operational error.
func BadRequest(msg string) *AppError {
	return newOperational(http.StatusBadRequest, CodeBadRequest, msg)
}

// Unauthorized builds a 401 operational error.
func Unauthorized(msg string) *AppError {
	return newOperational(http.StatusUnauthorized, CodeUnauthorized, msg)
}

// Forbidden builds a 403 operational error.
func Forbidden(msg string) *AppError {
	return newOperational(http.StatusForbidden, CodeForbidden, msg)
}

// NotFound builds a 404 operational error. The code distinguishes missing
// routes from missing resources by message shape: messages that mention
// "find" (the unmatched-route phrasing) map to ROUTE_NOT_FOUND.
func NotFound(msg string) *AppError {
	e := newOperational(http.StatusNotFound, CodeResourceMissed, msg)
	if strings.Contains(strings.ToLower(msg), "find") {
		e.Code = CodeRouteNotFound
	}
	return e
}

// Conflict builds a 409 operational error.
func Conflict(msg string) *AppError {
	return newOperational(http.StatusConflict, CodeConflict, msg)
}

// UnprocessableEntity builds a 422 operational error carrying ordered
// field-level sub-errors. The message is the field messages joined by ". ".
func UnprocessableEntity(fields []FieldError) *AppError {
	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, f.Message)
	}
	e := newOperational(http.StatusUnprocessableEntity, CodeValidation, strings.Join(msgs, ". "))
	e.Fields = fields
	return e
}

// MethodNotAllowed builds a 405 operational error.
func MethodNotAllowed(msg string) *AppError {
	return newOperational(http.StatusMethodNotAllowed, CodeMethodNotAllow, msg)
}

// RateLimited builds a 429 operational error.
func RateLimited(msg string) *AppError {
	return newOperational(http.StatusTooManyRequests, CodeRateLimited, msg)
}

// Internal builds a 500 non-operational error wrapping cause. A stack trace
// is captured at the call site for server-side logging; neither the cause
// nor the stack ever reaches a production client.
func Internal(cause error) *AppError {
	msg := GenericMessage
	if cause != nil {
		msg = cause.Error()
	}
	return &AppError{
		Status:      http.StatusInternalServerError,
		Code:        CodeServerError,
		Message:     msg,
		Operational: false,
		Name:        http.StatusText(http.StatusInternalServerError),
		cause:       cause,
		stack:       debug.Stack(),
	}
}

// CodeForStatus derives the symbolic code for an HTTP status. The message
// disambiguates 404s: unmatched-route messages mention "find".
func CodeForStatus(status int, msg string) string {
	switch status {
	case http.StatusNotFound:
		if strings.Contains(strings.ToLower(msg), "find") {
			return CodeRouteNotFound
		}
		return CodeResourceMissed
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusBadRequest:
		return CodeBadRequest
	case http.StatusConflict:
		return CodeConflict
	case http.StatusUnprocessableEntity:
		return CodeValidation
	case http.StatusMethodNotAllowed:
		return CodeMethodNotAllow
	case http.StatusTooManyRequests:
		return CodeRateLimited
	default:
		return CodeServerError
	}
}
