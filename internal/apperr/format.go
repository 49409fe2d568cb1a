// Error response formatting.
//
// Format renders a classified AppError as the JSON envelope returned by
// every failing endpoint. Verbosity depends on the deployment mode: stack
// traces and internal detail are included only outside production.
package apperr

import (
	"net/http"
	"time"
)

// Deployment modes recognized by Format. Anything that is not ModeProduction
// is treated as development.
const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

// Detail is the nested error object of the envelope.
type Detail struct {
	Code      string `json:"code"`
	Timestamp string `json:"timestamp"`
	Name      string `json:"name,omitempty"`
}

// Envelope is the standard JSON body for every error response.
//
// Stack is present only in non-production modes. Errors carries ordered
// field-level validation failures when the error has them.
type Envelope struct {
	Success   bool         `json:"success"`
	Message   string       `json:"message"`
	RequestID string       `json:"request_id,omitempty"`
	Error     Detail       `json:"error"`
	Stack     string       `json:"stack,omitempty"`
	Errors    []FieldError `json:"errors,omitempty"`
}

// Format produces the HTTP status and response envelope for e in the given
// deployment mode. It is a pure function.
//
// Production hides everything about non-operational errors: the status is
// forced to 500, the message is replaced by a fixed generic string, and the
// code becomes INTERNAL_SERVER_ERROR. Operational errors keep their real
// message and code but never include a stack.
func Format(e *AppError, mode string) (int, Envelope) {
	now := time.Now().UTC().Format(time.RFC3339)

	if mode == ModeProduction {
		if !e.Operational {
			return http.StatusInternalServerError, Envelope{
				Success: false,
				Message: GenericMessage,
				Error:   Detail{Code: CodeInternal, Timestamp: now},
			}
		}
		return e.Status, Envelope{
			Success: false,
			Message: e.Message,
			Error:   Detail{Code: e.Code, Timestamp: now},
			Errors:  e.Fields,
		}
	}

	env := Envelope{
		Success: false,
		Message: e.Message,
		Error:   Detail{Code: e.Code, Timestamp: now, Name: e.Name},
		Errors:  e.Fields,
	}
	if len(e.stack) > 0 {
		env.Stack = string(e.stack)
	} else {
		env.Stack = e.Error()
	}
	return e.Status, env
}
