// Boundary error classifier.
//
// Classify maps the failure shapes produced by collaborators (GORM, the
// request validator, the JWT layer, uuid parsing) onto the AppError
// taxonomy. Mapping order matters: shapes can overlap, first match wins.
package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// InvalidIDError reports a malformed resource identifier, typically a path
// parameter that failed uuid.Parse.
type InvalidIDError struct {
	Field string
	Value string
	Err   error
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("Invalid %s: %s", e.Field, e.Value)
}

func (e *InvalidIDError) Unwrap() error { return e.Err }

// DuplicateKeyError reports a uniqueness violation on a known field/value
// pair. It wraps gorm.ErrDuplicatedKey so errors.Is still matches.
type DuplicateKeyError struct {
	Field string
	Value string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s '%s' already exists. Please use another value.", e.Field, e.Value)
}

func (e *DuplicateKeyError) Unwrap() error { return gorm.ErrDuplicatedKey }

// Classify normalizes an arbitrary failure into exactly one AppError.
//
// Mapping policy (first match wins):
//  1. an operational *AppError passes through unchanged
//  2. invalid identifier               -> 400
//  3. undecodable request body         -> 400
//  4. request/schema validation        -> 422 with field list
//  5. uniqueness violation             -> 400
//  6. record not found                 -> 404
//  7. unverifiable token (malformed, bad signature, not yet valid) -> 401
//  8. expired token                    -> 401
//  9. anything else                    -> 500, non-operational
//
// Classify is pure; logging happens at the response boundary.
func Classify(err error) *AppError {
	if err == nil {
		return Internal(nil)
	}

	var app *AppError
	if errors.As(err, &app) && app.Operational {
		return app
	}

	var badID *InvalidIDError
	if errors.As(err, &badID) {
		return BadRequest(badID.Error())
	}

	var syn *json.SyntaxError
	var typ *json.UnmarshalTypeError
	if errors.As(err, &syn) || errors.As(err, &typ) ||
		errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return BadRequest("Invalid request body")
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, FieldError{
				Field:   strings.ToLower(fe.Field()),
				Message: fieldMessage(fe),
			})
		}
		return UnprocessableEntity(fields)
	}

	var dup *DuplicateKeyError
	if errors.As(err, &dup) {
		return BadRequest(dup.Error())
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return BadRequest("Duplicate value. Please use another value.")
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound("Resource not found")
	}

	if errors.Is(err, jwt.ErrTokenMalformed) ||
		errors.Is(err, jwt.ErrTokenSignatureInvalid) ||
		errors.Is(err, jwt.ErrTokenUnverifiable) ||
		errors.Is(err, jwt.ErrTokenNotValidYet) {
		return Unauthorized("Invalid token. Please log in again.")
	}
	if errors.Is(err, jwt.ErrTokenExpired) {
		return Unauthorized("Your token has expired. Please log in again.")
	}

	return Internal(err)
}

// DuplicateFromConstraint converts a uniqueness violation into the typed
// duplicate-key shape for the given field/value pair; any other error passes
// through untouched. Repos call this with the unique column they touched so
// the classifier sees a field/value pair instead of driver text.
//
// Both failure forms are recognized: the translated gorm.ErrDuplicatedKey
// sentinel (gorm.Config{TranslateError: true} replaces the driver error, so
// no constraint text survives) and the raw SQLite message
// ("UNIQUE constraint failed: products.slug"). When the raw text is present
// the parsed column wins over field, which covers multi-column writes.
func DuplicateFromConstraint(err error, field, value string) error {
	if err == nil {
		return nil
	}
	const marker = "UNIQUE constraint failed: "
	msg := err.Error()
	i := strings.Index(msg, marker)
	if i < 0 && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}
	if field == "" {
		field = "value"
	}
	if i >= 0 {
		col := msg[i+len(marker):]
		// The driver may append ", table.col2" for composite keys and an
		// " (2067)" result code; keep only the first column name.
		if j := strings.IndexAny(col, ", ("); j >= 0 {
			col = col[:j]
		}
		if j := strings.LastIndexByte(col, '.'); j >= 0 {
			col = col[j+1:]
		}
		if col = strings.TrimSpace(col); col != "" {
			field = col
		}
	}
	return &DuplicateKeyError{Field: field, Value: value}
}

// fieldMessage renders a compact human message for one validator failure.
// Only the tags used by request DTOs in this codebase are special-cased.
func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be %s or more", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed on the '%s' rule", field, fe.Tag())
	}
}
