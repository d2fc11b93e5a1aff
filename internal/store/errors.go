package store

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound means the requested record does not exist
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail means the registration email is already taken
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrEstablishmentExists means the owner already has an active establishment
	ErrEstablishmentExists = errors.New("administrator already owns an active establishment")
	// ErrInvalidCredentials means the email/password pair did not verify
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// FieldError names one malformed or missing field on a write
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates the field-level failures of a single write.
// It is terminal; nothing is persisted when it is returned.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends a field failure
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any field failed
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// AsValidationError unwraps err into a *ValidationError when possible
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
