package core

import (
	"strings"

	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific form field.
type FieldError struct {
	Field string
	Error string
}

// ValidationError holds, per field, the reasons a form was rejected.
type ValidationError struct {
	Fields []FieldError
}

// NewFieldError returns a ValidationError about a single field.
func NewFieldError(field, msg string) error {
	return &ValidationError{Fields: []FieldError{{Field: field, Error: msg}}}
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Error)
	}
	return strings.Join(msgs, "; ")
}

// FieldMap returns the messages keyed by field name.
func (e *ValidationError) FieldMap() map[string]string {
	m := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		m[f.Field] = f.Error
	}
	return m
}

// shutdownError reports a broken store invariant: the server must stop once the response is sent.
type shutdownError struct {
	reason string
}

func NewShutdownError(reason string) error {
	return &shutdownError{reason: reason}
}

func (e *shutdownError) Error() string {
	return "shutdown requested: " + e.reason
}

func IsShutdown(err error) bool {
	var sErr *shutdownError
	return errors.As(err, &sErr)
}
