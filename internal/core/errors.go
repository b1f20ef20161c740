package core

import (
	"fmt"
	"strings"
)

// ErrorKind classifies pipeline failures so callers can decide how to
// react (abort the whole run, skip one renderer) without parsing messages.
type ErrorKind string

const (
	KindMalformedInput   ErrorKind = "malformed_input"
	KindWrapperShape     ErrorKind = "wrapper_shape"
	KindMissingSection   ErrorKind = "missing_required_section"
	KindSchemaValidation ErrorKind = "schema_validation"
	KindIO               ErrorKind = "io"
)

// Error is the structured error returned by every pipeline stage. It
// implements the standard error interface and supports errors.Is /
// errors.As unwrapping.
type Error struct {
	Kind    ErrorKind
	Message string

	// Path is the file or URL involved, when there is one.
	Path string

	// Offset, Line and Column locate decode failures in the input text.
	// They are zero when the position is unknown.
	Offset int64
	Line   int
	Column int

	Cause error
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)
	if e.Line > 0 {
		sb.WriteString(fmt.Sprintf(" (line %d, column %d)", e.Line, e.Column))
	}
	if e.Path != "" {
		sb.WriteString(fmt.Sprintf(": %s", e.Path))
	}
	if e.Cause != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Cause))
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Sentinel errors for use with errors.Is().
var (
	ErrMalformedInput   = &Error{Kind: KindMalformedInput}
	ErrWrapperShape     = &Error{Kind: KindWrapperShape}
	ErrMissingSection   = &Error{Kind: KindMissingSection}
	ErrSchemaValidation = &Error{Kind: KindSchemaValidation}
	ErrIO               = &Error{Kind: KindIO}
)

// Is allows errors.Is to match Errors by kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// IOError wraps a file or network failure with the offending path.
func IOError(path, message string, cause error) *Error {
	return &Error{Kind: KindIO, Message: message, Path: path, Cause: cause}
}

// MissingSectionError reports every required top-level key absent from a
// review document.
func MissingSectionError(missing []string) *Error {
	return &Error{
		Kind:    KindMissingSection,
		Message: "invalid review data structure, missing required keys: " + strings.Join(missing, ", "),
	}
}
