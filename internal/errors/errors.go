// Package errors provides the structured error type (BuildError) used across
// the blogbuilder pipeline for kind-based classification and CLI reporting.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies a BuildError for reporting and tests.
type Kind string

const (
	// KindIO wraps an underlying filesystem error.
	KindIO Kind = "io"

	// KindTemplate covers template-not-found, template-syntax, and
	// render-time failures.
	KindTemplate Kind = "template"

	// KindUnexpectedEOF indicates the input ended while parsing front
	// matter. The Source field carries the offending file.
	KindUnexpectedEOF Kind = "unexpected-eof"

	// KindDecode wraps a structured-data (YAML) decoding failure.
	KindDecode Kind = "decode"

	// KindOther covers domain invariant violations: front matter that is
	// not a mapping, unrepresentable numbers, path-prefix mismatches.
	KindOther Kind = "other"
)

// BuildError is a structured error with a kind, an optional source
// identifier, and an optional wrapped cause.
type BuildError struct {
	Kind    Kind
	Message string
	Source  string
	Cause   error
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	switch {
	case e.Source != "" && e.Cause != nil:
		return fmt.Sprintf("%s: %s: %v", e.Message, e.Source, e.Cause)
	case e.Source != "":
		return fmt.Sprintf("%s: %s", e.Message, e.Source)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	default:
		return e.Message
	}
}

// Unwrap exposes the wrapped cause for errors.Is / errors.As chains.
func (e *BuildError) Unwrap() error {
	return e.Cause
}

// New creates a BuildError with the given kind and message.
func New(kind Kind, message string) *BuildError {
	return &BuildError{Kind: kind, Message: message}
}

// Wrap creates a BuildError that wraps an existing error.
func Wrap(err error, kind Kind, message string) *BuildError {
	return &BuildError{Kind: kind, Message: message, Cause: err}
}

// IO wraps an underlying filesystem error.
func IO(err error) *BuildError {
	return &BuildError{Kind: KindIO, Message: "i/o failure", Cause: err}
}

// UnexpectedEOF reports that input from source ended before front matter
// parsing completed.
func UnexpectedEOF(source string) *BuildError {
	return &BuildError{Kind: KindUnexpectedEOF, Message: "unexpected end of file", Source: source}
}

// Decode wraps a structured-data decoding failure, preserving the underlying
// decoder's message.
func Decode(err error) *BuildError {
	return &BuildError{Kind: KindDecode, Message: "deserialization failure", Cause: err}
}

// IsKind reports whether err is (or wraps) a BuildError of the given kind.
func IsKind(err error, kind Kind) bool {
	var be *BuildError
	if stderrors.As(err, &be) {
		return be.Kind == kind
	}
	return false
}

// GetKind extracts the kind from an error, defaulting to KindOther for
// errors that are not BuildErrors.
func GetKind(err error) Kind {
	var be *BuildError
	if stderrors.As(err, &be) {
		return be.Kind
	}
	return KindOther
}
