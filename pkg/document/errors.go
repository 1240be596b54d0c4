package document

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ParseError reports a malformed metadata block or a missing structural
// marker, with the offending path and the underlying cause
type ParseError struct {
	Path string
	Err  error
}

// NewParseError wraps err with the path it occurred at
func NewParseError(path string, err error) *ParseError {
	return &ParseError{Path: path, Err: err}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

// Cause returns the underlying error
func (e *ParseError) Cause() error { return e.Err }

// Unwrap returns the underlying error
func (e *ParseError) Unwrap() error { return e.Err }

// FieldIssue is one field-qualified validation message
type FieldIssue struct {
	Field   string
	Message string
}

func (i FieldIssue) String() string {
	if i.Field == "" {
		return i.Message
	}
	return i.Field + ": " + i.Message
}

// ValidationError reports a document that parses but is semantically invalid
type ValidationError struct {
	Path   string
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		msgs = append(msgs, issue.String())
	}
	if e.Path == "" {
		return "invalid document: " + strings.Join(msgs, "; ")
	}
	return fmt.Sprintf("invalid document %s: %s", e.Path, strings.Join(msgs, "; "))
}

// Add appends an issue
func (e *ValidationError) Add(field, message string) {
	e.Issues = append(e.Issues, FieldIssue{Field: field, Message: message})
}

// OrNil returns nil when no issues were recorded
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Issues) == 0 {
		return nil
	}
	return e
}

// IsValid reports whether a Validate result means the document is valid
func IsValid(err error) bool {
	return err == nil
}

// ConversionError reports a failure translating a document between agents
type ConversionError struct {
	Path   string
	Source string
	Dest   string
	Err    error
}

// NewConversionError wraps err with the path and agents involved
func NewConversionError(path, source, dest string, err error) *ConversionError {
	return &ConversionError{Path: path, Source: source, Dest: dest, Err: err}
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("failed to convert %s from %s to %s: %v", e.Path, e.Source, e.Dest, e.Err)
}

// Cause returns the underlying error
func (e *ConversionError) Cause() error { return e.Err }

// Unwrap returns the underlying error
func (e *ConversionError) Unwrap() error { return e.Err }

// IsParseError reports whether err is or wraps a ParseError
func IsParseError(err error) bool {
	var target *ParseError
	return errors.As(err, &target)
}

// IsValidationError reports whether err is or wraps a ValidationError
func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}
