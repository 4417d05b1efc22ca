// Package errors provides standardized error types and helpers for the greekverse codebase.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates invalid input or validation failure
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnsupported indicates an unsupported operation or format
	ErrUnsupported = errors.New("unsupported")
	// ErrDecode indicates malformed Beta Code
	ErrDecode = errors.New("malformed beta code")
	// ErrStructure indicates TEI markup that cannot be turned into verse lines
	ErrStructure = errors.New("invalid document structure")
	// ErrMalformedDocument indicates XML that is not well-formed
	ErrMalformedDocument = errors.New("malformed document")
)

// DecodeError reports malformed Beta Code input.
type DecodeError struct {
	Input   string // Full input string
	Offset  int    // Rune offset at which the problem was detected
	Key     string // Offending Beta Code key or symbol, if any
	Message string // What went wrong
}

func (e *DecodeError) Error() string {
	before, after := e.split()
	if e.Key != "" {
		return fmt.Sprintf("beta code: %s %q at %q|%q", e.Message, e.Key, before, after)
	}
	return fmt.Sprintf("beta code: %s at %q|%q", e.Message, before, after)
}

// split divides Input at Offset so the message can show where scanning stopped.
func (e *DecodeError) split() (string, string) {
	runes := []rune(e.Input)
	off := e.Offset
	if off < 0 {
		off = 0
	}
	if off > len(runes) {
		off = len(runes)
	}
	return string(runes[:off]), string(runes[off:])
}

func (e *DecodeError) Unwrap() error {
	return ErrDecode
}

// StructureError reports TEI markup that violates the verse-line model.
type StructureError struct {
	Element string // Element name involved, if any
	Context string // Nearby text or locator, if any
	Message string // What went wrong
}

func (e *StructureError) Error() string {
	switch {
	case e.Element != "" && e.Context != "":
		return fmt.Sprintf("tei: <%s>: %s (%s)", e.Element, e.Message, e.Context)
	case e.Element != "":
		return fmt.Sprintf("tei: <%s>: %s", e.Element, e.Message)
	case e.Context != "":
		return fmt.Sprintf("tei: %s (%s)", e.Message, e.Context)
	}
	return fmt.Sprintf("tei: %s", e.Message)
}

func (e *StructureError) Unwrap() error {
	return ErrStructure
}

// MalformedDocumentError reports XML rejected by the parser. It unwraps to
// the parser's own error and also matches ErrMalformedDocument.
type MalformedDocumentError struct {
	Path string // File path, if known
	Err  error  // Parser error
}

func (e *MalformedDocumentError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("malformed XML in %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("malformed XML: %v", e.Err)
}

func (e *MalformedDocumentError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrMalformedDocument.
func (e *MalformedDocumentError) Is(target error) bool {
	return target == ErrMalformedDocument
}

// NotFoundError represents a resource not found error with context
type NotFoundError struct {
	Resource string // Type of resource (e.g., "lemma", "override")
	ID       string // Identifier of the resource
	Err      error  // Underlying error, if any
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrNotFound
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string // Field name that failed validation
	Value   string // Value that failed validation (may be redacted)
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// IOError represents an I/O operation error with context
type IOError struct {
	Operation string // Operation being performed (e.g., "read", "open")
	Path      string // File/resource path involved
	Err       error  // Underlying error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ParseError represents a parsing error for small textual values such as
// locators.
type ParseError struct {
	Format  string // What was being parsed (e.g., "locator")
	Input   string // The rejected input
	Message string // Error details
	Err     error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("failed to parse %s %q: %s", e.Format, e.Input, e.Message)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// Helper functions for creating common errors

// NewDecode creates a DecodeError
func NewDecode(input string, offset int, key, message string) *DecodeError {
	return &DecodeError{
		Input:   input,
		Offset:  offset,
		Key:     key,
		Message: message,
	}
}

// NewStructure creates a StructureError
func NewStructure(element, message string) *StructureError {
	return &StructureError{
		Element: element,
		Message: message,
	}
}

// NewNotFound creates a NotFoundError
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}

// NewValidation creates a ValidationError
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// NewIO creates an IOError
func NewIO(operation, path string, err error) *IOError {
	return &IOError{
		Operation: operation,
		Path:      path,
		Err:       err,
	}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
