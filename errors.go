package fsdoc

import (
	"errors"
	"fmt"
)

var (
	// ErrBaseNotFound is returned when a template path has no ancestor
	// directory with the configured base name.
	ErrBaseNotFound = errors.New("base directory not found in path")

	// ErrNoAttributes is wrapped by EnvelopeError.
	ErrNoAttributes = errors.New("response has no attribute list")
)

// EnvelopeError represents a FeatureScript response that does not carry an
// attribute list where one is expected.
type EnvelopeError struct {
	Path    string // JSON path that was looked up
	Message string
}

// Error implements the error interface.
func (e *EnvelopeError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrNoAttributes, e.Path, e.Message)
}

func (e *EnvelopeError) Unwrap() error { return ErrNoAttributes }

// StagingError represents a failed file operation while staging documents.
type StagingError struct {
	Op   string // copy, merge, resolve
	Path string // file the operation was working on
	Err  error
}

// Error implements the error interface.
func (e *StagingError) Error() string {
	return fmt.Sprintf("staging %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StagingError) Unwrap() error { return e.Err }

// ValidationError represents a variable whose value failed a validator.
type ValidationError struct {
	Variable string
	Value    any
	Message  string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for variable %q (value %s): %s",
		e.Variable, pyStr(e.Value), e.Message)
}

// MissingVariableError represents a required variable absent from the
// decoded mapping.
type MissingVariableError struct {
	Variable string
}

// Error implements the error interface.
func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("missing variable %q", e.Variable)
}

// NewEnvelopeError creates a new EnvelopeError.
func NewEnvelopeError(path, message string) *EnvelopeError {
	return &EnvelopeError{Path: path, Message: message}
}

// NewStagingError creates a new StagingError.
func NewStagingError(op, path string, err error) *StagingError {
	return &StagingError{Op: op, Path: path, Err: err}
}

// NewValidationError creates a new ValidationError.
func NewValidationError(variable string, value any, message string) *ValidationError {
	return &ValidationError{Variable: variable, Value: value, Message: message}
}
