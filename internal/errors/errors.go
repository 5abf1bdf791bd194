// Package errors defines the error kinds returned by the quiz and video stores.
//
// Callers branch on the kind with errors.As instead of parsing messages.
package errors

import (
	"fmt"
)

// ErrValidation signals that a required field is missing or malformed.
type ErrValidation struct {
	Field  string
	Reason string
}

func (err *ErrValidation) Error() string {
	if err.Field == "" {
		return "validation failed: " + err.Reason
	}
	return fmt.Sprintf("invalid %s: %s", err.Field, err.Reason)
}

// ErrNotFound signals a lookup or delete against a record that does not exist.
type ErrNotFound struct {
	Kind string
	ID   string
}

func (err *ErrNotFound) Error() string {
	return fmt.Sprintf("%s %q not found", err.Kind, err.ID)
}

// ErrCorruptMetadata signals that the video metadata sidecar could not be parsed.
type ErrCorruptMetadata struct {
	Path string
	Sub  error
}

func (err *ErrCorruptMetadata) Error() string {
	return fmt.Sprintf("corrupt metadata file %s: %v", err.Path, err.Sub)
}

func (err *ErrCorruptMetadata) Unwrap() error {
	return err.Sub
}

// ErrIO wraps an underlying filesystem or storage failure.
type ErrIO struct {
	Op   string
	Path string
	Sub  error
}

func (err *ErrIO) Error() string {
	if err.Sub == nil {
		return fmt.Sprintf("storage failure during %s on %s", err.Op, err.Path)
	}
	return fmt.Sprintf("storage failure during %s on %s: %v", err.Op, err.Path, err.Sub)
}

func (err *ErrIO) Unwrap() error {
	return err.Sub
}

// Validation builds an *ErrValidation.
func Validation(field, reason string) error {
	return &ErrValidation{Field: field, Reason: reason}
}

// NotFound builds an *ErrNotFound.
func NotFound(kind, id string) error {
	return &ErrNotFound{Kind: kind, ID: id}
}

// IO builds an *ErrIO. A nil sub error yields nil.
func IO(op, path string, sub error) error {
	if sub == nil {
		return nil
	}
	return &ErrIO{Op: op, Path: path, Sub: sub}
}
