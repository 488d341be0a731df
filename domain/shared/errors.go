/*
Package shared holds the building blocks common to every subdomain:
sentinel errors, the DomainError type, specifications and the unit of
work contract.

Error design:
 1. The domain layer defines sentinel errors for errors.Is() checks.
 2. DomainError captures its stack at creation time but formats it
    lazily, when a log line actually needs it.
 3. Domain errors carry no transport concepts (no HTTP status codes).
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

var (
	// ErrNotFound signals that a requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict signals a resource conflict, e.g. a uniqueness
	// violation or a concurrent modification.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput signals failed input validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidState signals an operation attempted against an entity
	// whose current state does not allow it.
	ErrInvalidState = errors.New("invalid state")

	// ErrNoData signals a read that completed but produced nothing to
	// show, as distinct from a resource that does not exist.
	ErrNoData = errors.New("no data")
)

// DomainError is a structured error carrying business context and the
// stack of its creation point. It supports errors.Is() and errors.As()
// through Unwrap.
type DomainError struct {
	// Err is the underlying sentinel, for errors.Is() checks.
	Err error

	// Entity names the entity the error relates to ("book", "loan").
	Entity string

	// Message is the human-readable description.
	Message string

	// Field optionally names the offending field for validation errors.
	Field string

	stack []uintptr
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Stack formats the captured stack on demand.
func (e *DomainError) Stack() []string {
	return FormatStack(e.stack)
}

// CaptureStack records the current call stack. skip is the number of
// frames to drop (usually 3: Callers, CaptureStack, NewXxxError).
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack renders captured frames, filtering runtime internals and
// keeping at most ten frames.
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) > 10 {
			break
		}
	}
	return result
}

// NewNotFoundError builds a "not found" domain error for an entity.
func NewNotFoundError(entity string) error {
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		Message: entity + " not found",
		stack:   CaptureStack(3),
	}
}

// NewConflictError builds a "conflict" domain error.
func NewConflictError(entity, message string) error {
	return &DomainError{
		Err:     ErrConflict,
		Entity:  entity,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// NewValidationError builds a validation domain error for a field.
func NewValidationError(entity, field, reason string) error {
	return &DomainError{
		Err:     ErrInvalidInput,
		Entity:  entity,
		Field:   field,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// NewInvalidStateError builds an "invalid state" domain error.
func NewInvalidStateError(entity, message string) error {
	return &DomainError{
		Err:     ErrInvalidState,
		Entity:  entity,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// Stacker is implemented by errors that can expose the stack of their
// creation point. The API layer uses it for log enrichment.
type Stacker interface {
	Stack() []string
}
