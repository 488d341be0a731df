/*
Package member errors.
*/
package member

import (
	"errors"

	"biblio/domain/shared"
)

var (
	ErrInvalidName            = errors.New("name cannot be empty")
	ErrInvalidPhone           = errors.New("phone cannot be empty")
	ErrInvalidNationalID      = errors.New("national id must be eleven digits")
	ErrInvalidEmail           = errors.New("invalid email format")
	ErrNationalIDExists       = errors.New("national id already registered")
	ErrEmailExists            = errors.New("email already registered")
	ErrConcurrentModification = errors.New("member was modified by another transaction, please retry")
)

func NewMemberNotFoundError(memberID string) error {
	return &memberError{
		sentinel: shared.ErrNotFound,
		message:  "member not found: " + memberID,
		stack:    shared.CaptureStack(3),
	}
}

func NewInvalidNameError() error {
	return &memberError{
		sentinel: ErrInvalidName,
		field:    "name",
		message:  "name cannot be empty",
		stack:    shared.CaptureStack(3),
	}
}

func NewInvalidPhoneError() error {
	return &memberError{
		sentinel: ErrInvalidPhone,
		field:    "phone",
		message:  "phone cannot be empty",
		stack:    shared.CaptureStack(3),
	}
}

func NewInvalidNationalIDError(raw string) error {
	return &memberError{
		sentinel: ErrInvalidNationalID,
		field:    "national_id",
		message:  "national id must be eleven digits, got: " + raw,
		stack:    shared.CaptureStack(3),
	}
}

func NewInvalidEmailError(raw string) error {
	return &memberError{
		sentinel: ErrInvalidEmail,
		field:    "email",
		message:  "invalid email format: " + raw,
		stack:    shared.CaptureStack(3),
	}
}

func NewNationalIDExistsError(nationalID string) error {
	return &memberError{
		sentinel: ErrNationalIDExists,
		field:    "national_id",
		message:  "national id already registered: " + nationalID,
		stack:    shared.CaptureStack(3),
	}
}

func NewEmailExistsError(email string) error {
	return &memberError{
		sentinel: ErrEmailExists,
		field:    "email",
		message:  "email already registered: " + email,
		stack:    shared.CaptureStack(3),
	}
}

func NewConcurrentModificationError(memberID string) error {
	return &memberError{
		sentinel: ErrConcurrentModification,
		message:  "member " + memberID + " was modified by another transaction, please retry",
		stack:    shared.CaptureStack(3),
	}
}

type memberError struct {
	sentinel error
	field    string
	message  string
	stack    []uintptr
}

func (e *memberError) Error() string   { return e.message }
func (e *memberError) Unwrap() error   { return e.sentinel }
func (e *memberError) Stack() []string { return shared.FormatStack(e.stack) }
