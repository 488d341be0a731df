/*
Package book errors.
*/
package book

import (
	"errors"

	"biblio/domain/shared"
)

var (
	ErrInvalidCatalogNumber   = errors.New("catalog number must be thirteen digits")
	ErrCatalogNumberExists    = errors.New("catalog number already registered")
	ErrUnavailable            = errors.New("book is not available")
	ErrNotLoaned              = errors.New("book is not loaned")
	ErrRemoveLoaned           = errors.New("cannot remove a loaned book")
	ErrConcurrentModification = errors.New("book was modified by another transaction, please retry")
)

func NewBookNotFoundError(bookID string) error {
	return &bookError{
		sentinel: shared.ErrNotFound,
		message:  "book not found: " + bookID,
		stack:    shared.CaptureStack(3),
	}
}

func NewInvalidFieldError(field string) error {
	return &bookError{
		sentinel: shared.ErrInvalidInput,
		field:    field,
		message:  field + " cannot be empty",
		stack:    shared.CaptureStack(3),
	}
}

func NewInvalidCatalogNumberError(raw string) error {
	return &bookError{
		sentinel: ErrInvalidCatalogNumber,
		field:    "catalog_number",
		message:  "catalog number must be thirteen digits, got: " + raw,
		stack:    shared.CaptureStack(3),
	}
}

func NewCatalogNumberExistsError(catalogNumber string) error {
	return &bookError{
		sentinel: ErrCatalogNumberExists,
		field:    "catalog_number",
		message:  "catalog number already registered: " + catalogNumber,
		stack:    shared.CaptureStack(3),
	}
}

func NewUnavailableError(bookID string) error {
	return &bookError{
		sentinel: ErrUnavailable,
		message:  "book " + bookID + " is not available",
		stack:    shared.CaptureStack(3),
	}
}

func NewNotLoanedError(bookID string) error {
	return &bookError{
		sentinel: ErrNotLoaned,
		message:  "book " + bookID + " is not loaned",
		stack:    shared.CaptureStack(3),
	}
}

func NewRemoveLoanedError(bookID string) error {
	return &bookError{
		sentinel: ErrRemoveLoaned,
		message:  "book " + bookID + " has an open loan and cannot be removed",
		stack:    shared.CaptureStack(3),
	}
}

func NewConcurrentModificationError(bookID string) error {
	return &bookError{
		sentinel: ErrConcurrentModification,
		message:  "book " + bookID + " was modified by another transaction, please retry",
		stack:    shared.CaptureStack(3),
	}
}

type bookError struct {
	sentinel error
	field    string
	message  string
	stack    []uintptr
}

func (e *bookError) Error() string   { return e.message }
func (e *bookError) Unwrap() error   { return e.sentinel }
func (e *bookError) Stack() []string { return shared.FormatStack(e.stack) }
