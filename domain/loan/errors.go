/*
Package loan errors.
*/
package loan

import (
	"errors"
	"fmt"

	"biblio/domain/shared"
)

var (
	ErrMissingIdentifiers = errors.New("member id and book id are required")
	ErrNoMatchingLoan     = errors.New("no open loan for this member and book")
	ErrAlreadyClosed      = errors.New("loan is already closed")
	ErrInvalidPeriod      = errors.New("loan period must be positive")
)

func NewLoanNotFoundError(loanID string) error {
	return &loanError{
		sentinel: shared.ErrNotFound,
		message:  "loan not found: " + loanID,
		stack:    shared.CaptureStack(3),
	}
}

func NewMissingIdentifiersError() error {
	return &loanError{
		sentinel: ErrMissingIdentifiers,
		message:  "member id and book id are required",
		stack:    shared.CaptureStack(3),
	}
}

func NewNoMatchingLoanError(memberID, bookID string) error {
	return &loanError{
		sentinel: ErrNoMatchingLoan,
		message:  "no open loan of book " + bookID + " by member " + memberID,
		stack:    shared.CaptureStack(3),
	}
}

func NewAlreadyClosedError(loanID string) error {
	return &loanError{
		sentinel: ErrAlreadyClosed,
		message:  "loan " + loanID + " is already closed",
		stack:    shared.CaptureStack(3),
	}
}

func NewInvalidPeriodError(days int) error {
	return &loanError{
		sentinel: ErrInvalidPeriod,
		message:  fmt.Sprintf("loan period must be positive, got: %d", days),
		stack:    shared.CaptureStack(3),
	}
}

type loanError struct {
	sentinel error
	message  string
	stack    []uintptr
}

func (e *loanError) Error() string   { return e.message }
func (e *loanError) Unwrap() error   { return e.sentinel }
func (e *loanError) Stack() []string { return shared.FormatStack(e.stack) }
