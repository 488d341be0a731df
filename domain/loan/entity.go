// Package loan holds the loan aggregate, the durable record linking a
// member and a book. A loan is open while ReturnedAt is nil; closing it
// sets the return date and it is never deleted afterwards.
package loan

import (
	"fmt"
	"time"

	"biblio/domain/shared"

	"github.com/google/uuid"
)

// Loan is the aggregate root for one lending of one book to one
// member. The due date is computed at issue time and only moves
// forward through Extend while the loan is open.
type Loan struct {
	id         string
	memberID   string
	bookID     string
	issuedAt   time.Time
	dueAt      time.Time
	returnedAt *time.Time
	version    int
	createdAt  time.Time

	isNew bool
}

// NewLoan opens a loan issued at issuedAt with a due date periodDays
// later. The caller (the lifecycle engine) must already have verified
// the book's availability.
func NewLoan(memberID, bookID string, issuedAt time.Time, periodDays int) (*Loan, error) {
	if memberID == "" || bookID == "" {
		return nil, NewMissingIdentifiersError()
	}
	if periodDays <= 0 {
		return nil, NewInvalidPeriodError(periodDays)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate loan ID: %w", err)
	}

	return &Loan{
		id:        id.String(),
		memberID:  memberID,
		bookID:    bookID,
		issuedAt:  issuedAt,
		dueAt:     issuedAt.AddDate(0, 0, periodDays),
		version:   0,
		createdAt: time.Now(),
		isNew:     true,
	}, nil
}

// IsOpen reports whether the book has not come back yet.
func (l *Loan) IsOpen() bool { return l.returnedAt == nil }

// Close records the return of the book. Fails on an already closed
// loan.
func (l *Loan) Close(returnedAt time.Time) error {
	if !l.IsOpen() {
		return NewAlreadyClosedError(l.id)
	}
	l.returnedAt = &returnedAt
	return nil
}

// Extend pushes the due date forward by extensionDays from its current
// value. Only open loans can be extended; there is no cap on how often.
func (l *Loan) Extend(extensionDays int) error {
	if !l.IsOpen() {
		return NewAlreadyClosedError(l.id)
	}
	if extensionDays <= 0 {
		return NewInvalidPeriodError(extensionDays)
	}
	l.dueAt = l.dueAt.AddDate(0, 0, extensionDays)
	return nil
}

func (l *Loan) ID() string           { return l.id }
func (l *Loan) MemberID() string     { return l.memberID }
func (l *Loan) BookID() string       { return l.bookID }
func (l *Loan) IssuedAt() time.Time  { return l.issuedAt }
func (l *Loan) DueAt() time.Time     { return l.dueAt }
func (l *Loan) Version() int         { return l.version }
func (l *Loan) CreatedAt() time.Time { return l.createdAt }

// ReturnedAt returns a copy of the return date, or nil while the loan
// is open.
func (l *Loan) ReturnedAt() *time.Time {
	if l.returnedAt == nil {
		return nil
	}
	t := *l.returnedAt
	return &t
}

// IsNew reports whether the aggregate has never been persisted.
func (l *Loan) IsNew() bool { return l.isNew }

// ClearNewFlag marks the aggregate as persisted. Repository use only.
func (l *Loan) ClearNewFlag() { l.isNew = false }

// IncrementVersionForSave bumps the version after a successful
// version-guarded update. Repository use only.
func (l *Loan) IncrementVersionForSave() { l.version++ }

// ReconstructionDTO rebuilds a loan from persisted state. Repository
// use only.
type ReconstructionDTO struct {
	ID         string
	MemberID   string
	BookID     string
	IssuedAt   time.Time
	DueAt      time.Time
	ReturnedAt *time.Time
	Version    int
	CreatedAt  time.Time
}

// RebuildFromDTO reconstructs the aggregate from a DTO.
func RebuildFromDTO(dto ReconstructionDTO) *Loan {
	return &Loan{
		id:         dto.ID,
		memberID:   dto.MemberID,
		bookID:     dto.BookID,
		issuedAt:   dto.IssuedAt,
		dueAt:      dto.DueAt,
		returnedAt: dto.ReturnedAt,
		version:    dto.Version,
		createdAt:  dto.CreatedAt,
	}
}

var _ shared.AggregateRoot = (*Loan)(nil)
