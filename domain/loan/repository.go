package loan

import (
	"context"
	"time"

	"biblio/domain/shared"
)

// HistoryEntry is one row of a member's borrowing history, in
// insertion order. ReturnedAt is nil for a still-open loan.
type HistoryEntry struct {
	BookTitle  string
	IssuedAt   time.Time
	ReturnedAt *time.Time
}

// Repository is the loan ledger: the durable record of every loan,
// queryable by member, by book and by open/closed state.
//
// Save creates when the aggregate is new and otherwise performs a
// version-guarded update (close and extend both flow through Save).
// FindOpen returns (nil, nil) when no open loan matches the exact
// member and book pair.
type Repository interface {
	Save(ctx context.Context, l *Loan) error
	FindByID(ctx context.Context, id string) (*Loan, error)
	FindOpen(ctx context.Context, memberID, bookID string) (*Loan, error)
	FindBySpecification(ctx context.Context, spec shared.Specification[*Loan]) ([]*Loan, error)
	HistoryByMember(ctx context.Context, memberID string) ([]HistoryEntry, error)
}
