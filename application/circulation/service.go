/*
Package circulation is the loan lifecycle engine. It owns the state
transitions of a book between Available and Loaned:

	Available -> (issue) -> Loaned -> (return) -> Available
	Loaned -> (renew) -> Loaned (due date extended)

Every operation runs in a single unit-of-work transaction, checks its
preconditions before touching any state, and mutates nothing when a
precondition fails. The engine is the sole writer of a loan's return
date and a book's status.
*/
package circulation

import (
	"context"
	"time"

	"biblio/config"
	"biblio/domain/book"
	"biblio/domain/loan"
	"biblio/domain/shared"
)

// Policy is the lending policy applied by the engine.
type Policy struct {
	// LoanPeriodDays is the issue-to-due window.
	LoanPeriodDays int
	// RenewalExtensionDays is added to the current due date on renewal.
	RenewalExtensionDays int
}

// DefaultPolicy is the standard two-week loan with one-week renewals.
var DefaultPolicy = Policy{
	LoanPeriodDays:       14,
	RenewalExtensionDays: 7,
}

// PolicyFromConfig builds a Policy, falling back to the defaults for
// missing or non-positive values.
func PolicyFromConfig(cfg config.CirculationConfig) Policy {
	policy := DefaultPolicy
	if cfg.LoanPeriodDays > 0 {
		policy.LoanPeriodDays = cfg.LoanPeriodDays
	}
	if cfg.RenewalExtensionDays > 0 {
		policy.RenewalExtensionDays = cfg.RenewalExtensionDays
	}
	return policy
}

// Service orchestrates issue, return and renewal across the catalog
// and the loan ledger.
type Service struct {
	books  book.Repository
	loans  loan.Repository
	uow    shared.UnitOfWork
	policy Policy

	// now is the clock reading used for date computation; injectable
	// for tests.
	now func() time.Time
}

// NewService creates the lifecycle engine.
func NewService(books book.Repository, loans loan.Repository, uow shared.UnitOfWork, policy Policy) *Service {
	return &Service{
		books:  books,
		loans:  loans,
		uow:    uow,
		policy: policy,
		now:    time.Now,
	}
}

// IssueResult reports a successful issue.
type IssueResult struct {
	LoanID string    `json:"loan_id"`
	DueAt  time.Time `json:"due_at"`
}

// ReturnResult reports a successful return.
type ReturnResult struct {
	LoanID     string    `json:"loan_id"`
	ReturnedAt time.Time `json:"returned_at"`
}

// RenewResult reports a successful renewal.
type RenewResult struct {
	LoanID string    `json:"loan_id"`
	DueAt  time.Time `json:"due_at"`
}

// Issue lends a book to a member. The book must exist and be
// Available; the due date is today plus the loan period.
func (s *Service) Issue(ctx context.Context, memberID, bookID string) (*IssueResult, error) {
	if memberID == "" || bookID == "" {
		return nil, loan.NewMissingIdentifiersError()
	}

	var result *IssueResult
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		b, err := s.books.FindByID(ctx, bookID)
		if err != nil {
			return err
		}

		if err := b.MarkLoaned(); err != nil {
			return err
		}

		l, err := loan.NewLoan(memberID, bookID, s.today(), s.policy.LoanPeriodDays)
		if err != nil {
			return err
		}

		if err := s.loans.Save(ctx, l); err != nil {
			return err
		}
		if err := s.books.Save(ctx, b); err != nil {
			return err
		}

		result = &IssueResult{LoanID: l.ID(), DueAt: l.DueAt()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Return closes the open loan for exactly this member and book and
// makes the book Available again. A return request from a member who
// does not hold the book fails, even when the book is out to someone
// else.
func (s *Service) Return(ctx context.Context, memberID, bookID string) (*ReturnResult, error) {
	if memberID == "" || bookID == "" {
		return nil, loan.NewMissingIdentifiersError()
	}

	var result *ReturnResult
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		b, l, err := s.findLoanedPair(ctx, memberID, bookID)
		if err != nil {
			return err
		}

		returnedAt := s.today()
		if err := l.Close(returnedAt); err != nil {
			return err
		}
		if err := b.MarkAvailable(); err != nil {
			return err
		}

		if err := s.loans.Save(ctx, l); err != nil {
			return err
		}
		if err := s.books.Save(ctx, b); err != nil {
			return err
		}

		result = &ReturnResult{LoanID: l.ID(), ReturnedAt: returnedAt}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Renew extends the open loan's due date by the renewal extension,
// counted from the current due date. Renewal is unlimited while the
// loan stays open.
func (s *Service) Renew(ctx context.Context, memberID, bookID string) (*RenewResult, error) {
	if memberID == "" || bookID == "" {
		return nil, loan.NewMissingIdentifiersError()
	}

	var result *RenewResult
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		_, l, err := s.findLoanedPair(ctx, memberID, bookID)
		if err != nil {
			return err
		}

		if err := l.Extend(s.policy.RenewalExtensionDays); err != nil {
			return err
		}
		if err := s.loans.Save(ctx, l); err != nil {
			return err
		}

		result = &RenewResult{LoanID: l.ID(), DueAt: l.DueAt()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// findLoanedPair resolves the book and its open loan for return and
// renewal: the book must exist and be Loaned, and the open loan must
// match the member and book exactly.
func (s *Service) findLoanedPair(ctx context.Context, memberID, bookID string) (*book.Book, *loan.Loan, error) {
	b, err := s.books.FindByID(ctx, bookID)
	if err != nil {
		return nil, nil, err
	}
	if b.Status() != book.StatusLoaned {
		return nil, nil, book.NewNotLoanedError(bookID)
	}

	l, err := s.loans.FindOpen(ctx, memberID, bookID)
	if err != nil {
		return nil, nil, err
	}
	if l == nil {
		return nil, nil, loan.NewNoMatchingLoanError(memberID, bookID)
	}

	return b, l, nil
}

// today truncates the clock reading to a calendar date.
func (s *Service) today() time.Time {
	year, month, day := s.now().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, s.now().Location())
}
