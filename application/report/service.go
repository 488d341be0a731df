// Package report produces point-in-time circulation summaries from the
// loan ledger and the catalog.
package report

import (
	"context"
	"time"

	"biblio/domain/book"
	"biblio/domain/loan"
	"biblio/domain/shared"
	apperrors "biblio/pkg/errors"
)

// Kind selects which summary to generate.
type Kind string

const (
	KindOutstanding Kind = "outstanding"
	KindAvailable   Kind = "available"
	KindOverdue     Kind = "overdue"
)

// Row is one report line. DueAt is set on loan-based reports only.
type Row struct {
	Title string     `json:"title"`
	DueAt *time.Time `json:"due_at,omitempty"`
}

// Report is the generated summary.
type Report struct {
	Kind        Kind      `json:"kind"`
	GeneratedAt time.Time `json:"generated_at"`
	Rows        []Row     `json:"rows"`
}

// Service reads the stores directly; reports never mutate state, so no
// unit of work is involved.
type Service struct {
	books book.Repository
	loans loan.Repository

	now func() time.Time
}

func NewService(books book.Repository, loans loan.Repository) *Service {
	return &Service{books: books, loans: loans, now: time.Now}
}

// Generate builds the summary for the given kind. An unknown kind is a
// bad request; a known kind with nothing to report is the NO_REPORT_DATA
// failure rather than an empty success.
func (s *Service) Generate(ctx context.Context, kind string) (*Report, error) {
	var (
		rows []Row
		err  error
	)

	switch Kind(kind) {
	case KindOutstanding:
		rows, err = s.loanRows(ctx, loan.OpenSpecification{})
	case KindOverdue:
		rows, err = s.loanRows(ctx, shared.And[*loan.Loan](loan.OpenSpecification{}, loan.DueBeforeSpecification{Time: s.today()}))
	case KindAvailable:
		rows, err = s.availableRows(ctx)
	default:
		return nil, apperrors.New(apperrors.CodeInvalidReportKind, "unrecognized report kind: "+kind)
	}
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, apperrors.New(apperrors.CodeNoReportData, "no data available for report: "+kind)
	}

	return &Report{Kind: Kind(kind), GeneratedAt: s.now(), Rows: rows}, nil
}

func (s *Service) loanRows(ctx context.Context, spec shared.Specification[*loan.Loan]) ([]Row, error) {
	loans, err := s.loans.FindBySpecification(ctx, spec)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(loans))
	for _, l := range loans {
		b, err := s.books.FindByID(ctx, l.BookID())
		if err != nil {
			return nil, err
		}
		dueAt := l.DueAt()
		rows = append(rows, Row{Title: b.Title(), DueAt: &dueAt})
	}
	return rows, nil
}

func (s *Service) availableRows(ctx context.Context) ([]Row, error) {
	books, err := s.books.FindBySpecification(ctx, book.ByStatusSpecification{Status: book.StatusAvailable})
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(books))
	for _, b := range books {
		rows = append(rows, Row{Title: b.Title()})
	}
	return rows, nil
}

func (s *Service) today() time.Time {
	year, month, day := s.now().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, s.now().Location())
}
