package report

import (
	"context"
	"testing"
	"time"

	"biblio/domain/book"
	"biblio/domain/loan"
	"biblio/infrastructure/persistence/memory"
	apperrors "biblio/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newFixture(now time.Time) (*Service, *memory.BookRepository, *memory.LoanRepository) {
	books := memory.NewBookRepository()
	loans := memory.NewLoanRepository(books)
	service := NewService(books, loans)
	service.now = func() time.Time { return now }
	return service, books, loans
}

func addBook(t *testing.T, books *memory.BookRepository, title, catalogNumber string, loaned bool) *book.Book {
	t.Helper()

	b, err := book.NewBook(title, "Author", catalogNumber, "Category")
	require.NoError(t, err)
	if loaned {
		require.NoError(t, b.MarkLoaned())
	}
	require.NoError(t, books.Save(context.Background(), b))
	return b
}

func addLoan(t *testing.T, loans *memory.LoanRepository, b *book.Book, issuedAt time.Time, periodDays int, returned bool) {
	t.Helper()

	l, err := loan.NewLoan("member-1", b.ID(), issuedAt, periodDays)
	require.NoError(t, err)
	require.NoError(t, loans.Save(context.Background(), l))
	if returned {
		require.NoError(t, l.Close(issuedAt.AddDate(0, 0, 1)))
		require.NoError(t, loans.Save(context.Background(), l))
	}
}

func TestGenerateOutstanding(t *testing.T) {
	service, books, loans := newFixture(date(2026, time.March, 10))
	ctx := context.Background()

	open := addBook(t, books, "Open Loan", "1111111111111", true)
	closed := addBook(t, books, "Closed Loan", "2222222222222", false)
	addLoan(t, loans, open, date(2026, time.March, 1), 14, false)
	addLoan(t, loans, closed, date(2026, time.February, 1), 14, true)

	report, err := service.Generate(ctx, "outstanding")
	require.NoError(t, err)

	require.Len(t, report.Rows, 1, "only open loans are outstanding")
	assert.Equal(t, "Open Loan", report.Rows[0].Title)
	require.NotNil(t, report.Rows[0].DueAt)
	assert.Equal(t, date(2026, time.March, 15), *report.Rows[0].DueAt)
}

func TestGenerateOverdue(t *testing.T) {
	service, books, loans := newFixture(date(2026, time.March, 20))
	ctx := context.Background()

	overdue := addBook(t, books, "Overdue", "1111111111111", true)
	onTime := addBook(t, books, "On Time", "2222222222222", true)
	addLoan(t, loans, overdue, date(2026, time.March, 1), 14, false)
	addLoan(t, loans, onTime, date(2026, time.March, 10), 14, false)

	report, err := service.Generate(ctx, "overdue")
	require.NoError(t, err)

	require.Len(t, report.Rows, 1, "only loans past due are overdue")
	assert.Equal(t, "Overdue", report.Rows[0].Title)
}

func TestGenerateAvailable(t *testing.T) {
	service, books, _ := newFixture(date(2026, time.March, 10))
	ctx := context.Background()

	addBook(t, books, "On Shelf", "1111111111111", false)
	addBook(t, books, "Out", "2222222222222", true)

	report, err := service.Generate(ctx, "available")
	require.NoError(t, err)

	require.Len(t, report.Rows, 1)
	assert.Equal(t, "On Shelf", report.Rows[0].Title)
	assert.Nil(t, report.Rows[0].DueAt, "catalog reports carry no due date")
}

func TestGenerateUnknownKind(t *testing.T) {
	service, _, _ := newFixture(date(2026, time.March, 10))

	_, err := service.Generate(context.Background(), "lost-books")
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidReportKind))
}

func TestGenerateNoData(t *testing.T) {
	service, _, _ := newFixture(date(2026, time.March, 10))

	for _, kind := range []string{"outstanding", "available", "overdue"} {
		_, err := service.Generate(context.Background(), kind)
		assert.True(t, apperrors.Is(err, apperrors.CodeNoReportData), "kind %s", kind)
	}
}
