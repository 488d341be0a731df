package circulation

import (
	"context"
	"testing"
	"time"

	"biblio/config"
	"biblio/domain/book"
	"biblio/domain/loan"
	"biblio/domain/shared"
	"biblio/infrastructure/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	service *Service
	books   *memory.BookRepository
	loans   *memory.LoanRepository
}

// countingUnitOfWork records how often Execute runs, to verify that
// precondition failures never reach the store.
type countingUnitOfWork struct {
	executions int
}

func (u *countingUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	u.executions++
	return fn(ctx)
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()

	books := memory.NewBookRepository()
	loans := memory.NewLoanRepository(books)
	service := NewService(books, loans, memory.NewUnitOfWork(), DefaultPolicy)
	service.now = func() time.Time { return now }

	return &fixture{service: service, books: books, loans: loans}
}

func (f *fixture) addBook(t *testing.T) *book.Book {
	t.Helper()

	b, err := book.NewBook("The Go Programming Language", "Alan Donovan", "1234567890123", "Programming")
	require.NoError(t, err)
	require.NoError(t, f.books.Save(context.Background(), b))
	return b
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIssueReturnLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, date(2026, time.March, 1))
	b := f.addBook(t)

	issued, err := f.service.Issue(ctx, "member-1", b.ID())
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.March, 15), issued.DueAt, "due date is issue date plus fourteen days")

	stored, err := f.books.FindByID(ctx, b.ID())
	require.NoError(t, err)
	assert.Equal(t, book.StatusLoaned, stored.Status())

	renewed, err := f.service.Renew(ctx, "member-1", b.ID())
	require.NoError(t, err)
	assert.Equal(t, issued.LoanID, renewed.LoanID)
	assert.Equal(t, date(2026, time.March, 22), renewed.DueAt, "renewal adds seven days onto the current due date")

	returned, err := f.service.Return(ctx, "member-1", b.ID())
	require.NoError(t, err)
	assert.Equal(t, issued.LoanID, returned.LoanID)
	assert.Equal(t, date(2026, time.March, 1), returned.ReturnedAt)

	stored, err = f.books.FindByID(ctx, b.ID())
	require.NoError(t, err)
	assert.Equal(t, book.StatusAvailable, stored.Status(), "book is available again after return")

	closed, err := f.loans.FindByID(ctx, issued.LoanID)
	require.NoError(t, err)
	assert.False(t, closed.IsOpen())
	assert.Equal(t, date(2026, time.March, 22), closed.DueAt(), "close keeps the renewed due date")
}

func TestIssueUnavailableBook(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, date(2026, time.March, 1))
	b := f.addBook(t)

	_, err := f.service.Issue(ctx, "member-1", b.ID())
	require.NoError(t, err)

	_, err = f.service.Issue(ctx, "member-2", b.ID())
	assert.ErrorIs(t, err, book.ErrUnavailable)

	// The failed issue must not have opened a second loan.
	open, err := f.loans.FindOpen(ctx, "member-2", b.ID())
	require.NoError(t, err)
	assert.Nil(t, open)
}

func TestIssueUnknownBook(t *testing.T) {
	f := newFixture(t, date(2026, time.March, 1))

	_, err := f.service.Issue(context.Background(), "member-1", "no-such-book")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestReturnByWrongMember(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, date(2026, time.March, 1))
	b := f.addBook(t)

	_, err := f.service.Issue(ctx, "member-1", b.ID())
	require.NoError(t, err)

	// Someone who does not hold the book cannot return it.
	_, err = f.service.Return(ctx, "member-2", b.ID())
	assert.ErrorIs(t, err, loan.ErrNoMatchingLoan)

	// The real holder still can.
	_, err = f.service.Return(ctx, "member-1", b.ID())
	require.NoError(t, err)
}

func TestReturnBookNotLoaned(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, date(2026, time.March, 1))
	b := f.addBook(t)

	_, err := f.service.Return(ctx, "member-1", b.ID())
	assert.ErrorIs(t, err, book.ErrNotLoaned)
}

func TestRenewByWrongMember(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, date(2026, time.March, 1))
	b := f.addBook(t)

	_, err := f.service.Issue(ctx, "member-1", b.ID())
	require.NoError(t, err)

	_, err = f.service.Renew(ctx, "member-2", b.ID())
	assert.ErrorIs(t, err, loan.ErrNoMatchingLoan)
}

func TestMissingIdentifiersShortCircuit(t *testing.T) {
	ctx := context.Background()
	books := memory.NewBookRepository()
	loans := memory.NewLoanRepository(books)
	uow := &countingUnitOfWork{}
	service := NewService(books, loans, uow, DefaultPolicy)

	_, err := service.Issue(ctx, "", "book-1")
	assert.ErrorIs(t, err, loan.ErrMissingIdentifiers)

	_, err = service.Return(ctx, "member-1", "")
	assert.ErrorIs(t, err, loan.ErrMissingIdentifiers)

	_, err = service.Renew(ctx, "", "")
	assert.ErrorIs(t, err, loan.ErrMissingIdentifiers)

	assert.Equal(t, 0, uow.executions, "missing identifiers must fail before any store access")
}

func TestPolicyFromConfig(t *testing.T) {
	policy := PolicyFromConfig(config.CirculationConfig{LoanPeriodDays: 21, RenewalExtensionDays: 10})
	assert.Equal(t, 21, policy.LoanPeriodDays)
	assert.Equal(t, 10, policy.RenewalExtensionDays)

	policy = PolicyFromConfig(config.CirculationConfig{})
	assert.Equal(t, DefaultPolicy, policy)
}
