package member

import (
	"context"
	"testing"
	"time"

	"biblio/domain/book"
	"biblio/domain/loan"
	domainmember "biblio/domain/member"
	"biblio/domain/shared"
	"biblio/infrastructure/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() (*Service, *memory.BookRepository, *memory.LoanRepository) {
	books := memory.NewBookRepository()
	loans := memory.NewLoanRepository(books)
	members := memory.NewMemberRepository()
	return NewService(members, loans, memory.NewUnitOfWork()), books, loans
}

func validRequest() RegisterRequest {
	return RegisterRequest{
		Name:       "Ana Souza",
		NationalID: "12345678901",
		Email:      "ana.souza@example.com",
		Phone:      "11999990000",
	}
}

func TestRegister(t *testing.T) {
	service, _, _ := newService()

	resp, err := service.Register(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Ana Souza", resp.Name)
	assert.Equal(t, "12345678901", resp.NationalID)
	assert.Equal(t, "ana.souza@example.com", resp.Email)
}

func TestRegisterDuplicateNationalID(t *testing.T) {
	service, _, _ := newService()
	ctx := context.Background()

	_, err := service.Register(ctx, validRequest())
	require.NoError(t, err)

	req := validRequest()
	req.Email = "other@example.com"
	_, err = service.Register(ctx, req)
	assert.ErrorIs(t, err, domainmember.ErrNationalIDExists)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service, _, _ := newService()
	ctx := context.Background()

	_, err := service.Register(ctx, validRequest())
	require.NoError(t, err)

	req := validRequest()
	req.NationalID = "10987654321"
	_, err = service.Register(ctx, req)
	assert.ErrorIs(t, err, domainmember.ErrEmailExists)
}

func TestGetUnknownMember(t *testing.T) {
	service, _, _ := newService()

	_, err := service.Get(context.Background(), "no-such-member")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestUpdate(t *testing.T) {
	service, _, _ := newService()
	ctx := context.Background()

	created, err := service.Register(ctx, validRequest())
	require.NoError(t, err)

	newName := "Ana Lima"
	updated, err := service.Update(ctx, created.ID, UpdateRequest{Name: &newName})
	require.NoError(t, err)

	assert.Equal(t, "Ana Lima", updated.Name)
	assert.Equal(t, created.Email, updated.Email, "absent fields stay untouched")
	assert.Equal(t, created.NationalID, updated.NationalID, "national id is immutable")
}

func TestUpdateEmptyPatchIsNoOp(t *testing.T) {
	service, _, _ := newService()
	ctx := context.Background()

	created, err := service.Register(ctx, validRequest())
	require.NoError(t, err)

	updated, err := service.Update(ctx, created.ID, UpdateRequest{})
	require.NoError(t, err)
	assert.Equal(t, created.Name, updated.Name)
}

func TestUpdateRejectsPresentButEmpty(t *testing.T) {
	service, _, _ := newService()
	ctx := context.Background()

	created, err := service.Register(ctx, validRequest())
	require.NoError(t, err)

	empty := ""
	_, err = service.Update(ctx, created.ID, UpdateRequest{Email: &empty})
	assert.ErrorIs(t, err, domainmember.ErrInvalidEmail)
}

func TestUpdateDuplicateEmail(t *testing.T) {
	service, _, _ := newService()
	ctx := context.Background()

	first, err := service.Register(ctx, validRequest())
	require.NoError(t, err)

	req := validRequest()
	req.NationalID = "10987654321"
	req.Email = "other@example.com"
	second, err := service.Register(ctx, req)
	require.NoError(t, err)

	taken := first.Email
	_, err = service.Update(ctx, second.ID, UpdateRequest{Email: &taken})
	assert.ErrorIs(t, err, domainmember.ErrEmailExists)
}

func TestHistory(t *testing.T) {
	service, books, loans := newService()
	ctx := context.Background()

	created, err := service.Register(ctx, validRequest())
	require.NoError(t, err)

	b, err := book.NewBook("The Go Programming Language", "Alan Donovan", "1234567890123", "Programming")
	require.NoError(t, err)
	require.NoError(t, books.Save(ctx, b))

	issuedAt := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	l, err := loan.NewLoan(created.ID, b.ID(), issuedAt, 14)
	require.NoError(t, err)
	require.NoError(t, loans.Save(ctx, l))

	rows, err := service.History(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "The Go Programming Language", rows[0].BookTitle)
	assert.Equal(t, issuedAt, rows[0].IssuedAt)
	assert.Nil(t, rows[0].ReturnedAt, "open loan has no return date")
}

func TestHistoryUnknownMember(t *testing.T) {
	service, _, _ := newService()

	_, err := service.History(context.Background(), "no-such-member")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
