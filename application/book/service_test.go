package book

import (
	"context"
	"testing"

	domainbook "biblio/domain/book"
	"biblio/domain/shared"
	"biblio/infrastructure/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() (*Service, *memory.BookRepository) {
	books := memory.NewBookRepository()
	return NewService(books, memory.NewUnitOfWork()), books
}

func validRequest() RegisterRequest {
	return RegisterRequest{
		Title:         "The Go Programming Language",
		Author:        "Alan Donovan",
		CatalogNumber: "1234567890123",
		Category:      "Programming",
	}
}

func TestRegister(t *testing.T) {
	service, _ := newService()

	resp, err := service.Register(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "AVAILABLE", resp.Status, "new books start available")
}

func TestRegisterDuplicateCatalogNumber(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	_, err := service.Register(ctx, validRequest())
	require.NoError(t, err)

	req := validRequest()
	req.Title = "Another Title"
	_, err = service.Register(ctx, req)
	assert.ErrorIs(t, err, domainbook.ErrCatalogNumberExists)
}

func TestRemove(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	created, err := service.Register(ctx, validRequest())
	require.NoError(t, err)

	require.NoError(t, service.Remove(ctx, created.ID))

	_, err = service.Get(ctx, created.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestRemoveLoanedBookFails(t *testing.T) {
	service, books := newService()
	ctx := context.Background()

	created, err := service.Register(ctx, validRequest())
	require.NoError(t, err)

	b, err := books.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NoError(t, b.MarkLoaned())
	require.NoError(t, books.Save(ctx, b))

	err = service.Remove(ctx, created.ID)
	assert.ErrorIs(t, err, domainbook.ErrRemoveLoaned)

	// The book must still be in the catalog.
	_, err = service.Get(ctx, created.ID)
	require.NoError(t, err)
}

func TestAvailability(t *testing.T) {
	service, books := newService()
	ctx := context.Background()

	created, err := service.Register(ctx, validRequest())
	require.NoError(t, err)

	availability, err := service.Availability(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, availability.Available)
	assert.Equal(t, "AVAILABLE", availability.Status)

	b, err := books.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NoError(t, b.MarkLoaned())
	require.NoError(t, books.Save(ctx, b))

	availability, err = service.Availability(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, availability.Available)
	assert.Equal(t, "LOANED", availability.Status)
}
