// Package book wires catalog maintenance use cases.
package book

import (
	"context"
	"time"

	"biblio/domain/book"
	"biblio/domain/shared"
)

// RegisterRequest carries the data for a new catalog entry.
type RegisterRequest struct {
	Title         string `json:"title" binding:"required"`
	Author        string `json:"author" binding:"required"`
	CatalogNumber string `json:"catalog_number" binding:"required"`
	Category      string `json:"category" binding:"required"`
}

// Response is the outward view of a catalog entry.
type Response struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	CatalogNumber string    `json:"catalog_number"`
	Category      string    `json:"category"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Availability is the status lookup result.
type Availability struct {
	BookID    string `json:"book_id"`
	Title     string `json:"title"`
	Status    string `json:"status"`
	Available bool   `json:"available"`
}

func toResponse(b *book.Book) *Response {
	return &Response{
		ID:            b.ID(),
		Title:         b.Title(),
		Author:        b.Author(),
		CatalogNumber: b.CatalogNumber().Value(),
		Category:      b.Category(),
		Status:        b.Status().String(),
		CreatedAt:     b.CreatedAt(),
		UpdatedAt:     b.UpdatedAt(),
	}
}

// Service orchestrates catalog use cases.
type Service struct {
	books book.Repository
	uow   shared.UnitOfWork
}

func NewService(books book.Repository, uow shared.UnitOfWork) *Service {
	return &Service{books: books, uow: uow}
}

// Register adds a book to the catalog in the Available state. The
// catalog number must be unique.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*Response, error) {
	b, err := book.NewBook(req.Title, req.Author, req.CatalogNumber, req.Category)
	if err != nil {
		return nil, err
	}

	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		existing, err := s.books.FindByCatalogNumber(ctx, b.CatalogNumber().Value())
		if err != nil {
			return err
		}
		if existing != nil {
			return book.NewCatalogNumberExistsError(b.CatalogNumber().Value())
		}

		return s.books.Save(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	return toResponse(b), nil
}

// Get returns one catalog entry by id.
func (s *Service) Get(ctx context.Context, bookID string) (*Response, error) {
	b, err := s.books.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	return toResponse(b), nil
}

// Remove deletes a book from the catalog. A book that is out on loan
// cannot be removed; it has to come back first.
func (s *Service) Remove(ctx context.Context, bookID string) error {
	return s.uow.Execute(ctx, func(ctx context.Context) error {
		b, err := s.books.FindByID(ctx, bookID)
		if err != nil {
			return err
		}
		if !b.IsAvailable() {
			return book.NewRemoveLoanedError(bookID)
		}

		return s.books.Remove(ctx, bookID)
	})
}

// Availability reports whether a book can currently be issued.
func (s *Service) Availability(ctx context.Context, bookID string) (*Availability, error) {
	b, err := s.books.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	return &Availability{
		BookID:    b.ID(),
		Title:     b.Title(),
		Status:    b.Status().String(),
		Available: b.IsAvailable(),
	}, nil
}
