// Package book holds the book aggregate and its availability state
// machine. A book is either Available or Loaned; the two transitions
// (MarkLoaned, MarkAvailable) are the only way to move between them.
package book

import (
	"fmt"
	"time"

	"biblio/domain/shared"

	"github.com/google/uuid"
)

// Status is the closed set of availability states.
type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusLoaned    Status = "LOANED"
)

// IsValid reports whether s is one of the known states.
func (s Status) IsValid() bool {
	return s == StatusAvailable || s == StatusLoaned
}

func (s Status) String() string { return string(s) }

// Book is the aggregate root for a catalog entry. Its status must stay
// consistent with the loan ledger: Loaned exactly while an open loan
// exists for the book.
type Book struct {
	id            string
	title         string
	author        string
	catalogNumber CatalogNumber
	category      string
	status        Status
	version       int
	createdAt     time.Time
	updatedAt     time.Time

	isNew bool
}

// NewBook creates a catalog entry in the Available state.
func NewBook(title, author, catalogNumber, category string) (*Book, error) {
	if title == "" {
		return nil, NewInvalidFieldError("title")
	}
	if author == "" {
		return nil, NewInvalidFieldError("author")
	}
	if category == "" {
		return nil, NewInvalidFieldError("category")
	}

	catalogVO, err := NewCatalogNumber(catalogNumber)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate book ID: %w", err)
	}

	now := time.Now()
	return &Book{
		id:            id.String(),
		title:         title,
		author:        author,
		catalogNumber: *catalogVO,
		category:      category,
		status:        StatusAvailable,
		version:       0,
		createdAt:     now,
		updatedAt:     now,
		isNew:         true,
	}, nil
}

// MarkLoaned transitions Available -> Loaned. Fails when the book is
// already out.
func (b *Book) MarkLoaned() error {
	if b.status != StatusAvailable {
		return NewUnavailableError(b.id)
	}
	b.status = StatusLoaned
	b.updatedAt = time.Now()
	return nil
}

// MarkAvailable transitions Loaned -> Available. Fails when the book
// is not out.
func (b *Book) MarkAvailable() error {
	if b.status != StatusLoaned {
		return NewNotLoanedError(b.id)
	}
	b.status = StatusAvailable
	b.updatedAt = time.Now()
	return nil
}

// IsAvailable reports whether the book can be issued.
func (b *Book) IsAvailable() bool { return b.status == StatusAvailable }

func (b *Book) ID() string                   { return b.id }
func (b *Book) Title() string                { return b.title }
func (b *Book) Author() string               { return b.author }
func (b *Book) CatalogNumber() CatalogNumber { return b.catalogNumber }
func (b *Book) Category() string             { return b.category }
func (b *Book) Status() Status               { return b.status }
func (b *Book) Version() int                 { return b.version }
func (b *Book) CreatedAt() time.Time         { return b.createdAt }
func (b *Book) UpdatedAt() time.Time         { return b.updatedAt }

// IsNew reports whether the aggregate has never been persisted.
func (b *Book) IsNew() bool { return b.isNew }

// ClearNewFlag marks the aggregate as persisted. Repository use only.
func (b *Book) ClearNewFlag() { b.isNew = false }

// IncrementVersionForSave bumps the version after a successful
// version-guarded update. Repository use only.
func (b *Book) IncrementVersionForSave() { b.version++ }

// ReconstructionDTO rebuilds a book from persisted state. Repository
// use only.
type ReconstructionDTO struct {
	ID            string
	Title         string
	Author        string
	CatalogNumber string
	Category      string
	Status        Status
	Version       int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RebuildFromDTO reconstructs the aggregate from a DTO.
func RebuildFromDTO(dto ReconstructionDTO) *Book {
	return &Book{
		id:            dto.ID,
		title:         dto.Title,
		author:        dto.Author,
		catalogNumber: CatalogNumber{value: dto.CatalogNumber},
		category:      dto.Category,
		status:        dto.Status,
		version:       dto.Version,
		createdAt:     dto.CreatedAt,
		updatedAt:     dto.UpdatedAt,
	}
}

var _ shared.AggregateRoot = (*Book)(nil)
