package memory

import (
	"context"
	"sort"
	"sync"

	"biblio/domain/book"
	"biblio/domain/shared"
)

// BookRepository is the in-memory catalog store.
type BookRepository struct {
	mu      sync.RWMutex
	records map[string]book.ReconstructionDTO
}

func NewBookRepository() *BookRepository {
	return &BookRepository{records: make(map[string]book.ReconstructionDTO)}
}

func bookToDTO(b *book.Book) book.ReconstructionDTO {
	return book.ReconstructionDTO{
		ID:            b.ID(),
		Title:         b.Title(),
		Author:        b.Author(),
		CatalogNumber: b.CatalogNumber().Value(),
		Category:      b.Category(),
		Status:        b.Status(),
		Version:       b.Version(),
		CreatedAt:     b.CreatedAt(),
		UpdatedAt:     b.UpdatedAt(),
	}
}

func (r *BookRepository) Save(_ context.Context, b *book.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	dto := bookToDTO(b)

	if b.IsNew() {
		for _, existing := range r.records {
			if existing.CatalogNumber == dto.CatalogNumber {
				return book.NewCatalogNumberExistsError(dto.CatalogNumber)
			}
		}
		r.records[dto.ID] = dto
		b.ClearNewFlag()
		return nil
	}

	stored, ok := r.records[dto.ID]
	if !ok {
		return book.NewBookNotFoundError(dto.ID)
	}
	if stored.Version != dto.Version {
		return book.NewConcurrentModificationError(dto.ID)
	}

	dto.Version++
	r.records[dto.ID] = dto
	b.IncrementVersionForSave()
	return nil
}

func (r *BookRepository) FindByID(ctx context.Context, id string) (*book.Book, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	dto, ok := r.records[id]
	if !ok {
		return nil, book.NewBookNotFoundError(id)
	}
	return book.RebuildFromDTO(dto), nil
}

func (r *BookRepository) FindByCatalogNumber(_ context.Context, catalogNumber string) (*book.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, dto := range r.records {
		if dto.CatalogNumber == catalogNumber {
			return book.RebuildFromDTO(dto), nil
		}
	}
	return nil, nil
}

func (r *BookRepository) FindBySpecification(ctx context.Context, spec shared.Specification[*book.Book]) ([]*book.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	books := make([]*book.Book, 0)
	for _, dto := range r.records {
		b := book.RebuildFromDTO(dto)
		if spec == nil || spec.IsSatisfiedBy(ctx, b) {
			books = append(books, b)
		}
	}
	sort.Slice(books, func(i, j int) bool {
		return books[i].CreatedAt().Before(books[j].CreatedAt())
	})
	return books, nil
}

func (r *BookRepository) Remove(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return book.NewBookNotFoundError(id)
	}
	delete(r.records, id)
	return nil
}

// title returns the catalog title for a book id, or "" after removal.
// Used by the loan repository to assemble history rows.
func (r *BookRepository) title(id string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.records[id].Title
}

var _ book.Repository = (*BookRepository)(nil)
