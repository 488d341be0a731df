package book

import (
	"context"

	"biblio/domain/shared"
)

// Repository persists the book aggregate.
//
// Save creates when the aggregate is new and otherwise performs a
// version-guarded update, so a concurrent status flip cannot be
// silently overwritten. FindByCatalogNumber returns (nil, nil) when no
// book matches.
type Repository interface {
	Save(ctx context.Context, b *Book) error
	FindByID(ctx context.Context, id string) (*Book, error)
	FindByCatalogNumber(ctx context.Context, catalogNumber string) (*Book, error)
	FindBySpecification(ctx context.Context, spec shared.Specification[*Book]) ([]*Book, error)
	Remove(ctx context.Context, id string) error
}
