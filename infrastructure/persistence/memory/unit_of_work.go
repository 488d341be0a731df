package memory

import (
	"context"

	"biblio/domain/shared"
)

// UnitOfWork runs the business function directly. The in-memory store
// has no transactions; each repository write is individually atomic
// under its own lock.
type UnitOfWork struct{}

func NewUnitOfWork() *UnitOfWork {
	return &UnitOfWork{}
}

func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var _ shared.UnitOfWork = (*UnitOfWork)(nil)
