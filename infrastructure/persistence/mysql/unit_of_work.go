package mysql

import (
	"context"
	"fmt"

	"biblio/domain/shared"
	"biblio/infrastructure/persistence"

	"gorm.io/gorm"
)

// UnitOfWork runs business logic inside one database transaction. The
// transaction is injected into the context so every repository call
// inside fn joins it; commit and rollback stay in one place.
type UnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Execute begins a transaction, runs fn with the transaction in
// context, and commits on success or rolls back on error or panic.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	txCtx := persistence.ContextWithTx(ctx, tx)

	if err := fn(txCtx); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

var _ shared.UnitOfWork = (*UnitOfWork)(nil)
