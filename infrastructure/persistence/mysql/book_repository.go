package mysql

import (
	"context"
	"errors"

	"biblio/domain/book"
	"biblio/domain/shared"
	"biblio/infrastructure/persistence"
	"biblio/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// BookRepository is the GORM implementation of the catalog store.
type BookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) *BookRepository {
	return &BookRepository{db: db}
}

func (r *BookRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *BookRepository) Save(ctx context.Context, b *book.Book) error {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return r.saveWithTx(tx, b)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveWithTx(tx, b)
	})
}

func (r *BookRepository) saveWithTx(tx *gorm.DB, b *book.Book) error {
	bookPO := po.FromBookDomain(b)

	if b.IsNew() {
		if err := tx.Create(bookPO).Error; err != nil {
			if isDuplicateKeyError(err) {
				return book.NewCatalogNumberExistsError(bookPO.CatalogNumber)
			}
			return err
		}
	} else {
		expectedVersion := b.Version()

		// The version guard is what makes the availability flip safe
		// under concurrent issue requests: only one of two racing
		// transactions can move the row from version N to N+1.
		result := tx.Model(&po.BookPO{}).
			Where("id = ? AND version = ?", b.ID(), expectedVersion).
			Updates(map[string]interface{}{
				"title":      bookPO.Title,
				"author":     bookPO.Author,
				"category":   bookPO.Category,
				"status":     bookPO.Status,
				"version":    expectedVersion + 1,
				"updated_at": bookPO.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&po.BookPO{}).Where("id = ?", b.ID()).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return book.NewBookNotFoundError(b.ID())
			}
			return book.NewConcurrentModificationError(b.ID())
		}

		b.IncrementVersionForSave()
	}
	b.ClearNewFlag()
	return nil
}

func (r *BookRepository) FindByID(ctx context.Context, id string) (*book.Book, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var bookPO po.BookPO

	result := r.getDB(ctx).First(&bookPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, book.NewBookNotFoundError(id)
		}
		return nil, result.Error
	}

	return bookPO.ToDomain(), nil
}

func (r *BookRepository) FindByCatalogNumber(ctx context.Context, catalogNumber string) (*book.Book, error) {
	var bookPO po.BookPO

	result := r.getDB(ctx).Where("catalog_number = ?", catalogNumber).First(&bookPO)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return bookPO.ToDomain(), nil
}

func (r *BookRepository) FindBySpecification(ctx context.Context, spec shared.Specification[*book.Book]) ([]*book.Book, error) {
	db := r.applySpecification(r.getDB(ctx), spec)
	if db.Error != nil {
		return nil, db.Error
	}

	var bookPOs []po.BookPO
	if err := db.Order("created_at ASC").Find(&bookPOs).Error; err != nil {
		return nil, err
	}

	books := make([]*book.Book, len(bookPOs))
	for i, bookPO := range bookPOs {
		books[i] = bookPO.ToDomain()
	}
	return books, nil
}

// applySpecification translates a specification tree into WHERE
// clauses. Unknown leaf specifications translate to no filter.
func (r *BookRepository) applySpecification(db *gorm.DB, spec shared.Specification[*book.Book]) *gorm.DB {
	if spec == nil {
		return db
	}
	switch s := spec.(type) {
	case shared.AndSpecification[*book.Book]:
		return r.applySpecification(r.applySpecification(db, s.Left), s.Right)
	case shared.NotSpecification[*book.Book]:
		return r.applyNotSpecification(db, s.Spec)
	case book.ByStatusSpecification:
		return db.Where("status = ?", s.Status.String())
	default:
		return db
	}
}

func (r *BookRepository) applyNotSpecification(db *gorm.DB, spec shared.Specification[*book.Book]) *gorm.DB {
	switch s := spec.(type) {
	case book.ByStatusSpecification:
		return db.Where("status != ?", s.Status.String())
	case shared.NotSpecification[*book.Book]:
		return r.applySpecification(db, s.Spec)
	default:
		return db
	}
}

// Remove deletes the catalog row. The caller must have verified the
// book is not out on loan; closed loan rows referencing the book stay
// in the ledger.
func (r *BookRepository) Remove(ctx context.Context, id string) error {
	result := r.getDB(ctx).
		Where("id = ?", id).
		Delete(&po.BookPO{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return book.NewBookNotFoundError(id)
	}

	return nil
}

var _ book.Repository = (*BookRepository)(nil)
