package mysql

import (
	"context"
	"errors"

	"biblio/domain/loan"
	"biblio/domain/shared"
	"biblio/infrastructure/persistence"
	"biblio/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// LoanRepository is the GORM implementation of the loan ledger.
type LoanRepository struct {
	db *gorm.DB
}

func NewLoanRepository(db *gorm.DB) *LoanRepository {
	return &LoanRepository{db: db}
}

func (r *LoanRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *LoanRepository) Save(ctx context.Context, l *loan.Loan) error {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return r.saveWithTx(tx, l)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveWithTx(tx, l)
	})
}

func (r *LoanRepository) saveWithTx(tx *gorm.DB, l *loan.Loan) error {
	loanPO := po.FromLoanDomain(l)

	if l.IsNew() {
		if err := tx.Create(loanPO).Error; err != nil {
			return err
		}
	} else {
		expectedVersion := l.Version()

		// Close and extend both come through here; the version guard
		// prevents a renewal and a return racing each other from both
		// applying.
		result := tx.Model(&po.LoanPO{}).
			Where("id = ? AND version = ?", l.ID(), expectedVersion).
			Updates(map[string]interface{}{
				"due_at":      loanPO.DueAt,
				"returned_at": loanPO.ReturnedAt,
				"version":     expectedVersion + 1,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return loan.NewLoanNotFoundError(l.ID())
		}

		l.IncrementVersionForSave()
	}
	l.ClearNewFlag()
	return nil
}

func (r *LoanRepository) FindByID(ctx context.Context, id string) (*loan.Loan, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var loanPO po.LoanPO

	result := r.getDB(ctx).First(&loanPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, loan.NewLoanNotFoundError(id)
		}
		return nil, result.Error
	}

	return loanPO.ToDomain(), nil
}

// FindOpen returns the open loan for exactly this member and book, or
// (nil, nil) when the pair has no open loan.
func (r *LoanRepository) FindOpen(ctx context.Context, memberID, bookID string) (*loan.Loan, error) {
	var loanPO po.LoanPO

	result := r.getDB(ctx).
		Where("member_id = ? AND book_id = ? AND returned_at IS NULL", memberID, bookID).
		First(&loanPO)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return loanPO.ToDomain(), nil
}

func (r *LoanRepository) FindBySpecification(ctx context.Context, spec shared.Specification[*loan.Loan]) ([]*loan.Loan, error) {
	db := r.applySpecification(r.getDB(ctx), spec)
	if db.Error != nil {
		return nil, db.Error
	}

	var loanPOs []po.LoanPO
	if err := db.Order("created_at ASC").Find(&loanPOs).Error; err != nil {
		return nil, err
	}

	loans := make([]*loan.Loan, len(loanPOs))
	for i, loanPO := range loanPOs {
		loans[i] = loanPO.ToDomain()
	}
	return loans, nil
}

func (r *LoanRepository) applySpecification(db *gorm.DB, spec shared.Specification[*loan.Loan]) *gorm.DB {
	if spec == nil {
		return db
	}
	switch s := spec.(type) {
	case shared.AndSpecification[*loan.Loan]:
		return r.applySpecification(r.applySpecification(db, s.Left), s.Right)
	case shared.NotSpecification[*loan.Loan]:
		return r.applyNotSpecification(db, s.Spec)
	case loan.OpenSpecification:
		return db.Where("returned_at IS NULL")
	case loan.DueBeforeSpecification:
		return db.Where("due_at < ?", s.Time)
	case loan.ByMemberSpecification:
		return db.Where("member_id = ?", s.MemberID)
	default:
		return db
	}
}

func (r *LoanRepository) applyNotSpecification(db *gorm.DB, spec shared.Specification[*loan.Loan]) *gorm.DB {
	switch s := spec.(type) {
	case loan.OpenSpecification:
		return db.Where("returned_at IS NOT NULL")
	case loan.DueBeforeSpecification:
		return db.Where("due_at >= ?", s.Time)
	case loan.ByMemberSpecification:
		return db.Where("member_id != ?", s.MemberID)
	case shared.NotSpecification[*loan.Loan]:
		return r.applySpecification(db, s.Spec)
	default:
		return db
	}
}

// HistoryByMember lists a member's loans oldest first, joined with the
// catalog for the title. The join is LEFT so ledger rows survive a
// book's removal from the catalog.
func (r *LoanRepository) HistoryByMember(ctx context.Context, memberID string) ([]loan.HistoryEntry, error) {
	var entries []loan.HistoryEntry

	err := r.getDB(ctx).
		Table("loans").
		Select("COALESCE(books.title, '') AS book_title, loans.issued_at, loans.returned_at").
		Joins("LEFT JOIN books ON books.id = loans.book_id").
		Where("loans.member_id = ?", memberID).
		Order("loans.created_at ASC").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}

var _ loan.Repository = (*LoanRepository)(nil)
