package mysql

import (
	"context"
	"errors"
	"strings"

	"biblio/domain/member"
	"biblio/infrastructure/persistence"
	"biblio/infrastructure/persistence/mysql/po"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// MemberRepository is the GORM implementation of the member store.
type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// getDB returns the transaction from context if available, otherwise
// the default db.
func (r *MemberRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// isDuplicateKeyError recognizes unique constraint violations from
// both GORM's translated error and the raw MySQL error 1062.
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *gomysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return strings.Contains(err.Error(), "Duplicate entry")
}

// duplicateMemberError maps a unique violation onto the right domain
// error by inspecting the offended index.
func duplicateMemberError(err error, memberPO *po.MemberPO) error {
	if strings.Contains(err.Error(), "national_id") {
		return member.NewNationalIDExistsError(memberPO.NationalID)
	}
	return member.NewEmailExistsError(memberPO.Email)
}

func (r *MemberRepository) Save(ctx context.Context, m *member.Member) error {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return r.saveWithTx(tx, m)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveWithTx(tx, m)
	})
}

func (r *MemberRepository) saveWithTx(tx *gorm.DB, m *member.Member) error {
	memberPO := po.FromMemberDomain(m)

	if m.IsNew() {
		if err := tx.Create(memberPO).Error; err != nil {
			if isDuplicateKeyError(err) {
				return duplicateMemberError(err, memberPO)
			}
			return err
		}
	} else {
		expectedVersion := m.Version()

		// Strict optimistic lock: the aggregate's current version is
		// part of the update condition, so a concurrent write cannot
		// be silently overwritten.
		result := tx.Model(&po.MemberPO{}).
			Where("id = ? AND version = ?", m.ID(), expectedVersion).
			Updates(map[string]interface{}{
				"name":       memberPO.Name,
				"email":      memberPO.Email,
				"phone":      memberPO.Phone,
				"version":    expectedVersion + 1,
				"updated_at": memberPO.UpdatedAt,
			})

		if result.Error != nil {
			if isDuplicateKeyError(result.Error) {
				return duplicateMemberError(result.Error, memberPO)
			}
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&po.MemberPO{}).Where("id = ?", m.ID()).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return member.NewMemberNotFoundError(m.ID())
			}
			return member.NewConcurrentModificationError(m.ID())
		}

		m.IncrementVersionForSave()
	}
	m.ClearNewFlag()
	return nil
}

func (r *MemberRepository) FindByID(ctx context.Context, id string) (*member.Member, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var memberPO po.MemberPO

	result := r.getDB(ctx).First(&memberPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, member.NewMemberNotFoundError(id)
		}
		return nil, result.Error
	}

	return memberPO.ToDomain(), nil
}

func (r *MemberRepository) FindByNationalID(ctx context.Context, nationalID string) (*member.Member, error) {
	return r.findOne(ctx, "national_id = ?", nationalID)
}

func (r *MemberRepository) FindByEmail(ctx context.Context, email string) (*member.Member, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *MemberRepository) findOne(ctx context.Context, query string, arg string) (*member.Member, error) {
	var memberPO po.MemberPO

	result := r.getDB(ctx).Where(query, arg).First(&memberPO)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return memberPO.ToDomain(), nil
}

var _ member.Repository = (*MemberRepository)(nil)
