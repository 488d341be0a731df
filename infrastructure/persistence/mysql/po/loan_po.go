package po

import (
	"time"

	"biblio/domain/loan"
)

// LoanPO rows are never deleted; a closed loan keeps its returned_at
// date forever. The composite index backs the open-loan lookup
// (member_id, book_id, returned_at IS NULL).
type LoanPO struct {
	ID         string     `gorm:"primaryKey;size:64"`
	MemberID   string     `gorm:"column:member_id;size:64;not null;index:idx_loans_open,priority:1"`
	BookID     string     `gorm:"column:book_id;size:64;not null;index:idx_loans_open,priority:2;index"`
	IssuedAt   time.Time  `gorm:"not null"`
	DueAt      time.Time  `gorm:"not null;index"`
	ReturnedAt *time.Time `gorm:"index:idx_loans_open,priority:3"`
	Version    int        `gorm:"default:0"`
	CreatedAt  time.Time  `gorm:"autoCreateTime"`
}

func (LoanPO) TableName() string {
	return "loans"
}

func FromLoanDomain(l *loan.Loan) *LoanPO {
	return &LoanPO{
		ID:         l.ID(),
		MemberID:   l.MemberID(),
		BookID:     l.BookID(),
		IssuedAt:   l.IssuedAt(),
		DueAt:      l.DueAt(),
		ReturnedAt: l.ReturnedAt(),
		Version:    l.Version(),
		CreatedAt:  l.CreatedAt(),
	}
}

func (po *LoanPO) ToDomain() *loan.Loan {
	return loan.RebuildFromDTO(loan.ReconstructionDTO{
		ID:         po.ID,
		MemberID:   po.MemberID,
		BookID:     po.BookID,
		IssuedAt:   po.IssuedAt,
		DueAt:      po.DueAt,
		ReturnedAt: po.ReturnedAt,
		Version:    po.Version,
		CreatedAt:  po.CreatedAt,
	})
}
