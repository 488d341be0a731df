package memory

import (
	"context"
	"sync"

	"biblio/domain/loan"
	"biblio/domain/shared"
)

// LoanRepository is the in-memory loan ledger. Insertion order is kept
// so history and report listings come out oldest first, like the SQL
// implementation's created_at ordering.
type LoanRepository struct {
	mu      sync.RWMutex
	records map[string]loan.ReconstructionDTO
	order   []string

	books *BookRepository
}

func NewLoanRepository(books *BookRepository) *LoanRepository {
	return &LoanRepository{
		records: make(map[string]loan.ReconstructionDTO),
		books:   books,
	}
}

func loanToDTO(l *loan.Loan) loan.ReconstructionDTO {
	return loan.ReconstructionDTO{
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

func (r *LoanRepository) Save(_ context.Context, l *loan.Loan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	dto := loanToDTO(l)

	if l.IsNew() {
		r.records[dto.ID] = dto
		r.order = append(r.order, dto.ID)
		l.ClearNewFlag()
		return nil
	}

	stored, ok := r.records[dto.ID]
	if !ok || stored.Version != dto.Version {
		return loan.NewLoanNotFoundError(dto.ID)
	}

	dto.Version++
	r.records[dto.ID] = dto
	l.IncrementVersionForSave()
	return nil
}

func (r *LoanRepository) FindByID(ctx context.Context, id string) (*loan.Loan, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	dto, ok := r.records[id]
	if !ok {
		return nil, loan.NewLoanNotFoundError(id)
	}
	return loan.RebuildFromDTO(dto), nil
}

func (r *LoanRepository) FindOpen(_ context.Context, memberID, bookID string) (*loan.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		dto := r.records[id]
		if dto.MemberID == memberID && dto.BookID == bookID && dto.ReturnedAt == nil {
			return loan.RebuildFromDTO(dto), nil
		}
	}
	return nil, nil
}

func (r *LoanRepository) FindBySpecification(ctx context.Context, spec shared.Specification[*loan.Loan]) ([]*loan.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	loans := make([]*loan.Loan, 0)
	for _, id := range r.order {
		l := loan.RebuildFromDTO(r.records[id])
		if spec == nil || spec.IsSatisfiedBy(ctx, l) {
			loans = append(loans, l)
		}
	}
	return loans, nil
}

func (r *LoanRepository) HistoryByMember(_ context.Context, memberID string) ([]loan.HistoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]loan.HistoryEntry, 0)
	for _, id := range r.order {
		dto := r.records[id]
		if dto.MemberID != memberID {
			continue
		}
		entries = append(entries, loan.HistoryEntry{
			BookTitle:  r.books.title(dto.BookID),
			IssuedAt:   dto.IssuedAt,
			ReturnedAt: dto.ReturnedAt,
		})
	}
	return entries, nil
}

var _ loan.Repository = (*LoanRepository)(nil)
