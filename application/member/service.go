// Package member wires member registration and maintenance use cases.
package member

import (
	"context"
	"time"

	"biblio/domain/loan"
	"biblio/domain/member"
	"biblio/domain/shared"
)

// RegisterRequest carries the data for a new registration.
type RegisterRequest struct {
	Name       string `json:"name" binding:"required"`
	NationalID string `json:"national_id" binding:"required"`
	Email      string `json:"email" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
}

// UpdateRequest is a partial update; absent fields stay untouched.
// The national identifier is immutable and deliberately not here.
type UpdateRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

// Response is the outward view of a member.
type Response struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	NationalID string    `json:"national_id"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// HistoryRow is one borrowing history entry.
type HistoryRow struct {
	BookTitle  string     `json:"book_title"`
	IssuedAt   time.Time  `json:"issued_at"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
}

func toResponse(m *member.Member) *Response {
	return &Response{
		ID:         m.ID(),
		Name:       m.Name(),
		NationalID: m.NationalID().Value(),
		Email:      m.Email().Value(),
		Phone:      m.Phone(),
		CreatedAt:  m.CreatedAt(),
		UpdatedAt:  m.UpdatedAt(),
	}
}

// Service orchestrates member use cases.
type Service struct {
	members member.Repository
	loans   loan.Repository
	uow     shared.UnitOfWork
}

func NewService(members member.Repository, loans loan.Repository, uow shared.UnitOfWork) *Service {
	return &Service{members: members, loans: loans, uow: uow}
}

// Register creates a member. National id and email must be unique; the
// pre-checks give precise errors, and the store's unique indexes close
// the race window behind them.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*Response, error) {
	m, err := member.NewMember(req.Name, req.NationalID, req.Email, req.Phone)
	if err != nil {
		return nil, err
	}

	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		existing, err := s.members.FindByNationalID(ctx, m.NationalID().Value())
		if err != nil {
			return err
		}
		if existing != nil {
			return member.NewNationalIDExistsError(m.NationalID().Value())
		}

		existing, err = s.members.FindByEmail(ctx, m.Email().Value())
		if err != nil {
			return err
		}
		if existing != nil {
			return member.NewEmailExistsError(m.Email().Value())
		}

		return s.members.Save(ctx, m)
	})
	if err != nil {
		return nil, err
	}

	return toResponse(m), nil
}

// Get returns one member by id.
func (s *Service) Get(ctx context.Context, memberID string) (*Response, error) {
	m, err := s.members.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return toResponse(m), nil
}

// Update applies a partial update. An empty request is a no-op that
// returns the current state.
func (s *Service) Update(ctx context.Context, memberID string, req UpdateRequest) (*Response, error) {
	patch := member.Patch{Name: req.Name, Email: req.Email, Phone: req.Phone}

	var m *member.Member
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		m, err = s.members.FindByID(ctx, memberID)
		if err != nil {
			return err
		}

		if patch.IsEmpty() {
			return nil
		}

		if err := m.Apply(patch); err != nil {
			return err
		}

		if patch.Email != nil {
			other, err := s.members.FindByEmail(ctx, m.Email().Value())
			if err != nil {
				return err
			}
			if other != nil && other.ID() != m.ID() {
				return member.NewEmailExistsError(m.Email().Value())
			}
		}

		return s.members.Save(ctx, m)
	})
	if err != nil {
		return nil, err
	}

	return toResponse(m), nil
}

// History lists the member's loans oldest first, open ones included.
func (s *Service) History(ctx context.Context, memberID string) ([]HistoryRow, error) {
	if _, err := s.members.FindByID(ctx, memberID); err != nil {
		return nil, err
	}

	entries, err := s.loans.HistoryByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	rows := make([]HistoryRow, len(entries))
	for i, e := range entries {
		rows[i] = HistoryRow{
			BookTitle:  e.BookTitle,
			IssuedAt:   e.IssuedAt,
			ReturnedAt: e.ReturnedAt,
		}
	}
	return rows, nil
}
