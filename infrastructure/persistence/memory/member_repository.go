// Package memory provides map-backed repositories for development and
// tests. Behavior mirrors the MySQL implementations: the same domain
// errors, the same (nil, nil) lookup-miss convention and the same
// optimistic-lock semantics.
package memory

import (
	"context"
	"sync"

	"biblio/domain/member"
)

// MemberRepository is the in-memory member store.
type MemberRepository struct {
	mu      sync.RWMutex
	records map[string]member.ReconstructionDTO
}

func NewMemberRepository() *MemberRepository {
	return &MemberRepository{records: make(map[string]member.ReconstructionDTO)}
}

func memberToDTO(m *member.Member) member.ReconstructionDTO {
	return member.ReconstructionDTO{
		ID:         m.ID(),
		Name:       m.Name(),
		NationalID: m.NationalID().Value(),
		Email:      m.Email().Value(),
		Phone:      m.Phone(),
		Version:    m.Version(),
		CreatedAt:  m.CreatedAt(),
		UpdatedAt:  m.UpdatedAt(),
	}
}

func (r *MemberRepository) Save(_ context.Context, m *member.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	dto := memberToDTO(m)

	if m.IsNew() {
		for _, existing := range r.records {
			if existing.NationalID == dto.NationalID {
				return member.NewNationalIDExistsError(dto.NationalID)
			}
			if existing.Email == dto.Email {
				return member.NewEmailExistsError(dto.Email)
			}
		}
		r.records[dto.ID] = dto
		m.ClearNewFlag()
		return nil
	}

	stored, ok := r.records[dto.ID]
	if !ok {
		return member.NewMemberNotFoundError(dto.ID)
	}
	if stored.Version != dto.Version {
		return member.NewConcurrentModificationError(dto.ID)
	}
	for id, existing := range r.records {
		if id != dto.ID && existing.Email == dto.Email {
			return member.NewEmailExistsError(dto.Email)
		}
	}

	dto.Version++
	r.records[dto.ID] = dto
	m.IncrementVersionForSave()
	return nil
}

func (r *MemberRepository) FindByID(ctx context.Context, id string) (*member.Member, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	dto, ok := r.records[id]
	if !ok {
		return nil, member.NewMemberNotFoundError(id)
	}
	return member.RebuildFromDTO(dto), nil
}

func (r *MemberRepository) FindByNationalID(_ context.Context, nationalID string) (*member.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, dto := range r.records {
		if dto.NationalID == nationalID {
			return member.RebuildFromDTO(dto), nil
		}
	}
	return nil, nil
}

func (r *MemberRepository) FindByEmail(_ context.Context, email string) (*member.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, dto := range r.records {
		if dto.Email == email {
			return member.RebuildFromDTO(dto), nil
		}
	}
	return nil, nil
}

var _ member.Repository = (*MemberRepository)(nil)
