// Package member holds the member aggregate: a registered reader who
// can borrow books. National identifier and email are unique across
// all members.
package member

import (
	"fmt"
	"time"

	"biblio/domain/shared"

	"github.com/google/uuid"
)

// Member is the aggregate root for a registered library member.
// Fields are private; state changes go through behavior methods which
// maintain the optimistic-lock version.
type Member struct {
	id         string
	name       string
	nationalID NationalID
	email      Email
	phone      string
	version    int
	createdAt  time.Time
	updatedAt  time.Time

	isNew bool
}

// NewMember creates a member, validating every identifier format up
// front. Uniqueness of national id and email is the repository's
// concern, not the entity's.
func NewMember(name, nationalID, email, phone string) (*Member, error) {
	if name == "" {
		return nil, NewInvalidNameError()
	}
	if phone == "" {
		return nil, NewInvalidPhoneError()
	}

	nationalIDVO, err := NewNationalID(nationalID)
	if err != nil {
		return nil, err
	}

	emailVO, err := NewEmail(email)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate member ID: %w", err)
	}

	now := time.Now()
	return &Member{
		id:         id.String(),
		name:       name,
		nationalID: *nationalIDVO,
		email:      *emailVO,
		phone:      phone,
		version:    0,
		createdAt:  now,
		updatedAt:  now,
		isNew:      true,
	}, nil
}

// Patch describes a partial update. A nil field is absent and left
// untouched; a present field is applied and validated, so an explicit
// empty string is rejected rather than silently skipped.
type Patch struct {
	Name  *string
	Email *string
	Phone *string
}

// IsEmpty reports whether the patch carries no fields at all.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil
}

// Apply updates the member with the present patch fields. The national
// identifier is immutable after registration.
func (m *Member) Apply(p Patch) error {
	if p.Name != nil {
		if *p.Name == "" {
			return NewInvalidNameError()
		}
		m.name = *p.Name
	}
	if p.Email != nil {
		emailVO, err := NewEmail(*p.Email)
		if err != nil {
			return err
		}
		m.email = *emailVO
	}
	if p.Phone != nil {
		if *p.Phone == "" {
			return NewInvalidPhoneError()
		}
		m.phone = *p.Phone
	}

	m.updatedAt = time.Now()
	return nil
}

func (m *Member) ID() string            { return m.id }
func (m *Member) Name() string          { return m.name }
func (m *Member) NationalID() NationalID { return m.nationalID }
func (m *Member) Email() Email          { return m.email }
func (m *Member) Phone() string         { return m.phone }
func (m *Member) Version() int          { return m.version }
func (m *Member) CreatedAt() time.Time  { return m.createdAt }
func (m *Member) UpdatedAt() time.Time  { return m.updatedAt }

// IsNew reports whether the aggregate was created in this process and
// has never been persisted.
func (m *Member) IsNew() bool { return m.isNew }

// ClearNewFlag marks the aggregate as persisted. Repository use only.
func (m *Member) ClearNewFlag() { m.isNew = false }

// IncrementVersionForSave bumps the version after a successful
// version-guarded update. Repository use only.
func (m *Member) IncrementVersionForSave() { m.version++ }

// ReconstructionDTO rebuilds a member from persisted state. Repository
// use only; never call it from the application layer.
type ReconstructionDTO struct {
	ID         string
	Name       string
	NationalID string
	Email      string
	Phone      string
	Version    int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RebuildFromDTO reconstructs the aggregate from a DTO, bypassing
// creation-time validation since the stored state was validated when
// it was written.
func RebuildFromDTO(dto ReconstructionDTO) *Member {
	return &Member{
		id:         dto.ID,
		name:       dto.Name,
		nationalID: NationalID{value: dto.NationalID},
		email:      Email{value: dto.Email},
		phone:      dto.Phone,
		version:    dto.Version,
		createdAt:  dto.CreatedAt,
		updatedAt:  dto.UpdatedAt,
	}
}

var _ shared.AggregateRoot = (*Member)(nil)
