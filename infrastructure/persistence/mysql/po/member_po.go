// Package po holds the GORM persistence objects. POs are plain
// structs with column mappings; they never leak outside the mysql
// package, and aggregates are rebuilt from them through the domain
// reconstruction DTOs.
package po

import (
	"time"

	"biblio/domain/member"
)

type MemberPO struct {
	ID         string    `gorm:"primaryKey;size:64"`
	Name       string    `gorm:"size:100;not null"`
	NationalID string    `gorm:"column:national_id;size:11;uniqueIndex;not null"`
	Email      string    `gorm:"size:255;uniqueIndex;not null"`
	Phone      string    `gorm:"size:32;not null"`
	Version    int       `gorm:"default:0"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (MemberPO) TableName() string {
	return "members"
}

func FromMemberDomain(m *member.Member) *MemberPO {
	return &MemberPO{
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

func (po *MemberPO) ToDomain() *member.Member {
	return member.RebuildFromDTO(member.ReconstructionDTO{
		ID:         po.ID,
		Name:       po.Name,
		NationalID: po.NationalID,
		Email:      po.Email,
		Phone:      po.Phone,
		Version:    po.Version,
		CreatedAt:  po.CreatedAt,
		UpdatedAt:  po.UpdatedAt,
	})
}
