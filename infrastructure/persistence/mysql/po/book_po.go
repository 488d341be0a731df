package po

import (
	"time"

	"biblio/domain/book"
)

type BookPO struct {
	ID            string    `gorm:"primaryKey;size:64"`
	Title         string    `gorm:"size:255;not null"`
	Author        string    `gorm:"size:255;not null"`
	CatalogNumber string    `gorm:"column:catalog_number;size:13;uniqueIndex;not null"`
	Category      string    `gorm:"size:100;not null"`
	Status        string    `gorm:"size:16;not null;index"`
	Version       int       `gorm:"default:0"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (BookPO) TableName() string {
	return "books"
}

func FromBookDomain(b *book.Book) *BookPO {
	return &BookPO{
		ID:            b.ID(),
		Title:         b.Title(),
		Author:        b.Author(),
		CatalogNumber: b.CatalogNumber().Value(),
		Category:      b.Category(),
		Status:        b.Status().String(),
		Version:       b.Version(),
		CreatedAt:     b.CreatedAt(),
		UpdatedAt:     b.UpdatedAt(),
	}
}

func (po *BookPO) ToDomain() *book.Book {
	return book.RebuildFromDTO(book.ReconstructionDTO{
		ID:            po.ID,
		Title:         po.Title,
		Author:        po.Author,
		CatalogNumber: po.CatalogNumber,
		Category:      po.Category,
		Status:        book.Status(po.Status),
		Version:       po.Version,
		CreatedAt:     po.CreatedAt,
		UpdatedAt:     po.UpdatedAt,
	})
}
