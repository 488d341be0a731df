package book

import (
	"regexp"
	"strings"
)

var catalogNumberRegex = regexp.MustCompile(`^[0-9]{13}$`)

// CatalogNumber is the thirteen-digit catalog identifier of a book.
// Immutable value object, unique across the catalog.
type CatalogNumber struct {
	value string
}

// NewCatalogNumber validates and creates a CatalogNumber.
func NewCatalogNumber(raw string) (*CatalogNumber, error) {
	raw = strings.TrimSpace(raw)
	if !catalogNumberRegex.MatchString(raw) {
		return nil, NewInvalidCatalogNumberError(raw)
	}
	return &CatalogNumber{value: raw}, nil
}

func (c CatalogNumber) Value() string { return c.value }

func (c CatalogNumber) Equals(other CatalogNumber) bool { return c.value == other.value }

func (c CatalogNumber) String() string { return c.value }
