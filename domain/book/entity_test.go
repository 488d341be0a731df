package book

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBook(t *testing.T) {
	b, err := NewBook("The Go Programming Language", "Alan Donovan", "1234567890123", "Programming")
	require.NoError(t, err)

	assert.NotEmpty(t, b.ID())
	assert.Equal(t, StatusAvailable, b.Status(), "new books start available")
	assert.True(t, b.IsAvailable())
	assert.Equal(t, 0, b.Version())
	assert.True(t, b.IsNew())
}

func TestNewBookValidation(t *testing.T) {
	testCases := []struct {
		name          string
		title         string
		author        string
		catalogNumber string
		category      string
	}{
		{"empty title", "", "A", "1234567890123", "C"},
		{"empty author", "T", "", "1234567890123", "C"},
		{"empty category", "T", "A", "1234567890123", ""},
		{"short catalog number", "T", "A", "123456789012", "C"},
		{"non-numeric catalog number", "T", "A", "123456789012x", "C"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewBook(tc.title, tc.author, tc.catalogNumber, tc.category)
			require.Error(t, err)
		})
	}

	_, err := NewBook("T", "A", "123456789012", "C")
	assert.True(t, errors.Is(err, ErrInvalidCatalogNumber))
}

func TestBookStatusTransitions(t *testing.T) {
	b, err := NewBook("T", "A", "1234567890123", "C")
	require.NoError(t, err)

	require.NoError(t, b.MarkLoaned())
	assert.Equal(t, StatusLoaned, b.Status())
	assert.False(t, b.IsAvailable())

	// Issuing a loaned book must fail without changing state.
	err = b.MarkLoaned()
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, StatusLoaned, b.Status())

	require.NoError(t, b.MarkAvailable())
	assert.Equal(t, StatusAvailable, b.Status())

	// Returning an available book must fail too.
	err = b.MarkAvailable()
	assert.ErrorIs(t, err, ErrNotLoaned)
	assert.Equal(t, StatusAvailable, b.Status())
}

func TestStatusIsValid(t *testing.T) {
	assert.True(t, StatusAvailable.IsValid())
	assert.True(t, StatusLoaned.IsValid())
	assert.False(t, Status("LOST").IsValid())
	assert.False(t, Status("").IsValid())
}
