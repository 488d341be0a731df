package loan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewLoan(t *testing.T) {
	issuedAt := date(2026, time.March, 1)

	l, err := NewLoan("member-1", "book-1", issuedAt, 14)
	require.NoError(t, err)

	assert.NotEmpty(t, l.ID())
	assert.Equal(t, issuedAt, l.IssuedAt())
	assert.Equal(t, date(2026, time.March, 15), l.DueAt(), "due date is issue date plus the period")
	assert.Nil(t, l.ReturnedAt())
	assert.True(t, l.IsOpen())
	assert.True(t, l.IsNew())
}

func TestNewLoanValidation(t *testing.T) {
	issuedAt := date(2026, time.March, 1)

	_, err := NewLoan("", "book-1", issuedAt, 14)
	assert.ErrorIs(t, err, ErrMissingIdentifiers)

	_, err = NewLoan("member-1", "", issuedAt, 14)
	assert.ErrorIs(t, err, ErrMissingIdentifiers)

	_, err = NewLoan("member-1", "book-1", issuedAt, 0)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestLoanClose(t *testing.T) {
	l, err := NewLoan("member-1", "book-1", date(2026, time.March, 1), 14)
	require.NoError(t, err)

	returnedAt := date(2026, time.March, 10)
	require.NoError(t, l.Close(returnedAt))

	assert.False(t, l.IsOpen())
	require.NotNil(t, l.ReturnedAt())
	assert.Equal(t, returnedAt, *l.ReturnedAt())

	// A closed loan stays closed.
	assert.ErrorIs(t, l.Close(returnedAt), ErrAlreadyClosed)
}

func TestLoanExtend(t *testing.T) {
	l, err := NewLoan("member-1", "book-1", date(2026, time.March, 1), 14)
	require.NoError(t, err)

	require.NoError(t, l.Extend(7))
	assert.Equal(t, date(2026, time.March, 22), l.DueAt(), "extension counts from the current due date")

	// Renewal is unlimited while open.
	require.NoError(t, l.Extend(7))
	assert.Equal(t, date(2026, time.March, 29), l.DueAt())
}

func TestLoanExtendClosedFails(t *testing.T) {
	l, err := NewLoan("member-1", "book-1", date(2026, time.March, 1), 14)
	require.NoError(t, err)
	require.NoError(t, l.Close(date(2026, time.March, 5)))

	dueBefore := l.DueAt()
	assert.ErrorIs(t, l.Extend(7), ErrAlreadyClosed)
	assert.Equal(t, dueBefore, l.DueAt())
}

func TestReturnedAtIsACopy(t *testing.T) {
	l, err := NewLoan("member-1", "book-1", date(2026, time.March, 1), 14)
	require.NoError(t, err)
	require.NoError(t, l.Close(date(2026, time.March, 5)))

	got := l.ReturnedAt()
	*got = date(2030, time.January, 1)
	assert.Equal(t, date(2026, time.March, 5), *l.ReturnedAt())
}
