package member

import (
	"regexp"
	"strings"
)

var (
	nationalIDRegex = regexp.MustCompile(`^[0-9]{11}$`)
	emailRegex      = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// NationalID is the member's national identifier, an eleven-digit
// string. Immutable value object.
type NationalID struct {
	value string
}

// NewNationalID validates and creates a NationalID.
func NewNationalID(raw string) (*NationalID, error) {
	raw = strings.TrimSpace(raw)
	if !nationalIDRegex.MatchString(raw) {
		return nil, NewInvalidNationalIDError(raw)
	}
	return &NationalID{value: raw}, nil
}

func (n NationalID) Value() string { return n.value }

func (n NationalID) Equals(other NationalID) bool { return n.value == other.value }

func (n NationalID) String() string { return n.value }

// Email is a normalized (lowercased, trimmed) email address.
// Immutable value object.
type Email struct {
	value string
}

// NewEmail validates and creates an Email.
func NewEmail(raw string) (*Email, error) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if !emailRegex.MatchString(raw) {
		return nil, NewInvalidEmailError(raw)
	}
	return &Email{value: raw}, nil
}

func (e Email) Value() string { return e.value }

func (e Email) Equals(other Email) bool { return e.value == other.value }

func (e Email) String() string { return e.value }
