package loan

import (
	"context"
	"time"
)

// OpenSpecification matches loans whose book has not come back.
type OpenSpecification struct{}

func (OpenSpecification) IsSatisfiedBy(_ context.Context, l *Loan) bool {
	return l.IsOpen()
}

// DueBeforeSpecification matches loans due strictly before Time.
type DueBeforeSpecification struct {
	Time time.Time
}

func (s DueBeforeSpecification) IsSatisfiedBy(_ context.Context, l *Loan) bool {
	return l.DueAt().Before(s.Time)
}

// ByMemberSpecification matches loans held by a member.
type ByMemberSpecification struct {
	MemberID string
}

func (s ByMemberSpecification) IsSatisfiedBy(_ context.Context, l *Loan) bool {
	return l.MemberID() == s.MemberID
}
