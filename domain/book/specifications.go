package book

import "context"

// ByStatusSpecification matches books in a given availability state.
type ByStatusSpecification struct {
	Status Status
}

func (s ByStatusSpecification) IsSatisfiedBy(_ context.Context, b *Book) bool {
	return b.Status() == s.Status
}
