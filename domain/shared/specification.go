package shared

import "context"

// Specification encapsulates a reusable query predicate over a domain
// type. Repositories translate specifications into store-level filters;
// the in-memory implementations evaluate IsSatisfiedBy directly.
type Specification[T any] interface {
	IsSatisfiedBy(ctx context.Context, entity T) bool
}

// AndSpecification is the logical AND of two specifications.
type AndSpecification[T any] struct {
	Left  Specification[T]
	Right Specification[T]
}

func (s AndSpecification[T]) IsSatisfiedBy(ctx context.Context, entity T) bool {
	return s.Left.IsSatisfiedBy(ctx, entity) && s.Right.IsSatisfiedBy(ctx, entity)
}

// And combines two specifications with logical AND.
func And[T any](left, right Specification[T]) Specification[T] {
	return AndSpecification[T]{Left: left, Right: right}
}

// NotSpecification negates a specification.
type NotSpecification[T any] struct {
	Spec Specification[T]
}

func (s NotSpecification[T]) IsSatisfiedBy(ctx context.Context, entity T) bool {
	return !s.Spec.IsSatisfiedBy(ctx, entity)
}

// Not negates a specification.
func Not[T any](spec Specification[T]) Specification[T] {
	return NotSpecification[T]{Spec: spec}
}
