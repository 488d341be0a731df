package shared

import "context"

// UnitOfWork draws the transaction boundary around a business
// operation. Execute runs fn inside a single store transaction: either
// every write in fn applies, or none do. The transactional handle
// travels in the context so repositories pick it up transparently, and
// it is released on every exit path.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
}
