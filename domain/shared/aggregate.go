package shared

// AggregateRoot is the entry point of an aggregate. All state changes
// go through the root, which keeps the aggregate's invariants and
// carries a version for optimistic concurrency control.
type AggregateRoot interface {
	ID() string
	Version() int
}
