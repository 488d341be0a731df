package member

import "context"

// Repository persists the member aggregate.
//
// Save creates when the aggregate is new and otherwise performs a
// version-guarded update. FindByNationalID and FindByEmail back the
// uniqueness constraints and return (nil, nil) when no member matches.
type Repository interface {
	Save(ctx context.Context, m *Member) error
	FindByID(ctx context.Context, id string) (*Member, error)
	FindByNationalID(ctx context.Context, nationalID string) (*Member, error)
	FindByEmail(ctx context.Context, email string) (*Member, error)
}
