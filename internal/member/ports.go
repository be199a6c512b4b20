package member

import (
	"context"
)

// Repository defines the contract for member storage.
type Repository interface {
	Create(ctx context.Context, m *Member) error
	GetByID(ctx context.Context, id string) (Member, error)
	List(ctx context.Context, limit, offset int) ([]Member, int, error)
	Update(ctx context.Context, m *Member) error
	SetStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
