package settings

import (
	"context"
)

// Repository defines the contract for policy storage.
type Repository interface {
	Get(ctx context.Context) (Settings, error)
	Update(ctx context.Context, s Settings) error
}
