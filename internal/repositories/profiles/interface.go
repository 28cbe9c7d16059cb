package profiles

//go:generate mockgen -destination=mock/mock.go -package=mockprofiles -source=interface.go

import (
	"context"

	"github.com/KirkDiggler/damage-resolver/internal/domain/damage"
)

// Repository stores named defense profiles
type Repository interface {
	// Create stores a new profile. An empty ID is filled in.
	Create(ctx context.Context, profile *damage.Profile) error

	// Get retrieves a profile by ID
	Get(ctx context.Context, id string) (*damage.Profile, error)

	// List returns every stored profile ordered by ID
	List(ctx context.Context) ([]*damage.Profile, error)

	// Delete removes a profile
	Delete(ctx context.Context, id string) error
}
