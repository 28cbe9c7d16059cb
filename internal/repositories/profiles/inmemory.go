package profiles

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/damage-resolver/internal/domain/damage"
	dnderr "github.com/KirkDiggler/damage-resolver/internal/errors"
	"github.com/KirkDiggler/damage-resolver/internal/uuid"
)

type inMemoryRepository struct {
	mu            sync.RWMutex
	profiles      map[string]*damage.Profile
	uuidGenerator uuid.Generator
}

// NewInMemoryRepository creates a profile repository backed by a map
func NewInMemoryRepository(generator uuid.Generator) Repository {
	if generator == nil {
		generator = uuid.NewGoogleUUIDGenerator()
	}
	return &inMemoryRepository{
		profiles:      make(map[string]*damage.Profile),
		uuidGenerator: generator,
	}
}

// Create stores a copy of the profile
func (r *inMemoryRepository) Create(ctx context.Context, profile *damage.Profile) error {
	if err := validateProfile(profile); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if profile.ID == "" {
		profile.ID = r.uuidGenerator.New()
	}
	if _, exists := r.profiles[profile.ID]; exists {
		return dnderr.AlreadyExistsf("profile with ID '%s' already exists", profile.ID).
			WithMeta("profile_id", profile.ID)
	}

	r.profiles[profile.ID] = profile.Clone()
	return nil
}

// Get returns a copy of the stored profile
func (r *inMemoryRepository) Get(ctx context.Context, id string) (*damage.Profile, error) {
	if id == "" {
		return nil, dnderr.InvalidArgument("profile ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, exists := r.profiles[id]
	if !exists {
		return nil, dnderr.NotFoundf("profile with ID '%s' not found", id).
			WithMeta("profile_id", id)
	}
	return profile.Clone(), nil
}

// List returns copies of every profile ordered by ID
func (r *inMemoryRepository) List(ctx context.Context) ([]*damage.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*damage.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Delete removes a profile
func (r *inMemoryRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return dnderr.InvalidArgument("profile ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.profiles[id]; !exists {
		return dnderr.NotFoundf("profile with ID '%s' not found", id).
			WithMeta("profile_id", id)
	}
	delete(r.profiles, id)
	return nil
}

func validateProfile(profile *damage.Profile) error {
	if profile == nil {
		return dnderr.InvalidArgument("profile cannot be nil")
	}
	if profile.Name == "" {
		return dnderr.InvalidArgument("profile name is required")
	}
	if _, err := damage.ParseVitality(string(profile.Vitality)); err != nil {
		return err
	}
	if _, err := damage.ParseAlignment(string(profile.Alignment)); err != nil {
		return err
	}
	return nil
}
