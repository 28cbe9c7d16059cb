package resolver

//go:generate mockgen -destination=mock/mock_service.go -package=mockresolver -source=service.go

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/damage-resolver/internal/domain/damage"
	dnderr "github.com/KirkDiggler/damage-resolver/internal/errors"
	"github.com/KirkDiggler/damage-resolver/internal/repositories/profiles"
	"github.com/KirkDiggler/damage-resolver/internal/uuid"
)

// Service resolves attacks against defense profiles
type Service interface {
	// Resolve validates one attack, loads its target profile and returns the
	// damage dealt
	Resolve(ctx context.Context, input *ResolveInput) (*ResolveOutput, error)

	// ResolveBatch resolves independent attacks concurrently. Outputs keep
	// the order of the inputs; the first failure cancels the rest.
	ResolveBatch(ctx context.Context, inputs []*ResolveInput) ([]*ResolveOutput, error)
}

// DamageInput is one damage type of an attack as received from a caller
type DamageInput struct {
	Type              string   `json:"type" yaml:"type"`
	Normal            int      `json:"normal,omitempty" yaml:"normal,omitempty"`
	Precision         int      `json:"precision,omitempty" yaml:"precision,omitempty"`
	Critical          int      `json:"critical,omitempty" yaml:"critical,omitempty"`
	CriticalPrecision int      `json:"critical_precision,omitempty" yaml:"critical_precision,omitempty"`
	Splash            int      `json:"splash,omitempty" yaml:"splash,omitempty"`
	Traits            []string `json:"traits,omitempty" yaml:"traits,omitempty"`
}

// ResolveInput is one attack against one target. Exactly one of ProfileID
// and Profile must be set.
type ResolveInput struct {
	AttackID  string
	ProfileID string
	Profile   *damage.Profile
	Damage    []DamageInput
}

// ResolveOutput is the damage dealt by one attack
type ResolveOutput struct {
	AttackID  string
	ProfileID string
	Total     int
	PerType   map[damage.DamageType]int
	Applied   []damage.Application
}

// ServiceConfig holds the dependencies of the service
type ServiceConfig struct {
	Repository    profiles.Repository
	UUIDGenerator uuid.Generator

	// BatchLimit caps concurrent resolutions in ResolveBatch, 4 when zero
	BatchLimit int
}

type service struct {
	repository    profiles.Repository
	uuidGenerator uuid.Generator
	batchLimit    int
}

// NewService creates a new resolver service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("ServiceConfig cannot be nil")
	}
	if cfg.Repository == nil {
		panic("profile repository is required")
	}

	generator := cfg.UUIDGenerator
	if generator == nil {
		generator = uuid.NewGoogleUUIDGenerator()
	}
	limit := cfg.BatchLimit
	if limit < 1 {
		limit = 4
	}

	return &service{
		repository:    cfg.Repository,
		uuidGenerator: generator,
		batchLimit:    limit,
	}
}

func (s *service) Resolve(ctx context.Context, input *ResolveInput) (*ResolveOutput, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}
	if (input.ProfileID == "") == (input.Profile == nil) {
		return nil, dnderr.InvalidArgument("exactly one of profile ID and inline profile is required")
	}

	pool, err := BuildPool(input.Damage)
	if err != nil {
		return nil, err
	}

	profile := input.Profile
	if profile == nil {
		profile, err = s.repository.Get(ctx, input.ProfileID)
		if err != nil {
			return nil, dnderr.Wrapf(err, "failed to load profile %s", input.ProfileID)
		}
	}

	attackID := input.AttackID
	if attackID == "" {
		attackID = s.uuidGenerator.New()
	}

	res := damage.Resolve(profile.Input(pool))

	log.Printf("Resolved attack %s against %s (%s): %d raw -> %d dealt, %d modifiers applied",
		attackID, profile.Name, profile.ID, pool.Sum(), res.Total, len(res.Applied))

	return &ResolveOutput{
		AttackID:  attackID,
		ProfileID: profile.ID,
		Total:     res.Total,
		PerType:   res.PerType,
		Applied:   res.Applied,
	}, nil
}

func (s *service) ResolveBatch(ctx context.Context, inputs []*ResolveInput) ([]*ResolveOutput, error) {
	outputs := make([]*ResolveOutput, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchLimit)

	for i, input := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := s.Resolve(ctx, input)
			if err != nil {
				return dnderr.Wrapf(err, "attack %d", i).WithMeta("index", i)
			}
			outputs[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}

// BuildPool parses raw damage entries into a pool. Unknown damage types and
// traits, negative components and repeated damage types are rejected.
func BuildPool(entries []DamageInput) (damage.Pool, error) {
	values := make(map[damage.DamageType]damage.Values, len(entries))
	for i, entry := range entries {
		dt, err := damage.ParseDamageType(entry.Type)
		if err != nil {
			return damage.Pool{}, dnderr.Wrapf(err, "damage entry %d", i)
		}
		if _, dup := values[dt]; dup {
			return damage.Pool{}, dnderr.InvalidArgumentf("damage type %s appears more than once", dt).
				WithMeta("damage_type", string(dt))
		}

		traits := make([]damage.AttackTrait, 0, len(entry.Traits))
		for _, raw := range entry.Traits {
			t, err := damage.ParseAttackTrait(raw)
			if err != nil {
				return damage.Pool{}, dnderr.Wrapf(err, "damage entry %d", i)
			}
			traits = append(traits, t)
		}

		v, err := damage.NewValues(damage.Components{
			Normal:            entry.Normal,
			Precision:         entry.Precision,
			Critical:          entry.Critical,
			CriticalPrecision: entry.CriticalPrecision,
			Splash:            entry.Splash,
		}, traits...)
		if err != nil {
			return damage.Pool{}, dnderr.Wrapf(err, "damage entry %d", i)
		}
		values[dt] = v
	}
	return damage.NewPool(values), nil
}
