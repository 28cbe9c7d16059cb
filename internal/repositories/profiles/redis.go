package profiles

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"

	"github.com/KirkDiggler/damage-resolver/internal/domain/damage"
	dnderr "github.com/KirkDiggler/damage-resolver/internal/errors"
	"github.com/KirkDiggler/damage-resolver/internal/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisRepoConfig holds the dependencies of the Redis repository
type RedisRepoConfig struct {
	Client        redis.UniversalClient
	UUIDGenerator uuid.Generator

	// Prefix namespaces every key, "profile" when empty
	Prefix string
}

// redisRepo stores each profile as JSON under <prefix>:<id> and keeps the
// set of IDs under <prefix>:index
type redisRepo struct {
	client        redis.UniversalClient
	uuidGenerator uuid.Generator
	prefix        string
}

// NewRedisRepository creates a new Redis-backed profile repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}

	generator := cfg.UUIDGenerator
	if generator == nil {
		generator = uuid.NewGoogleUUIDGenerator()
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "profile"
	}

	return &redisRepo{
		client:        cfg.Client,
		uuidGenerator: generator,
		prefix:        prefix,
	}
}

func (r *redisRepo) key(id string) string {
	return fmt.Sprintf("%s:%s", r.prefix, id)
}

func (r *redisRepo) indexKey() string {
	return fmt.Sprintf("%s:index", r.prefix)
}

// Create stores a new profile
func (r *redisRepo) Create(ctx context.Context, profile *damage.Profile) error {
	if err := validateProfile(profile); err != nil {
		return err
	}
	if profile.ID == "" {
		profile.ID = r.uuidGenerator.New()
	}

	exists, err := r.client.Exists(ctx, r.key(profile.ID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check profile existence: %w", err)
	}
	if exists > 0 {
		return dnderr.AlreadyExistsf("profile with ID '%s' already exists", profile.ID).
			WithMeta("profile_id", profile.ID)
	}

	jsonData, err := json.Marshal(ToData(profile))
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.key(profile.ID), string(jsonData), 0)
	pipe.SAdd(ctx, r.indexKey(), profile.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}

	return nil
}

// Get retrieves a profile by ID
func (r *redisRepo) Get(ctx context.Context, id string) (*damage.Profile, error) {
	if id == "" {
		return nil, dnderr.InvalidArgument("profile ID is required")
	}

	jsonData, err := r.client.Get(ctx, r.key(id)).Result()
	if err == redis.Nil {
		return nil, dnderr.NotFoundf("profile with ID '%s' not found", id).
			WithMeta("profile_id", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return decode(jsonData)
}

// List returns every indexed profile ordered by ID. IDs left in the index
// without a stored profile are skipped.
func (r *redisRepo) List(ctx context.Context) ([]*damage.Profile, error) {
	ids, err := r.client.SMembers(ctx, r.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list profile IDs: %w", err)
	}
	if len(ids) == 0 {
		return []*damage.Profile{}, nil
	}
	sort.Strings(ids)

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.key(id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}

	out := make([]*damage.Profile, 0, len(values))
	for i, v := range values {
		jsonData, ok := v.(string)
		if !ok {
			log.Printf("Profile %s is indexed but missing", ids[i])
			continue
		}
		profile, err := decode(jsonData)
		if err != nil {
			return nil, err
		}
		out = append(out, profile)
	}
	return out, nil
}

// Delete removes a profile and its index entry
func (r *redisRepo) Delete(ctx context.Context, id string) error {
	if id == "" {
		return dnderr.InvalidArgument("profile ID is required")
	}

	exists, err := r.client.Exists(ctx, r.key(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to check profile existence: %w", err)
	}
	if exists == 0 {
		return dnderr.NotFoundf("profile with ID '%s' not found", id).
			WithMeta("profile_id", id)
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.key(id))
	pipe.SRem(ctx, r.indexKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}

func decode(jsonData string) (*damage.Profile, error) {
	var data ProfileData
	if err := json.Unmarshal([]byte(jsonData), &data); err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeInternal, "failed to unmarshal profile")
	}
	profile, err := FromData(data)
	if err != nil {
		return nil, dnderr.Wrap(err, "stored profile is invalid")
	}
	return profile, nil
}
