package profiles

import (
	"github.com/KirkDiggler/damage-resolver/internal/uuid"
	"github.com/redis/go-redis/v9"
)

// NewRedis creates a Redis-backed profile repository with default settings
func NewRedis(client redis.UniversalClient, prefix string) Repository {
	return NewRedisRepository(&RedisRepoConfig{
		Client:        client,
		UUIDGenerator: uuid.NewGoogleUUIDGenerator(),
		Prefix:        prefix,
	})
}
