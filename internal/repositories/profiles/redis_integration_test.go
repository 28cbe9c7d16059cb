package profiles

import (
	"context"
	"testing"

	dnderr "github.com/KirkDiggler/damage-resolver/internal/errors"
	"github.com/KirkDiggler/damage-resolver/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisRepository_Integration(t *testing.T) {
	client := testutils.CreateTestRedisClient(t)
	repo := NewRedis(client, "it-profile")
	ctx := context.Background()

	original := skeletonProfile(t)
	require.NoError(t, repo.Create(ctx, original))
	assert.True(t, dnderr.IsAlreadyExists(repo.Create(ctx, skeletonProfile(t))))

	got, err := repo.Get(ctx, original.ID)
	require.NoError(t, err)
	assert.Equal(t, ToData(original), ToData(got))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, original.ID))
	_, err = repo.Get(ctx, original.ID)
	assert.True(t, dnderr.IsNotFound(err))
}
