package uuid

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoogleUUIDGenerator(t *testing.T) {
	gen := NewGoogleUUIDGenerator()

	a, b := gen.New(), gen.New()
	_, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestSequenceGenerator(t *testing.T) {
	gen := NewSequenceGenerator("profile")

	assert.Equal(t, "profile-1", gen.New())
	assert.Equal(t, "profile-2", gen.New())
}
