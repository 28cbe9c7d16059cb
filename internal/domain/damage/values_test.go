package damage

import (
	"testing"

	dnderr "github.com/KirkDiggler/damage-resolver/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustValues(t *testing.T, c Components, traits ...AttackTrait) Values {
	t.Helper()
	v, err := NewValues(c, traits...)
	require.NoError(t, err)
	return v
}

func TestValues_Sums(t *testing.T) {
	v := mustValues(t, Components{Normal: 3, Precision: 2, Critical: 3, CriticalPrecision: 2, Splash: 1})

	assert.Equal(t, 11, v.Sum())
	assert.Equal(t, 5, v.SumCritical())
	assert.Equal(t, 4, v.SumPrecision())
	assert.Equal(t, 1, v.SumSplash())
}

func TestValues_TransformsReturnNewValues(t *testing.T) {
	v := mustValues(t, Components{Normal: 3, Precision: 2, Critical: 3, CriticalPrecision: 2, Splash: 1}, Magical)

	t.Run("without critical", func(t *testing.T) {
		out := v.WithoutCritical()
		assert.Equal(t, Components{Normal: 3, Precision: 2, Splash: 1}, out.Components())
		assert.Equal(t, 11, v.Sum())
	})

	t.Run("without precision", func(t *testing.T) {
		out := v.WithoutPrecision()
		assert.Equal(t, Components{Normal: 3, Critical: 3, Splash: 1}, out.Components())
		assert.Equal(t, 4, v.SumPrecision())
	})

	t.Run("without splash", func(t *testing.T) {
		assert.Equal(t, 0, v.WithoutSplash().SumSplash())
		assert.Equal(t, 1, v.SumSplash())
	})

	t.Run("add damage goes to normal", func(t *testing.T) {
		out := v.AddDamage(5)
		assert.Equal(t, 8, out.Normal())
		assert.Equal(t, 3, v.Normal())
		assert.True(t, out.HasTrait(Magical))
	})

	t.Run("copy does not share traits", func(t *testing.T) {
		cp := v.Copy()
		traits := cp.Traits()
		traits[Silver.Trait()] = struct{}{}
		assert.False(t, v.HasTrait(Silver))
		assert.False(t, cp.HasTrait(Silver))
		assert.Equal(t, v.Components(), cp.Components())
	})
}

func TestNewValues_Validation(t *testing.T) {
	_, err := NewValues(Components{Normal: 2, Precision: -1})
	require.Error(t, err)
	assert.True(t, dnderr.IsValidation(err))
	assert.Equal(t, "precision", dnderr.GetMeta(err)["component"])

	_, err = NewValues(Components{Normal: 2}, AttackTrait("holy-water"))
	require.Error(t, err)
	assert.True(t, dnderr.IsUnknownDamageType(err))
}

func TestNewValues_DefaultsToZero(t *testing.T) {
	v := mustValues(t, Components{})

	assert.Equal(t, 0, v.Sum())
	assert.Empty(t, v.Traits())
}

func TestPool_IsImmutable(t *testing.T) {
	fire := mustValues(t, Components{Normal: 4})
	source := map[DamageType]Values{Fire: fire}
	pool := NewPool(source)

	source[Cold] = fire
	assert.False(t, pool.Has(Cold))

	with := pool.With(Acid, fire)
	without := pool.Without(Fire)

	assert.Equal(t, []DamageType{Fire}, pool.Types())
	assert.Equal(t, []DamageType{Acid, Fire}, with.Types())
	assert.Equal(t, 0, without.Len())
	assert.Equal(t, 8, with.Sum())
}

func TestPool_Traits(t *testing.T) {
	pool := NewPool(map[DamageType]Values{
		Slashing: mustValues(t, Components{Normal: 4}, ColdIron),
		Fire:     mustValues(t, Components{Normal: 2}, Magical),
	})

	traits := pool.Traits()
	assert.Equal(t, []Trait{"cold-iron", "fire", "magical", "slashing"}, traits.Sorted())
}
