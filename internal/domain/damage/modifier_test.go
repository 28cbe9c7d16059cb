package damage

import (
	"testing"

	dnderr "github.com/KirkDiggler/damage-resolver/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModifiers_Validation(t *testing.T) {
	t.Run("empty exception set is rejected", func(t *testing.T) {
		_, err := NewResistance(TraitPhysical, 5, false, [][]Trait{{Adamantine.Trait()}, {}})
		require.Error(t, err)
		assert.True(t, dnderr.IsValidation(err))
		assert.Equal(t, 1, dnderr.GetMeta(err)["index"])
	})

	t.Run("unknown key is rejected", func(t *testing.T) {
		_, err := NewWeakness(Trait("radiant"), 5, nil)
		assert.True(t, dnderr.IsUnknownDamageType(err))
	})

	t.Run("unknown exception trait is rejected", func(t *testing.T) {
		_, err := NewImmunity(Fire.Trait(), [][]Trait{{Trait("holy")}})
		assert.True(t, dnderr.IsUnknownDamageType(err))
	})

	t.Run("negative values are rejected", func(t *testing.T) {
		_, err := NewWeakness(Fire.Trait(), -1, nil)
		assert.True(t, dnderr.IsValidation(err))
		_, err = NewResistance(Fire.Trait(), -1, false, nil)
		assert.True(t, dnderr.IsValidation(err))
	})

	t.Run("object immunities only for immunities", func(t *testing.T) {
		_, err := NewImmunity(TraitObjectImmunities, nil)
		assert.NoError(t, err)
		_, err = NewResistance(TraitObjectImmunities, 5, false, nil)
		assert.True(t, dnderr.IsValidation(err))
	})

	t.Run("exceptions are copied", func(t *testing.T) {
		exceptions := [][]Trait{{Magical.Trait()}}
		r, err := NewResistance(TraitAll, 5, false, exceptions)
		require.NoError(t, err)
		exceptions[0][0] = Silver.Trait()
		assert.Equal(t, [][]Trait{{Magical.Trait()}}, r.Exceptions())
	})
}

func TestModifier_DisabledBy(t *testing.T) {
	r, err := NewResistance(TraitPhysical, 5, false, [][]Trait{
		{Magical.Trait(), Silver.Trait()},
		{ColdIron.Trait()},
	})
	require.NoError(t, err)

	tests := []struct {
		name   string
		traits TraitSet
		want   bool
	}{
		{"no traits", NewTraitSet(), false},
		{"half of a conjunction", NewTraitSet(Magical.Trait()), false},
		{"full conjunction", NewTraitSet(Magical.Trait(), Silver.Trait(), Slashing.Trait()), true},
		{"second disjunct", NewTraitSet(ColdIron.Trait()), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.DisabledBy(tt.traits))
		})
	}

	plain, err := NewImmunity(Fire.Trait(), nil)
	require.NoError(t, err)
	assert.False(t, plain.DisabledBy(NewTraitSet(Magical.Trait(), Silver.Trait())))
}

func TestWeakness_Amount(t *testing.T) {
	v := mustValues(t, Components{Normal: 4, Precision: 2})
	traits := NewTraitSet()

	crit, err := NewWeakness(TraitCriticalHits, 5, nil)
	require.NoError(t, err)
	prec, err := NewWeakness(TraitPrecision, 5, nil)
	require.NoError(t, err)
	splash, err := NewWeakness(TraitSplashDamage, 5, nil)
	require.NoError(t, err)
	fire, err := NewWeakness(Fire.Trait(), 5, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, crit.Amount(v, traits), "no critical component")
	assert.Equal(t, 5, prec.Amount(v, traits))
	assert.Equal(t, 0, splash.Amount(v, traits))
	assert.Equal(t, 5, fire.Amount(v, traits))
	assert.Equal(t, 0, fire.Amount(mustValues(t, Components{}), traits))
}

func TestResistance_Amount(t *testing.T) {
	v := mustValues(t, Components{Normal: 3, Precision: 2, Critical: 3, CriticalPrecision: 2})

	prec, err := NewResistance(TraitPrecision, 6, false, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, prec.Amount(v, NewTraitSet()), "capped at the precision component")

	crit, err := NewResistance(TraitCriticalHits, 2, false, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, crit.Amount(v, NewTraitSet()))

	physical, err := NewResistance(TraitPhysical, 20, false, nil)
	require.NoError(t, err)
	assert.Equal(t, 20, physical.Amount(v, NewTraitSet()), "whole-type keys are not capped here")

	doubled, err := NewResistance(TraitPhysical, 5, true, nil)
	require.NoError(t, err)
	assert.Equal(t, 10, doubled.Amount(v, NewTraitSet(TraitNonMagical)))
	assert.Equal(t, 5, doubled.Amount(v, NewTraitSet(Magical.Trait())))
}

func TestImmunity_ExpandObjectImmunities(t *testing.T) {
	imm, err := NewImmunity(TraitObjectImmunities, [][]Trait{{Adamantine.Trait()}})
	require.NoError(t, err)

	expanded := imm.expand()
	require.Len(t, expanded, 4)
	keys := make([]Trait, 0, len(expanded))
	for _, e := range expanded {
		keys = append(keys, e.Key())
		assert.Equal(t, [][]Trait{{Adamantine.Trait()}}, e.Exceptions())
	}
	assert.ElementsMatch(t, []Trait{"bleed", "poison", "nonlethal", "mental"}, keys)
}

func TestFindHighest_MissingPoolEntry(t *testing.T) {
	pool := NewPool(map[DamageType]Values{Fire: mustValues(t, Components{Normal: 4})})
	r, err := NewResistance(TraitAll, 5, false, nil)
	require.NoError(t, err)
	idx := indexModifiers([]Resistance{r})

	_, amount, ok := findHighest(pool, PoolTraits(pool), Cold, idx)
	assert.False(t, ok)
	assert.Equal(t, 0, amount)
	assert.Empty(t, filterModifiers(pool, PoolTraits(pool), Cold, idx))
}

func TestFindHighest_TiesKeepInputOrder(t *testing.T) {
	pool := NewPool(map[DamageType]Values{Fire: mustValues(t, Components{Normal: 10})})
	all, err := NewResistance(TraitAll, 5, false, nil)
	require.NoError(t, err)
	fire, err := NewResistance(Fire.Trait(), 5, false, nil)
	require.NoError(t, err)

	best, amount, ok := findHighest(pool, PoolTraits(pool), Fire, indexModifiers([]Resistance{all, fire}))
	require.True(t, ok)
	assert.Equal(t, 5, amount)
	assert.Equal(t, TraitAll, best.Key())

	best, _, _ = findHighest(pool, PoolTraits(pool), Fire, indexModifiers([]Resistance{fire, all}))
	assert.Equal(t, Fire.Trait(), best.Key())
}
