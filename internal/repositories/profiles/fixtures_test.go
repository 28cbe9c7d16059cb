package profiles

import (
	"testing"

	"github.com/KirkDiggler/damage-resolver/internal/domain/damage"
	"github.com/stretchr/testify/require"
)

// skeletonProfile is a skeleton: undead, immune to bleed and poison unless
// the attack is adamantine, resists slashing, weak to bludgeoning
func skeletonProfile(t *testing.T) *damage.Profile {
	t.Helper()

	imm, err := damage.NewImmunity(damage.TraitObjectImmunities, [][]damage.Trait{{damage.Adamantine.Trait()}})
	require.NoError(t, err)
	weak, err := damage.NewWeakness(damage.Bludgeoning.Trait(), 3, nil)
	require.NoError(t, err)
	resist, err := damage.NewResistance(damage.Slashing.Trait(), 5, true, [][]damage.Trait{{damage.Magical.Trait(), damage.Silver.Trait()}})
	require.NoError(t, err)

	return &damage.Profile{
		ID:          "skeleton",
		Name:        "Skeleton Guard",
		Vitality:    damage.Undead,
		Alignment:   damage.NeutralEvil,
		Immunities:  []damage.Immunity{imm},
		Weaknesses:  []damage.Weakness{weak},
		Resistances: []damage.Resistance{resist},
	}
}
