package damage

import (
	"sort"
	"strings"

	dnderr "github.com/KirkDiggler/damage-resolver/internal/errors"
)

// DamageType is the elemental, physical or alignment category of damage
type DamageType string

const (
	Acid        DamageType = "acid"
	Bludgeoning DamageType = "bludgeoning"
	Cold        DamageType = "cold"
	Fire        DamageType = "fire"
	Force       DamageType = "force"
	Electricity DamageType = "electricity"
	Sonic       DamageType = "sonic"
	Negative    DamageType = "negative"
	Piercing    DamageType = "piercing"
	Poison      DamageType = "poison"
	Positive    DamageType = "positive"
	Bleed       DamageType = "bleed"
	Mental      DamageType = "mental"
	Slashing    DamageType = "slashing"
	Chaotic     DamageType = "chaotic"
	Lawful      DamageType = "lawful"
	Good        DamageType = "good"
	Evil        DamageType = "evil"
)

var damageTypes = map[DamageType]struct{}{
	Acid: {}, Bludgeoning: {}, Cold: {}, Fire: {}, Force: {}, Electricity: {},
	Sonic: {}, Negative: {}, Piercing: {}, Poison: {}, Positive: {}, Bleed: {},
	Mental: {}, Slashing: {}, Chaotic: {}, Lawful: {}, Good: {}, Evil: {},
}

// ParseDamageType validates s against the damage vocabulary
func ParseDamageType(s string) (DamageType, error) {
	dt := DamageType(normalize(s))
	if !dt.IsValid() {
		return "", dnderr.UnknownDamageType("damage type", s)
	}
	return dt, nil
}

// IsValid reports whether d is part of the vocabulary
func (d DamageType) IsValid() bool {
	_, ok := damageTypes[d]
	return ok
}

// IsPhysical is true for piercing, slashing and bludgeoning
func (d DamageType) IsPhysical() bool {
	return d == Piercing || d == Slashing || d == Bludgeoning
}

// IsAlignment is true for chaotic, lawful, good and evil
func (d DamageType) IsAlignment() bool {
	return d == Chaotic || d == Lawful || d == Good || d == Evil
}

// Trait returns d as a modifier key
func (d DamageType) Trait() Trait {
	return Trait(d)
}

// AttackTrait is a qualifying tag on an attack, distinct from its damage type
type AttackTrait string

const (
	AreaDamage AttackTrait = "area-damage"
	Magical    AttackTrait = "magical"
	Adamantine AttackTrait = "adamantine"
	ColdIron   AttackTrait = "cold-iron"
	GhostTouch AttackTrait = "ghost-touch"
	Darkwood   AttackTrait = "darkwood"
	Mithral    AttackTrait = "mithral"
	Silver     AttackTrait = "silver"
	Orichalcum AttackTrait = "orichalcum"
	Nonlethal  AttackTrait = "nonlethal"
	Vorpal     AttackTrait = "vorpal"
	Unarmed    AttackTrait = "unarmed"
	Alchemical AttackTrait = "alchemical"
)

var attackTraits = map[AttackTrait]struct{}{
	AreaDamage: {}, Magical: {}, Adamantine: {}, ColdIron: {}, GhostTouch: {},
	Darkwood: {}, Mithral: {}, Silver: {}, Orichalcum: {}, Nonlethal: {},
	Vorpal: {}, Unarmed: {}, Alchemical: {},
}

// ParseAttackTrait validates s against the attack trait vocabulary
func ParseAttackTrait(s string) (AttackTrait, error) {
	at := AttackTrait(normalize(s))
	if !at.IsValid() {
		return "", dnderr.UnknownDamageType("attack trait", s)
	}
	return at, nil
}

// IsValid reports whether a is part of the vocabulary
func (a AttackTrait) IsValid() bool {
	_, ok := attackTraits[a]
	return ok
}

// Trait returns a as a modifier key
func (a AttackTrait) Trait() Trait {
	return Trait(a)
}

// Trait is any key a modifier can be registered under: every DamageType,
// every AttackTrait and the synthetic categories below.
type Trait string

const (
	TraitAll             Trait = "all"
	TraitPhysical        Trait = "physical"
	TraitNonMagical      Trait = "non-magical"
	TraitCriticalHits    Trait = "critical-hits"
	TraitSplashDamage    Trait = "splash-damage"
	TraitPrecisionDamage Trait = "precision-damage"
	TraitPrecision       Trait = "precision"

	// TraitObjectImmunities is only accepted as an immunity key. It expands
	// to bleed, poison, nonlethal and mental immunities.
	TraitObjectImmunities Trait = "object-immunities"
)

var syntheticTraits = map[Trait]struct{}{
	TraitAll: {}, TraitPhysical: {}, TraitNonMagical: {}, TraitCriticalHits: {},
	TraitSplashDamage: {}, TraitPrecisionDamage: {}, TraitPrecision: {},
}

// pseudoKeys are probed for every damage type because they describe the
// damage values rather than declared traits.
var pseudoKeys = []Trait{TraitCriticalHits, TraitPrecisionDamage, TraitPrecision, TraitSplashDamage}

var objectImmunities = []Trait{Bleed.Trait(), Poison.Trait(), Nonlethal.Trait(), Mental.Trait()}

// ParseTrait validates s against the combined vocabulary.
// object-immunities is rejected here; use ParseImmunityKey for that.
func ParseTrait(s string) (Trait, error) {
	t := Trait(normalize(s))
	if !t.IsValid() {
		return "", dnderr.UnknownDamageType("trait", s)
	}
	return t, nil
}

// ParseImmunityKey is ParseTrait plus the object-immunities key
func ParseImmunityKey(s string) (Trait, error) {
	if Trait(normalize(s)) == TraitObjectImmunities {
		return TraitObjectImmunities, nil
	}
	return ParseTrait(s)
}

// IsValid reports whether t is a damage type, an attack trait or a
// synthetic category
func (t Trait) IsValid() bool {
	if _, ok := syntheticTraits[t]; ok {
		return true
	}
	return DamageType(t).IsValid() || AttackTrait(t).IsValid()
}

// IsPrecision is true for precision and precision-damage
func (t Trait) IsPrecision() bool {
	return strings.HasPrefix(string(t), string(TraitPrecision))
}

// isComponentScoped is true for keys that measure a single component of
// the damage rather than the whole type
func (t Trait) isComponentScoped() bool {
	return t == TraitCriticalHits || t == TraitSplashDamage || t.IsPrecision()
}

// TraitSet is an unordered set of traits. Sets handed out by this package
// are never mutated after construction.
type TraitSet map[Trait]struct{}

// NewTraitSet builds a set from the given traits
func NewTraitSet(traits ...Trait) TraitSet {
	set := make(TraitSet, len(traits))
	for _, t := range traits {
		set[t] = struct{}{}
	}
	return set
}

// Has reports membership
func (s TraitSet) Has(t Trait) bool {
	_, ok := s[t]
	return ok
}

// ContainsAll reports whether every trait is in s
func (s TraitSet) ContainsAll(traits []Trait) bool {
	for _, t := range traits {
		if !s.Has(t) {
			return false
		}
	}
	return true
}

// Sorted returns the members in lexical order
func (s TraitSet) Sorted() []Trait {
	out := make([]Trait, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s TraitSet) clone() TraitSet {
	out := make(TraitSet, len(s))
	for t := range s {
		out[t] = struct{}{}
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
