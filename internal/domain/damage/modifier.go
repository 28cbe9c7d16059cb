package damage

import (
	dnderr "github.com/KirkDiggler/damage-resolver/internal/errors"
)

// Kind names the three modifier families
type Kind string

const (
	KindImmunity   Kind = "immunity"
	KindWeakness   Kind = "weakness"
	KindResistance Kind = "resistance"
)

// modifier is the part shared by immunities, weaknesses and resistances: a
// key and a list of exceptions. Each exception is a set of traits that must
// all be present on the attack; any one satisfied exception disables the
// modifier.
type modifier struct {
	key        Trait
	exceptions [][]Trait
}

func newModifier(kind Kind, key Trait, exceptions [][]Trait) (modifier, error) {
	if !key.IsValid() && !(kind == KindImmunity && key == TraitObjectImmunities) {
		if key == TraitObjectImmunities {
			return modifier{}, dnderr.Validationf("%s cannot use key %q", kind, key).
				WithMeta("kind", string(kind))
		}
		return modifier{}, dnderr.UnknownDamageType("trait", string(key)).
			WithMeta("kind", string(kind))
	}

	copied := make([][]Trait, 0, len(exceptions))
	for i, set := range exceptions {
		if len(set) == 0 {
			return modifier{}, dnderr.Validationf("%s %q has an empty exception at index %d", kind, key, i).
				WithMeta("kind", string(kind)).
				WithMeta("index", i)
		}
		for _, t := range set {
			if !t.IsValid() {
				return modifier{}, dnderr.UnknownDamageType("trait", string(t)).
					WithMeta("kind", string(kind)).
					WithMeta("index", i)
			}
		}
		copied = append(copied, append([]Trait(nil), set...))
	}

	return modifier{key: key, exceptions: copied}, nil
}

// Key is the trait or category the modifier is registered under
func (m modifier) Key() Trait {
	return m.key
}

// Exceptions returns a copy of the exception sets
func (m modifier) Exceptions() [][]Trait {
	out := make([][]Trait, len(m.exceptions))
	for i, set := range m.exceptions {
		out[i] = append([]Trait(nil), set...)
	}
	return out
}

// DisabledBy reports whether any exception set is fully contained in the
// attack's traits
func (m modifier) DisabledBy(traits TraitSet) bool {
	for _, set := range m.exceptions {
		if traits.ContainsAll(set) {
			return true
		}
	}
	return false
}

// quantity picks the part of v a component-scoped key measures
func (m modifier) quantity(v Values) int {
	switch {
	case m.key == TraitCriticalHits:
		return v.SumCritical()
	case m.key.IsPrecision():
		return v.SumPrecision()
	case m.key == TraitSplashDamage:
		return v.SumSplash()
	default:
		return v.Sum()
	}
}

// Immunity removes a damage type, or only a component of it when keyed to
// critical-hits or precision
type Immunity struct {
	modifier
}

// NewImmunity validates and builds an immunity
func NewImmunity(key Trait, exceptions [][]Trait) (Immunity, error) {
	m, err := newModifier(KindImmunity, key, exceptions)
	if err != nil {
		return Immunity{}, err
	}
	return Immunity{modifier: m}, nil
}

// expand replaces object-immunities with its concrete immunities. Each one
// keeps the original exceptions.
func (i Immunity) expand() []Immunity {
	if i.key != TraitObjectImmunities {
		return []Immunity{i}
	}
	out := make([]Immunity, 0, len(objectImmunities))
	for _, t := range objectImmunities {
		out = append(out, Immunity{modifier: modifier{key: t, exceptions: i.exceptions}})
	}
	return out
}

// Weakness adds a flat amount to a damage type that actually deals damage
// of the kind it is keyed to
type Weakness struct {
	modifier
	value int
}

// NewWeakness validates and builds a weakness
func NewWeakness(key Trait, value int, exceptions [][]Trait) (Weakness, error) {
	m, err := newModifier(KindWeakness, key, exceptions)
	if err != nil {
		return Weakness{}, err
	}
	if value < 0 {
		return Weakness{}, dnderr.Validationf("weakness %q cannot have a negative value", key).
			WithMeta("value", value)
	}
	return Weakness{modifier: m, value: value}, nil
}

// Value is the flat amount added
func (w Weakness) Value() int {
	return w.value
}

// Amount is the damage w adds to v. A weakness never triggers on zero
// damage.
func (w Weakness) Amount(v Values, _ TraitSet) int {
	if w.quantity(v) > 0 {
		return w.value
	}
	return 0
}

// Resistance subtracts a flat amount from a damage type
type Resistance struct {
	modifier
	value              int
	doubleVsNonMagical bool
}

// NewResistance validates and builds a resistance
func NewResistance(key Trait, value int, doubleVsNonMagical bool, exceptions [][]Trait) (Resistance, error) {
	m, err := newModifier(KindResistance, key, exceptions)
	if err != nil {
		return Resistance{}, err
	}
	if value < 0 {
		return Resistance{}, dnderr.Validationf("resistance %q cannot have a negative value", key).
			WithMeta("value", value)
	}
	return Resistance{modifier: m, value: value, doubleVsNonMagical: doubleVsNonMagical}, nil
}

// Value is the base amount, before doubling
func (r Resistance) Value() int {
	return r.value
}

// DoubleVsNonMagical reports whether the value doubles against non-magical
// attacks
func (r Resistance) DoubleVsNonMagical() bool {
	return r.doubleVsNonMagical
}

// Amount is the damage r removes from v. Component-scoped resistances never
// remove more than the component holds; the others are capped by the caller.
func (r Resistance) Amount(v Values, poolTraits TraitSet) int {
	value := r.value
	if r.doubleVsNonMagical && poolTraits.Has(TraitNonMagical) {
		value *= 2
	}
	if r.key.isComponentScoped() {
		return min(value, r.quantity(v))
	}
	return value
}
