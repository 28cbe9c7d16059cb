package damage

import (
	dnderr "github.com/KirkDiggler/damage-resolver/internal/errors"
)

// Components is the raw per-type breakdown handed to NewValues
type Components struct {
	Normal            int
	Precision         int
	Critical          int
	CriticalPrecision int
	Splash            int
}

// Values is the damage dealt as a single damage type, split by component,
// together with the attack traits that qualify it. A Values is immutable:
// every transform returns a new instance.
type Values struct {
	normal            int
	precision         int
	critical          int
	criticalPrecision int
	splash            int
	traits            TraitSet
}

// NewValues validates the components and copies the traits
func NewValues(c Components, traits ...AttackTrait) (Values, error) {
	components := []struct {
		name  string
		value int
	}{
		{"normal", c.Normal},
		{"precision", c.Precision},
		{"critical", c.Critical},
		{"critical precision", c.CriticalPrecision},
		{"splash", c.Splash},
	}
	for _, comp := range components {
		if comp.value < 0 {
			return Values{}, dnderr.Validationf("%s damage cannot be negative", comp.name).
				WithMeta("component", comp.name).
				WithMeta("value", comp.value)
		}
	}

	set := make(TraitSet, len(traits))
	for _, t := range traits {
		if !t.IsValid() {
			return Values{}, dnderr.UnknownDamageType("attack trait", string(t))
		}
		set[t.Trait()] = struct{}{}
	}

	return Values{
		normal:            c.Normal,
		precision:         c.Precision,
		critical:          c.Critical,
		criticalPrecision: c.CriticalPrecision,
		splash:            c.Splash,
		traits:            set,
	}, nil
}

func (v Values) Normal() int            { return v.normal }
func (v Values) Precision() int         { return v.precision }
func (v Values) Critical() int          { return v.critical }
func (v Values) CriticalPrecision() int { return v.criticalPrecision }
func (v Values) Splash() int            { return v.splash }

// Components returns the breakdown as a plain struct
func (v Values) Components() Components {
	return Components{
		Normal:            v.normal,
		Precision:         v.precision,
		Critical:          v.critical,
		CriticalPrecision: v.criticalPrecision,
		Splash:            v.splash,
	}
}

// Traits returns a copy of the attack traits
func (v Values) Traits() TraitSet {
	return v.traits.clone()
}

// HasTrait reports whether the attack trait qualifies this damage
func (v Values) HasTrait(t AttackTrait) bool {
	return v.traits.Has(t.Trait())
}

// Sum is the total of every component
func (v Values) Sum() int {
	return v.normal + v.precision + v.critical + v.criticalPrecision + v.splash
}

// SumCritical is the damage added by a critical hit
func (v Values) SumCritical() int {
	return v.critical + v.criticalPrecision
}

// SumPrecision is the precision damage, doubled or not
func (v Values) SumPrecision() int {
	return v.precision + v.criticalPrecision
}

// SumSplash is the splash component
func (v Values) SumSplash() int {
	return v.splash
}

// WithoutCritical drops the critical and critical precision components
func (v Values) WithoutCritical() Values {
	out := v
	out.critical = 0
	out.criticalPrecision = 0
	return out
}

// WithoutPrecision drops the precision and critical precision components
func (v Values) WithoutPrecision() Values {
	out := v
	out.precision = 0
	out.criticalPrecision = 0
	return out
}

// WithoutSplash drops the splash component
func (v Values) WithoutSplash() Values {
	out := v
	out.splash = 0
	return out
}

// AddDamage adds n to the normal component. The result never goes negative.
func (v Values) AddDamage(n int) Values {
	out := v
	out.normal += n
	if out.normal < 0 {
		out.normal = 0
	}
	return out
}

// Copy returns an independent Values with the same content
func (v Values) Copy() Values {
	out := v
	out.traits = v.traits.clone()
	return out
}
