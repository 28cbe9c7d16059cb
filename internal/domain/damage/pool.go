package damage

import (
	"sort"
)

// Pool maps each damage type of a single attack to its values. A Pool is
// immutable; With and Without return new pools and never touch the receiver.
type Pool struct {
	entries map[DamageType]Values
}

// NewPool copies entries into a new pool
func NewPool(entries map[DamageType]Values) Pool {
	out := make(map[DamageType]Values, len(entries))
	for dt, v := range entries {
		out[dt] = v
	}
	return Pool{entries: out}
}

// Get returns the values for a damage type
func (p Pool) Get(dt DamageType) (Values, bool) {
	v, ok := p.entries[dt]
	return v, ok
}

// Has reports whether the pool holds the damage type
func (p Pool) Has(dt DamageType) bool {
	_, ok := p.entries[dt]
	return ok
}

// Len is the number of damage types in the pool
func (p Pool) Len() int {
	return len(p.entries)
}

// Types returns the damage types in lexical order
func (p Pool) Types() []DamageType {
	out := make([]DamageType, 0, len(p.entries))
	for dt := range p.entries {
		out = append(out, dt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// With returns a pool where dt maps to v
func (p Pool) With(dt DamageType, v Values) Pool {
	out := make(map[DamageType]Values, len(p.entries)+1)
	for k, val := range p.entries {
		out[k] = val
	}
	out[dt] = v
	return Pool{entries: out}
}

// Without returns a pool lacking the given damage types
func (p Pool) Without(types ...DamageType) Pool {
	drop := make(map[DamageType]struct{}, len(types))
	for _, dt := range types {
		drop[dt] = struct{}{}
	}
	out := make(map[DamageType]Values, len(p.entries))
	for k, val := range p.entries {
		if _, ok := drop[k]; !ok {
			out[k] = val
		}
	}
	return Pool{entries: out}
}

// Sum adds up every entry without applying any modifier
func (p Pool) Sum() int {
	total := 0
	for _, v := range p.entries {
		total += v.Sum()
	}
	return total
}

// Traits is the raw trait set of the whole attack: every attack trait of
// every entry plus every damage type key
func (p Pool) Traits() TraitSet {
	set := make(TraitSet)
	for dt, v := range p.entries {
		set[dt.Trait()] = struct{}{}
		for t := range v.traits {
			set[t] = struct{}{}
		}
	}
	return set
}
