package damage

type keyed interface {
	Key() Trait
	DisabledBy(traits TraitSet) bool
}

type valued interface {
	keyed
	Amount(v Values, poolTraits TraitSet) int
}

// candidate remembers where a modifier sat in its input list so equal
// values resolve the same way on every run
type candidate[T keyed] struct {
	pos int
	mod T
}

type modifierIndex[T keyed] map[Trait][]candidate[T]

func indexModifiers[T keyed](mods []T) modifierIndex[T] {
	idx := make(modifierIndex[T], len(mods))
	for pos, m := range mods {
		idx[m.Key()] = append(idx[m.Key()], candidate[T]{pos: pos, mod: m})
	}
	return idx
}

// filterModifiers returns the modifiers that apply to dt: registered under
// one of the entry's keys and not disabled by an exception. A damage type
// missing from the pool has no applicable modifiers.
func filterModifiers[T keyed](pool Pool, poolTraits TraitSet, dt DamageType, idx modifierIndex[T]) []candidate[T] {
	v, ok := pool.Get(dt)
	if !ok {
		return nil
	}

	var out []candidate[T]
	for _, key := range entryKeys(dt, v, poolTraits) {
		for _, c := range idx[key] {
			if !c.mod.DisabledBy(poolTraits) {
				out = append(out, c)
			}
		}
	}
	return out
}

// findHighest returns the applicable modifier with the largest positive
// amount. ok is false when nothing applies or every amount is zero.
func findHighest[T valued](pool Pool, poolTraits TraitSet, dt DamageType, idx modifierIndex[T]) (best T, amount int, ok bool) {
	v, present := pool.Get(dt)
	if !present {
		return best, 0, false
	}

	bestPos := -1
	for _, c := range filterModifiers(pool, poolTraits, dt, idx) {
		a := c.mod.Amount(v, poolTraits)
		if a <= 0 {
			continue
		}
		if a > amount || (a == amount && c.pos < bestPos) {
			best, amount, bestPos = c.mod, a, c.pos
		}
	}
	return best, amount, bestPos >= 0
}
