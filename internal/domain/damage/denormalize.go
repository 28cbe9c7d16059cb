package damage

// Denormalize expands a raw trait set with every category it implies. The
// input is not modified. Applying it twice gives the same result as once.
func Denormalize(traits TraitSet) TraitSet {
	out := traits.clone()
	out[TraitAll] = struct{}{}

	if out.Has(Piercing.Trait()) || out.Has(Slashing.Trait()) || out.Has(Bludgeoning.Trait()) {
		out[TraitPhysical] = struct{}{}
	}
	// mithral counts as silver
	if out.Has(Mithral.Trait()) {
		out[Silver.Trait()] = struct{}{}
	}
	if !out.Has(Magical.Trait()) {
		out[TraitNonMagical] = struct{}{}
	}
	return out
}

// PoolTraits is the denormalized trait set of the whole attack. Each stage
// computes it from the entries still present, so whether an attack is
// non-magical is decided per stage for every damage type at once.
func PoolTraits(p Pool) TraitSet {
	return Denormalize(p.Traits())
}

// entryKeys lists the keys a modifier may be registered under to affect the
// entry for dt. Physical and silver are derived from the entry itself so a
// physical resistance never touches the fire part of a flaming weapon;
// non-magical comes from the pool-wide set.
func entryKeys(dt DamageType, v Values, poolTraits TraitSet) []Trait {
	keys := make([]Trait, 0, len(v.traits)+len(pseudoKeys)+4)
	keys = append(keys, dt.Trait(), TraitAll)
	for t := range v.traits {
		keys = append(keys, t)
	}
	if dt.IsPhysical() {
		keys = append(keys, TraitPhysical)
	}
	if v.traits.Has(Mithral.Trait()) && !v.traits.Has(Silver.Trait()) {
		keys = append(keys, Silver.Trait())
	}
	if poolTraits.Has(TraitNonMagical) {
		keys = append(keys, TraitNonMagical)
	}
	return append(keys, pseudoKeys...)
}
