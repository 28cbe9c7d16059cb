package damage

// Input is everything needed to resolve one attack against one target
type Input struct {
	Damage      Pool
	Vitality    Vitality
	Alignment   Alignment
	Immunities  []Immunity
	Weaknesses  []Weakness
	Resistances []Resistance
}

// Stage names a step of the resolution pipeline
type Stage string

const (
	StageVitality   Stage = "vitality"
	StageAlignment  Stage = "alignment"
	StageImmunity   Stage = "immunity"
	StageWeakness   Stage = "weakness"
	StageResistance Stage = "resistance"
)

// Application records a modifier or filter that changed the damage of one
// type
type Application struct {
	Stage  Stage
	Type   DamageType
	Key    Trait // empty for the vitality and alignment filters
	Amount int   // damage added or removed; zero when a whole type was dropped
}

// Resolution is the outcome of Resolve
type Resolution struct {
	Total   int
	PerType map[DamageType]int
	Applied []Application
}

// Calculate resolves the attack and returns the damage dealt
func Calculate(in Input) int {
	return Resolve(in).Total
}

// Resolve runs the five stages in order: vitality filter, alignment filter,
// immunities, weaknesses, resistances. in.Damage is never modified.
func Resolve(in Input) Resolution {
	var applied []Application

	pool, dropped := removePositiveOrNegative(in.Damage, in.Vitality)
	applied = append(applied, dropped...)

	pool, dropped = removeAlignmentDamage(pool, in.Alignment)
	applied = append(applied, dropped...)

	pool, apps := applyImmunities(pool, in.Immunities)
	applied = append(applied, apps...)

	pool, apps = applyWeaknesses(pool, in.Weaknesses)
	applied = append(applied, apps...)

	total, perType, apps := applyResistances(pool, in.Resistances)
	applied = append(applied, apps...)

	return Resolution{Total: total, PerType: perType, Applied: applied}
}

// RemovePositiveOrNegative drops damage the target's vitality ignores:
// positive for the living, negative and bleed for the undead, positive and
// negative for everything else.
func RemovePositiveOrNegative(pool Pool, vitality Vitality) Pool {
	out, _ := removePositiveOrNegative(pool, vitality)
	return out
}

func removePositiveOrNegative(pool Pool, vitality Vitality) (Pool, []Application) {
	var drop []DamageType
	switch vitality {
	case Living:
		drop = []DamageType{Positive}
	case Undead:
		drop = []DamageType{Negative, Bleed}
	default:
		drop = []DamageType{Positive, Negative}
	}
	return dropTypes(pool, StageVitality, drop)
}

// RemoveAlignmentDamage drops alignment damage that only hurts the opposing
// alignment: good unless the target is evil, evil unless good, chaotic
// unless lawful, lawful unless chaotic.
func RemoveAlignmentDamage(pool Pool, alignment Alignment) Pool {
	out, _ := removeAlignmentDamage(pool, alignment)
	return out
}

func removeAlignmentDamage(pool Pool, alignment Alignment) (Pool, []Application) {
	var drop []DamageType
	if !alignment.IsEvil() {
		drop = append(drop, Good)
	}
	if !alignment.IsGood() {
		drop = append(drop, Evil)
	}
	if !alignment.IsLawful() {
		drop = append(drop, Chaotic)
	}
	if !alignment.IsChaotic() {
		drop = append(drop, Lawful)
	}
	return dropTypes(pool, StageAlignment, drop)
}

func dropTypes(pool Pool, stage Stage, types []DamageType) (Pool, []Application) {
	var applied []Application
	var present []DamageType
	for _, dt := range types {
		if pool.Has(dt) {
			present = append(present, dt)
			applied = append(applied, Application{Stage: stage, Type: dt})
		}
	}
	if len(present) == 0 {
		return pool, nil
	}
	return pool.Without(present...), applied
}

// ApplyImmunities removes every damage type the target is immune to.
// Immunities to critical-hits or precision only strip that component and
// keep the rest of the type.
func ApplyImmunities(pool Pool, immunities []Immunity) Pool {
	out, _ := applyImmunities(pool, immunities)
	return out
}

func applyImmunities(pool Pool, immunities []Immunity) (Pool, []Application) {
	if len(immunities) == 0 {
		return pool, nil
	}

	var expanded []Immunity
	for _, imm := range immunities {
		expanded = append(expanded, imm.expand()...)
	}
	idx := indexModifiers(expanded)
	traits := PoolTraits(pool)

	out := pool
	var applied []Application
	for _, dt := range pool.Types() {
		v, _ := pool.Get(dt)
		removeType := false
		var removeKey Trait
		stripped := v
		var strips []Application

		for _, c := range filterModifiers(pool, traits, dt, idx) {
			key := c.mod.Key()
			switch {
			case key == TraitCriticalHits:
				if stripped.SumCritical() > 0 {
					strips = append(strips, Application{Stage: StageImmunity, Type: dt, Key: key, Amount: -stripped.SumCritical()})
				}
				stripped = stripped.WithoutCritical()
			case key.IsPrecision():
				if stripped.SumPrecision() > 0 {
					strips = append(strips, Application{Stage: StageImmunity, Type: dt, Key: key, Amount: -stripped.SumPrecision()})
				}
				stripped = stripped.WithoutPrecision()
			default:
				if !removeType {
					removeType, removeKey = true, key
				}
			}
		}

		if removeType {
			out = out.Without(dt)
			applied = append(applied, Application{Stage: StageImmunity, Type: dt, Key: removeKey})
			continue
		}
		if len(strips) > 0 {
			out = out.With(dt, stripped)
			applied = append(applied, strips...)
		}
	}
	return out, applied
}

// ApplyWeaknesses adds the highest applicable weakness of each damage type
// to its normal component
func ApplyWeaknesses(pool Pool, weaknesses []Weakness) Pool {
	out, _ := applyWeaknesses(pool, weaknesses)
	return out
}

func applyWeaknesses(pool Pool, weaknesses []Weakness) (Pool, []Application) {
	if len(weaknesses) == 0 {
		return pool, nil
	}

	idx := indexModifiers(weaknesses)
	traits := PoolTraits(pool)

	out := pool
	var applied []Application
	for _, dt := range pool.Types() {
		w, amount, ok := findHighest(pool, traits, dt, idx)
		if !ok {
			continue
		}
		v, _ := pool.Get(dt)
		out = out.With(dt, v.AddDamage(amount))
		applied = append(applied, Application{Stage: StageWeakness, Type: dt, Key: w.Key(), Amount: amount})
	}
	return out, applied
}

// ApplyResistances subtracts the highest applicable resistance from each
// damage type, flooring every type at zero, and returns the total
func ApplyResistances(pool Pool, resistances []Resistance) int {
	total, _, _ := applyResistances(pool, resistances)
	return total
}

func applyResistances(pool Pool, resistances []Resistance) (int, map[DamageType]int, []Application) {
	idx := indexModifiers(resistances)
	traits := PoolTraits(pool)

	total := 0
	perType := make(map[DamageType]int, pool.Len())
	var applied []Application
	for _, dt := range pool.Types() {
		v, _ := pool.Get(dt)
		sum := v.Sum()

		if r, amount, ok := findHighest(pool, traits, dt, idx); ok {
			reduced := max(0, sum-amount)
			applied = append(applied, Application{Stage: StageResistance, Type: dt, Key: r.Key(), Amount: reduced - sum})
			sum = reduced
		}

		perType[dt] = sum
		total += sum
	}
	return total, perType, applied
}
