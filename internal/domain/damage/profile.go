package damage

// Profile is a target's defensive profile: everything about the target the
// pipeline needs besides the incoming damage
type Profile struct {
	ID          string
	Name        string
	Vitality    Vitality
	Alignment   Alignment
	Immunities  []Immunity
	Weaknesses  []Weakness
	Resistances []Resistance
}

// Input pairs the profile with an incoming damage pool
func (p *Profile) Input(pool Pool) Input {
	return Input{
		Damage:      pool,
		Vitality:    p.Vitality,
		Alignment:   p.Alignment,
		Immunities:  p.Immunities,
		Weaknesses:  p.Weaknesses,
		Resistances: p.Resistances,
	}
}

// Clone returns a copy whose modifier lists can be changed independently
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	out := *p
	out.Immunities = append([]Immunity(nil), p.Immunities...)
	out.Weaknesses = append([]Weakness(nil), p.Weaknesses...)
	out.Resistances = append([]Resistance(nil), p.Resistances...)
	return &out
}
