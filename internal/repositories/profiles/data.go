package profiles

import (
	"github.com/KirkDiggler/damage-resolver/internal/domain/damage"
	dnderr "github.com/KirkDiggler/damage-resolver/internal/errors"
)

// ModifierData is the serialized form of an immunity, weakness or
// resistance. Value and DoubleVsNonMagical are ignored for immunities.
type ModifierData struct {
	Type               string     `json:"type" yaml:"type"`
	Value              int        `json:"value,omitempty" yaml:"value,omitempty"`
	DoubleVsNonMagical bool       `json:"double_vs_non_magical,omitempty" yaml:"double_vs_non_magical,omitempty"`
	Exceptions         [][]string `json:"exceptions,omitempty" yaml:"exceptions,omitempty"`
}

// ProfileData is the serialized form of a profile, in Redis and in
// scenario files
type ProfileData struct {
	ID          string         `json:"id" yaml:"id"`
	Name        string         `json:"name" yaml:"name"`
	Vitality    string         `json:"vitality" yaml:"vitality"`
	Alignment   string         `json:"alignment" yaml:"alignment"`
	Immunities  []ModifierData `json:"immunities,omitempty" yaml:"immunities,omitempty"`
	Weaknesses  []ModifierData `json:"weaknesses,omitempty" yaml:"weaknesses,omitempty"`
	Resistances []ModifierData `json:"resistances,omitempty" yaml:"resistances,omitempty"`
}

// ToData converts a profile for storage
func ToData(p *damage.Profile) ProfileData {
	data := ProfileData{
		ID:        p.ID,
		Name:      p.Name,
		Vitality:  string(p.Vitality),
		Alignment: string(p.Alignment),
	}
	for _, imm := range p.Immunities {
		data.Immunities = append(data.Immunities, ModifierData{
			Type:       string(imm.Key()),
			Exceptions: exceptionsToData(imm.Exceptions()),
		})
	}
	for _, w := range p.Weaknesses {
		data.Weaknesses = append(data.Weaknesses, ModifierData{
			Type:       string(w.Key()),
			Value:      w.Value(),
			Exceptions: exceptionsToData(w.Exceptions()),
		})
	}
	for _, r := range p.Resistances {
		data.Resistances = append(data.Resistances, ModifierData{
			Type:               string(r.Key()),
			Value:              r.Value(),
			DoubleVsNonMagical: r.DoubleVsNonMagical(),
			Exceptions:         exceptionsToData(r.Exceptions()),
		})
	}
	return data
}

// FromData validates serialized data and rebuilds the profile. Every
// modifier goes through the damage constructors, so a malformed profile is
// rejected here and never reaches the pipeline.
func FromData(data ProfileData) (*damage.Profile, error) {
	vitality, err := damage.ParseVitality(data.Vitality)
	if err != nil {
		return nil, dnderr.Wrapf(err, "profile %q", data.ID)
	}
	alignment, err := damage.ParseAlignment(data.Alignment)
	if err != nil {
		return nil, dnderr.Wrapf(err, "profile %q", data.ID)
	}

	p := &damage.Profile{
		ID:        data.ID,
		Name:      data.Name,
		Vitality:  vitality,
		Alignment: alignment,
	}

	for i, md := range data.Immunities {
		key, err := damage.ParseImmunityKey(md.Type)
		if err != nil {
			return nil, dnderr.Wrapf(err, "profile %q immunity %d", data.ID, i)
		}
		exceptions, err := exceptionsFromData(md.Exceptions)
		if err != nil {
			return nil, dnderr.Wrapf(err, "profile %q immunity %d", data.ID, i)
		}
		imm, err := damage.NewImmunity(key, exceptions)
		if err != nil {
			return nil, dnderr.Wrapf(err, "profile %q immunity %d", data.ID, i)
		}
		p.Immunities = append(p.Immunities, imm)
	}

	for i, md := range data.Weaknesses {
		key, exceptions, err := parseModifier(md)
		if err != nil {
			return nil, dnderr.Wrapf(err, "profile %q weakness %d", data.ID, i)
		}
		w, err := damage.NewWeakness(key, md.Value, exceptions)
		if err != nil {
			return nil, dnderr.Wrapf(err, "profile %q weakness %d", data.ID, i)
		}
		p.Weaknesses = append(p.Weaknesses, w)
	}

	for i, md := range data.Resistances {
		key, exceptions, err := parseModifier(md)
		if err != nil {
			return nil, dnderr.Wrapf(err, "profile %q resistance %d", data.ID, i)
		}
		r, err := damage.NewResistance(key, md.Value, md.DoubleVsNonMagical, exceptions)
		if err != nil {
			return nil, dnderr.Wrapf(err, "profile %q resistance %d", data.ID, i)
		}
		p.Resistances = append(p.Resistances, r)
	}

	return p, nil
}

func parseModifier(md ModifierData) (damage.Trait, [][]damage.Trait, error) {
	key, err := damage.ParseTrait(md.Type)
	if err != nil {
		return "", nil, err
	}
	exceptions, err := exceptionsFromData(md.Exceptions)
	if err != nil {
		return "", nil, err
	}
	return key, exceptions, nil
}

func exceptionsFromData(data [][]string) ([][]damage.Trait, error) {
	if len(data) == 0 {
		return nil, nil
	}
	out := make([][]damage.Trait, 0, len(data))
	for _, set := range data {
		traits := make([]damage.Trait, 0, len(set))
		for _, s := range set {
			t, err := damage.ParseTrait(s)
			if err != nil {
				return nil, err
			}
			traits = append(traits, t)
		}
		out = append(out, traits)
	}
	return out, nil
}

func exceptionsToData(exceptions [][]damage.Trait) [][]string {
	if len(exceptions) == 0 {
		return nil
	}
	out := make([][]string, 0, len(exceptions))
	for _, set := range exceptions {
		strs := make([]string, 0, len(set))
		for _, t := range set {
			strs = append(strs, string(t))
		}
		out = append(out, strs)
	}
	return out
}
