package damage

import (
	"strings"

	dnderr "github.com/KirkDiggler/damage-resolver/internal/errors"
)

// Vitality decides which of positive, negative and bleed damage can hurt a
// target
type Vitality string

const (
	Living  Vitality = "living"
	Undead  Vitality = "undead"
	Neither Vitality = "neither"
)

// ParseVitality validates s. "construct" is accepted as neither.
func ParseVitality(s string) (Vitality, error) {
	switch v := Vitality(normalize(s)); v {
	case Living, Undead, Neither:
		return v, nil
	case "construct":
		return Neither, nil
	}
	return "", dnderr.InvalidArgumentf("unknown vitality %q", s).WithMeta("value", s)
}

// Alignment is one of the nine two-letter alignment codes
type Alignment string

const (
	LawfulGood     Alignment = "LG"
	NeutralGood    Alignment = "NG"
	ChaoticGood    Alignment = "CG"
	LawfulNeutral  Alignment = "LN"
	TrueNeutral    Alignment = "N"
	ChaoticNeutral Alignment = "CN"
	LawfulEvil     Alignment = "LE"
	NeutralEvil    Alignment = "NE"
	ChaoticEvil    Alignment = "CE"
)

// ParseAlignment validates s case-insensitively
func ParseAlignment(s string) (Alignment, error) {
	switch a := Alignment(strings.ToUpper(strings.TrimSpace(s))); a {
	case LawfulGood, NeutralGood, ChaoticGood,
		LawfulNeutral, TrueNeutral, ChaoticNeutral,
		LawfulEvil, NeutralEvil, ChaoticEvil:
		return a, nil
	}
	return "", dnderr.InvalidArgumentf("unknown alignment %q", s).WithMeta("value", s)
}

func (a Alignment) IsGood() bool    { return strings.HasSuffix(string(a), "G") }
func (a Alignment) IsEvil() bool    { return strings.HasSuffix(string(a), "E") }
func (a Alignment) IsLawful() bool  { return strings.HasPrefix(string(a), "L") }
func (a Alignment) IsChaotic() bool { return strings.HasPrefix(string(a), "C") }
