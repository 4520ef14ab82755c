// Package enchant implements the item enchantment pass: power tier
// selection, the shared numeric roll, the bias-driven pval trait picker and
// the per-category policies that assign egos or promote items to artifacts.
package enchant

import (
	"fmt"
	"strings"
)

// Mode is the caller's drop-context bitmask.
type Mode uint8

// Mode flags.
const (
	ModeGood Mode = 1 << iota
	ModeGreat
	ModeSpecial
	ModeCursed
	ModeNoFixedArtifact
)

var modeNames = []struct {
	m    Mode
	name string
}{
	{ModeGood, "good"},
	{ModeGreat, "great"},
	{ModeSpecial, "special"},
	{ModeCursed, "cursed"},
	{ModeNoFixedArtifact, "no_fixed_artifact"},
}

// Has reports whether every flag of f is set in m.
func (m Mode) Has(f Mode) bool {
	return m&f == f
}

// String returns the set flags joined by "|", or "none".
func (m Mode) String() string {
	var parts []string
	for _, mn := range modeNames {
		if m.Has(mn.m) {
			parts = append(parts, mn.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// ParseMode parses a "|" or "," separated list of mode names.
func ParseMode(s string) (Mode, error) {
	var m Mode
	for _, f := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' }) {
		name := strings.ToLower(strings.TrimSpace(f))
		if name == "" || name == "none" {
			continue
		}
		found := false
		for _, mn := range modeNames {
			if mn.name == name {
				m |= mn.m
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("enchant: unknown mode flag %q", f)
		}
	}
	return m, nil
}

// Tier is the power of an enchantment pass.
type Tier int

// Tiers, weakest first. The values match the legacy signed power scale.
const (
	TierCursed2 Tier = iota - 2
	TierCursed1
	TierNormal
	TierGood
	TierGreat
	TierSpecial
)

// TierFromLegacy converts a signed legacy power value. Values below -2 fold
// into TierCursed2 and values above 3 into TierSpecial.
func TierFromLegacy(power int) Tier {
	switch {
	case power < int(TierCursed2):
		return TierCursed2
	case power > int(TierSpecial):
		return TierSpecial
	}
	return Tier(power)
}

// Legacy returns the signed legacy power value of t.
func (t Tier) Legacy() int {
	return int(t)
}

// Magnitude returns |t|.
func (t Tier) Magnitude() int {
	if t < 0 {
		return -int(t)
	}
	return int(t)
}

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierCursed2:
		return "cursed2"
	case TierCursed1:
		return "cursed1"
	case TierNormal:
		return "normal"
	case TierGood:
		return "good"
	case TierGreat:
		return "great"
	case TierSpecial:
		return "special"
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// ApplyCursedMode applies the CURSED mode bit to a legacy power value:
// positive powers are negated, the rest are decremented.
//
// Postcondition: the result is always negative.
func ApplyCursedMode(power int) int {
	if power > 0 {
		return -power
	}
	return power - 1
}
