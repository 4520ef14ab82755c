// Package trait defines the flag vocabulary shared by the item generation
// engine: trait flags, curse severities, thematic biases and ego identifiers.
//
// Everything here is pure data. Higher layers decide when flags are granted.
package trait

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Trait is a single boolean capability an item can carry.
type Trait int

// Trait flags. The zero value None is never stored in a Set.
const (
	None Trait = iota

	// Stat and pval-bearing abilities.
	Str
	Int
	Wis
	Dex
	Con
	Chr
	Stealth
	Search
	Infra
	Tunnel
	Speed
	Blows

	// Slays and brands.
	SlayAnimal
	SlayEvil
	SlayUndead
	SlayDemon
	SlayOrc
	SlayTroll
	SlayGiant
	SlayDragon
	KillDragon
	SlayHuman
	Vorpal
	Impact
	BrandPois
	BrandAcid
	BrandElec
	BrandFire
	BrandCold
	Chaotic
	Vampiric

	// Sustains.
	SustStr
	SustInt
	SustWis
	SustDex
	SustCon
	SustChr

	// Immunities.
	ImAcid
	ImElec
	ImFire
	ImCold

	// Resistances.
	ResAcid
	ResElec
	ResFire
	ResCold
	ResPois
	ResFear
	ResLite
	ResDark
	ResBlind
	ResConf
	ResSound
	ResShards
	ResNether
	ResNexus
	ResChaos
	ResDisen

	// Abilities.
	Reflect
	ShFire
	ShElec
	ShCold
	FreeAct
	HoldExp
	SeeInvis
	Levitation
	Lite1
	Lite2
	SlowDigest
	Regen
	Warning
	Telepathy

	// Weak telepathy.
	EspAnimal
	EspUndead
	EspDemon
	EspOrc
	EspTroll
	EspGiant
	EspDragon
	EspHuman
	EspEvil
	EspGood
	EspNonliving
	EspUnique

	// Miscellaneous.
	DecMana
	Blessed
	Activate
	XtraMight
	XtraShots
	IgnoreAcid
	IgnoreElec
	IgnoreFire
	IgnoreCold

	// Curse-bearing traits.
	TyCurse
	Aggravate
	DrainExp
	DrainHP
	DrainMana
	Teleport
	NoTele
	NoMagic
	AddLCurse
	AddHCurse

	traitCount
)

// Set capacity guard: compilation fails once traitCount outgrows the bitset.
const _ = uint(setBits - int(traitCount))

var traitNames = [traitCount]string{
	None:         "none",
	Str:          "str",
	Int:          "int",
	Wis:          "wis",
	Dex:          "dex",
	Con:          "con",
	Chr:          "chr",
	Stealth:      "stealth",
	Search:       "search",
	Infra:        "infra",
	Tunnel:       "tunnel",
	Speed:        "speed",
	Blows:        "blows",
	SlayAnimal:   "slay_animal",
	SlayEvil:     "slay_evil",
	SlayUndead:   "slay_undead",
	SlayDemon:    "slay_demon",
	SlayOrc:      "slay_orc",
	SlayTroll:    "slay_troll",
	SlayGiant:    "slay_giant",
	SlayDragon:   "slay_dragon",
	KillDragon:   "kill_dragon",
	SlayHuman:    "slay_human",
	Vorpal:       "vorpal",
	Impact:       "impact",
	BrandPois:    "brand_pois",
	BrandAcid:    "brand_acid",
	BrandElec:    "brand_elec",
	BrandFire:    "brand_fire",
	BrandCold:    "brand_cold",
	Chaotic:      "chaotic",
	Vampiric:     "vampiric",
	SustStr:      "sust_str",
	SustInt:      "sust_int",
	SustWis:      "sust_wis",
	SustDex:      "sust_dex",
	SustCon:      "sust_con",
	SustChr:      "sust_chr",
	ImAcid:       "im_acid",
	ImElec:       "im_elec",
	ImFire:       "im_fire",
	ImCold:       "im_cold",
	ResAcid:      "res_acid",
	ResElec:      "res_elec",
	ResFire:      "res_fire",
	ResCold:      "res_cold",
	ResPois:      "res_pois",
	ResFear:      "res_fear",
	ResLite:      "res_lite",
	ResDark:      "res_dark",
	ResBlind:     "res_blind",
	ResConf:      "res_conf",
	ResSound:     "res_sound",
	ResShards:    "res_shards",
	ResNether:    "res_nether",
	ResNexus:     "res_nexus",
	ResChaos:     "res_chaos",
	ResDisen:     "res_disen",
	Reflect:      "reflect",
	ShFire:       "sh_fire",
	ShElec:       "sh_elec",
	ShCold:       "sh_cold",
	FreeAct:      "free_act",
	HoldExp:      "hold_exp",
	SeeInvis:     "see_invis",
	Levitation:   "levitation",
	Lite1:        "lite_1",
	Lite2:        "lite_2",
	SlowDigest:   "slow_digest",
	Regen:        "regen",
	Warning:      "warning",
	Telepathy:    "telepathy",
	EspAnimal:    "esp_animal",
	EspUndead:    "esp_undead",
	EspDemon:     "esp_demon",
	EspOrc:       "esp_orc",
	EspTroll:     "esp_troll",
	EspGiant:     "esp_giant",
	EspDragon:    "esp_dragon",
	EspHuman:     "esp_human",
	EspEvil:      "esp_evil",
	EspGood:      "esp_good",
	EspNonliving: "esp_nonliving",
	EspUnique:    "esp_unique",
	DecMana:      "dec_mana",
	Blessed:      "blessed",
	Activate:     "activate",
	XtraMight:    "xtra_might",
	XtraShots:    "xtra_shots",
	IgnoreAcid:   "ignore_acid",
	IgnoreElec:   "ignore_elec",
	IgnoreFire:   "ignore_fire",
	IgnoreCold:   "ignore_cold",
	TyCurse:      "ty_curse",
	Aggravate:    "aggravate",
	DrainExp:     "drain_exp",
	DrainHP:      "drain_hp",
	DrainMana:    "drain_mana",
	Teleport:     "teleport",
	NoTele:       "no_tele",
	NoMagic:      "no_magic",
	AddLCurse:    "add_l_curse",
	AddHCurse:    "add_h_curse",
}

var traitsByName = func() map[string]Trait {
	m := make(map[string]Trait, traitCount)
	for t := Str; t < traitCount; t++ {
		m[traitNames[t]] = t
	}
	return m
}()

// String returns the snake_case content name of t.
func (t Trait) String() string {
	if t < None || t >= traitCount {
		return fmt.Sprintf("trait(%d)", int(t))
	}
	return traitNames[t]
}

// Valid reports whether t is a storable trait.
func (t Trait) Valid() bool {
	return t > None && t < traitCount
}

// Parse returns the Trait named name.
//
// Postcondition: Returns a valid Trait or an error naming the unknown flag.
func Parse(name string) (Trait, error) {
	t, ok := traitsByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return None, fmt.Errorf("trait: unknown trait %q", name)
	}
	return t, nil
}

// Stats lists the six stat traits in canonical order.
var Stats = []Trait{Str, Int, Wis, Dex, Con, Chr}

// Set is a fixed-size bitset of traits. The zero value is empty and ready to use.
type Set struct {
	bits [setWords]uint64
}

const (
	setWords = 2
	setBits  = setWords * 64
)

// NewSet returns a Set holding ts.
func NewSet(ts ...Trait) Set {
	var s Set
	for _, t := range ts {
		s.Add(t)
	}
	return s
}

// Has reports whether t is present.
func (s Set) Has(t Trait) bool {
	if !t.Valid() {
		return false
	}
	return s.bits[t/64]&(1<<(uint(t)%64)) != 0
}

// Add inserts t and reports whether it was newly added.
//
// Precondition: t must be valid; invalid traits are ignored.
func (s *Set) Add(t Trait) bool {
	if !t.Valid() || s.Has(t) {
		return false
	}
	s.bits[t/64] |= 1 << (uint(t) % 64)
	return true
}

// Remove deletes t.
func (s *Set) Remove(t Trait) {
	if !t.Valid() {
		return
	}
	s.bits[t/64] &^= 1 << (uint(t) % 64)
}

// Union adds every trait of o to s.
func (s *Set) Union(o Set) {
	for i := range s.bits {
		s.bits[i] |= o.bits[i]
	}
}

// Len returns the number of traits in s.
func (s Set) Len() int {
	n := 0
	for t := Str; t < traitCount; t++ {
		if s.Has(t) {
			n++
		}
	}
	return n
}

// Slice returns the traits of s in declaration order.
func (s Set) Slice() []Trait {
	out := make([]Trait, 0, 8)
	for t := Str; t < traitCount; t++ {
		if s.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

// Names returns the content names of s sorted alphabetically.
func (s Set) Names() []string {
	ts := s.Slice()
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.String()
	}
	sort.Strings(out)
	return out
}

// UnmarshalYAML decodes a sequence of trait names.
func (s *Set) UnmarshalYAML(node *yaml.Node) error {
	var names []string
	if err := node.Decode(&names); err != nil {
		return fmt.Errorf("trait: expected a list of trait names at line %d: %w", node.Line, err)
	}
	var out Set
	for _, n := range names {
		t, err := Parse(n)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		out.Add(t)
	}
	*s = out
	return nil
}

// MarshalYAML encodes s as a sorted list of names.
func (s Set) MarshalYAML() (interface{}, error) {
	return s.Names(), nil
}

// IsZero reports whether s is empty, so omitempty drops empty sets.
func (s Set) IsZero() bool {
	return s.Len() == 0
}
