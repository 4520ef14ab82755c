package trait

import "github.com/cory-johannsen/itemforge/internal/game/dice"

// Trait pools drawn from by the "one random X" rules.
var (
	EleResists        = []Trait{ResAcid, ResElec, ResFire, ResCold}
	DragonEleResists  = []Trait{ResAcid, ResElec, ResFire, ResCold, ResPois}
	HighResists       = []Trait{ResPois, ResLite, ResDark, ResShards, ResBlind, ResConf, ResSound, ResNether, ResNexus, ResChaos, ResDisen, ResFear}
	LordlyHighResists = []Trait{ResLite, ResDark, ResShards, ResBlind, ResConf, ResSound, ResNether, ResNexus, ResChaos, ResFear}
	Sustains          = []Trait{SustStr, SustInt, SustWis, SustDex, SustCon, SustChr}
	Abilities         = []Trait{Levitation, Lite1, SeeInvis, Warning, SlowDigest, Regen, FreeAct, HoldExp}
	StrongESP         = []Trait{Telepathy, EspEvil, EspNonliving}
	WeakESP           = []Trait{EspAnimal, EspUndead, EspDemon, EspOrc, EspTroll, EspGiant, EspDragon, EspHuman, EspGood, EspUnique}
	Immunities        = []Trait{ImAcid, ImElec, ImFire, ImCold}
)

// AddOneOf adds one trait of pool that s does not yet hold, chosen uniformly.
//
// Postcondition: Returns the added trait, or None when every trait of pool is
// already present (s is then unchanged).
func (s *Set) AddOneOf(src dice.Source, pool []Trait) Trait {
	absent := make([]Trait, 0, len(pool))
	for _, t := range pool {
		if !s.Has(t) {
			absent = append(absent, t)
		}
	}
	if len(absent) == 0 {
		return None
	}
	t := absent[src.Intn(len(absent))]
	s.Add(t)
	return t
}

// HasAnyOf reports whether s holds at least one trait of pool.
func (s Set) HasAnyOf(pool []Trait) bool {
	for _, t := range pool {
		if s.Has(t) {
			return true
		}
	}
	return false
}
