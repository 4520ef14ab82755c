package enchant

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/itemforge/internal/game/dice"
	"github.com/cory-johannsen/itemforge/internal/game/inventory"
	"github.com/cory-johannsen/itemforge/internal/game/trait"
)

// maxBowRerolls bounds the fallback re-roll when a bow draws extra blows.
const maxBowRerolls = 32

// themeTraits lists, per bias, the traits tried in priority order.
var themeTraits = map[trait.Bias][]trait.Trait{
	trait.BiasWarrior:  {trait.Str, trait.Con, trait.Dex},
	trait.BiasMage:     {trait.Int},
	trait.BiasPriestly: {trait.Wis},
	trait.BiasRanger:   {trait.Dex, trait.Con, trait.Str},
	trait.BiasRogue:    {trait.Stealth, trait.Search},
	trait.BiasStr:      {trait.Str},
	trait.BiasInt:      {trait.Int},
	trait.BiasWis:      {trait.Wis},
	trait.BiasDex:      {trait.Dex},
	trait.BiasCon:      {trait.Con},
	trait.BiasChr:      {trait.Chr},
}

// biasHint is a chance to assign a bias after a fallback trait lands.
type biasHint struct {
	bias  trait.Bias
	oneIn int
}

// fallbackEntry is one band of the unbiased pval trait table.
type fallbackEntry struct {
	hi    int
	trait trait.Trait
	hints []biasHint
}

// pvalFallback is indexed by randint1(23) for weapons and ammo and by
// randint1(19) for everything else. Hints are tried in order; the first that
// fires wins.
var pvalFallback = []fallbackEntry{
	{2, trait.Str, []biasHint{{trait.BiasStr, 13}, {trait.BiasWarrior, 7}}},
	{4, trait.Int, []biasHint{{trait.BiasInt, 13}, {trait.BiasMage, 7}}},
	{6, trait.Wis, []biasHint{{trait.BiasWis, 13}, {trait.BiasPriestly, 7}}},
	{8, trait.Dex, []biasHint{{trait.BiasDex, 13}, {trait.BiasRogue, 7}}},
	{10, trait.Con, []biasHint{{trait.BiasCon, 13}, {trait.BiasRanger, 9}}},
	{12, trait.Chr, []biasHint{{trait.BiasChr, 13}}},
	{14, trait.Stealth, []biasHint{{trait.BiasRogue, 3}}},
	{16, trait.Search, []biasHint{{trait.BiasRanger, 9}}},
	{18, trait.Infra, nil},
	{19, trait.Speed, []biasHint{{trait.BiasWarrior, 11}}},
	{21, trait.Tunnel, nil},
	{23, trait.Blows, []biasHint{{trait.BiasWarrior, 11}}},
}

// AddPvalTrait grants pval-bearing traits to item, preferring the traits of
// its bias. Each themed grant ends the call on a coin flip; when none does,
// one roll on the unbiased table follows, which may assign a bias.
//
// Postcondition: Returns the last trait granted. Traits are never removed and
// a non-none bias is never replaced.
func AddPvalTrait(r *dice.Roller, item *inventory.Item) trait.Trait {
	for _, t := range themeTraits[item.Bias] {
		if item.HasTrait(t) {
			continue
		}
		item.Traits.Add(t)
		if r.OneIn(2) {
			return t
		}
	}

	if (item.Bias == trait.BiasMage || item.Bias == trait.BiasPriestly) &&
		item.Category == inventory.CategorySoftArmor && item.Sval == inventory.SvalRobe &&
		!item.HasTrait(trait.DecMana) && r.OneIn(3) {
		item.Traits.Add(trait.DecMana)
		if r.OneIn(2) {
			return trait.DecMana
		}
	}

	n := 19
	if item.Category.IsWeaponAmmo() {
		n = 23
	}
	for attempt := 0; attempt < maxBowRerolls; attempt++ {
		e := lookupFallback(r.RandInt1(n))
		if e.trait == trait.Blows && item.Category == inventory.CategoryBow {
			continue
		}
		item.Traits.Add(e.trait)
		if item.Bias == trait.BiasNone {
			for _, h := range e.hints {
				if r.OneIn(h.oneIn) {
					item.SetBias(h.bias)
					break
				}
			}
		}
		return e.trait
	}

	r.Logger().Warn("pval trait re-roll exhausted; granting strength",
		zap.String("item", item.BaseID),
		zap.Int("attempts", maxBowRerolls),
	)
	item.Traits.Add(trait.Str)
	return trait.Str
}

func lookupFallback(roll int) fallbackEntry {
	for _, e := range pvalFallback {
		if roll <= e.hi {
			return e
		}
	}
	return pvalFallback[len(pvalFallback)-1]
}
