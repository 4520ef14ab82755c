package ego

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/itemforge/internal/game/dice"
	"github.com/cory-johannsen/itemforge/internal/game/inventory"
	"github.com/cory-johannsen/itemforge/internal/game/trait"
)

// Apply applies the effects of item's ego: its traits, curse flags, extra
// random grants and bonus rolls.
//
// Precondition: item.EgoID is set. Unknown egos are logged and ignored.
func (t *Table) Apply(r *dice.Roller, item *inventory.Item, depth int) {
	d, ok := t.byID[item.EgoID]
	if !ok {
		t.logger.Warn("applying unknown ego",
			zap.String("ego", string(item.EgoID)),
			zap.String("item", item.BaseID),
		)
		return
	}

	item.Traits.Union(d.Traits)
	if d.Cost == 0 {
		item.Broken = true
	}
	item.Curses.Merge(d.Curses)
	applyGen(r, item, d)
	if d.Activation != "" {
		item.Activation = d.Activation
	}

	if (item.IsCursed() || item.Broken) && !d.HasGen(GenPowerful) {
		item.ToHit -= rollMagnitude(r, d.MaxToHit)
		item.ToDam -= rollMagnitude(r, d.MaxToDam)
		item.ToAC -= rollMagnitude(r, d.MaxToAC)
		item.Pval -= rollMagnitude(r, d.MaxPval)
		return
	}

	item.ToHit += rollSigned(r, d.MaxToHit)
	item.ToDam += rollSigned(r, d.MaxToDam)
	item.ToAC += rollSigned(r, d.MaxToAC)
	if d.MaxPval != 0 {
		applyPval(r, item, d, depth)
	}
	if item.EgoID == trait.EgoSpeed && depth < 50 && item.Pval > 0 {
		item.Pval = r.RandInt1(item.Pval)
	}
	if item.Sval == inventory.SvalHayabusa && item.Pval > 2 && item.EgoID != trait.EgoAttacks {
		item.Pval = 2
	}
}

func applyGen(r *dice.Roller, item *inventory.Item, d *Def) {
	grant := func(pool []trait.Trait) {
		all := item.AllTraits()
		if g := all.AddOneOf(r, pool); g != trait.None {
			item.Traits.Add(g)
		}
	}
	for _, g := range d.Gen {
		switch g {
		case GenOneSustain:
			grant(trait.Sustains)
		case GenXtraPower:
			grant(trait.Abilities)
		case GenXtraHRes:
			grant(trait.HighResists)
		case GenXtraERes:
			grant(trait.EleResists)
		case GenXtraDRes:
			grant(trait.DragonEleResists)
		case GenXtraLRes:
			grant(trait.LordlyHighResists)
		case GenXtraRes:
			if r.OneIn(2) {
				grant(trait.EleResists)
			} else {
				grant(trait.HighResists)
			}
		case GenXtraDice:
			item.Dice.Count++
			for item.Dice.Count < 9 && r.OneIn(item.Dice.Count) {
				item.Dice.Count++
			}
		}
	}
}

// applyPval rolls the pval for the ego, honouring the per-ego rules.
func applyPval(r *dice.Roller, item *inventory.Item, d *Def, depth int) {
	switch item.EgoID {
	case trait.EgoHolyAvenger:
		if item.HasTrait(trait.Blows) {
			item.Pval++
			if depth > 60 && r.OneIn(3) && item.Dice.Count*(item.Dice.Sides+1) < 15 {
				item.Pval++
			}
			return
		}
	case trait.EgoDemon:
		if item.HasTrait(trait.Blows) {
			item.Pval += r.RandInt1(2)
			return
		}
	case trait.EgoAttacks:
		item.Pval = r.RandInt1(d.MaxPval*depth/100 + 1)
		if item.Pval > 3 {
			item.Pval = 3
		}
		if item.Sval == inventory.SvalHayabusa {
			item.Pval += r.RandInt1(2)
		}
		return
	case trait.EgoBat:
		item.Pval = r.RandInt1(d.MaxPval)
		if item.Sval == inventory.SvalElvenCloak {
			item.Pval += r.RandInt1(2)
		}
		return
	case trait.EgoArmorDemon, trait.EgoDruid:
		item.Pval = r.RandInt1(d.MaxPval)
		return
	}
	item.Pval += rollSigned(r, d.MaxPval)
}

// rollSigned returns randint1(max) for a positive bound, -randint1(-max) for a
// negative one and 0 for zero.
func rollSigned(r *dice.Roller, max int) int {
	switch {
	case max > 0:
		return r.RandInt1(max)
	case max < 0:
		return -r.RandInt1(-max)
	}
	return 0
}

// rollMagnitude returns randint1(|max|), or 0 for a zero bound.
func rollMagnitude(r *dice.Roller, max int) int {
	if max < 0 {
		max = -max
	}
	if max == 0 {
		return 0
	}
	return r.RandInt1(max)
}
