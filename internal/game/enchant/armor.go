package enchant

import (
	"github.com/cory-johannsen/itemforge/internal/game/inventory"
	"github.com/cory-johannsen/itemforge/internal/game/trait"
)

// Head egos each head category accepts on a good draw.
var (
	helmGoodEgos = map[trait.EgoID]bool{
		trait.EgoBrilliance:  true,
		trait.EgoDark:        true,
		trait.EgoInfravision: true,
		trait.EgoHProtection: true,
		trait.EgoSeeing:      true,
		trait.EgoLight:       true,
		trait.EgoHelmDemon:   true,
	}
	crownGoodEgos = map[trait.EgoID]bool{
		trait.EgoTelepathy:    true,
		trait.EgoMagi:         true,
		trait.EgoMight:        true,
		trait.EgoRegeneration: true,
		trait.EgoLordliness:   true,
		trait.EgoSeeing:       true,
		trait.EgoBasilisk:     true,
	}
)

func applyBodyArmor(p *pass) {
	it := p.item
	if it.Category == inventory.CategoryDragonArmor {
		if p.dragonStep() {
			return
		}
		// Tier 0 keeps the resistance but never reaches an artifact.
		if p.tier == TierNormal {
			return
		}
		if p.r.OneIn(50) || p.tier >= TierSpecial {
			p.promote()
		}
		return
	}

	switch {
	case p.good():
		if it.Category == inventory.CategorySoftArmor && it.Sval == inventory.SvalRobe && p.r.RandInt0(100) < 15 {
			if p.r.OneIn(5) {
				it.EgoID = trait.EgoTwilight
				it.Sval = "twilight_robe"
				it.BaseAC = 0
				it.ToAC = 0
			} else {
				it.EgoID = trait.EgoPermanence
			}
			return
		}
		if p.promoteOnOdds(20) {
			return
		}
		it.EgoID = p.draw(true, maxEgoRedraws, func(id trait.EgoID) bool {
			switch id {
			case trait.EgoDwarven:
				return it.Category != inventory.CategoryHardArmor
			case trait.EgoDruid:
				return it.Category != inventory.CategorySoftArmor
			}
			return false
		})
		switch it.EgoID {
		case trait.EgoResistance:
			if p.r.OneIn(4) {
				it.Traits.Add(trait.ResPois)
			}
		case trait.EgoDwarven:
			lighten(it, 5)
		case trait.EgoArmorDemon:
			demonBundle(p)
		}
	case p.cursed():
		it.EgoID = p.draw(false, maxEgoRedraws, nil)
		if it.EgoID == trait.EgoArmorMorgul {
			morgulArmorBundle(p)
		}
	}
}

// lighten makes the item two thirds of its template weight and adds acBonus
// to its base armour class.
func lighten(it *inventory.Item, acBonus int) {
	weight, ac := it.Weight, it.BaseAC
	if it.Base != nil {
		weight, ac = it.Base.Weight, it.Base.AC
	}
	it.Weight = 2 * weight / 3
	it.BaseAC = ac + acBonus
}

// demonBundle is shared by the demon body armour and helm egos.
func demonBundle(p *pass) {
	if p.r.OneIn(3) {
		p.item.Curses.Set(trait.HeavyCurse)
	}
	switch {
	case p.r.OneIn(3):
		p.item.Traits.Add(trait.DrainExp)
	case p.r.OneIn(2):
		p.item.Traits.Add(trait.DrainHP)
	default:
		p.item.Traits.Add(trait.DrainMana)
	}
}

func morgulArmorBundle(p *pass) {
	if p.r.OneIn(3) {
		p.item.Curses.Set(trait.HeavyCurse)
	}
	if p.r.OneIn(9) {
		p.item.Traits.Add(trait.TyCurse)
	}
	if p.r.OneIn(4) {
		p.item.Traits.Add(trait.DrainExp)
	}
}

func applyShield(p *pass) {
	it := p.item
	if p.dragonStep() {
		return
	}
	if !p.good() {
		if p.cursed() {
			it.EgoID = p.draw(false, maxEgoRedraws, nil)
		}
		return
	}
	if p.promoteOnOdds(20) {
		return
	}
	it.EgoID = p.draw(true, maxEgoRedraws, func(id trait.EgoID) bool {
		return id == trait.EgoShieldDwarven &&
			it.Sval != inventory.SvalSmallMetalShield && it.Sval != inventory.SvalLargeMetalShield
	})
	switch it.EgoID {
	case trait.EgoEndurance:
		if !p.r.OneIn(3) {
			addMissing(p.r, it, trait.HighResists)
		}
		if p.r.OneIn(4) {
			it.Traits.Add(trait.ResPois)
		}
	case trait.EgoReflection:
		if it.Sval == inventory.SvalMirrorShield {
			it.EgoID = trait.NoEgo
		}
	case trait.EgoShieldDwarven:
		lighten(it, 3)
	}
}

func applyHelm(p *pass) {
	it := p.item
	if p.dragonStep() {
		return
	}
	switch {
	case p.good():
		if p.promoteOnOdds(20) {
			return
		}
		it.EgoID = p.draw(true, maxEgoRedraws, func(id trait.EgoID) bool { return !helmGoodEgos[id] })
		switch it.EgoID {
		case trait.EgoSeeing:
			if p.r.OneIn(7) {
				addMissing(p.r, it, trait.WeakESP)
			}
		case trait.EgoHelmDemon:
			demonBundle(p)
		}
	case p.cursed():
		it.EgoID = p.drawCursed()
	}
}

func applyCrown(p *pass) {
	it := p.item
	switch {
	case p.good():
		if p.promoteOnOdds(20) {
			return
		}
		it.EgoID = p.draw(true, maxEgoRedraws, func(id trait.EgoID) bool { return !crownGoodEgos[id] })
		if it.EgoID == trait.EgoSeeing && p.r.OneIn(3) {
			addMissing(p.r, it, trait.WeakESP)
		}
	case p.cursed():
		it.EgoID = p.drawCursed()
	}
}

func applyBoots(p *pass) {
	it := p.item
	if p.dragonStep() {
		return
	}
	switch {
	case p.good():
		if p.promoteOnOdds(20) {
			return
		}
		it.EgoID = p.draw(true, maxEgoRedraws, nil)
		if it.EgoID == trait.EgoSlowDescent && p.r.OneIn(2) {
			addMissing(p.r, it, trait.HighResists)
		}
	case p.cursed():
		it.EgoID = p.draw(false, maxEgoRedraws, nil)
	}
}

func applyGloves(p *pass) {
	it := p.item
	if p.dragonStep() {
		return
	}
	switch {
	case p.good():
		if p.promoteOnOdds(20) {
			return
		}
		it.EgoID = p.draw(true, maxEgoRedraws, nil)
	case p.cursed():
		it.EgoID = p.draw(false, maxEgoRedraws, nil)
	}
}

func applyCloak(p *pass) {
	it := p.item
	switch {
	case p.good():
		if p.promoteOnOdds(20) {
			return
		}
		it.EgoID = p.draw(true, maxEgoRedraws, nil)
		if it.EgoID == trait.EgoBat {
			it.ToDam -= 6
			it.ToHit -= 6
			it.Traits.Add(trait.Levitation)
		}
	case p.cursed():
		it.EgoID = p.draw(false, maxEgoRedraws, nil)
		if it.EgoID == trait.EgoNazgul {
			it.ToDam -= 3
			it.ToHit -= 3
		}
	}
}
