package enchant

import (
	"github.com/cory-johannsen/itemforge/internal/game/inventory"
	"github.com/cory-johannsen/itemforge/internal/game/trait"
)

func applyWeapon(p *pass) {
	it := p.item
	switch {
	case p.good():
		if p.promoteOnOdds(40) {
			return
		}
		it.EgoID = p.draw(true, maxEgoRedraws, func(id trait.EgoID) bool {
			switch id {
			case trait.EgoSharpness, trait.EgoWeird:
				return it.Category != inventory.CategorySword
			case trait.EgoEarthquakes:
				return it.Category != inventory.CategoryHafted
			case trait.EgoDigging:
				return true
			}
			return false
		})
		weaponBundle(p)
		superCharge(p.r, it)
	case p.cursed():
		if p.r.RandInt0(MaxDepth) >= p.depth {
			return
		}
		it.EgoID = p.draw(false, maxHayabusaRedraws, func(id trait.EgoID) bool {
			if id == trait.EgoWeird && it.Category != inventory.CategorySword {
				return true
			}
			return it.Sval == inventory.SvalHayabusa && p.e.egos.MaxPval(id) < 0
		})
		switch it.EgoID {
		case trait.EgoMorgul:
			if p.r.OneIn(6) {
				it.Traits.Add(trait.TyCurse)
			}
			if p.r.OneIn(3) {
				it.Curses.Set(trait.HeavyCurse)
			}
		case trait.EgoWeird:
			if p.r.OneIn(4) {
				it.Traits.Add(trait.BrandPois)
			}
			if p.r.OneIn(4) {
				it.Traits.Add(trait.ResNether)
			}
			if p.r.OneIn(3) {
				it.Traits.Add(trait.NoMagic)
			}
			if p.r.OneIn(6) {
				it.Traits.Add(trait.NoTele)
			}
			if p.r.OneIn(6) {
				it.Traits.Add(trait.TyCurse)
			}
			if p.r.OneIn(6) {
				it.Curses.Set(trait.HeavyCurse)
			}
		}
	}
}

// weaponBundle adds the extras that come with a good melee ego.
func weaponBundle(p *pass) {
	it, r := p.item, p.r
	switch it.EgoID {
	case trait.EgoHolyAvenger:
		if r.OneIn(4) && p.depth > 40 {
			it.Traits.Add(trait.Blows)
		}
	case trait.EgoDefender:
		if r.OneIn(3) {
			it.Traits.Add(trait.ResPois)
		}
		if r.OneIn(3) {
			it.Traits.Add(trait.Warning)
		}
	case trait.EgoKillDragon:
		if r.OneIn(3) {
			it.Traits.Add(trait.ResPois)
		}
	case trait.EgoWestNorth:
		if r.OneIn(3) {
			it.Traits.Add(trait.ResFear)
		}
	case trait.EgoSlayingWeapon:
		if r.OneIn(3) {
			it.Dice.Count *= 2
		} else {
			it.Dice.Count++
			for it.Dice.Count < 9 && r.OneIn(it.Dice.Count) {
				it.Dice.Count++
			}
			it.Dice.Sides++
			for it.Dice.Sides < 30 && r.OneIn(it.Dice.Sides) {
				it.Dice.Sides++
			}
		}
		if r.OneIn(5) {
			it.Traits.Add(trait.BrandPois)
		}
		if it.Category == inventory.CategorySword && r.OneIn(3) {
			it.Traits.Add(trait.Vorpal)
		}
	case trait.EgoTrump:
		if r.OneIn(5) {
			it.Traits.Add(trait.SlayDemon)
		}
		if r.OneIn(7) {
			addMissing(r, it, trait.Abilities)
		}
	case trait.EgoPattern:
		if r.OneIn(3) {
			it.Traits.Add(trait.HoldExp)
		}
		if r.OneIn(3) {
			it.Traits.Add(trait.Dex)
		}
		if r.OneIn(5) {
			it.Traits.Add(trait.ResFear)
		}
	case trait.EgoSharpness:
		it.Pval = r.MBonus(5, p.depth) + 1
	case trait.EgoEarthquakes:
		if r.OneIn(3) && p.depth > 60 {
			it.Traits.Add(trait.Blows)
		} else {
			it.Pval = r.MBonus(3, p.depth)
		}
	case trait.EgoVampiric:
		if r.OneIn(5) {
			it.Traits.Add(trait.SlayHuman)
		}
	case trait.EgoDemon:
		switch {
		case r.OneIn(3):
			it.Traits.Add(trait.DrainExp)
		case r.OneIn(2):
			it.Traits.Add(trait.Chaotic)
		default:
			it.Traits.Add(trait.Teleport)
		}
	}
}

func applyBow(p *pass) {
	if !p.good() {
		if p.cursed() {
			// Launchers have no cursed egos; draw reports that.
			p.item.EgoID = p.draw(false, maxEgoRedraws, nil)
		}
		return
	}
	if p.promoteOnOdds(20) {
		return
	}
	p.item.EgoID = p.draw(true, maxEgoRedraws, nil)
}

func applyAmmo(p *pass) {
	it := p.item
	switch {
	case p.good():
		if p.tier >= TierSpecial && p.promote() {
			return
		}
		it.EgoID = p.draw(true, maxEgoRedraws, nil)
		if it.EgoID == trait.EgoSlayingBolt {
			it.Dice.Count++
		}
		superCharge(p.r, it)
	case p.cursed():
		if p.r.RandInt0(MaxDepth) < p.depth {
			it.EgoID = p.draw(false, maxEgoRedraws, nil)
		}
	}
}

func applyDigger(p *pass) {
	it := p.item
	switch {
	case p.good():
		if p.r.OneIn(30) || p.tier >= TierSpecial {
			if p.promote() {
				return
			}
		}
		it.EgoID = trait.EgoDigging
	case p.tier == TierCursed2:
		it.Pval = -(5 + p.r.RandInt1(5))
	case p.tier == TierCursed1:
		it.Pval = -it.Pval
	}
}
