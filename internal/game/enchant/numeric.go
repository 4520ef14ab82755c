package enchant

import (
	"github.com/cory-johannsen/itemforge/internal/game/dice"
	"github.com/cory-johannsen/itemforge/internal/game/inventory"
	"github.com/cory-johannsen/itemforge/internal/game/trait"
)

// MaxDepth is the number of dungeon levels. Depths are clamped to MaxDepth-1.
const MaxDepth = 128

// ClampDepth clamps depth into [0, MaxDepth-1].
func ClampDepth(depth int) int {
	switch {
	case depth < 0:
		return 0
	case depth > MaxDepth-1:
		return MaxDepth - 1
	}
	return depth
}

// ApplyCommonNumericEnchant rolls the to-hit/to-dam (weapons, ammo, bows,
// diggers) or to-ac (armour) bonus for tier and applies it to item.
//
// Positive tiers add the first roll and, at magnitude 2 or more, the second
// roll; negative tiers subtract them. When a negative tier leaves the net
// bonus below zero CURSED is set. Tier 0 changes nothing and other categories
// are left alone.
func ApplyCommonNumericEnchant(r *dice.Roller, item *inventory.Item, tier Tier, depth int) {
	switch {
	case item.Category.IsWeaponAmmo():
		applyWeaponNumeric(r, item, tier, depth)
	case item.Category.IsArmour():
		applyArmourNumeric(r, item, tier, depth)
	}
}

func applyArmourNumeric(r *dice.Roller, item *inventory.Item, tier Tier, depth int) {
	toac1 := r.RandInt1(5) + r.MBonus(5, depth)
	toac2 := r.MBonus(10, depth)

	switch {
	case tier > TierNormal:
		item.ToAC += toac1
		if tier.Magnitude() >= 2 {
			item.ToAC += toac2
		}
	case tier < TierNormal:
		item.ToAC -= toac1
		if tier.Magnitude() >= 2 {
			item.ToAC -= toac2
		}
		if item.ToAC < 0 {
			item.Curses.Set(trait.Cursed)
		}
	}
}

func applyWeaponNumeric(r *dice.Roller, item *inventory.Item, tier Tier, depth int) {
	tohit1 := r.RandInt1(5) + r.MBonus(5, depth)
	todam1 := r.RandInt1(5) + r.MBonus(5, depth)
	tohit2 := r.MBonus(10, depth)
	todam2 := r.MBonus(10, depth)
	if item.Category.IsAmmo() {
		tohit2 = (tohit2 + 1) / 2
		todam2 = (todam2 + 1) / 2
	}

	switch {
	case tier > TierNormal:
		item.ToHit += tohit1
		item.ToDam += todam1
		if tier.Magnitude() >= 2 {
			item.ToHit += tohit2
			item.ToDam += todam2
		}
	case tier < TierNormal:
		item.ToHit -= tohit1
		item.ToDam -= todam1
		if tier.Magnitude() >= 2 {
			item.ToHit -= tohit2
			item.ToDam -= todam2
		}
		if item.ToHit+item.ToDam < 0 {
			item.Curses.Set(trait.Cursed)
		}
	}
}
