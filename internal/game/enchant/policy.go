package enchant

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/itemforge/internal/game/dice"
	"github.com/cory-johannsen/itemforge/internal/game/inventory"
	"github.com/cory-johannsen/itemforge/internal/game/trait"
)

// maxEgoRedraws bounds every ego re-draw loop.
const maxEgoRedraws = 64

// maxHayabusaRedraws bounds the cursed ego re-draw for hayabusa blades.
const maxHayabusaRedraws = 1000

// PolicyKind names a category policy variant.
type PolicyKind int

// Policy variants, one per equipment category family.
const (
	PolicyBodyArmor PolicyKind = iota
	PolicyShield
	PolicyHelm
	PolicyCrown
	PolicyBoots
	PolicyGloves
	PolicyCloak
	PolicyWeapon
	PolicyBow
	PolicyAmmo
	PolicyDigger
)

var policyNames = map[PolicyKind]string{
	PolicyBodyArmor: "body_armor",
	PolicyShield:    "shield",
	PolicyHelm:      "helm",
	PolicyCrown:     "crown",
	PolicyBoots:     "boots",
	PolicyGloves:    "gloves",
	PolicyCloak:     "cloak",
	PolicyWeapon:    "weapon",
	PolicyBow:       "bow",
	PolicyAmmo:      "ammo",
	PolicyDigger:    "digger",
}

// String returns the policy name.
func (k PolicyKind) String() string {
	return policyNames[k]
}

// CategoryPolicy is the category-specific half of an enchantment pass. The
// shared numeric roll runs before apply.
type CategoryPolicy struct {
	Kind PolicyKind
	// dragon marks variants whose dragon-scale subtypes are processed even at
	// tier 0 and always gain a resistance first.
	dragon bool
	apply  func(p *pass)
}

var policies = map[inventory.Category]CategoryPolicy{
	inventory.CategorySoftArmor:   {Kind: PolicyBodyArmor, dragon: true, apply: applyBodyArmor},
	inventory.CategoryHardArmor:   {Kind: PolicyBodyArmor, dragon: true, apply: applyBodyArmor},
	inventory.CategoryDragonArmor: {Kind: PolicyBodyArmor, dragon: true, apply: applyBodyArmor},
	inventory.CategoryShield:      {Kind: PolicyShield, dragon: true, apply: applyShield},
	inventory.CategoryHelm:        {Kind: PolicyHelm, dragon: true, apply: applyHelm},
	inventory.CategoryCrown:       {Kind: PolicyCrown, apply: applyCrown},
	inventory.CategoryBoots:       {Kind: PolicyBoots, dragon: true, apply: applyBoots},
	inventory.CategoryGloves:      {Kind: PolicyGloves, dragon: true, apply: applyGloves},
	inventory.CategoryCloak:       {Kind: PolicyCloak, apply: applyCloak},
	inventory.CategorySword:       {Kind: PolicyWeapon, apply: applyWeapon},
	inventory.CategoryHafted:      {Kind: PolicyWeapon, apply: applyWeapon},
	inventory.CategoryPolearm:     {Kind: PolicyWeapon, apply: applyWeapon},
	inventory.CategoryBow:         {Kind: PolicyBow, apply: applyBow},
	inventory.CategoryShot:        {Kind: PolicyAmmo, apply: applyAmmo},
	inventory.CategoryArrow:       {Kind: PolicyAmmo, apply: applyAmmo},
	inventory.CategoryBolt:        {Kind: PolicyAmmo, apply: applyAmmo},
	inventory.CategoryDigging:     {Kind: PolicyDigger, apply: applyDigger},
}

// PolicyFor returns the policy for item's category.
//
// Postcondition: ok is false for categories the engine does not enchant.
func PolicyFor(item *inventory.Item) (CategoryPolicy, bool) {
	p, ok := policies[item.Category]
	return p, ok
}

func (c CategoryPolicy) alwaysApplies(item *inventory.Item) bool {
	return c.dragon && inventory.IsDragon(item.Category, item.Sval)
}

// pass is the state of one policy invocation.
type pass struct {
	e     *Engine
	r     *dice.Roller
	item  *inventory.Item
	depth int
	tier  Tier
}

func (p *pass) good() bool   { return p.tier >= TierGreat }
func (p *pass) cursed() bool { return p.tier <= TierCursed2 }

// promote tries to make a random artifact. It reports whether one was made.
func (p *pass) promote() bool {
	if p.e.artifacts.TryMakeRandomArtifact(p.r, p.item, p.depth, false) {
		return true
	}
	p.e.diagnostic("random artifact promotion failed", p.item)
	return false
}

// promoteOnOdds promotes to a random artifact on one_in(n) or at tier special.
// It reports whether the caller should stop.
func (p *pass) promoteOnOdds(n int) bool {
	if p.r.OneIn(n) || p.tier >= TierSpecial {
		return p.promote()
	}
	return false
}

// draw draws an ego for the item's slot, re-drawing while reject says so.
// It returns trait.NoEgo after a diagnostic when the table has nothing usable.
func (p *pass) draw(good bool, limit int, reject func(trait.EgoID) bool) trait.EgoID {
	slot := p.item.Category.Slot()
	for attempt := 0; attempt < limit; attempt++ {
		id := p.e.egos.Draw(p.r, slot, good)
		if id == trait.NoEgo {
			p.e.diagnostic("no ego available for slot", p.item,
				zap.String("slot", string(slot)), zap.Bool("good", good))
			return trait.NoEgo
		}
		if reject == nil || !reject(id) {
			return id
		}
	}
	p.e.diagnostic("ego re-draw exhausted", p.item,
		zap.String("slot", string(slot)), zap.Bool("good", good), zap.Int("attempts", limit))
	return trait.NoEgo
}

// drawCursed draws a cursed ego, rejecting ancient_curse for head gear.
func (p *pass) drawCursed() trait.EgoID {
	return p.draw(false, maxEgoRedraws, func(id trait.EgoID) bool {
		return id == trait.EgoAncientCurse
	})
}

// dragonResist grants one resistance missing from the item: a dragon element
// on one_in(4), a high resistance otherwise.
func dragonResist(r *dice.Roller, item *inventory.Item) trait.Trait {
	pool, other := trait.HighResists, trait.DragonEleResists
	if r.OneIn(4) {
		pool, other = other, pool
	}
	if t := addMissing(r, item, pool); t != trait.None {
		return t
	}
	return addMissing(r, item, other)
}

// addMissing adds one trait of pool that the item neither inherits nor has.
func addMissing(r *dice.Roller, item *inventory.Item, pool []trait.Trait) trait.Trait {
	all := item.AllTraits()
	t := all.AddOneOf(r, pool)
	if t != trait.None {
		item.Traits.Add(t)
	}
	return t
}

// dragonStep runs the dragon-scale rule. It reports whether the pass ends.
func (p *pass) dragonStep() bool {
	if !inventory.IsDragon(p.item.Category, p.item.Sval) {
		return false
	}
	dragonResist(p.r, p.item)
	return !p.r.OneIn(3)
}

// superCharge grows the dice count while one_in(10*dd*ds) holds, capped at 9.
func superCharge(r *dice.Roller, item *inventory.Item) {
	if item.Dice.IsZero() {
		return
	}
	for i := 0; i < 9 && item.Dice.Count < 9 && r.OneIn(10*item.Dice.Count*item.Dice.Sides); i++ {
		item.Dice.Count++
	}
	if item.Dice.Count > 9 {
		item.Dice.Count = 9
	}
}
