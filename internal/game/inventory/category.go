// Package inventory provides base item templates loaded from YAML and the
// mutable item instances the enchantment engine works on.
package inventory

import "fmt"

// Category is the broad kind of an item. It selects the enchantment policy.
type Category string

// Equipment categories.
const (
	CategorySword       Category = "sword"
	CategoryHafted      Category = "hafted"
	CategoryPolearm     Category = "polearm"
	CategoryDigging     Category = "digging"
	CategoryBow         Category = "bow"
	CategoryShot        Category = "shot"
	CategoryArrow       Category = "arrow"
	CategoryBolt        Category = "bolt"
	CategorySoftArmor   Category = "soft_armor"
	CategoryHardArmor   Category = "hard_armor"
	CategoryDragonArmor Category = "dragon_armor"
	CategoryShield      Category = "shield"
	CategoryHelm        Category = "helm"
	CategoryCrown       Category = "crown"
	CategoryBoots       Category = "boots"
	CategoryGloves      Category = "gloves"
	CategoryCloak       Category = "cloak"
	CategoryMisc        Category = "misc"
)

var validCategories = map[Category]Slot{
	CategorySword:       SlotWeapon,
	CategoryHafted:      SlotWeapon,
	CategoryPolearm:     SlotWeapon,
	CategoryDigging:     SlotWeapon,
	CategoryBow:         SlotBow,
	CategoryShot:        SlotAmmo,
	CategoryArrow:       SlotAmmo,
	CategoryBolt:        SlotAmmo,
	CategorySoftArmor:   SlotBody,
	CategoryHardArmor:   SlotBody,
	CategoryDragonArmor: SlotBody,
	CategoryShield:      SlotArm,
	CategoryHelm:        SlotHead,
	CategoryCrown:       SlotHead,
	CategoryBoots:       SlotFeet,
	CategoryGloves:      SlotHands,
	CategoryCloak:       SlotOuter,
	CategoryMisc:        SlotNone,
}

// ParseCategory returns the Category named s.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if _, ok := validCategories[c]; !ok {
		return "", fmt.Errorf("inventory: unknown category %q", s)
	}
	return c, nil
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := validCategories[c]
	return ok
}

// Slot returns the equipment slot ego tables are keyed on.
func (c Category) Slot() Slot {
	return validCategories[c]
}

// IsMeleeWeapon reports whether c is a sword, hafted weapon or polearm.
func (c Category) IsMeleeWeapon() bool {
	return c == CategorySword || c == CategoryHafted || c == CategoryPolearm
}

// IsAmmo reports whether c is shot, arrows or bolts.
func (c Category) IsAmmo() bool {
	return c == CategoryShot || c == CategoryArrow || c == CategoryBolt
}

// IsWeaponAmmo reports whether c takes to-hit and to-dam enchantment.
func (c Category) IsWeaponAmmo() bool {
	return c.IsMeleeWeapon() || c.IsAmmo() || c == CategoryDigging || c == CategoryBow
}

// IsBodyArmour reports whether c is worn on the body.
func (c Category) IsBodyArmour() bool {
	return c == CategorySoftArmor || c == CategoryHardArmor || c == CategoryDragonArmor
}

// IsArmour reports whether c takes to-ac enchantment.
func (c Category) IsArmour() bool {
	switch c.Slot() {
	case SlotBody, SlotArm, SlotHead, SlotFeet, SlotHands, SlotOuter:
		return true
	}
	return false
}

// Slot is the equipment position an item occupies.
type Slot string

// Equipment slots.
const (
	SlotNone   Slot = ""
	SlotWeapon Slot = "weapon"
	SlotBow    Slot = "bow"
	SlotAmmo   Slot = "ammo"
	SlotBody   Slot = "body"
	SlotOuter  Slot = "outer"
	SlotArm    Slot = "arm"
	SlotHead   Slot = "head"
	SlotHands  Slot = "hands"
	SlotFeet   Slot = "feet"
)

// ParseSlot returns the Slot named s. The empty string is rejected.
func ParseSlot(s string) (Slot, error) {
	switch sl := Slot(s); sl {
	case SlotWeapon, SlotBow, SlotAmmo, SlotBody, SlotOuter, SlotArm, SlotHead, SlotHands, SlotFeet:
		return sl, nil
	}
	return SlotNone, fmt.Errorf("inventory: unknown slot %q", s)
}

// Subcategory names the rules single out.
const (
	SvalRobe             = "robe"
	SvalBlackClothes     = "black_clothes"
	SvalAbunaiMizugi     = "abunai_mizugi"
	SvalDragonShield     = "dragon_shield"
	SvalDragonHelm       = "dragon_helm"
	SvalDragonGreaves    = "dragon_greaves"
	SvalDragonGloves     = "dragon_gloves"
	SvalMirrorShield     = "mirror_shield"
	SvalSmallMetalShield = "small_metal_shield"
	SvalLargeMetalShield = "large_metal_shield"
	SvalElvenCloak       = "elven_cloak"
	SvalHayabusa         = "hayabusa"
)

// IsDragon reports whether the category and subcategory form a dragon-scale item.
func IsDragon(c Category, sval string) bool {
	switch {
	case c == CategoryDragonArmor:
		return true
	case c == CategoryShield && sval == SvalDragonShield,
		c == CategoryHelm && sval == SvalDragonHelm,
		c == CategoryBoots && sval == SvalDragonGreaves,
		c == CategoryGloves && sval == SvalDragonGloves:
		return true
	}
	return false
}
