package inventory_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/itemforge/internal/game/dice"
	"github.com/cory-johannsen/itemforge/internal/game/inventory"
	"github.com/cory-johannsen/itemforge/internal/game/trait"
)

const contentDir = "../../../content/items"

func swordDef() *inventory.BaseItemDef {
	return &inventory.BaseItemDef{
		ID:       "long_sword",
		Name:     "Long Sword",
		Category: inventory.CategorySword,
		Sval:     "long_sword",
		Level:    10,
		Damage:   dice.Dice{Count: 2, Sides: 5},
		Weight:   130,
		Cost:     300,
		Traits:   trait.NewSet(trait.SlayEvil),
	}
}

func TestBaseItemDef_Validate(t *testing.T) {
	require.NoError(t, swordDef().Validate())

	d := swordDef()
	d.ID = ""
	assert.Error(t, d.Validate())

	d = swordDef()
	d.Category = "wand"
	assert.Error(t, d.Validate())

	d = swordDef()
	d.Damage = dice.Dice{}
	assert.Error(t, d.Validate(), "melee weapons need damage dice")

	d = swordDef()
	d.Cost = -1
	assert.Error(t, d.Validate())
}

func TestLoadBaseItems_Content(t *testing.T) {
	defs, err := inventory.LoadBaseItems(contentDir)
	require.NoError(t, err)
	reg, err := inventory.NewRegistryFromDefs(defs)
	require.NoError(t, err)

	for _, c := range []inventory.Category{
		inventory.CategorySword, inventory.CategoryHafted, inventory.CategoryPolearm,
		inventory.CategoryDigging, inventory.CategoryBow, inventory.CategoryShot,
		inventory.CategoryArrow, inventory.CategoryBolt, inventory.CategorySoftArmor,
		inventory.CategoryHardArmor, inventory.CategoryDragonArmor, inventory.CategoryShield,
		inventory.CategoryHelm, inventory.CategoryCrown, inventory.CategoryBoots,
		inventory.CategoryGloves, inventory.CategoryCloak,
	} {
		assert.NotEmpty(t, reg.ByCategory(c), "content should cover %s", c)
	}

	robe, ok := reg.Lookup("robe")
	require.True(t, ok)
	assert.Equal(t, inventory.SvalRobe, robe.Sval)

	dsm, ok := reg.Lookup("black_dragon_scale_mail")
	require.True(t, ok)
	assert.True(t, dsm.Traits.Has(trait.ResAcid))
}

func TestLoadBaseItems_RejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	body := "- id: x\n  name: X\n  category: misc\n  colour: red\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte(body), 0o644))
	_, err := inventory.LoadBaseItems(dir)
	assert.Error(t, err)
}

func TestLoadBaseItems_RejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	body := "- id: x\n  name: X\n  category: sword\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yml"), []byte(body), 0o644))
	_, err := inventory.LoadBaseItems(dir)
	assert.ErrorContains(t, err, "damage is required")
}

func TestLoadBaseItems_MissingDir(t *testing.T) {
	_, err := inventory.LoadBaseItems(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestRegistry_DuplicateAndUnknown(t *testing.T) {
	r := inventory.NewRegistry()
	require.NoError(t, r.Register(swordDef()))
	assert.Error(t, r.Register(swordDef()))

	_, err := r.NewItem("excalibur")
	assert.True(t, errors.Is(err, inventory.ErrUnknownBaseItem))

	it, err := r.NewItem("long_sword")
	require.NoError(t, err)
	assert.Equal(t, "long_sword", it.BaseID)
}

func TestNewItem_CopiesTemplate(t *testing.T) {
	def := swordDef()
	a := inventory.NewItem(def)
	b := inventory.NewItem(def)

	assert.NotEqual(t, a.InstanceID, b.InstanceID)
	assert.Equal(t, def.Damage, a.Dice)
	assert.Equal(t, 10, a.Level())
	assert.True(t, a.HasTrait(trait.SlayEvil))
	assert.False(t, a.Traits.Has(trait.SlayEvil), "template traits stay in BaseTraits")
	assert.False(t, a.IsArtifact())
	assert.False(t, a.IsEgo())

	a.Traits.Add(trait.Str)
	assert.False(t, def.Traits.Has(trait.Str), "instances do not share trait storage with the template")
}

func TestItem_SetBias_NeverReplaced(t *testing.T) {
	biases := []trait.Bias{trait.BiasNone, trait.BiasWarrior, trait.BiasMage, trait.BiasRogue, trait.BiasStr}
	rapid.Check(t, func(rt *rapid.T) {
		it := inventory.NewItem(swordDef())
		seq := rapid.SliceOf(rapid.SampledFrom(biases)).Draw(rt, "seq")
		first := trait.BiasNone
		for _, b := range seq {
			it.SetBias(b)
			if first == trait.BiasNone {
				first = it.Bias
			}
			assert.Equal(rt, first, it.Bias)
		}
	})
}

func TestCategory_Predicates(t *testing.T) {
	assert.True(t, inventory.CategoryBolt.IsAmmo())
	assert.True(t, inventory.CategoryBolt.IsWeaponAmmo())
	assert.True(t, inventory.CategoryBow.IsWeaponAmmo())
	assert.False(t, inventory.CategoryBow.IsMeleeWeapon())
	assert.True(t, inventory.CategoryCrown.IsArmour())
	assert.False(t, inventory.CategoryMisc.IsArmour())
	assert.Equal(t, inventory.SlotHead, inventory.CategoryCrown.Slot())
	assert.Equal(t, inventory.SlotWeapon, inventory.CategoryDigging.Slot())

	assert.True(t, inventory.IsDragon(inventory.CategoryDragonArmor, ""))
	assert.True(t, inventory.IsDragon(inventory.CategoryBoots, inventory.SvalDragonGreaves))
	assert.False(t, inventory.IsDragon(inventory.CategoryBoots, "leather_boots"))

	_, err := inventory.ParseCategory("wand")
	assert.Error(t, err)
	_, err = inventory.ParseSlot("")
	assert.Error(t, err)
}
