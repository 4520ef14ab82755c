package ego_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/itemforge/internal/game/dice"
	"github.com/cory-johannsen/itemforge/internal/game/ego"
	"github.com/cory-johannsen/itemforge/internal/game/inventory"
	"github.com/cory-johannsen/itemforge/internal/game/trait"
)

const egoDir = "../../../content/egos"

func loadTable(t *testing.T) *ego.Table {
	t.Helper()
	defs, err := ego.LoadDefs(egoDir)
	require.NoError(t, err)
	tbl, err := ego.NewTable(defs, zaptest.NewLogger(t))
	require.NoError(t, err)
	return tbl
}

func newRoller(seed uint64) *dice.Roller {
	return dice.NewRoller(dice.NewSeededSource(seed), zap.NewNop())
}

func swordItem() *inventory.Item {
	return inventory.NewItem(&inventory.BaseItemDef{
		ID: "long_sword", Name: "Long Sword", Category: inventory.CategorySword,
		Sval: "long_sword", Damage: dice.Dice{Count: 2, Sides: 5}, Cost: 300, Weight: 130,
	})
}

func TestLoadDefs_ContentReferencesEveryRuleEgo(t *testing.T) {
	tbl := loadTable(t)
	for _, id := range []trait.EgoID{
		trait.EgoResistance, trait.EgoPermanence, trait.EgoTwilight, trait.EgoDwarven, trait.EgoDruid,
		trait.EgoArmorDemon, trait.EgoArmorMorgul, trait.EgoShieldDwarven, trait.EgoEndurance,
		trait.EgoReflection, trait.EgoSeeing, trait.EgoHelmDemon, trait.EgoTelepathy, trait.EgoBasilisk,
		trait.EgoAncientCurse, trait.EgoSlowDescent, trait.EgoSpeed, trait.EgoBat, trait.EgoNazgul,
		trait.EgoHolyAvenger, trait.EgoDefender, trait.EgoKillDragon, trait.EgoWestNorth,
		trait.EgoSlayingWeapon, trait.EgoTrump, trait.EgoPattern, trait.EgoSharpness,
		trait.EgoEarthquakes, trait.EgoVampiric, trait.EgoDemon, trait.EgoAttacks, trait.EgoWeird,
		trait.EgoMorgul, trait.EgoDigging, trait.EgoSlayingBolt,
	} {
		_, ok := tbl.Def(id)
		assert.True(t, ok, "ego %q missing from content", id)
	}
}

func TestLoadDefs_RejectsBadGen(t *testing.T) {
	dir := t.TempDir()
	body := "- {id: x, name: X, slot: body, rating: 1, rarity: 1, gen: [xtra_everything]}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte(body), 0o644))
	_, err := ego.LoadDefs(dir)
	assert.ErrorContains(t, err, "xtra_everything")
}

func TestLoadDefs_RejectsUnknownField(t *testing.T) {
	dir := t.TempDir()
	body := "- {id: x, name: X, slot: body, rating: 1, rarity: 1, sparkle: true}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte(body), 0o644))
	_, err := ego.LoadDefs(dir)
	assert.Error(t, err)
}

func TestNewTable_Duplicate(t *testing.T) {
	d := &ego.Def{ID: "x", Name: "X", Slot: inventory.SlotBody, Rating: 1, Rarity: 1}
	_, err := ego.NewTable([]*ego.Def{d, d}, zap.NewNop())
	assert.Error(t, err)
}

func TestDraw_RespectsPolarityAndSlot(t *testing.T) {
	tbl := loadTable(t)
	rapid.Check(t, func(rt *rapid.T) {
		r := newRoller(rapid.Uint64().Draw(rt, "seed"))
		slot := rapid.SampledFrom([]inventory.Slot{
			inventory.SlotBody, inventory.SlotArm, inventory.SlotHead, inventory.SlotFeet,
			inventory.SlotHands, inventory.SlotOuter, inventory.SlotWeapon, inventory.SlotBow, inventory.SlotAmmo,
		}).Draw(rt, "slot")
		good := rapid.Bool().Draw(rt, "good")
		id := tbl.Draw(r, slot, good)
		if id == trait.NoEgo {
			return
		}
		d, ok := tbl.Def(id)
		require.True(rt, ok)
		assert.Equal(rt, slot, d.Slot)
		assert.Equal(rt, good, d.Good())
		assert.Positive(rt, d.Rarity, "rarity 0 egos are never drawn")
	})
}

func TestDraw_EmptyPolarityReturnsNoEgo(t *testing.T) {
	tbl, err := ego.NewTable([]*ego.Def{
		{ID: "good_only", Name: "G", Slot: inventory.SlotBow, Rating: 5, Rarity: 1},
	}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, trait.NoEgo, tbl.Draw(newRoller(1), inventory.SlotBow, false))
	assert.Equal(t, trait.EgoID("good_only"), tbl.Draw(newRoller(1), inventory.SlotBow, true))
}

func TestDraw_WeightsFollowRarity(t *testing.T) {
	tbl, err := ego.NewTable([]*ego.Def{
		{ID: "common", Name: "C", Slot: inventory.SlotFeet, Rating: 5, Rarity: 1},
		{ID: "rare", Name: "R", Slot: inventory.SlotFeet, Rating: 5, Rarity: 5},
	}, zap.NewNop())
	require.NoError(t, err)
	r := newRoller(42)
	counts := map[trait.EgoID]int{}
	for i := 0; i < 6000; i++ {
		counts[tbl.Draw(r, inventory.SlotFeet, true)]++
	}
	// weights 255 and 51: about 5 to 1
	ratio := float64(counts["common"]) / float64(counts["rare"])
	assert.InDelta(t, 5.0, ratio, 1.0)
}

func TestApply_GoodEgoAddsTraitsAndBonuses(t *testing.T) {
	tbl := loadTable(t)
	it := swordItem()
	it.EgoID = trait.EgoWestNorth
	tbl.Apply(newRoller(3), it, 30)

	assert.True(t, it.Traits.Has(trait.SlayOrc))
	assert.True(t, it.Traits.Has(trait.FreeAct))
	assert.GreaterOrEqual(t, it.ToHit, 1)
	assert.LessOrEqual(t, it.ToHit, 5)
	assert.GreaterOrEqual(t, it.Pval, 1)
	assert.LessOrEqual(t, it.Pval, 2)
	assert.False(t, it.IsCursed())
}

func TestApply_CursedEgoPenalises(t *testing.T) {
	tbl := loadTable(t)
	it := swordItem()
	it.EgoID = trait.EgoMorgul
	tbl.Apply(newRoller(4), it, 40)

	assert.True(t, it.Curses.Has(trait.Cursed))
	assert.True(t, it.Broken, "cost 0 egos break the item")
	assert.Negative(t, it.ToHit)
	assert.Negative(t, it.ToDam)
	assert.Negative(t, it.Pval)
}

func TestApply_ExtraGrantsPickAbsentTraits(t *testing.T) {
	tbl, err := ego.NewTable([]*ego.Def{
		{ID: "ele", Name: "E", Slot: inventory.SlotBody, Rating: 5, Rarity: 1, Cost: 10,
			Gen: []ego.Gen{ego.GenXtraERes}},
	}, zap.NewNop())
	require.NoError(t, err)
	it := swordItem()
	it.Traits = trait.NewSet(trait.ResAcid, trait.ResElec, trait.ResFire)
	it.EgoID = "ele"
	tbl.Apply(newRoller(5), it, 10)
	assert.True(t, it.Traits.Has(trait.ResCold))
}

func TestApply_SpeedBelowFiftyRerollsPval(t *testing.T) {
	tbl := loadTable(t)
	rapid.Check(t, func(rt *rapid.T) {
		it := inventory.NewItem(&inventory.BaseItemDef{
			ID: "boots", Name: "Boots", Category: inventory.CategoryBoots, Cost: 10,
		})
		it.EgoID = trait.EgoSpeed
		tbl.Apply(newRoller(rapid.Uint64().Draw(rt, "seed")), it, rapid.IntRange(0, 49).Draw(rt, "depth"))
		assert.GreaterOrEqual(rt, it.Pval, 1)
		assert.LessOrEqual(rt, it.Pval, 10)
	})
}

func TestApply_AttacksCapsPval(t *testing.T) {
	tbl := loadTable(t)
	rapid.Check(t, func(rt *rapid.T) {
		it := swordItem()
		it.EgoID = trait.EgoAttacks
		tbl.Apply(newRoller(rapid.Uint64().Draw(rt, "seed")), it, rapid.IntRange(0, 127).Draw(rt, "depth"))
		assert.GreaterOrEqual(rt, it.Pval, 1)
		assert.LessOrEqual(rt, it.Pval, 3)
	})
}

func TestApply_UnknownEgoIsLoggedAndIgnored(t *testing.T) {
	tbl := loadTable(t)
	it := swordItem()
	it.EgoID = "of_nothing"
	tbl.Apply(newRoller(6), it, 10)
	assert.Equal(t, 0, it.ToHit)
	assert.Equal(t, 0, it.Traits.Len())
}
