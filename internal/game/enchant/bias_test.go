package enchant_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/itemforge/internal/game/dice"
	"github.com/cory-johannsen/itemforge/internal/game/enchant"
	"github.com/cory-johannsen/itemforge/internal/game/inventory"
	"github.com/cory-johannsen/itemforge/internal/game/trait"
)

func plainItem(c inventory.Category, sval string) *inventory.Item {
	def := &inventory.BaseItemDef{ID: sval, Name: sval, Category: c, Sval: sval, Cost: 10}
	if c.IsMeleeWeapon() || c.IsAmmo() {
		def.Damage = dice.Dice{Count: 2, Sides: 5}
	}
	return inventory.NewItem(def)
}

func TestAddPvalTrait_WarriorPriority(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		it := plainItem(inventory.CategorySword, "long_sword")
		it.Bias = trait.BiasWarrior
		got := enchant.AddPvalTrait(newRoller(rapid.Uint64().Draw(rt, "seed")), it)

		assert.Contains(rt, []trait.Trait{trait.Str, trait.Con, trait.Dex}, got)
		assert.True(rt, it.Traits.Has(trait.Str), "strength is always tried first")
		if it.Traits.Has(trait.Dex) {
			assert.True(rt, it.Traits.Has(trait.Con))
		}
		if it.Traits.Has(trait.Con) {
			assert.True(rt, it.Traits.Has(trait.Str))
		}
		assert.Equal(rt, trait.BiasWarrior, it.Bias)
	})
}

func TestAddPvalTrait_WarriorHalfTheTimeStopsAtStrength(t *testing.T) {
	r := newRoller(11)
	onlyStr := 0
	const trials = 4000
	for i := 0; i < trials; i++ {
		it := plainItem(inventory.CategorySword, "long_sword")
		it.Bias = trait.BiasWarrior
		enchant.AddPvalTrait(r, it)
		if it.Traits.Len() == 1 {
			onlyStr++
		}
	}
	assert.InDelta(t, 0.5, float64(onlyStr)/trials, 0.05)
}

func TestAddPvalTrait_NeverReplacesBias(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		r := newRoller(rapid.Uint64().Draw(rt, "seed"))
		cat := rapid.SampledFrom([]inventory.Category{
			inventory.CategorySword, inventory.CategoryBow, inventory.CategoryCloak, inventory.CategorySoftArmor,
		}).Draw(rt, "category")
		it := plainItem(cat, "thing")
		it.Bias = trait.Bias(rapid.IntRange(0, 19).Draw(rt, "bias"))
		calls := rapid.IntRange(1, 8).Draw(rt, "calls")

		first := it.Bias
		for i := 0; i < calls; i++ {
			enchant.AddPvalTrait(r, it)
			if first == trait.BiasNone {
				first = it.Bias
				continue
			}
			require.Equal(rt, first, it.Bias)
		}
	})
}

func TestAddPvalTrait_BowsNeverGetBlows(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		it := plainItem(inventory.CategoryBow, "long_bow")
		r := newRoller(rapid.Uint64().Draw(rt, "seed"))
		for i := 0; i < 5; i++ {
			enchant.AddPvalTrait(r, it)
		}
		assert.False(rt, it.Traits.Has(trait.Blows))
	})
}

// alwaysBlows returns the index that maps to extra blows on a 23-sided roll.
type alwaysBlows struct{}

func (alwaysBlows) Intn(n int) int { return n - 1 }

func TestAddPvalTrait_BowRerollExhaustionFallsBackToStrength(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	r := dice.NewRoller(alwaysBlows{}, zap.New(core))
	it := plainItem(inventory.CategoryBow, "long_bow")
	it.Category = inventory.CategoryBow

	got := enchant.AddPvalTrait(r, it)
	assert.Equal(t, trait.Str, got)
	assert.Equal(t, 1, logs.FilterMessage("pval trait re-roll exhausted; granting strength").Len())
}

func TestNumeric_CurseConsistency(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cat := rapid.SampledFrom([]inventory.Category{
			inventory.CategorySword, inventory.CategoryArrow, inventory.CategoryBow,
			inventory.CategoryHardArmor, inventory.CategoryBoots, inventory.CategoryShield,
		}).Draw(rt, "category")
		it := plainItem(cat, "thing")
		tier := enchant.Tier(rapid.IntRange(-2, 3).Draw(rt, "tier"))
		depth := rapid.IntRange(0, 127).Draw(rt, "depth")
		enchant.ApplyCommonNumericEnchant(newRoller(rapid.Uint64().Draw(rt, "seed")), it, tier, depth)

		net := it.ToAC
		if cat.IsWeaponAmmo() {
			net = it.ToHit + it.ToDam
		}
		assert.Equal(rt, net < 0, it.Curses.Has(trait.Cursed), "tier %s net %d", tier, net)
		if tier == enchant.TierNormal {
			assert.Zero(rt, it.ToHit)
			assert.Zero(rt, it.ToDam)
			assert.Zero(rt, it.ToAC)
		}
	})
}

func TestNumeric_BoundedRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		it := plainItem(inventory.CategorySword, "long_sword")
		tier := rapid.SampledFrom([]enchant.Tier{enchant.TierGood, enchant.TierGreat}).Draw(rt, "tier")
		enchant.ApplyCommonNumericEnchant(newRoller(rapid.Uint64().Draw(rt, "seed")), it, tier,
			rapid.IntRange(0, 127).Draw(rt, "depth"))

		hi := 10
		if tier == enchant.TierGreat {
			hi = 20
		}
		assert.GreaterOrEqual(rt, it.ToHit, 1)
		assert.LessOrEqual(rt, it.ToHit, hi)
		assert.GreaterOrEqual(rt, it.ToDam, 1)
		assert.LessOrEqual(rt, it.ToDam, hi)
	})
}

func TestNumeric_AmmoSecondRollIsHalved(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		it := plainItem(inventory.CategoryArrow, "arrow")
		enchant.ApplyCommonNumericEnchant(newRoller(rapid.Uint64().Draw(rt, "seed")), it, enchant.TierGreat, 127)
		assert.LessOrEqual(rt, it.ToHit, 15)
		assert.LessOrEqual(rt, it.ToDam, 15)
	})
}

func TestNumeric_OtherCategoriesUntouched(t *testing.T) {
	it := plainItem(inventory.CategoryMisc, "trinket")
	enchant.ApplyCommonNumericEnchant(newRoller(1), it, enchant.TierSpecial, 100)
	assert.Zero(t, it.ToHit)
	assert.Zero(t, it.ToAC)
}
