package enchant_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/itemforge/internal/game/enchant"
	"github.com/cory-johannsen/itemforge/internal/game/inventory"
	"github.com/cory-johannsen/itemforge/internal/game/trait"
)

func TestEnchantAtTier_CursedBowReportsMissingEgo(t *testing.T) {
	items := loadItems(t)
	core, logs := observer.New(zapcore.WarnLevel)
	rec := newCountingRecorder()
	e := enchant.NewEngine(enchant.DefaultConfig(), loadEgos(t), noArtifacts{}, zap.New(core), enchant.WithRecorder(rec))

	it := newItem(t, items, "long_bow")
	out, err := e.EnchantAtTier(newRoller(12), it, 30, enchant.TierCursed2)
	require.NoError(t, err)
	assert.Equal(t, enchant.OutcomeNameless, out)
	assert.Equal(t, trait.NoEgo, it.EgoID)

	entries := logs.FilterMessage("no ego available for slot").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "bow", entries[0].ContextMap()["slot"])
	assert.Equal(t, false, entries[0].ContextMap()["good"])
	assert.Equal(t, 1, rec.diagnostics["no ego available for slot"])

	// Mildly cursed launchers never look for an ego.
	_, err = e.EnchantAtTier(newRoller(12), newItem(t, items, "long_bow"), 30, enchant.TierCursed1)
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("no ego available for slot").Len())
}

func TestEnchantAtTier_DragonShieldStopsEarlyTwoThirds(t *testing.T) {
	items := loadItems(t)
	e := enchant.NewEngine(enchant.DefaultConfig(), loadEgos(t), noArtifacts{}, zap.NewNop())
	r := newRoller(2024)

	const n = 3000
	plain := 0
	for i := 0; i < n; i++ {
		it := newItem(t, items, "dragon_shield")
		out, err := e.EnchantAtTier(r, it, 60, enchant.TierGreat)
		require.NoError(t, err)
		if out == enchant.OutcomeNameless {
			assert.Equal(t, trait.NoEgo, it.EgoID)
			plain++
		}
	}
	assert.InDelta(t, 2.0/3.0, float64(plain)/n, 0.04)
}

// crownEgos are the good head egos a crown may carry.
var crownEgos = []trait.EgoID{
	trait.EgoTelepathy,
	trait.EgoMagi,
	trait.EgoMight,
	trait.EgoRegeneration,
	trait.EgoLordliness,
	trait.EgoSeeing,
	trait.EgoBasilisk,
}

func TestEnchantAtTier_CrownGoodEgosStayInCrownSet(t *testing.T) {
	items := loadItems(t)
	e := enchant.NewEngine(enchant.DefaultConfig(), loadEgos(t), noArtifacts{}, zap.NewNop())
	rapid.Check(t, func(rt *rapid.T) {
		it := newItem(t, items, "iron_crown")
		out, err := e.EnchantAtTier(newRoller(rapid.Uint64().Draw(rt, "seed")), it,
			rapid.IntRange(1, 127).Draw(rt, "depth"), enchant.TierGreat)
		require.NoError(rt, err)
		assert.Equal(rt, enchant.OutcomeEgo, out)
		assert.Contains(rt, crownEgos, it.EgoID)
	})
}

func TestEnchantAtTier_CursedCrownRejectsAncientCurse(t *testing.T) {
	items := loadItems(t)
	egos := loadEgos(t)
	e := enchant.NewEngine(enchant.DefaultConfig(), egos, noArtifacts{}, zap.NewNop())
	rapid.Check(t, func(rt *rapid.T) {
		it := newItem(t, items, "iron_crown")
		out, err := e.EnchantAtTier(newRoller(rapid.Uint64().Draw(rt, "seed")), it,
			rapid.IntRange(1, 127).Draw(rt, "depth"), enchant.TierCursed2)
		require.NoError(rt, err)
		assert.Equal(rt, enchant.OutcomeEgo, out)
		assert.NotEqual(rt, trait.EgoAncientCurse, it.EgoID)
		d, ok := egos.Def(it.EgoID)
		require.True(rt, ok)
		assert.Equal(rt, inventory.SlotHead, d.Slot)
		assert.False(rt, d.Good())
	})
}
