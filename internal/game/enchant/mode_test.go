package enchant_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/itemforge/internal/game/enchant"
)

func TestApplyCursedMode(t *testing.T) {
	cases := []struct{ in, want int }{
		{1, -1},
		{2, -2},
		{3, -3},
		{0, -1},
		{-1, -2},
		{-2, -3},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, enchant.ApplyCursedMode(c.in), "power %d", c.in)
	}
}

func TestApplyCursedMode_AlwaysNegative(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := rapid.IntRange(-2, 3).Draw(rt, "power")
		assert.Negative(rt, enchant.ApplyCursedMode(p))
	})
}

func TestTierFromLegacy_Folds(t *testing.T) {
	assert.Equal(t, enchant.TierCursed2, enchant.TierFromLegacy(-3))
	assert.Equal(t, enchant.TierSpecial, enchant.TierFromLegacy(9))
	assert.Equal(t, enchant.TierGood, enchant.TierFromLegacy(1))
	assert.Equal(t, 2, enchant.TierGreat.Magnitude())
	assert.Equal(t, 2, enchant.TierCursed2.Magnitude())
	assert.Equal(t, -1, enchant.TierCursed1.Legacy())
	assert.Equal(t, "special", enchant.TierSpecial.String())
}

func TestParseMode(t *testing.T) {
	m, err := enchant.ParseMode("good|great, no_fixed_artifact")
	require.NoError(t, err)
	assert.True(t, m.Has(enchant.ModeGood|enchant.ModeGreat))
	assert.True(t, m.Has(enchant.ModeNoFixedArtifact))
	assert.False(t, m.Has(enchant.ModeCursed))
	assert.Equal(t, "good|great|no_fixed_artifact", m.String())

	m, err = enchant.ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, "none", m.String())

	_, err = enchant.ParseMode("good|shiny")
	assert.ErrorContains(t, err, "shiny")
}

func TestParseLuck(t *testing.T) {
	l, err := enchant.ParseLuck("good")
	require.NoError(t, err)
	assert.Equal(t, enchant.LuckGood, l)
	_, err = enchant.ParseLuck("cosmic")
	assert.Error(t, err)
}
