package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/itemforge/internal/game/dice"
)

func newRoller(seed uint64) *dice.Roller {
	return dice.NewRoller(dice.NewSeededSource(seed), zap.NewNop())
}

func TestParse_Valid(t *testing.T) {
	cases := map[string]dice.Dice{
		"2d5":  {Count: 2, Sides: 5},
		"d8":   {Count: 1, Sides: 8},
		"10D4": {Count: 10, Sides: 4},
		"":     {},
	}
	for expr, want := range cases {
		got, err := dice.Parse(expr)
		require.NoError(t, err, "expr %q", expr)
		assert.Equal(t, want, got, "expr %q", expr)
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, expr := range []string{"5", "0d6", "2d0", "xd6", "2dx", "2d6+3"} {
		_, err := dice.Parse(expr)
		assert.Error(t, err, "expr %q must be rejected", expr)
	}
}

func TestMustParse_PanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() { dice.MustParse("nope") })
}

func TestDice_StringRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		d := dice.Dice{
			Count: rapid.IntRange(1, 20).Draw(rt, "count"),
			Sides: rapid.IntRange(1, 100).Draw(rt, "sides"),
		}
		back, err := dice.Parse(d.String())
		require.NoError(rt, err)
		assert.Equal(rt, d, back)
	})
}

func TestCryptoSource_Intn_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
}

func TestCryptoSource_Intn_PanicsOnZero(t *testing.T) {
	src := dice.NewCryptoSource()
	assert.Panics(t, func() { src.Intn(0) })
}

func TestSeededSource_Reproducible(t *testing.T) {
	a := dice.NewSeededSource(42)
	b := dice.NewSeededSource(42)
	for i := 0; i < 200; i++ {
		require.Equal(t, a.Intn(1000), b.Intn(1000))
	}
}

func TestNewSeed(t *testing.T) {
	_, err := dice.NewSeed()
	assert.NoError(t, err)
}

func TestNewRoller_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { dice.NewRoller(nil, zap.NewNop()) })
	assert.Panics(t, func() { dice.NewRoller(dice.NewCryptoSource(), nil) })
}

func TestRoller_PrimitivesStayInRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		r := newRoller(rapid.Uint64().Draw(rt, "seed"))
		n := rapid.IntRange(1, 500).Draw(rt, "n")

		v0 := r.RandInt0(n)
		assert.GreaterOrEqual(rt, v0, 0)
		assert.Less(rt, v0, n)

		v1 := r.RandInt1(n)
		assert.GreaterOrEqual(rt, v1, 1)
		assert.LessOrEqual(rt, v1, n)

		lo := rapid.IntRange(-50, 50).Draw(rt, "lo")
		hi := rapid.IntRange(lo, lo+50).Draw(rt, "hi")
		v := r.Range(lo, hi)
		assert.GreaterOrEqual(rt, v, lo)
		assert.LessOrEqual(rt, v, hi)
	})
}

func TestRoller_DegenerateArguments(t *testing.T) {
	r := newRoller(1)
	assert.Equal(t, 0, r.RandInt0(0))
	assert.Equal(t, 1, r.RandInt1(0))
	assert.True(t, r.OneIn(1))
	assert.True(t, r.OneIn(0))
	assert.False(t, r.Magik(0))
	assert.True(t, r.Magik(100))
	assert.Equal(t, 7, r.Range(7, 3))
	assert.Equal(t, 12, r.Normal(12, 0))
}

func TestRoller_OneInFrequency(t *testing.T) {
	r := newRoller(7)
	hits := 0
	const trials = 20000
	for i := 0; i < trials; i++ {
		if r.OneIn(4) {
			hits++
		}
	}
	assert.InDelta(t, 0.25, float64(hits)/trials, 0.02)
}

func TestRoller_NormalCentersOnMean(t *testing.T) {
	r := newRoller(99)
	sum := 0
	const trials = 20000
	for i := 0; i < trials; i++ {
		sum += r.Normal(10, 3)
	}
	assert.InDelta(t, 10.0, float64(sum)/trials, 0.2)
}

func TestRoller_RollLogsAtDebug(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := dice.NewRoller(dice.NewSeededSource(3), zap.New(core))

	total := r.Roll(dice.Dice{Count: 3, Sides: 6})
	assert.GreaterOrEqual(t, total, 3)
	assert.LessOrEqual(t, total, 18)

	entries := logs.FilterMessage("dice roll").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "3d6", entries[0].ContextMap()["expression"])
	assert.Equal(t, int64(total), entries[0].ContextMap()["total"])
}

func TestRoller_RollZeroDice(t *testing.T) {
	assert.Equal(t, 0, newRoller(1).Roll(dice.Dice{}))
}

func TestRoller_MBonusBounded(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		r := newRoller(rapid.Uint64().Draw(rt, "seed"))
		max := rapid.IntRange(-3, 40).Draw(rt, "max")
		level := rapid.IntRange(-10, 300).Draw(rt, "level")
		got := r.MBonus(max, level)
		assert.GreaterOrEqual(rt, got, 0)
		if max > 0 {
			assert.LessOrEqual(rt, got, max)
		} else {
			assert.Equal(rt, 0, got)
		}
	})
}

func TestRoller_MBonusGrowsWithLevel(t *testing.T) {
	r := newRoller(5)
	shallow, deep := 0, 0
	for i := 0; i < 2000; i++ {
		shallow += r.MBonus(10, 5)
		deep += r.MBonus(10, 120)
	}
	assert.Greater(t, deep, shallow*3)
}
