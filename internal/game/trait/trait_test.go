package trait_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/itemforge/internal/game/dice"
	"github.com/cory-johannsen/itemforge/internal/game/trait"
)

func TestParse_KnownAndUnknown(t *testing.T) {
	got, err := trait.Parse("RES_FIRE")
	require.NoError(t, err)
	assert.Equal(t, trait.ResFire, got)

	_, err = trait.Parse("res_plasma")
	assert.Error(t, err)

	_, err = trait.Parse("none")
	assert.Error(t, err, "none is not a storable trait")
}

func TestTrait_StringParseRoundTrip(t *testing.T) {
	for _, tr := range trait.NewSet(trait.Stats...).Slice() {
		back, err := trait.Parse(tr.String())
		require.NoError(t, err)
		assert.Equal(t, tr, back)
	}
}

func TestSet_AddHasRemove(t *testing.T) {
	var s trait.Set
	assert.True(t, s.Add(trait.Speed))
	assert.False(t, s.Add(trait.Speed), "second add reports no change")
	assert.True(t, s.Has(trait.Speed))
	assert.Equal(t, 1, s.Len())

	s.Remove(trait.Speed)
	assert.False(t, s.Has(trait.Speed))
	assert.Equal(t, 0, s.Len())

	assert.False(t, s.Add(trait.None))
	assert.False(t, s.Has(trait.None))
}

func TestSet_HighTraitsUseSecondWord(t *testing.T) {
	var s trait.Set
	s.Add(trait.AddHCurse)
	s.Add(trait.Str)
	assert.Equal(t, []trait.Trait{trait.Str, trait.AddHCurse}, s.Slice())
}

func TestSet_Property_AddThenHas(t *testing.T) {
	all := trait.NewSet(append(append([]trait.Trait{}, trait.HighResists...), trait.Sustains...)...).Slice()
	rapid.Check(t, func(rt *rapid.T) {
		picks := rapid.SliceOf(rapid.SampledFrom(all)).Draw(rt, "picks")
		var s trait.Set
		distinct := map[trait.Trait]bool{}
		for _, p := range picks {
			s.Add(p)
			distinct[p] = true
		}
		assert.Equal(rt, len(distinct), s.Len())
		for p := range distinct {
			assert.True(rt, s.Has(p))
		}
	})
}

func TestSet_YAML(t *testing.T) {
	var doc struct {
		Traits trait.Set      `yaml:"traits"`
		Curses trait.CurseSet `yaml:"curses"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("traits: [res_fire, str]\ncurses: [heavy_curse]\n"), &doc))
	assert.True(t, doc.Traits.Has(trait.ResFire))
	assert.True(t, doc.Traits.Has(trait.Str))
	assert.True(t, doc.Curses.Has(trait.HeavyCurse))
	assert.False(t, doc.Curses.Has(trait.Cursed))

	out, err := yaml.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), "res_fire")
	assert.Contains(t, string(out), "heavy_curse")
}

func TestSet_YAMLOmitEmpty(t *testing.T) {
	doc := struct {
		Traits trait.Set  `yaml:"traits,omitempty"`
		Bias   trait.Bias `yaml:"bias,omitempty"`
	}{Bias: trait.BiasFire}
	out, err := yaml.Marshal(doc)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "traits")
	assert.Contains(t, string(out), "bias: fire")

	doc.Traits = trait.NewSet(trait.Str)
	out, err = yaml.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), "- str")
}

func TestSet_YAMLRejectsUnknown(t *testing.T) {
	var doc struct {
		Traits trait.Set `yaml:"traits"`
	}
	assert.Error(t, yaml.Unmarshal([]byte("traits: [laser_eyes]\n"), &doc))
}

func TestAddOneOf_PrefersAbsent(t *testing.T) {
	src := dice.NewSeededSource(11)
	s := trait.NewSet(trait.ResAcid, trait.ResElec, trait.ResFire)
	got := s.AddOneOf(src, trait.EleResists)
	assert.Equal(t, trait.ResCold, got)
	assert.Equal(t, trait.None, s.AddOneOf(src, trait.EleResists), "exhausted pool adds nothing")
	assert.Equal(t, 4, s.Len())
}

func TestCurseSet(t *testing.T) {
	var c trait.CurseSet
	assert.False(t, c.Any())
	c.Set(trait.Cursed)
	c.Merge(trait.CurseSet(trait.PermaCurse))
	assert.True(t, c.Has(trait.Cursed))
	assert.True(t, c.Has(trait.PermaCurse))
	assert.False(t, c.Has(trait.HeavyCurse))
	assert.Equal(t, []string{"cursed", "perma_curse"}, c.Names())
}

func TestParseBias(t *testing.T) {
	b, err := trait.ParseBias("Warrior")
	require.NoError(t, err)
	assert.Equal(t, trait.BiasWarrior, b)

	b, err = trait.ParseBias("")
	require.NoError(t, err)
	assert.Equal(t, trait.BiasNone, b)

	_, err = trait.ParseBias("bard")
	assert.Error(t, err)
}
