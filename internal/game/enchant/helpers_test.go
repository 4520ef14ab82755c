package enchant_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/itemforge/internal/game/artifact"
	"github.com/cory-johannsen/itemforge/internal/game/dice"
	"github.com/cory-johannsen/itemforge/internal/game/ego"
	"github.com/cory-johannsen/itemforge/internal/game/enchant"
	"github.com/cory-johannsen/itemforge/internal/game/inventory"
)

const contentRoot = "../../../content"

func newRoller(seed uint64) *dice.Roller {
	return dice.NewRoller(dice.NewSeededSource(seed), zap.NewNop())
}

func loadItems(t testing.TB) *inventory.Registry {
	t.Helper()
	defs, err := inventory.LoadBaseItems(contentRoot + "/items")
	require.NoError(t, err)
	reg, err := inventory.NewRegistryFromDefs(defs)
	require.NoError(t, err)
	return reg
}

func loadEgos(t testing.TB) *ego.Table {
	t.Helper()
	defs, err := ego.LoadDefs(contentRoot + "/egos")
	require.NoError(t, err)
	tbl, err := ego.NewTable(defs, zap.NewNop())
	require.NoError(t, err)
	return tbl
}

func loadArtifacts(t testing.TB) *artifact.Generator {
	t.Helper()
	defs, err := artifact.LoadDefs(contentRoot + "/artifacts")
	require.NoError(t, err)
	reg, err := artifact.NewRegistry(defs)
	require.NoError(t, err)
	return artifact.NewGenerator(reg, artifact.NewRandomGenerator(zap.NewNop()))
}

func newEngine(t *testing.T, opts ...enchant.Option) *enchant.Engine {
	t.Helper()
	return enchant.NewEngine(enchant.DefaultConfig(), loadEgos(t), loadArtifacts(t), zaptest.NewLogger(t), opts...)
}

func newItem(t testing.TB, reg *inventory.Registry, id string) *inventory.Item {
	t.Helper()
	it, err := reg.NewItem(id)
	require.NoError(t, err)
	return it
}

// noArtifacts never promotes.
type noArtifacts struct{}

func (noArtifacts) TryMakeFixedArtifact(*dice.Roller, *inventory.Item, int) bool { return false }
func (noArtifacts) TryMakeRandomArtifact(*dice.Roller, *inventory.Item, int, bool) bool {
	return false
}

type tierOutcome struct {
	tier    enchant.Tier
	outcome enchant.Outcome
}

type countingRecorder struct {
	outcomes    map[enchant.Outcome]int
	tiers       map[enchant.Tier]int
	pairs       map[tierOutcome]int
	diagnostics map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{
		outcomes:    map[enchant.Outcome]int{},
		tiers:       map[enchant.Tier]int{},
		pairs:       map[tierOutcome]int{},
		diagnostics: map[string]int{},
	}
}

func (c *countingRecorder) RecordOutcome(_ inventory.Category, tier enchant.Tier, o enchant.Outcome) {
	c.outcomes[o]++
	c.tiers[tier]++
	c.pairs[tierOutcome{tier, o}]++
}

func (c *countingRecorder) RecordDiagnostic(reason string) {
	c.diagnostics[reason]++
}
