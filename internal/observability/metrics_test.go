package observability_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/itemforge/internal/game/enchant"
	"github.com/cory-johannsen/itemforge/internal/game/inventory"
	"github.com/cory-johannsen/itemforge/internal/observability"
)

var _ enchant.Recorder = (*observability.Metrics)(nil)

// counterValue sums every series of the named family whose labels include want.
func counterValue(t *testing.T, reg *prometheus.Registry, name string, want map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	var total float64
	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
	series:
		for _, m := range fam.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			for k, v := range want {
				if labels[k] != v {
					continue series
				}
			}
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func TestMetrics_RecordOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	m.RecordOutcome(inventory.CategorySword, enchant.TierGood, enchant.OutcomeNameless)
	m.RecordOutcome(inventory.CategorySword, enchant.TierGreat, enchant.OutcomeEgo)
	m.RecordOutcome(inventory.CategorySword, enchant.TierGreat, enchant.OutcomeEgo)
	m.RecordOutcome(inventory.CategoryCloak, enchant.TierGreat, enchant.OutcomeFixedArtifact)

	assert.Equal(t, 4.0, counterValue(t, reg, observability.MetricNameItemsGenerated, nil))
	assert.Equal(t, 3.0, counterValue(t, reg, observability.MetricNameItemsGenerated,
		map[string]string{observability.LabelCategory: "sword"}))
	assert.Equal(t, 2.0, counterValue(t, reg, observability.MetricNameItemsGenerated,
		map[string]string{observability.LabelOutcome: enchant.OutcomeEgo.String()}))
}

func TestMetrics_RecordDiagnostic(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	m.RecordDiagnostic("no ego available for slot")
	m.RecordDiagnostic("no ego available for slot")
	assert.Equal(t, 2.0, counterValue(t, reg, observability.MetricNameDiagnostics,
		map[string]string{observability.LabelReason: "no ego available for slot"}))
}

func TestNewMetrics_DoubleRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	observability.NewMetrics(reg)
	assert.Panics(t, func() { observability.NewMetrics(reg) })
	assert.Panics(t, func() { observability.NewMetrics(nil) })
}
