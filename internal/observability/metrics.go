package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/cory-johannsen/itemforge/internal/game/enchant"
	"github.com/cory-johannsen/itemforge/internal/game/inventory"
)

// Metric names.
const (
	MetricNameItemsGenerated = "itemforge_items_generated_total"
	MetricNameDiagnostics    = "itemforge_diagnostics_total"

	LabelCategory = "category"
	LabelTier     = "tier"
	LabelOutcome  = "outcome"
	LabelReason   = "reason"
)

// Metrics counts generation outcomes and table-gap diagnostics. It
// implements enchant.Recorder.
type Metrics struct {
	items       *prometheus.CounterVec
	diagnostics *prometheus.CounterVec
}

// NewMetrics registers the generation counters with reg.
//
// Precondition: reg must be non-nil and must not already hold these metrics.
// Postcondition: Returns a Metrics whose counters start at zero.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		panic("observability: NewMetrics precondition violated: reg must be non-nil")
	}
	factory := promauto.With(reg)
	return &Metrics{
		items: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricNameItemsGenerated,
				Help: "Items finished by the enchantment engine.",
			},
			[]string{LabelCategory, LabelTier, LabelOutcome},
		),
		diagnostics: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricNameDiagnostics,
				Help: "Table gaps and exhausted re-rolls seen during enchantment.",
			},
			[]string{LabelReason},
		),
	}
}

// RecordOutcome counts one finished item.
func (m *Metrics) RecordOutcome(category inventory.Category, tier enchant.Tier, outcome enchant.Outcome) {
	m.items.WithLabelValues(string(category), tier.String(), outcome.String()).Inc()
}

// RecordDiagnostic counts one diagnostic by reason.
func (m *Metrics) RecordDiagnostic(reason string) {
	m.diagnostics.WithLabelValues(reason).Inc()
}
