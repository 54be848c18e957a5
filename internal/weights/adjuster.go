package weights

import (
	"log/slog"
	"strings"

	"github.com/GondaliaKaran/openclaw-buildathon/internal/models"
)

// Default adjuster settings.
const (
	DefaultMinWeight          = 5.0
	DefaultMaxWeight          = 40.0
	DefaultPriorityMultiplier = 1.5
	DefaultDelta              = 5.0
)

// DefaultDeltas are the base weight increments per discovery kind.
var DefaultDeltas = map[models.DiscoveryKind]float64{
	models.DiscoveryUptimeIssue:                        10,
	models.DiscoveryMissingCapability:                  8,
	models.DiscoveryPricingConcern:                     7,
	models.DiscoveryComplianceGap:                      12,
	models.HiddenRiskKind(models.RiskMaintainerHealth): 5,
	models.HiddenRiskKind(models.RiskPricingTrap):      8,
	models.HiddenRiskKind(models.RiskLockIn):           4,
}

var followUps = map[models.DiscoveryKind][]string{
	models.DiscoveryUptimeIssue:       {"SLA investigation"},
	models.DiscoveryMissingCapability: {"Custom integration effort estimate"},
}

// Adjuster turns discoveries into weight changes.
type Adjuster struct {
	dynamic            bool
	minWeight          float64
	maxWeight          float64
	priorityMultiplier float64
	defaultDelta       float64
	deltas             map[models.DiscoveryKind]float64
	logger             *slog.Logger
}

// AdjusterOption configures an Adjuster.
type AdjusterOption func(*Adjuster)

// WithDynamic enables or disables weight adjustment.
func WithDynamic(enabled bool) AdjusterOption {
	return func(a *Adjuster) { a.dynamic = enabled }
}

// WithBounds sets the clamp range applied after each adjustment.
func WithBounds(lo, hi float64) AdjusterOption {
	return func(a *Adjuster) {
		if lo > 0 && hi >= lo {
			a.minWeight = lo
			a.maxWeight = hi
		}
	}
}

// WithPriorityMultiplier sets the factor applied to a delta when a declared
// priority matches the affected criterion.
func WithPriorityMultiplier(m float64) AdjusterOption {
	return func(a *Adjuster) {
		if m > 0 {
			a.priorityMultiplier = m
		}
	}
}

// WithDelta overrides the base delta for one discovery kind.
func WithDelta(kind models.DiscoveryKind, delta float64) AdjusterOption {
	return func(a *Adjuster) { a.deltas[kind] = delta }
}

// WithLogger sets the logger used for skipped discoveries.
func WithLogger(l *slog.Logger) AdjusterOption {
	return func(a *Adjuster) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAdjuster returns an enabled adjuster with default deltas and bounds.
func NewAdjuster(opts ...AdjusterOption) *Adjuster {
	a := &Adjuster{
		dynamic:            true,
		minWeight:          DefaultMinWeight,
		maxWeight:          DefaultMaxWeight,
		priorityMultiplier: DefaultPriorityMultiplier,
		defaultDelta:       DefaultDelta,
		deltas:             make(map[models.DiscoveryKind]float64, len(DefaultDeltas)),
		logger:             slog.Default(),
	}
	for k, v := range DefaultDeltas {
		a.deltas[k] = v
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Delta returns the base increment for a discovery kind.
func (a *Adjuster) Delta(kind models.DiscoveryKind) float64 {
	if d, ok := a.deltas[kind]; ok {
		return d
	}
	return a.defaultDelta
}

// Adjust applies discoveries, in order, to a copy of initial and returns the
// renormalized result together with one audit record per applied discovery.
// initial is never modified. When the adjuster is disabled the copy is
// returned untouched with an empty record list.
func (a *Adjuster) Adjust(discoveries []models.Discovery, initial *Table, ctx models.EvaluationContext) (*Table, []models.WeightAdjustment) {
	table := initial.Clone()
	adjustments := []models.WeightAdjustment{}

	if !a.dynamic {
		return table, adjustments
	}

	for _, d := range discoveries {
		criterion, ok := table.Get(d.Criterion)
		if !ok {
			a.logger.Warn("discovery has no matching criterion, skipping",
				"kind", d.Kind, "vendor", d.Vendor, "criterion", d.Criterion)
			continue
		}

		delta := a.Delta(d.Kind)
		if delta == 0 {
			continue
		}
		if priorityMatches(ctx.Priorities, criterion) {
			delta *= a.priorityMultiplier
		}

		before := criterion.CurrentWeight
		after := clamp(before+delta, a.minWeight, a.maxWeight)
		criterion.CurrentWeight = after
		criterion.History = append(criterion.History, d.Description)

		adjustments = append(adjustments, models.WeightAdjustment{
			Criterion:    criterion.ID,
			Kind:         d.Kind,
			Vendor:       d.Vendor,
			Discovery:    d.Description,
			Evidence:     d.Evidence,
			WeightBefore: before,
			WeightAfter:  after,
			FollowUps:    append([]string(nil), followUps[d.Kind]...),
		})

		a.logger.Debug("adjusted weight",
			"criterion", criterion.ID, "before", before, "after", after,
			"kind", d.Kind, "hidden_risk", d.Kind.IsHiddenRisk())
	}

	table.Normalize()
	return table, adjustments
}

// priorityMatches reports whether any non-blank priority is a case-insensitive
// substring of the criterion's display name or its id.
func priorityMatches(priorities []string, c *models.Criterion) bool {
	name := strings.ToLower(c.Name)
	id := strings.ReplaceAll(string(c.ID), "_", " ")
	for _, p := range priorities {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if strings.Contains(name, p) || strings.Contains(id, p) {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
