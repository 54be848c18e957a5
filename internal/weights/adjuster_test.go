package weights

import (
	"testing"

	"github.com/GondaliaKaran/openclaw-buildathon/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func outage(vendor string) models.Discovery {
	return models.Discovery{
		Kind:        models.DiscoveryUptimeIssue,
		Vendor:      vendor,
		Description: vendor + " has uptime concerns",
		Evidence:    "Major outage in March",
		Criterion:   models.CriterionUptimeReliability,
	}
}

func missingGo(vendor string) models.Discovery {
	return models.Discovery{
		Kind:        models.DiscoveryMissingCapability,
		Vendor:      vendor,
		Description: vendor + " missing SDK for Go",
		Evidence:    "No official support for [Go]",
		Criterion:   models.CriterionIntegrationComplexity,
	}
}

func TestAdjust_Outage(t *testing.T) {
	tests := []struct {
		name       string
		priorities []string
		wantAfter  float64
	}{
		{"no priority", nil, 25},
		{"matching priority", []string{"Uptime"}, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			initial := DefaultTable()
			ctx := models.EvaluationContext{Priorities: tt.priorities}

			final, adjustments := NewAdjuster().Adjust([]models.Discovery{outage("Acme")}, initial, ctx)

			require.Len(t, adjustments, 1)
			adj := adjustments[0]
			assert.Equal(t, models.CriterionUptimeReliability, adj.Criterion)
			assert.Equal(t, 15.0, adj.WeightBefore)
			assert.Equal(t, tt.wantAfter, adj.WeightAfter)
			assert.Equal(t, []string{"SLA investigation"}, adj.FollowUps)

			uptime, _ := final.Get(models.CriterionUptimeReliability)
			assert.InDelta(t, tt.wantAfter/(85+tt.wantAfter)*100, uptime.CurrentWeight, 1e-9)
			assert.Equal(t, []string{"Acme has uptime concerns"}, uptime.History)
			assert.InDelta(t, Total, final.Sum(), 1e-6)
		})
	}
}

func TestAdjust_MissingSDK(t *testing.T) {
	initial := DefaultTable()

	_, adjustments := NewAdjuster().Adjust([]models.Discovery{missingGo("Acme")}, initial, models.EvaluationContext{})
	require.Len(t, adjustments, 1)
	assert.Equal(t, 8.0, adjustments[0].WeightAfter-adjustments[0].WeightBefore)
	assert.Equal(t, []string{"Custom integration effort estimate"}, adjustments[0].FollowUps)

	ctx := models.EvaluationContext{Priorities: []string{"integration"}}
	_, adjustments = NewAdjuster().Adjust([]models.Discovery{missingGo("Acme")}, initial, ctx)
	require.Len(t, adjustments, 1)
	assert.Equal(t, 12.0, adjustments[0].WeightAfter-adjustments[0].WeightBefore)
}

func TestAdjust_ClampsEachAdjustment(t *testing.T) {
	var discoveries []models.Discovery
	for range 5 {
		discoveries = append(discoveries, outage("Acme"))
	}

	_, adjustments := NewAdjuster().Adjust(discoveries, DefaultTable(), models.EvaluationContext{})
	require.Len(t, adjustments, 5)
	for _, adj := range adjustments {
		assert.GreaterOrEqual(t, adj.WeightAfter, DefaultMinWeight)
		assert.LessOrEqual(t, adj.WeightAfter, DefaultMaxWeight)
	}
	assert.Equal(t, 25.0, adjustments[0].WeightAfter)
	assert.Equal(t, 35.0, adjustments[1].WeightAfter)
	assert.Equal(t, 40.0, adjustments[2].WeightAfter)
	assert.Equal(t, 40.0, adjustments[4].WeightAfter)
}

func TestAdjust_RaisesToLowerBound(t *testing.T) {
	gap := models.Discovery{
		Kind:      models.DiscoveryComplianceGap,
		Vendor:    "Acme",
		Criterion: models.CriterionCompliance,
	}

	adj := NewAdjuster(WithDelta(models.DiscoveryComplianceGap, 1))
	_, adjustments := adj.Adjust([]models.Discovery{gap}, DefaultTable(), models.EvaluationContext{})
	require.Len(t, adjustments, 1)
	assert.Equal(t, 0.0, adjustments[0].WeightBefore)
	assert.Equal(t, DefaultMinWeight, adjustments[0].WeightAfter)
}

func TestAdjust_Disabled(t *testing.T) {
	initial := Initialize(models.EvaluationContext{Compliance: []string{"GDPR"}})

	final, adjustments := NewAdjuster(WithDynamic(false)).Adjust(
		[]models.Discovery{outage("Acme"), missingGo("Acme")}, initial, models.EvaluationContext{})

	require.NotNil(t, adjustments)
	assert.Empty(t, adjustments)
	assert.Equal(t, initial.All(), final.All())
}

func TestAdjust_DoesNotMutateInitial(t *testing.T) {
	initial := DefaultTable()
	before := initial.All()

	NewAdjuster().Adjust([]models.Discovery{outage("A"), missingGo("B")}, initial, models.EvaluationContext{})

	assert.Equal(t, before, initial.All())
}

func TestAdjust_SkipsUnresolvableCriterion(t *testing.T) {
	initial := NewTable(
		models.Criterion{ID: models.CriterionPricing, Name: "Pricing", CurrentWeight: 50},
		models.Criterion{ID: models.CriterionPerformance, Name: "Performance", CurrentWeight: 50},
	)

	final, adjustments := NewAdjuster().Adjust([]models.Discovery{outage("Acme")}, initial, models.EvaluationContext{})
	assert.Empty(t, adjustments)
	assert.Equal(t, initial.Weights(), final.Weights())
}

func TestAdjust_UnknownKindUsesDefaultDelta(t *testing.T) {
	d := models.Discovery{
		Kind:      models.HiddenRiskKind("acquisition"),
		Vendor:    "Acme",
		Criterion: models.CriterionVendorHealth,
	}
	_, adjustments := NewAdjuster().Adjust([]models.Discovery{d}, DefaultTable(), models.EvaluationContext{})
	require.Len(t, adjustments, 1)
	assert.Equal(t, 10.0, adjustments[0].WeightAfter)
}

func TestAdjust_SumsToTotal(t *testing.T) {
	discoveries := []models.Discovery{
		outage("A"), outage("B"), missingGo("A"),
		{Kind: models.DiscoveryPricingConcern, Criterion: models.CriterionPricing},
		{Kind: models.DiscoveryComplianceGap, Criterion: models.CriterionCompliance},
		{Kind: models.HiddenRiskKind(models.RiskLockIn), Criterion: models.CriterionIntegrationComplexity},
	}
	ctx := models.EvaluationContext{Priorities: []string{"pricing", "compliance"}, Compliance: []string{"PCI"}}

	final, adjustments := NewAdjuster().Adjust(discoveries, Initialize(ctx), ctx)
	assert.Len(t, adjustments, len(discoveries))
	assert.InDelta(t, Total, final.Sum(), 1e-6)
}

func TestDelta(t *testing.T) {
	a := NewAdjuster()
	assert.Equal(t, 10.0, a.Delta(models.DiscoveryUptimeIssue))
	assert.Equal(t, 8.0, a.Delta(models.DiscoveryMissingCapability))
	assert.Equal(t, 7.0, a.Delta(models.DiscoveryPricingConcern))
	assert.Equal(t, 12.0, a.Delta(models.DiscoveryComplianceGap))
	assert.Equal(t, 5.0, a.Delta(models.HiddenRiskKind("maintainer_health")))
	assert.Equal(t, 8.0, a.Delta(models.HiddenRiskKind("pricing_trap")))
	assert.Equal(t, 4.0, a.Delta(models.HiddenRiskKind("vendor_lockin")))
	assert.Equal(t, DefaultDelta, a.Delta("something-else"))
}
