package scoring

import (
	"testing"

	"github.com/GondaliaKaran/openclaw-buildathon/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	s := NewHeuristicScorer(Keywords{})

	tests := []struct {
		name    string
		text    string
		inverse bool
		want    float64
	}{
		{"empty", "", false, 5},
		{"blank", "   \n", false, 5},
		{"neutral text", "The vendor offers an API.", false, 6},
		{"one positive", "Excellent documentation", false, 8},
		{"positives cap at three", "excellent, great, strong, robust and fast", false, 10},
		{"one negative", "Support is slow", false, 4},
		{"negatives cap at four", "poor weak limited slow lacking difficult", false, 1},
		{"repeated keyword counts once", "slow slow slow", false, 4},
		{"tie", "fast but expensive", false, 6},
		{"inverse swaps", "Complex and expensive setup", true, 9},
		{"inverse of praise", "great value", true, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Score(tt.text, tt.inverse))
		})
	}
}

func TestScore_Deterministic(t *testing.T) {
	s := NewHeuristicScorer(Keywords{})
	text := "Robust SDKs but limited regional support and slow onboarding"

	first := s.Score(text, false)
	for range 10 {
		assert.Equal(t, first, s.Score(text, false))
	}
}

func TestScore_Bounds(t *testing.T) {
	s := NewHeuristicScorer(Keywords{})
	texts := []string{
		"",
		"excellent great strong robust high quality reliable fast comprehensive",
		"poor weak limited slow unreliable lacking difficult complex expensive",
	}
	for _, text := range texts {
		for _, inverse := range []bool{false, true} {
			got := s.Score(text, inverse)
			assert.GreaterOrEqual(t, got, MinScore)
			assert.LessOrEqual(t, got, MaxScore)
		}
	}
}

func TestScore_CustomKeywords(t *testing.T) {
	s := NewHeuristicScorer(Keywords{Positive: []string{"Blazing"}})
	assert.Equal(t, 8.0, s.Score("blazing throughput", false))
	// negatives keep their defaults
	assert.Equal(t, 4.0, s.Score("poor throughput", false))
}

func TestScoreFindings(t *testing.T) {
	s := NewHeuristicScorer(Keywords{})
	f := &models.ResearchFindings{
		Vendor: "Acme",
		Dimensions: map[models.CriterionID]models.DimensionFinding{
			models.CriterionSDKQuality: {Analysis: "Comprehensive SDKs"},
			models.CriterionPricing:    {Analysis: "Expensive at scale"},
		},
	}

	scores := s.ScoreFindings(f, []models.CriterionID{
		models.CriterionSDKQuality,
		models.CriterionPricing,
		models.CriterionSupportQuality,
	})

	assert.Equal(t, map[models.CriterionID]float64{
		models.CriterionSDKQuality:     8,
		models.CriterionPricing:        8,
		models.CriterionSupportQuality: 5,
	}, scores)
}

func TestIsInverse(t *testing.T) {
	assert.True(t, IsInverse(models.CriterionPricing))
	assert.True(t, IsInverse(models.CriterionIntegrationComplexity))
	assert.False(t, IsInverse(models.CriterionSDKQuality))
}
