// Package scoring converts free-form analysis text into criterion scores.
package scoring

import (
	"strings"

	"github.com/GondaliaKaran/openclaw-buildathon/internal/models"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/utils"
)

// Score range on the 1 to 10 scale.
const (
	MinScore = 1.0
	MaxScore = 10.0
	// NeutralScore is returned for blank text.
	NeutralScore = 5.0
	// BalancedScore is returned when favorable and unfavorable signals tie.
	BalancedScore = 6.0
)

// Keywords are the sentiment phrases the scorer counts.
type Keywords struct {
	Positive []string
	Negative []string
}

// DefaultKeywords returns the built-in sentiment phrases.
func DefaultKeywords() Keywords {
	return Keywords{
		Positive: []string{"excellent", "great", "strong", "robust", "high quality", "reliable", "fast", "comprehensive"},
		Negative: []string{"poor", "weak", "limited", "slow", "unreliable", "lacking", "difficult", "complex", "expensive"},
	}
}

// inverseCriteria are criteria where negative-sounding text is favorable:
// "complex" integration or "expensive" pricing mean a worse vendor, so the
// scorer swaps which signal counts as favorable.
var inverseCriteria = map[models.CriterionID]bool{
	models.CriterionPricing:               true,
	models.CriterionIntegrationComplexity: true,
}

// IsInverse reports whether id is scored in inverse mode.
func IsInverse(id models.CriterionID) bool {
	return inverseCriteria[id]
}

// HeuristicScorer scores text by counting sentiment phrases. It holds no
// mutable state and is safe for concurrent use.
type HeuristicScorer struct {
	positive []string
	negative []string
}

// NewHeuristicScorer returns a scorer for kw. Empty lists fall back to the defaults.
func NewHeuristicScorer(kw Keywords) *HeuristicScorer {
	def := DefaultKeywords()
	if len(kw.Positive) == 0 {
		kw.Positive = def.Positive
	}
	if len(kw.Negative) == 0 {
		kw.Negative = def.Negative
	}
	return &HeuristicScorer{
		positive: utils.LowerAll(kw.Positive),
		negative: utils.LowerAll(kw.Negative),
	}
}

// Score maps text to a value in [MinScore, MaxScore]. Blank text scores
// NeutralScore. Each phrase counts once when present; inverse swaps the
// positive and negative counts.
func (s *HeuristicScorer) Score(text string, inverse bool) float64 {
	if strings.TrimSpace(text) == "" {
		return NeutralScore
	}

	favorable := utils.CountPresent(text, s.positive)
	unfavorable := utils.CountPresent(text, s.negative)
	if inverse {
		favorable, unfavorable = unfavorable, favorable
	}

	var score float64
	switch {
	case favorable > unfavorable:
		score = 7 + float64(min(favorable, 3))
	case unfavorable > favorable:
		score = 5 - float64(min(unfavorable, 4))
	default:
		score = BalancedScore
	}

	return max(MinScore, min(MaxScore, score))
}

// ScoreCriterion scores text for a criterion, using inverse mode where the
// criterion calls for it.
func (s *HeuristicScorer) ScoreCriterion(id models.CriterionID, text string) float64 {
	return s.Score(text, IsInverse(id))
}

// ScoreFindings scores every criterion in ids from a candidate's findings.
// Criteria without analysis text score NeutralScore.
func (s *HeuristicScorer) ScoreFindings(f *models.ResearchFindings, ids []models.CriterionID) map[models.CriterionID]float64 {
	scores := make(map[models.CriterionID]float64, len(ids))
	for _, id := range ids {
		scores[id] = s.ScoreCriterion(id, f.Analysis(id))
	}
	return scores
}
