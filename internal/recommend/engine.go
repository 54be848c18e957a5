// Package recommend ranks candidates under a final weight table and
// synthesizes the recommendation report.
package recommend

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/GondaliaKaran/openclaw-buildathon/internal/models"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/oracle"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/scoring"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/utils"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/weights"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// StrengthThreshold is the minimum score for a criterion to be listed as a strength.
	StrengthThreshold = 7.0
	// WeaknessThreshold is the maximum score for a criterion to be listed as a weakness.
	WeaknessThreshold = 5.0

	maxListed     = 3
	evidenceRunes = 150
	riskRunes     = 80

	// DefaultNarrativeTimeout bounds the single narrative oracle call.
	DefaultNarrativeTimeout = 2 * time.Minute
)

// Engine ranks candidates and synthesizes recommendations.
type Engine struct {
	scorer   *scoring.HeuristicScorer
	narrator oracle.NarrativeOracle
	persona  string
	timeout  time.Duration
	logger   *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithPersona sets the persona text passed to the narrative oracle.
func WithPersona(persona string) EngineOption {
	return func(e *Engine) { e.persona = persona }
}

// WithNarrativeTimeout bounds the narrative oracle call.
func WithNarrativeTimeout(d time.Duration) EngineOption {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithLogger sets the engine logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine creates an engine. A nil scorer uses the default keywords.
func NewEngine(scorer *scoring.HeuristicScorer, narrator oracle.NarrativeOracle, opts ...EngineOption) *Engine {
	if scorer == nil {
		scorer = scoring.NewHeuristicScorer(scoring.Keywords{})
	}
	e := &Engine{
		scorer:   scorer,
		narrator: narrator,
		timeout:  DefaultNarrativeTimeout,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Rank scores every candidate against table and returns them best first.
// Candidates with equal weighted scores keep their input order. Candidates
// without findings get neutral scores and an insufficient-data note.
func (e *Engine) Rank(candidates []models.Candidate, findings []models.ResearchFindings, table *weights.Table) []models.VendorScore {
	byVendor := make(map[string]*models.ResearchFindings, len(findings))
	for i := range findings {
		byVendor[strings.ToLower(findings[i].Vendor)] = &findings[i]
	}

	ids := table.IDs()
	final := table.Weights()

	scores := make([]models.VendorScore, 0, len(candidates))
	for _, c := range candidates {
		f := byVendor[strings.ToLower(c.Name)]

		criterionScores := e.scorer.ScoreFindings(f, ids)

		// table order keeps the sum reproducible, so equal inputs tie exactly
		var weighted float64
		for _, id := range ids {
			if w, ok := final[id]; ok {
				weighted += criterionScores[id] * w / 100
			}
		}

		vs := models.VendorScore{
			Vendor:          c.Name,
			WeightedScore:   weighted,
			CriterionScores: criterionScores,
			Evidence:        evidenceExcerpts(f),
			Notes:           notes(f),
		}
		vs.Strengths, vs.Weaknesses = strengthsAndWeaknesses(criterionScores, f, table)
		scores = append(scores, vs)
	}

	sort.SliceStable(scores, func(a, b int) bool {
		return scores[a].WeightedScore > scores[b].WeightedScore
	})
	for i := range scores {
		scores[i].Rank = i + 1
	}
	return scores
}

// strengthsAndWeaknesses lists up to three strengths and three weaknesses.
// Criteria are ordered by score, ties in table order. Hidden risks are
// appended to the weaknesses after the score-derived entries.
func strengthsAndWeaknesses(scores map[models.CriterionID]float64, f *models.ResearchFindings, table *weights.Table) ([]string, []string) {
	ordered := table.All()
	sort.SliceStable(ordered, func(a, b int) bool {
		return scores[ordered[a].ID] > scores[ordered[b].ID]
	})

	strengths := []string{}
	for _, c := range ordered[:min(maxListed, len(ordered))] {
		if s := scores[c.ID]; s >= StrengthThreshold {
			strengths = append(strengths, fmt.Sprintf("Strong %s (Score: %.1f/10)", c.Name, s))
		}
	}

	weaknesses := []string{}
	for _, c := range ordered[max(0, len(ordered)-maxListed):] {
		if s := scores[c.ID]; s <= WeaknessThreshold {
			weaknesses = append(weaknesses, fmt.Sprintf("Weaker %s (Score: %.1f/10)", c.Name, s))
		}
	}
	if f != nil {
		for _, r := range f.HiddenRisks {
			weaknesses = append(weaknesses, fmt.Sprintf("%s: %s", RiskTitle(r.Type), utils.Truncate(r.Description, riskRunes)))
		}
	}

	return strengths[:min(maxListed, len(strengths))], weaknesses[:min(maxListed, len(weaknesses))]
}

var titleCaser = cases.Title(language.English)

// RiskTitle renders a risk type for display, e.g. "vendor_lockin" as "Vendor Lockin".
func RiskTitle(riskType string) string {
	return titleCaser.String(strings.NewReplacer("_", " ", "-", " ").Replace(riskType))
}

func evidenceExcerpts(f *models.ResearchFindings) map[models.CriterionID]string {
	if f == nil {
		return nil
	}
	out := map[models.CriterionID]string{}
	for id, dim := range f.Dimensions {
		if dim.Analysis != "" {
			out[id] = utils.Truncate(dim.Analysis, evidenceRunes)
		}
	}
	return out
}

func notes(f *models.ResearchFindings) []string {
	if f == nil {
		return []string{"insufficient data: no research findings"}
	}
	out := append([]string(nil), f.Notes...)

	var failed []string
	for id, dim := range f.Dimensions {
		if dim.Err != "" {
			failed = append(failed, string(id))
		}
	}
	sort.Strings(failed)
	for _, id := range failed {
		out = append(out, fmt.Sprintf("insufficient data for %s: %s", id, f.Dimensions[models.CriterionID(id)].Err))
	}
	return out
}
