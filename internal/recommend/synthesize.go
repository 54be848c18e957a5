package recommend

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/GondaliaKaran/openclaw-buildathon/internal/models"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/oracle"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/utils"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/weights"
)

// SynthesisInput is everything a run has produced before synthesis.
type SynthesisInput struct {
	RunID       string
	Context     models.EvaluationContext
	Candidates  []models.Candidate
	Findings    []models.ResearchFindings
	Initial     *weights.Table
	Final       *weights.Table
	Adjustments []models.WeightAdjustment
	// Scores must already be ranked, best first.
	Scores []models.VendorScore
}

// Synthesize builds the final recommendation. It calls the narrative oracle
// exactly once; if that call fails, or its answer names no evaluated vendor,
// the top-ranked candidate is recommended on its weighted score.
func (e *Engine) Synthesize(ctx context.Context, in *SynthesisInput) *models.Recommendation {
	discoveries := KeyDiscoveries(in.Adjustments, in.Final)
	risks := FlattenRisks(in.Findings)

	text := e.narrate(ctx, &oracle.NarrativeRequest{
		Persona:        e.persona,
		Context:        in.Context,
		Scores:         in.Scores,
		KeyDiscoveries: discoveries,
		HiddenRisks:    risks,
	})
	narrative := ParseNarrative(text)

	rec := &models.Recommendation{
		RunID:             in.RunID,
		RecommendedVendor: narrative.RecommendedVendor,
		Rationale:         narrative.Rationale,
		TradeOffs:         nonNil(narrative.TradeOffs),
		Alternatives:      narrative.Alternatives,
		NextSteps:         nonNil(narrative.NextSteps),
		ContextSummary:    in.Context.Summary(),
		Candidates:        candidateNames(in.Candidates),
		KeyDiscoveries:    discoveries,
		InitialWeights:    in.Initial.InitialWeights(),
		FinalWeights:      in.Final.Weights(),
		WeightAdjustments: in.Adjustments,
		VendorScores:      in.Scores,
		ComparisonMatrix:  ComparisonMatrix(in.Scores, in.Final),
		HiddenRisks:       risks,
		Narrative:         text,
		GeneratedAt:       time.Now(),
	}
	if rec.Alternatives == nil {
		rec.Alternatives = []models.Alternative{}
	}

	if named := rec.RecommendedVendor; named != "" {
		rec.RecommendedVendor = matchVendor(named, in.Scores)
		if rec.RecommendedVendor == "" {
			e.logger.Warn("narrative named a vendor that was not evaluated", "vendor", named)
			rec.Rationale = ""
		}
	}

	if rec.RecommendedVendor == "" && len(in.Scores) > 0 {
		top := in.Scores[0]
		rec.RecommendedVendor = top.Vendor
		rec.Rationale = fmt.Sprintf("Recommended based on highest weighted score (%.1f/10)", top.WeightedScore)
		rec.UsedFallback = true
		e.logger.Info("narrative named no vendor, using top-ranked candidate", "vendor", top.Vendor)
	}

	return rec
}

// matchVendor resolves a narrative's vendor line to an evaluated candidate's
// display name. An exact case-insensitive match wins; otherwise the longest
// candidate name the line starts with, followed by a non-letter, is used.
func matchVendor(named string, scores []models.VendorScore) string {
	named = strings.Trim(named, " .")
	best := ""
	for _, s := range scores {
		if strings.EqualFold(named, s.Vendor) {
			return s.Vendor
		}
		if len(s.Vendor) <= len(best) || len(s.Vendor) >= len(named) {
			continue
		}
		if strings.EqualFold(named[:len(s.Vendor)], s.Vendor) {
			if r, _ := utf8.DecodeRuneInString(named[len(s.Vendor):]); !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				best = s.Vendor
			}
		}
	}
	return best
}

// narrate makes the single narrative oracle call. Failures are logged and
// turned into empty text so that parsing falls back.
func (e *Engine) narrate(ctx context.Context, req *oracle.NarrativeRequest) string {
	if e.narrator == nil {
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	text, err := e.narrator.Recommend(ctx, req)
	if err != nil {
		e.logger.Warn("narrative oracle failed", "error", err)
		return ""
	}
	return text
}

// KeyDiscoveries rephrases weight adjustments for the report.
func KeyDiscoveries(adjustments []models.WeightAdjustment, table *weights.Table) []models.KeyDiscovery {
	out := make([]models.KeyDiscovery, 0, len(adjustments))
	for _, adj := range adjustments {
		name := string(adj.Criterion)
		if c, ok := table.Get(adj.Criterion); ok {
			name = c.Name
		}

		verb := "Increased"
		if adj.WeightAfter < adj.WeightBefore {
			verb = "Decreased"
		}

		triggered := "None"
		if len(adj.FollowUps) > 0 {
			triggered = strings.Join(adj.FollowUps, ", ")
		}

		out = append(out, models.KeyDiscovery{
			Finding:   adj.Discovery,
			Evidence:  utils.Truncate(adj.Evidence, evidenceRunes),
			Impact:    fmt.Sprintf("%s %s weight from %.1f%% to %.1f%%", verb, name, adj.WeightBefore, adj.WeightAfter),
			Triggered: triggered,
		})
	}
	return out
}

// FlattenRisks collects every candidate's hidden risks, tagged with the vendor.
func FlattenRisks(findings []models.ResearchFindings) []models.HiddenRisk {
	out := []models.HiddenRisk{}
	for _, f := range findings {
		for _, r := range f.HiddenRisks {
			r.Vendor = f.Vendor
			out = append(out, r)
		}
	}
	return out
}

func candidateNames(candidates []models.Candidate) []string {
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.Name
	}
	return names
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
