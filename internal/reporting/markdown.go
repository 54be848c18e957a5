// Package reporting renders recommendations as markdown, JSON, HTML and
// terminal summaries.
package reporting

import (
	"fmt"
	"strings"

	"github.com/GondaliaKaran/openclaw-buildathon/internal/models"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/utils"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/weights"
)

const (
	reasonRunes = 40
	riskRunes   = 100
)

var criterionNames = func() map[models.CriterionID]string {
	names := map[models.CriterionID]string{}
	for _, c := range weights.Defaults() {
		names[c.ID] = c.Name
	}
	return names
}()

// CriterionName returns the display name for id, falling back to the id.
func CriterionName(id models.CriterionID) string {
	if name, ok := criterionNames[id]; ok {
		return name
	}
	return string(id)
}

// FormatMarkdown renders the full evaluation report.
func FormatMarkdown(rec *models.Recommendation) string {
	var md []string

	md = append(md, "# Vendor Evaluation Report")
	md = append(md, "\n## Context\n"+rec.ContextSummary)
	md = append(md, "\n## Candidates Evaluated\n"+strings.Join(rec.Candidates, ", "))

	md = append(md, "\n## Key Discoveries That Shaped This Evaluation")
	if len(rec.KeyDiscoveries) == 0 {
		md = append(md, "\nNo discoveries changed the criteria weights.")
	}
	for i, d := range rec.KeyDiscoveries {
		md = append(md, fmt.Sprintf("\n### Discovery %d: %s", i+1, d.Finding))
		md = append(md, "**Evidence**: "+d.Evidence)
		md = append(md, "**Impact**: "+d.Impact)
		if d.Triggered != "" && d.Triggered != "None" {
			md = append(md, "**Triggered**: "+d.Triggered)
		}
	}

	if len(rec.WeightAdjustments) > 0 {
		md = append(md, "\n## Criteria Weight Adjustments")
		md = append(md, "| Criterion | Initial | Final | Change | Reason |")
		md = append(md, "|-----------|---------|-------|--------|--------|")
		for _, adj := range rec.WeightAdjustments {
			md = append(md, fmt.Sprintf("| %s | %.1f%% | %.1f%% | %+.1f%% | %s |",
				CriterionName(adj.Criterion), adj.WeightBefore, adj.WeightAfter,
				adj.WeightAfter-adj.WeightBefore, ellipsis(adj.Discovery, reasonRunes)))
		}
	}

	md = append(md, "\n## Comparison Matrix")
	md = append(md, rec.ComparisonMatrix)

	md = append(md, "\n## Recommendation")
	md = append(md, fmt.Sprintf("\n### Recommended: **%s**", rec.RecommendedVendor))
	md = append(md, "\n**Why:**\n"+rec.Rationale)

	if len(rec.TradeOffs) > 0 {
		md = append(md, "\n**Trade-offs:**")
		for _, t := range rec.TradeOffs {
			md = append(md, "- "+t)
		}
	}

	if len(rec.Alternatives) > 0 {
		md = append(md, "\n**Alternatives:**")
		for _, alt := range rec.Alternatives {
			md = append(md, "- "+alt.Text)
		}
	}

	if len(rec.VendorScores) > 0 {
		md = append(md, "\n## Vendor Scores")
		for _, s := range rec.VendorScores {
			md = append(md, fmt.Sprintf("\n### %d. %s (%.1f/10)", s.Rank, s.Vendor, s.WeightedScore))
			for _, st := range s.Strengths {
				md = append(md, "- + "+st)
			}
			for _, w := range s.Weaknesses {
				md = append(md, "- - "+w)
			}
			for _, n := range s.Notes {
				md = append(md, "- _"+n+"_")
			}
		}
	}

	if len(rec.HiddenRisks) > 0 {
		md = append(md, "\n## Hidden Risks Detected")
		for _, r := range rec.HiddenRisks {
			md = append(md, fmt.Sprintf("\n**[%s]** **%s**: %s",
				strings.ToUpper(severity(r.Severity)), r.Vendor, utils.Truncate(r.Description, riskRunes)))
		}
	}

	if len(rec.NextSteps) > 0 {
		md = append(md, "\n## Next Steps")
		for i, step := range rec.NextSteps {
			md = append(md, fmt.Sprintf("%d. %s", i+1, step))
		}
	}

	md = append(md, fmt.Sprintf("\n---\n_Run %s, generated %s in %dms._",
		rec.RunID, rec.GeneratedAt.UTC().Format("2006-01-02 15:04 MST"), rec.DurationMs))

	return strings.Join(md, "\n") + "\n"
}

func severity(s string) string {
	if s == "" {
		return models.SeverityMedium
	}
	return s
}

func ellipsis(s string, n int) string {
	if t := utils.Truncate(s, n); t != s {
		return t + "..."
	}
	return s
}
