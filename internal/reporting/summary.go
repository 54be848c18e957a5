package reporting

import (
	"fmt"
	"sort"
	"strings"

	"github.com/GondaliaKaran/openclaw-buildathon/internal/models"
	"github.com/mattn/go-runewidth"
)

const vendorColumn = 24

// FormatSummary produces a compact terminal summary of a recommendation.
func FormatSummary(rec *models.Recommendation) string {
	var b strings.Builder

	b.WriteString("=== Vendor Evaluation ===\n\n")
	if rec.ContextSummary != "" {
		fmt.Fprintf(&b, "Context:     %s\n", rec.ContextSummary)
	}
	fmt.Fprintf(&b, "Recommended: %s", rec.RecommendedVendor)
	if rec.UsedFallback {
		b.WriteString(" (highest weighted score)")
	}
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "  %s  %s  %s\n", padRight("#", 3), padRight("Vendor", vendorColumn), "Score")
	for _, s := range rec.VendorScores {
		icon := " "
		if s.Vendor == rec.RecommendedVendor {
			icon = "✓"
		}
		name := runewidth.Truncate(s.Vendor, vendorColumn, "…")
		fmt.Fprintf(&b, "%s %s  %s  %.1f/10\n", icon, padRight(fmt.Sprint(s.Rank), 3), padRight(name, vendorColumn), s.WeightedScore)
	}

	if changes := weightChanges(rec); len(changes) > 0 {
		b.WriteString("\nWeight changes:\n")
		for _, c := range changes {
			fmt.Fprintf(&b, "  • %s\n", c)
		}
	}

	if n := len(rec.HiddenRisks); n > 0 {
		high := 0
		for _, r := range rec.HiddenRisks {
			if r.Severity == models.SeverityHigh {
				high++
			}
		}
		fmt.Fprintf(&b, "\nHidden risks: %d (%d high)\n", n, high)
	}

	if len(rec.NextSteps) > 0 {
		b.WriteString("\nNext steps:\n")
		for i, step := range rec.NextSteps {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, step)
		}
	}

	return b.String()
}

// weightChanges lists criteria whose final weight differs from the initial
// one, largest change first.
func weightChanges(rec *models.Recommendation) []string {
	type change struct {
		id        models.CriterionID
		from, to  float64
		magnitude float64
	}
	var changes []change
	for id, to := range rec.FinalWeights {
		from := rec.InitialWeights[id]
		if d := to - from; d >= 0.05 || d <= -0.05 {
			changes = append(changes, change{id: id, from: from, to: to, magnitude: max(d, -d)})
		}
	}
	sort.Slice(changes, func(i, j int) bool {
		if changes[i].magnitude != changes[j].magnitude {
			return changes[i].magnitude > changes[j].magnitude
		}
		return changes[i].id < changes[j].id
	})

	out := make([]string, len(changes))
	for i, c := range changes {
		out[i] = fmt.Sprintf("%s %.1f%% → %.1f%%", CriterionName(c.id), c.from, c.to)
	}
	return out
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
