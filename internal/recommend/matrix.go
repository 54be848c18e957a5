package recommend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/GondaliaKaran/openclaw-buildathon/internal/models"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/weights"
)

// MinMatrixWeight is the smallest weight (percent) a criterion needs to get a
// row in the comparison matrix.
const MinMatrixWeight = 1.0

// ComparisonMatrix renders a markdown table of per-criterion scores. Rows are
// criteria by final weight, heaviest first; the last row is the weighted total.
func ComparisonMatrix(scores []models.VendorScore, table *weights.Table) string {
	var lines []string

	header := make([]string, len(scores))
	for i, s := range scores {
		header[i] = s.Vendor
	}
	lines = append(lines, "| Criterion (Weight) | "+strings.Join(header, " | ")+" |")
	lines = append(lines, "|"+strings.Repeat("---|", len(scores)+1))

	criteria := table.All()
	sort.SliceStable(criteria, func(a, b int) bool {
		return criteria[a].CurrentWeight > criteria[b].CurrentWeight
	})

	for _, c := range criteria {
		if c.CurrentWeight < MinMatrixWeight {
			continue
		}
		cells := make([]string, len(scores))
		for i, s := range scores {
			cells[i] = fmt.Sprintf("%.1f/10", s.CriterionScores[c.ID])
		}
		lines = append(lines, fmt.Sprintf("| %s (%.1f%%) | %s |", c.Name, c.CurrentWeight, strings.Join(cells, " | ")))
	}

	totals := make([]string, len(scores))
	for i, s := range scores {
		totals[i] = fmt.Sprintf("**%.1f/10**", s.WeightedScore)
	}
	lines = append(lines, "|---|"+strings.Repeat("---|", len(scores)))
	lines = append(lines, "| **Weighted Score** | "+strings.Join(totals, " | ")+" |")

	return strings.Join(lines, "\n")
}
