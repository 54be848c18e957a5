// Package weights holds the per-run criterion weight table and the adjuster
// that moves weights in response to discoveries.
package weights

import (
	"strings"

	"github.com/GondaliaKaran/openclaw-buildathon/internal/models"
)

// Total is the sum every normalized table adds up to.
const Total = 100.0

// ComplianceWeight is the weight compliance is pinned to when the evaluation
// context declares compliance requirements.
const ComplianceWeight = 15.0

// Defaults returns the default allocation, in table order.
func Defaults() []models.Criterion {
	return []models.Criterion{
		{ID: models.CriterionSDKQuality, Name: "SDK Quality", CurrentWeight: 15},
		{ID: models.CriterionAPIQuality, Name: "API Quality", CurrentWeight: 10},
		{ID: models.CriterionIntegrationComplexity, Name: "Integration Complexity", CurrentWeight: 15},
		{ID: models.CriterionPerformance, Name: "Performance", CurrentWeight: 10},
		{ID: models.CriterionUptimeReliability, Name: "Uptime Reliability", CurrentWeight: 15},
		{ID: models.CriterionSupportQuality, Name: "Support Quality", CurrentWeight: 10},
		{ID: models.CriterionScalability, Name: "Scalability", CurrentWeight: 10},
		{ID: models.CriterionPricing, Name: "Pricing", CurrentWeight: 10},
		{ID: models.CriterionVendorHealth, Name: "Vendor Health", CurrentWeight: 5},
		{ID: models.CriterionCompliance, Name: "Compliance", CurrentWeight: 0},
	}
}

// Table is an ordered set of criteria with percentage weights. A Table is
// owned by a single evaluation run and is not safe for concurrent mutation.
type Table struct {
	criteria []*models.Criterion
	index    map[models.CriterionID]int
}

// NewTable builds a table from the given criteria. A criterion whose
// InitialWeight is zero starts with InitialWeight = CurrentWeight.
func NewTable(criteria ...models.Criterion) *Table {
	t := &Table{index: make(map[models.CriterionID]int, len(criteria))}
	for _, c := range criteria {
		if _, dup := t.index[c.ID]; dup {
			continue
		}
		if c.InitialWeight == 0 {
			c.InitialWeight = c.CurrentWeight
		}
		c.History = append([]string(nil), c.History...)
		t.index[c.ID] = len(t.criteria)
		t.criteria = append(t.criteria, &c)
	}
	return t
}

// DefaultTable returns a table holding the default allocation.
func DefaultTable() *Table {
	return NewTable(Defaults()...)
}

// Len returns the number of criteria.
func (t *Table) Len() int {
	return len(t.criteria)
}

// Get returns the criterion with the given id.
func (t *Table) Get(id models.CriterionID) (*models.Criterion, bool) {
	i, ok := t.index[id]
	if !ok {
		return nil, false
	}
	return t.criteria[i], true
}

// All returns copies of every criterion in table order.
func (t *Table) All() []models.Criterion {
	out := make([]models.Criterion, len(t.criteria))
	for i, c := range t.criteria {
		out[i] = *c
		out[i].History = append([]string(nil), c.History...)
	}
	return out
}

// IDs returns criterion ids in table order.
func (t *Table) IDs() []models.CriterionID {
	ids := make([]models.CriterionID, len(t.criteria))
	for i, c := range t.criteria {
		ids[i] = c.ID
	}
	return ids
}

// Position returns the table-order index of id, or -1.
func (t *Table) Position(id models.CriterionID) int {
	if i, ok := t.index[id]; ok {
		return i
	}
	return -1
}

// Sum returns the sum of current weights.
func (t *Table) Sum() float64 {
	var sum float64
	for _, c := range t.criteria {
		sum += c.CurrentWeight
	}
	return sum
}

// Weights returns the current weights keyed by criterion id.
func (t *Table) Weights() map[models.CriterionID]float64 {
	out := make(map[models.CriterionID]float64, len(t.criteria))
	for _, c := range t.criteria {
		out[c.ID] = c.CurrentWeight
	}
	return out
}

// InitialWeights returns the weights the run started from.
func (t *Table) InitialWeights() map[models.CriterionID]float64 {
	out := make(map[models.CriterionID]float64, len(t.criteria))
	for _, c := range t.criteria {
		out[c.ID] = c.InitialWeight
	}
	return out
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	return NewTable(t.All()...)
}

// Normalize scales current weights so they sum to Total. The floating point
// residual left after scaling is put on the heaviest criterion. A table whose
// weights sum to zero is split equally.
func (t *Table) Normalize() {
	n := len(t.criteria)
	if n == 0 {
		return
	}

	sum := t.Sum()
	if sum <= 0 {
		for _, c := range t.criteria {
			c.CurrentWeight = Total / float64(n)
		}
	} else if sum != Total {
		factor := Total / sum
		for _, c := range t.criteria {
			c.CurrentWeight *= factor
		}
	}

	if residual := Total - t.Sum(); residual != 0 {
		t.heaviest().CurrentWeight += residual
	}
}

func (t *Table) heaviest() *models.Criterion {
	top := t.criteria[0]
	for _, c := range t.criteria[1:] {
		if c.CurrentWeight > top.CurrentWeight {
			top = c
		}
	}
	return top
}

// Theme is a family of priorities that bumps a fixed set of criteria when an
// evaluation context mentions it.
type Theme struct {
	Name     string
	Keywords []string
	Domains  []string
	Bumps    []Bump
}

// Bump is a fixed weight increment for one criterion.
type Bump struct {
	Criterion models.CriterionID
	Amount    float64
}

// Themes are applied in order by Initialize, each at most once.
var Themes = []Theme{
	{
		Name:     "security",
		Keywords: []string{"security", "secure"},
		Domains:  []string{"fintech"},
		Bumps: []Bump{
			{models.CriterionCompliance, 5},
			{models.CriterionUptimeReliability, 5},
			{models.CriterionVendorHealth, 3},
		},
	},
	{
		Name:     "reliability",
		Keywords: []string{"reliab", "uptime", "availability"},
		Bumps:    []Bump{{models.CriterionUptimeReliability, 5}},
	},
	{
		Name:     "regulatory",
		Keywords: []string{"regulat", "compliance", "audit"},
		Domains:  []string{"healthcare"},
		Bumps:    []Bump{{models.CriterionCompliance, 5}},
	},
}

// Matches reports whether any priority contains one of the theme keywords or
// the domain contains one of the theme domains. Matching is case-insensitive.
func (th Theme) Matches(ctx models.EvaluationContext) bool {
	for _, p := range ctx.Priorities {
		p = strings.ToLower(p)
		for _, kw := range th.Keywords {
			if strings.Contains(p, kw) {
				return true
			}
		}
	}
	domain := strings.ToLower(ctx.Domain)
	if domain == "" {
		return false
	}
	for _, d := range th.Domains {
		if strings.Contains(domain, d) {
			return true
		}
	}
	return false
}

// Initialize builds the starting table for an evaluation context. The result
// always sums to Total and has InitialWeight == CurrentWeight.
func Initialize(ctx models.EvaluationContext) *Table {
	t := DefaultTable()

	if len(ctx.Compliance) > 0 {
		t.pinCompliance()
	}

	for _, th := range Themes {
		if !th.Matches(ctx) {
			continue
		}
		for _, b := range th.Bumps {
			if c, ok := t.Get(b.Criterion); ok {
				c.CurrentWeight += b.Amount
			}
		}
	}

	t.Normalize()
	for _, c := range t.criteria {
		c.InitialWeight = c.CurrentWeight
	}
	return t
}

// pinCompliance sets compliance to ComplianceWeight and scales every other
// criterion so the table still sums to Total.
func (t *Table) pinCompliance() {
	compliance, ok := t.Get(models.CriterionCompliance)
	if !ok {
		return
	}

	others := t.Sum() - compliance.CurrentWeight
	compliance.CurrentWeight = ComplianceWeight
	if others <= 0 {
		return
	}

	factor := (Total - ComplianceWeight) / others
	for _, c := range t.criteria {
		if c.ID != models.CriterionCompliance {
			c.CurrentWeight *= factor
		}
	}
}
