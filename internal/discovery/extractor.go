// Package discovery turns research findings into discoveries: findings
// noteworthy enough to move criterion weights.
package discovery

import (
	"fmt"
	"sort"
	"strings"

	"github.com/GondaliaKaran/openclaw-buildathon/internal/models"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/utils"
)

const (
	evidenceRunes        = 200
	riskDescriptionRunes = 100
)

// Keywords are the trigger phrases the extractor looks for, matched as
// case-insensitive substrings.
type Keywords struct {
	Uptime     []string
	Pricing    []string
	Compliance []string
}

// DefaultKeywords returns the built-in trigger phrases.
func DefaultKeywords() Keywords {
	return Keywords{
		Uptime:     []string{"outage", "downtime", "incident", "unavailable"},
		Pricing:    []string{"expensive", "jump", "hidden fee", "trap"},
		Compliance: []string{"not certified", "lacking", "missing"},
	}
}

// riskCriteria maps normalized hidden-risk types to the criterion they affect.
// Unknown types fall back to vendor health.
var riskCriteria = map[string]models.CriterionID{
	models.RiskMaintainerHealth: models.CriterionVendorHealth,
	models.RiskPricingTrap:      models.CriterionPricing,
	models.RiskLockIn:           models.CriterionIntegrationComplexity,
}

// RiskCriterion returns the criterion a hidden risk of the given type affects.
func RiskCriterion(riskType string) models.CriterionID {
	if id, ok := riskCriteria[models.NormalizeRiskType(riskType)]; ok {
		return id
	}
	return models.CriterionVendorHealth
}

// Extractor scans findings for discoveries. It is stateless and safe for
// concurrent use.
type Extractor struct {
	keywords Keywords
}

// NewExtractor returns an extractor using kw. Empty keyword lists fall back to
// the defaults.
func NewExtractor(kw Keywords) *Extractor {
	def := DefaultKeywords()
	if len(kw.Uptime) == 0 {
		kw.Uptime = def.Uptime
	}
	if len(kw.Pricing) == 0 {
		kw.Pricing = def.Pricing
	}
	if len(kw.Compliance) == 0 {
		kw.Compliance = def.Compliance
	}
	return &Extractor{keywords: Keywords{
		Uptime:     utils.LowerAll(kw.Uptime),
		Pricing:    utils.LowerAll(kw.Pricing),
		Compliance: utils.LowerAll(kw.Compliance),
	}}
}

// Extract returns the discoveries found in findings. Candidates are visited in
// order and, per candidate, rules fire in a fixed order: uptime, missing
// capabilities, pricing, hidden risks, compliance.
func (e *Extractor) Extract(findings []models.ResearchFindings) []models.Discovery {
	var out []models.Discovery
	for i := range findings {
		out = append(out, e.extractOne(&findings[i])...)
	}
	return out
}

func (e *Extractor) extractOne(f *models.ResearchFindings) []models.Discovery {
	var out []models.Discovery
	vendor := f.Vendor

	if uptime := f.Analysis(models.CriterionUptimeReliability); utils.ContainsAny(uptime, e.keywords.Uptime) {
		out = append(out, models.Discovery{
			Kind:        models.DiscoveryUptimeIssue,
			Vendor:      vendor,
			Description: vendor + " has uptime concerns",
			Evidence:    utils.Truncate(uptime, evidenceRunes),
			Criterion:   models.CriterionUptimeReliability,
		})
	}

	if missing := f.Unsupported(); len(missing) > 0 {
		sort.Strings(missing)
		out = append(out, models.Discovery{
			Kind:        models.DiscoveryMissingCapability,
			Vendor:      vendor,
			Description: fmt.Sprintf("%s missing SDK for %s", vendor, strings.Join(missing, ", ")),
			Evidence:    fmt.Sprintf("No official support for [%s]", strings.Join(missing, " ")),
			Criterion:   models.CriterionIntegrationComplexity,
		})
	}

	if pricing := f.Analysis(models.CriterionPricing); utils.ContainsAny(pricing, e.keywords.Pricing) {
		out = append(out, models.Discovery{
			Kind:        models.DiscoveryPricingConcern,
			Vendor:      vendor,
			Description: vendor + " has pricing concerns",
			Evidence:    utils.Truncate(pricing, evidenceRunes),
			Criterion:   models.CriterionPricing,
		})
	}

	for _, risk := range f.HiddenRisks {
		out = append(out, models.Discovery{
			Kind:        models.HiddenRiskKind(risk.Type),
			Vendor:      vendor,
			Description: vendor + ": " + utils.Truncate(risk.Description, riskDescriptionRunes),
			Evidence:    risk.Evidence,
			Criterion:   RiskCriterion(risk.Type),
		})
	}

	if len(f.RequiredCompliance) > 0 {
		if compliance := f.Analysis(models.CriterionCompliance); utils.ContainsAny(compliance, e.keywords.Compliance) {
			out = append(out, models.Discovery{
				Kind:        models.DiscoveryComplianceGap,
				Vendor:      vendor,
				Description: vendor + " has compliance gaps",
				Evidence:    utils.Truncate(compliance, evidenceRunes),
				Criterion:   models.CriterionCompliance,
			})
		}
	}

	return out
}
