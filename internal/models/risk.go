package models

import "strings"

// Known hidden risk types, in normalized form.
const (
	RiskMaintainerHealth      = "maintainer-health"
	RiskPricingTrap           = "pricing-trap"
	RiskLockIn                = "lockin"
	RiskAcquisition           = "acquisition"
	RiskComplianceDrift       = "compliance-drift"
	RiskTechnologyDeprecation = "technology-deprecation"
)

// Severity levels reported for hidden risks.
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)

// HiddenRisk is a non-obvious risk surfaced during research.
type HiddenRisk struct {
	Type        string `json:"type" yaml:"type"`
	Severity    string `json:"severity" yaml:"severity"`
	Description string `json:"description" yaml:"description"`
	Evidence    string `json:"evidence,omitempty" yaml:"evidence,omitempty"`
	Impact      string `json:"impact,omitempty" yaml:"impact,omitempty"`

	// Vendor is only populated once risks are flattened into a report.
	Vendor string `json:"vendor,omitempty" yaml:"vendor,omitempty"`
}

var lockInAliases = map[string]bool{
	"vendor-lockin":  true,
	"vendor-lock-in": true,
	"lock-in":        true,
	"lockin":         true,
}

// NormalizeRiskType lower-cases a risk type and uses dashes as separators.
// The lock-in spellings all collapse to RiskLockIn.
func NormalizeRiskType(t string) string {
	n := strings.ToLower(strings.TrimSpace(t))
	n = strings.NewReplacer("_", "-", " ", "-").Replace(n)
	if lockInAliases[n] {
		return RiskLockIn
	}
	return n
}
