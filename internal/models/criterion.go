package models

// CriterionID is the stable key of an evaluation criterion.
type CriterionID string

const (
	CriterionSDKQuality            CriterionID = "sdk_quality"
	CriterionAPIQuality            CriterionID = "api_quality"
	CriterionIntegrationComplexity CriterionID = "integration_complexity"
	CriterionPerformance           CriterionID = "performance"
	CriterionUptimeReliability     CriterionID = "uptime_reliability"
	CriterionSupportQuality        CriterionID = "support_quality"
	CriterionScalability           CriterionID = "scalability"
	CriterionPricing               CriterionID = "pricing"
	CriterionVendorHealth          CriterionID = "vendor_health"
	CriterionCompliance            CriterionID = "compliance"
)

// AllCriteria returns the ten criteria in canonical order.
func AllCriteria() []CriterionID {
	return []CriterionID{
		CriterionSDKQuality,
		CriterionAPIQuality,
		CriterionIntegrationComplexity,
		CriterionPerformance,
		CriterionUptimeReliability,
		CriterionSupportQuality,
		CriterionScalability,
		CriterionPricing,
		CriterionVendorHealth,
		CriterionCompliance,
	}
}

// Criterion is a single weighted evaluation axis. Weights are percentages.
type Criterion struct {
	ID            CriterionID `json:"id" yaml:"id"`
	Name          string      `json:"name" yaml:"name"`
	InitialWeight float64     `json:"initial_weight" yaml:"initial_weight"`
	CurrentWeight float64     `json:"current_weight" yaml:"current_weight"`

	// History lists, in order, the discovery descriptions that moved this weight.
	History []string `json:"history,omitempty" yaml:"history,omitempty"`
}

// CriterionScore is a per-candidate, per-criterion score in [1, 10].
type CriterionScore = float64
