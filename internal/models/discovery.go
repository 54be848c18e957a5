package models

import "strings"

// DiscoveryKind classifies a noteworthy finding that can move criterion weights.
type DiscoveryKind string

const (
	DiscoveryUptimeIssue       DiscoveryKind = "uptime-issue"
	DiscoveryMissingCapability DiscoveryKind = "missing-capability"
	DiscoveryPricingConcern    DiscoveryKind = "pricing-concern"
	DiscoveryComplianceGap     DiscoveryKind = "compliance-gap"

	hiddenRiskPrefix = "hidden-risk-"
)

// HiddenRiskKind returns the discovery kind for a hidden risk of the given type.
func HiddenRiskKind(riskType string) DiscoveryKind {
	return DiscoveryKind(hiddenRiskPrefix + NormalizeRiskType(riskType))
}

// IsHiddenRisk reports whether k was produced from a hidden risk record.
func (k DiscoveryKind) IsHiddenRisk() bool {
	return strings.HasPrefix(string(k), hiddenRiskPrefix)
}

// Discovery is an immutable finding extracted from research. It is consumed
// once by the weight adjuster.
type Discovery struct {
	Kind        DiscoveryKind `json:"kind"`
	Vendor      string        `json:"vendor"`
	Description string        `json:"description"`
	Evidence    string        `json:"evidence"`
	Criterion   CriterionID   `json:"criterion"`
}

// WeightAdjustment is the audit record of one discovery applied to one criterion.
type WeightAdjustment struct {
	Criterion    CriterionID   `json:"criterion"`
	Kind         DiscoveryKind `json:"kind"`
	Vendor       string        `json:"vendor"`
	Discovery    string        `json:"discovery"`
	Evidence     string        `json:"evidence"`
	WeightBefore float64       `json:"weight_before"`
	WeightAfter  float64       `json:"weight_after"`
	FollowUps    []string      `json:"follow_ups,omitempty"`
}
