package models

import "time"

// VendorScore is the ranked outcome for one candidate.
type VendorScore struct {
	Vendor          string                  `json:"vendor"`
	Rank            int                     `json:"rank"`
	WeightedScore   float64                 `json:"weighted_score"`
	CriterionScores map[CriterionID]float64 `json:"criterion_scores"`
	Strengths       []string                `json:"strengths"`
	Weaknesses      []string                `json:"weaknesses"`
	Evidence        map[CriterionID]string  `json:"evidence,omitempty"`
	Notes           []string                `json:"notes,omitempty"`
}

// Alternative is a conditional fallback recommendation ("If X: consider Y because Z").
type Alternative struct {
	Text      string `json:"text"`
	Condition string `json:"condition,omitempty"`
	Vendor    string `json:"vendor,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// KeyDiscovery is a weight adjustment rephrased for the report.
type KeyDiscovery struct {
	Finding   string `json:"finding"`
	Evidence  string `json:"evidence"`
	Impact    string `json:"impact"`
	Triggered string `json:"triggered"`
}

// Recommendation is the final report of an evaluation run, including its
// audit trail.
type Recommendation struct {
	RunID             string        `json:"run_id,omitempty"`
	RecommendedVendor string        `json:"recommended_vendor"`
	Rationale         string        `json:"rationale"`
	TradeOffs         []string      `json:"trade_offs"`
	Alternatives      []Alternative `json:"alternatives"`
	NextSteps         []string      `json:"next_steps"`

	// UsedFallback is true when the narrative did not name a vendor and the
	// top-ranked candidate was chosen instead.
	UsedFallback bool `json:"used_fallback"`

	ContextSummary    string                  `json:"context_summary"`
	Candidates        []string                `json:"candidates"`
	KeyDiscoveries    []KeyDiscovery          `json:"key_discoveries"`
	InitialWeights    map[CriterionID]float64 `json:"initial_weights"`
	FinalWeights      map[CriterionID]float64 `json:"final_weights"`
	WeightAdjustments []WeightAdjustment      `json:"weight_adjustments"`
	VendorScores      []VendorScore           `json:"vendor_scores"`
	ComparisonMatrix  string                  `json:"comparison_matrix"`
	HiddenRisks       []HiddenRisk            `json:"hidden_risks"`
	Narrative         string                  `json:"narrative,omitempty"`

	GeneratedAt time.Time `json:"generated_at"`
	DurationMs  int64     `json:"duration_ms,omitempty"`
}
