package models

import "time"

// DimensionFinding is the research result for one criterion of one candidate.
type DimensionFinding struct {
	Analysis string   `json:"analysis"`
	Keywords []string `json:"keywords,omitempty"`

	// Capabilities maps each declared requirement (e.g. a language in the
	// tech stack) to whether the candidate supports it.
	Capabilities map[string]bool `json:"capabilities,omitempty"`

	// Err is set when the evidence query failed. Analysis is empty in that case.
	Err string `json:"error,omitempty"`
}

// ResearchFindings aggregates all research about one candidate.
type ResearchFindings struct {
	Vendor     string                           `json:"vendor"`
	Dimensions map[CriterionID]DimensionFinding `json:"dimensions"`
	// RequiredCompliance is copied from the evaluation context so the
	// extractor can decide whether compliance gaps matter.
	RequiredCompliance []string `json:"required_compliance,omitempty"`

	HiddenRisks  []HiddenRisk `json:"hidden_risks,omitempty"`
	Notes        []string     `json:"notes,omitempty"`
	ResearchedAt time.Time    `json:"researched_at"`
}

// Analysis returns the analysis text for a criterion, or "" when absent.
func (f *ResearchFindings) Analysis(id CriterionID) string {
	if f == nil {
		return ""
	}
	return f.Dimensions[id].Analysis
}

// Unsupported returns the declared requirements the candidate's SDK capability
// map marks as unsupported, in map iteration order.
func (f *ResearchFindings) Unsupported() []string {
	if f == nil {
		return nil
	}
	var missing []string
	for name, ok := range f.Dimensions[CriterionSDKQuality].Capabilities {
		if !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
