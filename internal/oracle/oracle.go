// Package oracle defines the two external collaborators an evaluation
// consumes: an evidence oracle that researches candidates and a narrative
// oracle that writes the final recommendation prose.
package oracle

import (
	"context"
	"errors"

	"github.com/GondaliaKaran/openclaw-buildathon/internal/models"
)

//go:generate go tool mockgen -source oracle.go -destination oraclemock/mocks.go -package oraclemock

// ErrNoEvidence is returned when an oracle has nothing to say about a query.
var ErrNoEvidence = errors.New("no evidence available")

// QueryKind distinguishes criterion research from hidden-risk probing.
type QueryKind string

const (
	QueryDimension   QueryKind = "dimension"
	QueryHiddenRisks QueryKind = "hidden_risks"
)

// Hint keys understood by the built-in oracles.
const (
	HintTechStack  = "tech_stack"
	HintCompliance = "compliance"
	HintScale      = "scale"
	HintGitHubURL  = "github_url"
	HintWebsite    = "website"
	HintRiskProbes = "risk_probes"
)

// EvidenceQuery asks for evidence about one aspect of one candidate.
type EvidenceQuery struct {
	Kind      QueryKind
	Candidate models.Candidate
	Criterion models.CriterionID

	// Topic is the research task, e.g. "Analyze uptime history for Acme".
	Topic string
	// Focus lists what the answer should look for.
	Focus string
	Hints map[string]any
}

// EvidenceResult is the oracle's answer to an EvidenceQuery.
type EvidenceResult struct {
	Analysis     string
	Keywords     []string
	Capabilities map[string]bool
	Risks        []models.HiddenRisk
}

// EvidenceOracle researches candidates. Implementations must be safe for
// concurrent use.
type EvidenceOracle interface {
	Query(ctx context.Context, q *EvidenceQuery) (*EvidenceResult, error)
}

// NarrativeRequest carries everything the narrative oracle is told about a run.
type NarrativeRequest struct {
	Persona        string
	Context        models.EvaluationContext
	Scores         []models.VendorScore
	KeyDiscoveries []models.KeyDiscovery
	HiddenRisks    []models.HiddenRisk
}

// NarrativeOracle turns structured results into recommendation prose.
type NarrativeOracle interface {
	Recommend(ctx context.Context, req *NarrativeRequest) (string, error)
}
