package oracle

import (
	"context"
	"fmt"
	"strings"

	"github.com/GondaliaKaran/openclaw-buildathon/internal/models"
)

// FixtureEvidence answers evidence queries from pre-recorded fixtures, keyed
// by candidate name (case-insensitive). It is the offline evidence engine.
type FixtureEvidence struct {
	fixtures map[string]models.EvidenceFixture
}

// NewFixtureEvidence creates a fixture-backed evidence oracle.
func NewFixtureEvidence(fixtures map[string]models.EvidenceFixture) *FixtureEvidence {
	f := &FixtureEvidence{fixtures: make(map[string]models.EvidenceFixture, len(fixtures))}
	for name, fx := range fixtures {
		f.fixtures[strings.ToLower(strings.TrimSpace(name))] = fx
	}
	return f
}

// Query implements EvidenceOracle. Unknown candidates yield ErrNoEvidence;
// criteria without a fixture yield an empty analysis.
func (f *FixtureEvidence) Query(ctx context.Context, q *EvidenceQuery) (*EvidenceResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if q == nil {
		return nil, fmt.Errorf("nil query was passed to FixtureEvidence.Query")
	}

	fx, ok := f.fixtures[strings.ToLower(strings.TrimSpace(q.Candidate.Name))]
	if !ok {
		return nil, fmt.Errorf("%w for %s", ErrNoEvidence, q.Candidate.Name)
	}

	if q.Kind == QueryHiddenRisks {
		return &EvidenceResult{Risks: append([]models.HiddenRisk(nil), fx.HiddenRisks...)}, nil
	}

	dim := fx.Dimensions[q.Criterion]
	res := &EvidenceResult{
		Analysis: dim.Analysis,
		Keywords: append([]string(nil), dim.Keywords...),
	}
	if dim.Capabilities != nil {
		res.Capabilities = make(map[string]bool, len(dim.Capabilities))
		for k, v := range dim.Capabilities {
			res.Capabilities[k] = v
		}
	}
	return res, nil
}

// StaticNarrator returns the same recommendation text for every request. An
// empty text makes the synthesizer fall back to the top-ranked candidate.
type StaticNarrator struct {
	Text string
}

// Recommend implements NarrativeOracle.
func (s StaticNarrator) Recommend(ctx context.Context, req *NarrativeRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.Text, nil
}
