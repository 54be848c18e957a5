package evaluation

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/GondaliaKaran/openclaw-buildathon/internal/models"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/oracle"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/recommend"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/research"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paymentsRequest() *models.EvaluationRequest {
	return &models.EvaluationRequest{
		Name: "payments",
		Context: models.EvaluationContext{
			Category:  "payment gateway",
			TechStack: []string{"Go"},
		},
		Candidates: []models.Candidate{{Name: "Stripe"}, {Name: "Adyen"}},
		Evidence: map[string]models.EvidenceFixture{
			"Stripe": {Dimensions: map[models.CriterionID]models.DimensionEvidence{
				models.CriterionUptimeReliability: {Analysis: "3-hour outage last week"},
			}},
			"Adyen": {Dimensions: map[models.CriterionID]models.DimensionEvidence{
				models.CriterionUptimeReliability: {Analysis: "Reliable status history"},
			}},
		},
	}
}

func newRunner(req *models.EvaluationRequest, narrative string) *Runner {
	researcher := research.New(oracle.NewFixtureEvidence(req.Evidence))
	engine := recommend.NewEngine(nil, oracle.StaticNarrator{Text: narrative})
	return NewRunner(researcher, WithEngine(engine))
}

func TestRun(t *testing.T) {
	req := paymentsRequest()
	rec, err := newRunner(req, "").Run(context.Background(), req)
	require.NoError(t, err)

	assert.NotEmpty(t, rec.RunID)
	assert.Equal(t, []string{"Stripe", "Adyen"}, rec.Candidates)

	require.Len(t, rec.WeightAdjustments, 1)
	adj := rec.WeightAdjustments[0]
	assert.Equal(t, models.DiscoveryUptimeIssue, adj.Kind)
	assert.Equal(t, "Stripe", adj.Vendor)
	assert.Equal(t, 15.0, adj.WeightBefore)
	assert.Equal(t, 25.0, adj.WeightAfter)
	assert.Equal(t, []string{"SLA investigation"}, adj.FollowUps)

	assert.Equal(t, 15.0, rec.InitialWeights[models.CriterionUptimeReliability])
	assert.InDelta(t, 25.0/110*100, rec.FinalWeights[models.CriterionUptimeReliability], 1e-9)

	require.Len(t, rec.VendorScores, 2)
	assert.Equal(t, "Adyen", rec.VendorScores[0].Vendor)
	assert.Equal(t, "Adyen", rec.RecommendedVendor)
	assert.True(t, rec.UsedFallback)
	assert.GreaterOrEqual(t, rec.DurationMs, int64(0))
}

func TestRun_NarrativeNamesVendor(t *testing.T) {
	req := paymentsRequest()
	rec, err := newRunner(req, "RECOMMENDED VENDOR: Stripe\nRATIONALE: Broader SDK coverage.").Run(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "Stripe", rec.RecommendedVendor)
	assert.False(t, rec.UsedFallback)
}

func TestRun_ProgressEvents(t *testing.T) {
	req := paymentsRequest()
	r := newRunner(req, "")

	var mu sync.Mutex
	var events []EventType
	r.OnProgress(func(ProgressEvent) { panic("listener bug") })
	r.OnProgress(func(e ProgressEvent) {
		mu.Lock()
		defer mu.Unlock()
		assert.NotEmpty(t, e.RunID)
		events = append(events, e.EventType)
	})

	_, err := r.Run(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, []EventType{
		EventEvaluationStart,
		EventResearchComplete,
		EventWeightsAdjusted,
		EventRankingComplete,
		EventEvaluationComplete,
	}, events)
}

func TestRun_InvalidRequest(t *testing.T) {
	r := NewRunner(research.New(oracle.NewFixtureEvidence(nil)))

	_, err := r.Run(context.Background(), &models.EvaluationRequest{})
	require.ErrorIs(t, err, models.ErrInvalidRequest)

	_, err = r.Run(context.Background(), nil)
	require.ErrorIs(t, err, models.ErrInvalidRequest)
}

type researcherFunc func(context.Context, *models.EvaluationRequest) ([]models.ResearchFindings, error)

func (f researcherFunc) Research(ctx context.Context, req *models.EvaluationRequest) ([]models.ResearchFindings, error) {
	return f(ctx, req)
}

func TestRun_CancelledBeforeSynthesis(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := NewRunner(researcherFunc(func(context.Context, *models.EvaluationRequest) ([]models.ResearchFindings, error) {
		cancel()
		return []models.ResearchFindings{{Vendor: "Stripe"}}, nil
	}))

	rec, err := r.Run(ctx, paymentsRequest())
	require.Error(t, err)
	assert.Nil(t, rec)
	assert.True(t, IsCancelled(err))
}

func TestRun_ResearchError(t *testing.T) {
	r := NewRunner(researcherFunc(func(context.Context, *models.EvaluationRequest) ([]models.ResearchFindings, error) {
		return nil, context.DeadlineExceeded
	}))

	_, err := r.Run(context.Background(), paymentsRequest())
	require.Error(t, err)
	assert.True(t, IsCancelled(err))
	assert.Contains(t, err.Error(), "researching candidates")
}

func TestRun_OnlyResearchedCandidatesRanked(t *testing.T) {
	req := paymentsRequest()
	req.Candidates = append(req.Candidates, models.Candidate{Name: "Braintree"})

	researcher := research.New(oracle.NewFixtureEvidence(req.Evidence), research.WithMaxCandidates(2))
	rec, err := NewRunner(researcher).Run(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, []string{"Stripe", "Adyen"}, rec.Candidates)
	assert.Len(t, rec.VendorScores, 2)
}

func TestRun_IndependentRuns(t *testing.T) {
	req := paymentsRequest()
	r := newRunner(req, "")

	var wg sync.WaitGroup
	results := make([]*models.Recommendation, 4)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec, err := r.Run(context.Background(), req)
			assert.NoError(t, err)
			results[i] = rec
		}()
	}
	wg.Wait()

	for _, rec := range results[1:] {
		require.NotNil(t, rec)
		assert.NotEqual(t, results[0].RunID, rec.RunID)
		assert.Equal(t, results[0].FinalWeights, rec.FinalWeights)
		assert.Equal(t, results[0].RecommendedVendor, rec.RecommendedVendor)
	}
}

func TestIsCancelled(t *testing.T) {
	assert.True(t, IsCancelled(context.Canceled))
	assert.False(t, IsCancelled(errors.New("other")))
}
