// Package evaluation runs the end-to-end vendor evaluation pipeline:
// research, discovery extraction, weight adjustment, ranking and synthesis.
package evaluation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/GondaliaKaran/openclaw-buildathon/internal/discovery"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/models"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/recommend"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/weights"
	"github.com/google/uuid"
)

// Researcher gathers findings for the candidates of a request.
type Researcher interface {
	Research(ctx context.Context, req *models.EvaluationRequest) ([]models.ResearchFindings, error)
}

// Runner orchestrates one evaluation per Run call. Runs share no mutable
// state; a Runner may be used concurrently.
type Runner struct {
	researcher Researcher
	extractor  *discovery.Extractor
	adjuster   *weights.Adjuster
	engine     *recommend.Engine
	logger     *slog.Logger

	// Progress tracking
	progressMu sync.Mutex
	listeners  []ProgressListener
}

// ProgressListener receives progress updates
type ProgressListener func(event ProgressEvent)

// EventType represents the type of progress event
type EventType string

const (
	EventEvaluationStart    EventType = "evaluation_start"
	EventResearchComplete   EventType = "research_complete"
	EventWeightsAdjusted    EventType = "weights_adjusted"
	EventRankingComplete    EventType = "ranking_complete"
	EventEvaluationComplete EventType = "evaluation_complete"
)

// ProgressEvent represents a progress update
type ProgressEvent struct {
	EventType  EventType
	RunID      string
	Candidates int
	DurationMs int64
	Details    map[string]any
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithExtractor overrides the discovery extractor.
func WithExtractor(e *discovery.Extractor) RunnerOption {
	return func(r *Runner) { r.extractor = e }
}

// WithAdjuster overrides the weight adjuster.
func WithAdjuster(a *weights.Adjuster) RunnerOption {
	return func(r *Runner) { r.adjuster = a }
}

// WithEngine overrides the ranking and synthesis engine.
func WithEngine(e *recommend.Engine) RunnerOption {
	return func(r *Runner) { r.engine = e }
}

// WithLogger sets the logger for run lifecycle messages. A nil logger is ignored.
func WithLogger(l *slog.Logger) RunnerOption {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRunner creates a runner. Components not supplied through options use
// their defaults; the default engine has no narrative oracle and always
// recommends the top-ranked candidate.
func NewRunner(researcher Researcher, opts ...RunnerOption) *Runner {
	r := &Runner{
		researcher: researcher,
		logger:     slog.Default(),
		listeners:  []ProgressListener{},
	}
	for _, o := range opts {
		o(r)
	}
	if r.extractor == nil {
		r.extractor = discovery.NewExtractor(discovery.Keywords{})
	}
	if r.adjuster == nil {
		r.adjuster = weights.NewAdjuster(weights.WithLogger(r.logger))
	}
	if r.engine == nil {
		r.engine = recommend.NewEngine(nil, nil, recommend.WithLogger(r.logger))
	}
	return r
}

// OnProgress registers a progress listener
func (r *Runner) OnProgress(listener ProgressListener) {
	r.progressMu.Lock()
	defer r.progressMu.Unlock()
	r.listeners = append(r.listeners, listener)
}

func (r *Runner) notifyProgress(event ProgressEvent) {
	r.progressMu.Lock()
	listeners := make([]ProgressListener, len(r.listeners))
	copy(listeners, r.listeners)
	r.progressMu.Unlock()

	for _, listener := range listeners {
		r.deliver(listener, event)
	}
}

func (r *Runner) deliver(listener ProgressListener, event ProgressEvent) {
	defer func() {
		if v := recover(); v != nil {
			r.logger.Error("progress listener panicked", "event", event.EventType, "panic", v)
		}
	}()
	listener(event)
}

// Run evaluates the request's candidates and returns the recommendation.
// It fails on an invalid request or when ctx ends before synthesis; oracle
// failures only degrade the result.
func (r *Runner) Run(ctx context.Context, req *models.EvaluationRequest) (*models.Recommendation, error) {
	startTime := time.Now()

	if req == nil {
		return nil, fmt.Errorf("%w: nil request", models.ErrInvalidRequest)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := r.logger.With("run_id", runID)
	logger.Info("evaluation started", "name", req.Name, "candidates", len(req.Candidates))

	r.notifyProgress(ProgressEvent{
		EventType:  EventEvaluationStart,
		RunID:      runID,
		Candidates: len(req.Candidates),
	})

	findings, err := r.researcher.Research(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("researching candidates: %w", err)
	}
	candidates := researched(req.Candidates, findings)

	r.notifyProgress(ProgressEvent{
		EventType:  EventResearchComplete,
		RunID:      runID,
		Candidates: len(candidates),
		DurationMs: time.Since(startTime).Milliseconds(),
	})

	discoveries := r.extractor.Extract(findings)
	initial := weights.Initialize(req.Context)
	final, adjustments := r.adjuster.Adjust(discoveries, initial, req.Context)
	logger.Info("weights adjusted", "discoveries", len(discoveries), "adjustments", len(adjustments))

	r.notifyProgress(ProgressEvent{
		EventType:  EventWeightsAdjusted,
		RunID:      runID,
		Candidates: len(candidates),
		Details: map[string]any{
			"discoveries": len(discoveries),
			"adjustments": len(adjustments),
		},
	})

	scores := r.engine.Rank(candidates, findings, final)

	details := map[string]any{}
	if len(scores) > 0 {
		details["top_vendor"] = scores[0].Vendor
		details["top_score"] = scores[0].WeightedScore
	}
	r.notifyProgress(ProgressEvent{
		EventType:  EventRankingComplete,
		RunID:      runID,
		Candidates: len(candidates),
		Details:    details,
	})

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("evaluation cancelled before synthesis: %w", err)
	}

	rec := r.engine.Synthesize(ctx, &recommend.SynthesisInput{
		RunID:       runID,
		Context:     req.Context,
		Candidates:  candidates,
		Findings:    findings,
		Initial:     initial,
		Final:       final,
		Adjustments: adjustments,
		Scores:      scores,
	})
	rec.DurationMs = time.Since(startTime).Milliseconds()

	logger.Info("evaluation complete",
		"recommended", rec.RecommendedVendor,
		"fallback", rec.UsedFallback,
		"duration_ms", rec.DurationMs)

	r.notifyProgress(ProgressEvent{
		EventType:  EventEvaluationComplete,
		RunID:      runID,
		Candidates: len(candidates),
		DurationMs: rec.DurationMs,
		Details:    map[string]any{"recommended": rec.RecommendedVendor},
	})

	return rec, nil
}

// researched keeps the candidates the researcher returned findings for, in
// request order.
func researched(candidates []models.Candidate, findings []models.ResearchFindings) []models.Candidate {
	seen := make(map[string]bool, len(findings))
	for _, f := range findings {
		seen[strings.ToLower(f.Vendor)] = true
	}
	out := make([]models.Candidate, 0, len(findings))
	for _, c := range candidates {
		if seen[strings.ToLower(c.Name)] {
			out = append(out, c)
		}
	}
	return out
}

// IsCancelled reports whether err came from a cancelled or expired context.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
