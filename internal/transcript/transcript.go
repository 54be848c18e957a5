// Package transcript records the evidence exchanged with an oracle during an
// evaluation and writes it to disk for later audit.
package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/GondaliaKaran/openclaw-buildathon/internal/models"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/oracle"
)

// Entry is one evidence query and its answer.
type Entry struct {
	Kind         oracle.QueryKind    `json:"kind"`
	Vendor       string              `json:"vendor"`
	Criterion    models.CriterionID  `json:"criterion,omitempty"`
	Topic        string              `json:"topic"`
	Analysis     string              `json:"analysis,omitempty"`
	Keywords     []string            `json:"keywords,omitempty"`
	Capabilities map[string]bool     `json:"capabilities,omitempty"`
	Risks        []models.HiddenRisk `json:"risks,omitempty"`
	Error        string              `json:"error,omitempty"`
	StartedAt    time.Time           `json:"started_at"`
	DurationMs   int64               `json:"duration_ms"`
}

// Transcript is the oracle traffic of one evaluation run.
type Transcript struct {
	Name        string    `json:"name"`
	RunID       string    `json:"run_id,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
	Entries     []Entry   `json:"entries"`
	Narrative   string    `json:"narrative,omitempty"`
}

// Recorder is an EvidenceOracle that records every exchange with the oracle
// it wraps. It is safe for concurrent use.
type Recorder struct {
	inner oracle.EvidenceOracle

	mu      sync.Mutex
	entries []Entry
}

// NewRecorder wraps inner.
func NewRecorder(inner oracle.EvidenceOracle) *Recorder {
	return &Recorder{inner: inner}
}

// Query implements EvidenceOracle.
func (r *Recorder) Query(ctx context.Context, q *oracle.EvidenceQuery) (*oracle.EvidenceResult, error) {
	start := time.Now()
	res, err := r.inner.Query(ctx, q)
	if q == nil {
		return res, err
	}

	e := Entry{
		Kind:       q.Kind,
		Vendor:     q.Candidate.Name,
		Criterion:  q.Criterion,
		Topic:      q.Topic,
		StartedAt:  start,
		DurationMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		e.Error = err.Error()
	} else if res != nil {
		e.Analysis = res.Analysis
		e.Keywords = slices.Clone(res.Keywords)
		e.Capabilities = maps.Clone(res.Capabilities)
		e.Risks = slices.Clone(res.Risks)
	}

	r.mu.Lock()
	r.entries = append(r.entries, e)
	r.mu.Unlock()

	return res, err
}

// Entries returns the recorded exchanges grouped by vendor, criteria in table
// order and hidden-risk probes last.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	entries := slices.Clone(r.entries)
	r.mu.Unlock()

	order := map[models.CriterionID]int{}
	for i, id := range models.AllCriteria() {
		order[id] = i
	}
	rank := func(e Entry) int {
		if e.Kind == oracle.QueryHiddenRisks {
			return len(order) + 1
		}
		if i, ok := order[e.Criterion]; ok {
			return i
		}
		return len(order)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Vendor != entries[j].Vendor {
			return entries[i].Vendor < entries[j].Vendor
		}
		return rank(entries[i]) < rank(entries[j])
	})
	return entries
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

func sanitizeName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "-")
	s = unsafeChars.ReplaceAllString(s, "")
	if s == "" {
		s = "evaluation"
	}
	return s
}

// Filename returns the transcript filename for an evaluation.
func Filename(name string, ts time.Time) string {
	return fmt.Sprintf("%s-%s.json", sanitizeName(name), ts.Format("20060102-150405"))
}

// Write serializes t into dir and returns the file path.
func Write(dir string, t *Transcript) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create transcript dir: %w", err)
	}

	path := filepath.Join(dir, Filename(t.Name, t.StartedAt))

	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal transcript: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write transcript: %w", err)
	}

	return path, nil
}
