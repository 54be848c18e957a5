// Package research fans evidence queries out across candidates and criteria
// and gathers the answers into per-candidate findings.
package research

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/GondaliaKaran/openclaw-buildathon/internal/models"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/oracle"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultWorkers       = 4
	DefaultMaxCandidates = 5
)

// topics holds the research task and the focus text for each criterion.
// %[1]s is the candidate name.
var topics = map[models.CriterionID]struct{ task, focus string }{
	models.CriterionSDKQuality:            {"Analyze SDK quality for %[1]s", "SDK availability per language, maintenance activity, documentation"},
	models.CriterionAPIQuality:            {"Analyze API quality for %[1]s", "API design, documentation quality, developer experience"},
	models.CriterionIntegrationComplexity: {"Analyze integration complexity for %[1]s", "Integration effort and difficulty for the declared tech stack"},
	models.CriterionPerformance:           {"Analyze performance for %[1]s", "Latency, throughput, published benchmarks"},
	models.CriterionUptimeReliability:     {"Analyze uptime history for %[1]s", "Status page history, incidents, outages, downtime"},
	models.CriterionSupportQuality:        {"Analyze support quality for %[1]s", "Response times, support channels, user reviews"},
	models.CriterionScalability:           {"Analyze scalability for %[1]s", "Rate limits and behavior at the target scale"},
	models.CriterionPricing:               {"Analyze pricing for %[1]s", "Pricing tiers, hidden fees, cost at scale"},
	models.CriterionVendorHealth:          {"Analyze vendor health for %[1]s", "Funding, headcount, growth, recent news"},
	models.CriterionCompliance:            {"Analyze compliance for %[1]s", "Certifications and audits against the required standards"},
}

// Researcher queries an evidence oracle for every candidate and criterion.
type Researcher struct {
	oracle        oracle.EvidenceOracle
	criteria      []models.CriterionID
	workers       int
	maxCandidates int
	hiddenRisks   bool
	logger        *slog.Logger
}

// Option configures a Researcher.
type Option func(*Researcher)

// WithWorkers bounds the number of concurrent oracle queries.
func WithWorkers(n int) Option {
	return func(r *Researcher) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithMaxCandidates caps how many candidates are researched.
func WithMaxCandidates(n int) Option {
	return func(r *Researcher) {
		if n > 0 {
			r.maxCandidates = n
		}
	}
}

// WithHiddenRiskDetection toggles the per-candidate hidden-risk query.
func WithHiddenRiskDetection(enabled bool) Option {
	return func(r *Researcher) { r.hiddenRisks = enabled }
}

// WithCriteria sets which criteria are researched. Defaults to all ten.
func WithCriteria(ids ...models.CriterionID) Option {
	return func(r *Researcher) {
		if len(ids) > 0 {
			r.criteria = ids
		}
	}
}

// WithLogger sets the logger for failed and panicked research tasks. A nil
// logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(r *Researcher) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a Researcher backed by o.
func New(o oracle.EvidenceOracle, opts ...Option) *Researcher {
	r := &Researcher{
		oracle:        o,
		criteria:      models.AllCriteria(),
		workers:       DefaultWorkers,
		maxCandidates: DefaultMaxCandidates,
		hiddenRisks:   true,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// slot is the private result area of one task. Tasks never touch another
// task's slot, so no locking is needed until the group has finished.
type slot struct {
	finding  models.DimensionFinding
	risks    []models.HiddenRisk
	note     string
	panicked bool
}

// Research returns one ResearchFindings per researched candidate, in input
// order. A failed query leaves that criterion without analysis; it never
// fails the run. The only error returned is ctx's.
func (r *Researcher) Research(ctx context.Context, req *models.EvaluationRequest) ([]models.ResearchFindings, error) {
	candidates := req.Candidates
	if len(candidates) > r.maxCandidates {
		r.logger.Warn("too many candidates, researching the first ones only",
			"candidates", len(candidates), "max", r.maxCandidates)
		candidates = candidates[:r.maxCandidates]
	}

	perCandidate := len(r.criteria)
	if r.hiddenRisks {
		perCandidate++
	}
	slots := make([]slot, len(candidates)*perCandidate)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for ci, c := range candidates {
		for di, id := range r.criteria {
			s := &slots[ci*perCandidate+di]
			g.Go(func() error {
				defer recoverInto(s, r.logger, c.Name, string(id))
				s.finding = r.researchDimension(gctx, c, id, req.Context)
				return nil
			})
		}
		if r.hiddenRisks {
			s := &slots[ci*perCandidate+len(r.criteria)]
			g.Go(func() error {
				defer recoverInto(s, r.logger, c.Name, "hidden risks")
				s.risks, s.note = r.detectHiddenRisks(gctx, c, req.Context)
				return nil
			})
		}
	}

	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := time.Now()
	out := make([]models.ResearchFindings, len(candidates))
	for ci, c := range candidates {
		f := models.ResearchFindings{
			Vendor:             c.Name,
			Dimensions:         make(map[models.CriterionID]models.DimensionFinding, len(r.criteria)),
			RequiredCompliance: append([]string(nil), req.Context.Compliance...),
			ResearchedAt:       now,
		}
		panicked := false
		for di, id := range r.criteria {
			s := slots[ci*perCandidate+di]
			panicked = panicked || s.panicked
			f.Dimensions[id] = s.finding
		}
		if r.hiddenRisks {
			s := slots[ci*perCandidate+len(r.criteria)]
			panicked = panicked || s.panicked
			f.HiddenRisks = s.risks
			if s.note != "" {
				f.Notes = append(f.Notes, s.note)
			}
		}
		if panicked {
			f.Notes = append(f.Notes, "insufficient data: research failed unexpectedly")
		}
		out[ci] = f
	}

	r.logger.Info("research complete", "candidates", len(out))
	return out, nil
}

func recoverInto(s *slot, logger *slog.Logger, vendor, what string) {
	if v := recover(); v != nil {
		logger.Error("research task panicked", "vendor", vendor, "task", what, "panic", v)
		s.panicked = true
	}
}

func (r *Researcher) researchDimension(ctx context.Context, c models.Candidate, id models.CriterionID, ec models.EvaluationContext) models.DimensionFinding {
	q := &oracle.EvidenceQuery{
		Kind:      oracle.QueryDimension,
		Candidate: c,
		Criterion: id,
		Hints:     hints(c, ec),
	}
	if t, ok := topics[id]; ok {
		q.Topic = fmt.Sprintf(t.task, c.Name)
		q.Focus = t.focus
	} else {
		q.Topic = fmt.Sprintf("Analyze %s for %s", strings.ReplaceAll(string(id), "_", " "), c.Name)
	}

	res, err := r.oracle.Query(ctx, q)
	if err != nil {
		level := slog.LevelWarn
		if errors.Is(err, oracle.ErrNoEvidence) {
			level = slog.LevelDebug
		}
		r.logger.Log(ctx, level, "evidence query failed", "vendor", c.Name, "criterion", id, "error", err)
		return models.DimensionFinding{Err: err.Error()}
	}

	finding := models.DimensionFinding{
		Analysis:     res.Analysis,
		Keywords:     res.Keywords,
		Capabilities: res.Capabilities,
	}
	if id == models.CriterionSDKQuality && finding.Capabilities == nil {
		finding.Capabilities = capabilities(res.Analysis, ec.TechStack)
	}
	return finding
}

var (
	negatedBefore = regexp.MustCompile(`(?i)\b(?:no|not|lacks?|lacking|without|missing)\b(?:\W+\w+){0,2}\W*$`)
	negatedAfter  = regexp.MustCompile(`(?i)^\W*(?:\w+\W+){0,2}?(?:not|unsupported|unavailable|missing|lacking)\b`)
)

// capabilities marks each tech-stack entry as supported when the analysis
// mentions it as a whole word outside a negation ("no Go SDK", "lacks Go",
// "Go is not supported"). Blank analysis yields no map: absence of research
// is not evidence of a missing SDK.
func capabilities(analysis string, techStack []string) map[string]bool {
	if strings.TrimSpace(analysis) == "" || len(techStack) == 0 {
		return nil
	}
	caps := make(map[string]bool, len(techStack))
	for _, tech := range techStack {
		if tech = strings.TrimSpace(tech); tech != "" {
			caps[tech] = mentionsSupport(analysis, tech)
		}
	}
	return caps
}

func mentionsSupport(text, tech string) bool {
	re := regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}_])(` + regexp.QuoteMeta(tech) + `)(?:$|[^\p{L}\p{N}_])`)
	for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
		start, end := m[2], m[3]
		before := text[clauseStart(text, start):start]
		after := text[end:clauseEnd(text, end)]
		if !negatedBefore.MatchString(before) && !negatedAfter.MatchString(after) {
			return true
		}
	}
	return false
}

// clauseStart returns the offset just past the last clause break before i.
// A period only breaks a clause when followed by whitespace, so "Node.js"
// stays whole.
func clauseStart(text string, i int) int {
	for j := i - 1; j >= 0; j-- {
		switch text[j] {
		case ';', '!', '?', '\n':
			return j + 1
		case '.':
			if j+1 < i && (text[j+1] == ' ' || text[j+1] == '\t') {
				return j + 1
			}
		}
	}
	return 0
}

func clauseEnd(text string, i int) int {
	for j := i; j < len(text); j++ {
		switch text[j] {
		case ';', '!', '?', '\n':
			return j
		case '.':
			if j+1 == len(text) || text[j+1] == ' ' || text[j+1] == '\t' {
				return j
			}
		}
	}
	return len(text)
}

// RiskProbes lists the hidden-risk probes that apply to a candidate.
func RiskProbes(c models.Candidate, ec models.EvaluationContext) []string {
	var probes []string
	if c.GitHubURL != "" {
		probes = append(probes, models.RiskMaintainerHealth)
	}
	probes = append(probes, models.RiskPricingTrap, models.RiskLockIn, models.RiskAcquisition)
	if len(ec.Compliance) > 0 {
		probes = append(probes, models.RiskComplianceDrift)
	}
	return append(probes, models.RiskTechnologyDeprecation)
}

func (r *Researcher) detectHiddenRisks(ctx context.Context, c models.Candidate, ec models.EvaluationContext) ([]models.HiddenRisk, string) {
	h := hints(c, ec)
	h[oracle.HintRiskProbes] = RiskProbes(c, ec)

	res, err := r.oracle.Query(ctx, &oracle.EvidenceQuery{
		Kind:      oracle.QueryHiddenRisks,
		Candidate: c,
		Topic:     "Detect hidden risks for " + c.Name,
		Hints:     h,
	})
	if err != nil {
		if errors.Is(err, oracle.ErrNoEvidence) {
			return nil, ""
		}
		r.logger.Warn("hidden risk detection failed", "vendor", c.Name, "error", err)
		return nil, "hidden risk detection failed: " + err.Error()
	}

	risks := make([]models.HiddenRisk, 0, len(res.Risks))
	for _, risk := range res.Risks {
		risk.Type = models.NormalizeRiskType(risk.Type)
		risk.Vendor = c.Name
		risks = append(risks, risk)
	}
	r.logger.Debug("hidden risks detected", "vendor", c.Name, "count", len(risks))
	return risks, ""
}

func hints(c models.Candidate, ec models.EvaluationContext) map[string]any {
	h := map[string]any{}
	if len(ec.TechStack) > 0 {
		h[oracle.HintTechStack] = ec.TechStack
	}
	if len(ec.Compliance) > 0 {
		h[oracle.HintCompliance] = ec.Compliance
	}
	if ec.Scale != "" {
		h[oracle.HintScale] = ec.Scale
	}
	if c.GitHubURL != "" {
		h[oracle.HintGitHubURL] = c.GitHubURL
	}
	if c.Website != "" {
		h[oracle.HintWebsite] = c.Website
	}
	return h
}
