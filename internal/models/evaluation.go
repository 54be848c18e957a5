package models

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidRequest is returned when an evaluation request is structurally unusable.
var ErrInvalidRequest = errors.New("invalid evaluation request")

// EvaluationContext is the parsed requirement context an evaluation runs under.
type EvaluationContext struct {
	Category   string   `json:"category" yaml:"category"`
	TechStack  []string `json:"tech_stack,omitempty" yaml:"tech_stack,omitempty"`
	Domain     string   `json:"domain,omitempty" yaml:"domain,omitempty"`
	Region     string   `json:"region,omitempty" yaml:"region,omitempty"`
	Scale      string   `json:"scale,omitempty" yaml:"scale,omitempty"`
	Priorities []string `json:"priorities,omitempty" yaml:"priorities,omitempty"`
	Compliance []string `json:"compliance,omitempty" yaml:"compliance,omitempty"`
	RawQuery   string   `json:"query,omitempty" yaml:"query,omitempty"`
}

// Summary renders the context as a single " | " separated line.
func (c EvaluationContext) Summary() string {
	var parts []string
	if c.Category != "" {
		parts = append(parts, "Category: "+c.Category)
	}
	if len(c.TechStack) > 0 {
		parts = append(parts, "Tech Stack: "+strings.Join(c.TechStack, ", "))
	}
	if c.Domain != "" {
		parts = append(parts, "Domain: "+c.Domain)
	}
	if c.Region != "" {
		parts = append(parts, "Region: "+c.Region)
	}
	if c.Scale != "" {
		parts = append(parts, "Scale: "+c.Scale)
	}
	if len(c.Priorities) > 0 {
		parts = append(parts, "Priorities: "+strings.Join(c.Priorities, ", "))
	}
	if len(c.Compliance) > 0 {
		parts = append(parts, "Compliance: "+strings.Join(c.Compliance, ", "))
	}
	return strings.Join(parts, " | ")
}

// Candidate is a vendor under evaluation.
type Candidate struct {
	Name        string `json:"name" yaml:"name"`
	Website     string `json:"website,omitempty" yaml:"website,omitempty"`
	GitHubURL   string `json:"github_url,omitempty" yaml:"github_url,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// DimensionEvidence is pre-recorded evidence for one criterion of one candidate.
type DimensionEvidence struct {
	Analysis     string          `json:"analysis" yaml:"analysis"`
	Keywords     []string        `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Capabilities map[string]bool `json:"capabilities,omitempty" yaml:"capabilities,omitempty"`
}

// EvidenceFixture holds pre-recorded evidence for a candidate. It backs the
// offline (mock) evidence engine.
type EvidenceFixture struct {
	Dimensions  map[CriterionID]DimensionEvidence `json:"dimensions,omitempty" yaml:"dimensions,omitempty"`
	HiddenRisks []HiddenRisk                      `json:"hidden_risks,omitempty" yaml:"hidden_risks,omitempty"`
}

// EvaluationRequest is the input file of an evaluation run.
type EvaluationRequest struct {
	Name       string                     `json:"name,omitempty" yaml:"name,omitempty"`
	Context    EvaluationContext          `json:"context" yaml:"context"`
	Candidates []Candidate                `json:"candidates" yaml:"candidates"`
	Evidence   map[string]EvidenceFixture `json:"evidence,omitempty" yaml:"evidence,omitempty"`

	// Narrative is canned recommendation text used by the mock narrative engine.
	Narrative string `json:"narrative,omitempty" yaml:"narrative,omitempty"`
}

// LoadEvaluationRequest reads and validates a request file.
func LoadEvaluationRequest(path string) (*EvaluationRequest, error) {
	req, err := ReadEvaluationRequest(path)
	if err != nil {
		return nil, err
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	return req, nil
}

// ReadEvaluationRequest parses a request file without validating it, for
// callers that add candidates from elsewhere first.
func ReadEvaluationRequest(path string) (*EvaluationRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var req EvaluationRequest
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &req, nil
}

// Validate checks that the request names at least one uniquely named candidate.
func (r *EvaluationRequest) Validate() error {
	if len(r.Candidates) == 0 {
		return fmt.Errorf("%w: no candidates", ErrInvalidRequest)
	}

	seen := map[string]bool{}
	for i, c := range r.Candidates {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return fmt.Errorf("%w: candidate %d has no name", ErrInvalidRequest, i)
		}
		if seen[strings.ToLower(name)] {
			return fmt.Errorf("%w: duplicate candidate %q", ErrInvalidRequest, name)
		}
		seen[strings.ToLower(name)] = true
	}
	return nil
}
