// Package wizard collects an evaluation request interactively.
package wizard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/GondaliaKaran/openclaw-buildathon/internal/models"
	"github.com/charmbracelet/huh"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Answers holds the raw fields collected by the wizard. List fields are
// comma-separated.
type Answers struct {
	Name       string
	Category   string
	TechStack  string
	Domain     string
	Region     string
	Scale      string
	Priorities string
	Compliance string
	Candidates string
}

const requestHeader = `# Evaluation request. Validate with: vendoreval validate <file>
# Run with: vendoreval evaluate <file>
`

// RunRequestWizard runs an interactive huh form and builds a request from
// the answers.
func RunRequestWizard(in io.Reader, out io.Writer) (*models.EvaluationRequest, error) {
	var a Answers

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Evaluation name").
				Placeholder("payments-2026").
				Value(&a.Name),
			huh.NewInput().
				Title("Category").
				Description("What kind of vendor are you choosing?").
				Placeholder("payment gateway").
				Value(&a.Category).
				Validate(required("category")),
			huh.NewInput().
				Title("Tech stack").
				Description("Comma-separated languages and frameworks the vendor must support").
				Placeholder("Go, React").
				Value(&a.TechStack),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Domain").
				Placeholder("fintech").
				Value(&a.Domain),
			huh.NewInput().
				Title("Region").
				Placeholder("India").
				Value(&a.Region),
			huh.NewInput().
				Title("Scale").
				Placeholder("10k transactions/day").
				Value(&a.Scale),
			huh.NewInput().
				Title("Priorities").
				Description("Comma-separated, e.g. reliability, pricing, integration").
				Value(&a.Priorities),
			huh.NewInput().
				Title("Compliance requirements").
				Description("Comma-separated, e.g. PCI-DSS, SOC2").
				Value(&a.Compliance),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Candidates").
				Description("Comma-separated vendor names to compare").
				Placeholder("Stripe, Razorpay, Adyen").
				Value(&a.Candidates).
				Validate(func(s string) error {
					_, err := BuildRequest(Answers{Candidates: s})
					return err
				}),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	return BuildRequest(a)
}

// BuildRequest converts wizard answers into a validated request.
func BuildRequest(a Answers) (*models.EvaluationRequest, error) {
	req := &models.EvaluationRequest{
		Name: strings.TrimSpace(a.Name),
		Context: models.EvaluationContext{
			Category:   strings.TrimSpace(a.Category),
			TechStack:  splitAndTrim(a.TechStack),
			Domain:     strings.TrimSpace(a.Domain),
			Region:     strings.TrimSpace(a.Region),
			Scale:      strings.TrimSpace(a.Scale),
			Priorities: splitAndTrim(a.Priorities),
			Compliance: splitAndTrim(a.Compliance),
		},
	}
	for _, name := range splitAndTrim(a.Candidates) {
		req.Candidates = append(req.Candidates, models.Candidate{Name: name})
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// GenerateRequestYAML renders req as a commented request file.
func GenerateRequestYAML(req *models.EvaluationRequest) (string, error) {
	data, err := yaml.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to render request: %w", err)
	}
	return requestHeader + string(data), nil
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
