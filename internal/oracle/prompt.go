package oracle

import (
	"fmt"
	"strings"

	"github.com/GondaliaKaran/openclaw-buildathon/internal/models"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/utils"
	"github.com/go-viper/mapstructure/v2"
)

// DefaultPersona is used when no persona file is configured or readable.
const DefaultPersona = "You are a senior tech evaluator providing vendor recommendations."

// PersonaRunes bounds how much of the persona is sent to the narrative oracle.
const PersonaRunes = 2000

// QueryHints is the typed view of EvidenceQuery.Hints.
type QueryHints struct {
	TechStack  []string `mapstructure:"tech_stack"`
	Compliance []string `mapstructure:"compliance"`
	Scale      string   `mapstructure:"scale"`
	GitHubURL  string   `mapstructure:"github_url"`
	Website    string   `mapstructure:"website"`
	RiskProbes []string `mapstructure:"risk_probes"`
}

// DecodeHints converts loosely typed hints into QueryHints. Single strings
// are accepted where lists are expected.
func DecodeHints(raw map[string]any) (QueryHints, error) {
	var hints QueryHints
	if len(raw) == 0 {
		return hints, nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &hints,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return hints, err
	}
	if err := dec.Decode(raw); err != nil {
		return hints, fmt.Errorf("decoding query hints: %w", err)
	}
	return hints, nil
}

// EvidencePrompt renders the prompt for a criterion research query.
func EvidencePrompt(q *EvidenceQuery, hints QueryHints) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Task: %s\n\n", q.Topic)
	if q.Focus != "" {
		fmt.Fprintf(&b, "Context: %s\n", q.Focus)
	}
	writeHints(&b, q.Candidate, hints)
	b.WriteString("\nResearch this using public sources such as official documentation, status pages, GitHub and user reviews.\n")
	b.WriteString("Provide a concise analysis (2-3 sentences) with specific evidence. If data is insufficient, state that clearly.\n")
	if q.Criterion == models.CriterionSDKQuality && len(hints.TechStack) > 0 {
		b.WriteString("After the analysis, add one line \"SUPPORTED: ...\" listing the tech-stack entries with an official SDK ")
		b.WriteString("and one line \"UNSUPPORTED: ...\" listing the rest. Use \"none\" for an empty list.\n")
	}
	b.WriteString("End with one line of the form \"KEYWORDS: word, word\" listing the words that best summarize your confidence.\n")
	return b.String()
}

var riskProbeText = map[string]string{
	models.RiskMaintainerHealth:      "maintainer-health: commit frequency decline, key contributor loss, stale pull requests, growing issue backlog",
	models.RiskPricingTrap:           "pricing-trap: cost explosions at scale, hidden fees, tier jumps",
	models.RiskLockIn:                "lockin: proprietary formats, difficult data export or migration",
	models.RiskAcquisition:           "acquisition: recent acquisition or merger that may disrupt the product",
	models.RiskComplianceDrift:       "compliance-drift: expired or lapsed certifications",
	models.RiskTechnologyDeprecation: "technology-deprecation: announced deprecations or end-of-life of APIs and SDKs",
}

// RiskPrompt renders the prompt for a hidden-risk query.
func RiskPrompt(q *EvidenceQuery, hints QueryHints) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Task: %s\n\n", q.Topic)
	writeHints(&b, q.Candidate, hints)
	b.WriteString("\nDetect these HIDDEN RISKS:\n")
	for i, probe := range hints.RiskProbes {
		text, ok := riskProbeText[models.NormalizeRiskType(probe)]
		if !ok {
			text = probe
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, text)
	}
	b.WriteString(`
For every risk found, output a block:
RISK: [type from the list above]
SEVERITY: [high/medium/low]
EVIDENCE: [specific data points]
IMPACT: [what this means for users]
[one sentence description]

If no clear risk, output: NO_RISK
`)
	return b.String()
}

func writeHints(b *strings.Builder, c models.Candidate, hints QueryHints) {
	if c.Website != "" {
		fmt.Fprintf(b, "Website: %s\n", c.Website)
	} else if hints.Website != "" {
		fmt.Fprintf(b, "Website: %s\n", hints.Website)
	}
	if hints.GitHubURL != "" {
		fmt.Fprintf(b, "GitHub: %s\n", hints.GitHubURL)
	}
	if len(hints.TechStack) > 0 {
		fmt.Fprintf(b, "Tech stack: %s\n", strings.Join(hints.TechStack, ", "))
	}
	if len(hints.Compliance) > 0 {
		fmt.Fprintf(b, "Required compliance: %s\n", strings.Join(hints.Compliance, ", "))
	}
	if hints.Scale != "" {
		fmt.Fprintf(b, "Target scale: %s\n", hints.Scale)
	}
}

// NarrativePrompt renders the recommendation prompt, persona first.
func NarrativePrompt(req *NarrativeRequest) string {
	var b strings.Builder

	persona := strings.TrimSpace(req.Persona)
	if persona == "" {
		persona = DefaultPersona
	}
	b.WriteString(utils.Truncate(persona, PersonaRunes))
	b.WriteString("\n\n---\n\n")

	b.WriteString("Based on the following evaluation data, provide a final recommendation.\n\n")

	b.WriteString("CONTEXT:\n")
	ctx := req.Context
	if len(ctx.TechStack) > 0 {
		fmt.Fprintf(&b, "Tech Stack: %s\n", strings.Join(ctx.TechStack, ", "))
	}
	if ctx.Domain != "" {
		fmt.Fprintf(&b, "Domain: %s\n", ctx.Domain)
	}
	if ctx.Scale != "" {
		fmt.Fprintf(&b, "Scale: %s\n", ctx.Scale)
	}
	if len(ctx.Priorities) > 0 {
		fmt.Fprintf(&b, "Priorities: %s\n", strings.Join(ctx.Priorities, ", "))
	}

	b.WriteString("\nVENDOR SCORES:\n")
	for i, s := range req.Scores {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "**%s**: Weighted Score %.1f/10\n", s.Vendor, s.WeightedScore)
		fmt.Fprintf(&b, "Strengths: %s\n", strings.Join(s.Strengths, ", "))
		fmt.Fprintf(&b, "Weaknesses: %s\n", strings.Join(s.Weaknesses, ", "))
	}

	b.WriteString("\nKEY DISCOVERIES THAT SHAPED THIS EVALUATION:\n")
	for _, d := range req.KeyDiscoveries {
		fmt.Fprintf(&b, "- %s: %s\n", d.Finding, d.Impact)
	}

	b.WriteString("\nHIDDEN RISKS DETECTED:\n")
	if len(req.HiddenRisks) == 0 {
		b.WriteString("None detected\n")
	}
	for _, r := range req.HiddenRisks {
		fmt.Fprintf(&b, "- %s: %s\n", r.Vendor, utils.Truncate(r.Description, 100))
	}

	b.WriteString(`
YOUR TASK:
Provide a structured recommendation in the following format:

RECOMMENDED VENDOR: [vendor name]

RATIONALE:
[2-3 sentences explaining why this vendor is recommended for this specific context]

TRADE-OFFS:
- [Weakness 1 and why it's acceptable]
- [Weakness 2 and why it's acceptable]

ALTERNATIVES:
- If [condition]: Consider [alternative vendor] because [reason]
- If [condition]: Consider [alternative vendor] because [reason]

NEXT STEPS:
1. [Actionable step]
2. [What to validate]
3. [Suggested pilot approach if applicable]

Be specific, evidence-based, and context-aware. Show how the discoveries influenced your recommendation.
`)
	return b.String()
}
