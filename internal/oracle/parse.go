package oracle

import (
	"strings"

	"github.com/GondaliaKaran/openclaw-buildathon/internal/models"
)

const noRiskMarker = "NO_RISK"

// ParseRiskResponse extracts hidden risks from a RISK:/SEVERITY:/EVIDENCE:/IMPACT:
// formatted answer. Each RISK: line starts a new record; other lines inside a
// record accumulate into its description. Records without a type, or with
// neither evidence nor description, are discarded.
func ParseRiskResponse(text string) []models.HiddenRisk {
	var (
		risks   []models.HiddenRisk
		current *models.HiddenRisk
		desc    []string
	)

	flush := func() {
		if current == nil {
			return
		}
		current.Description = strings.Join(desc, " ")
		if current.Type != "" && (current.Evidence != "" || current.Description != "") {
			risks = append(risks, *current)
		}
		current, desc = nil, nil
	}

	for _, raw := range strings.Split(text, "\n") {
		line := cleanLine(raw)
		if line == "" {
			continue
		}

		key, value, isField := field(line)
		switch {
		case isField && key == "RISK":
			flush()
			current = &models.HiddenRisk{Type: value, Severity: models.SeverityMedium}
		case current == nil:
			// preamble or NO_RISK
		case isField && key == "SEVERITY":
			current.Severity = normalizeSeverity(value)
		case isField && key == "EVIDENCE":
			current.Evidence = value
		case isField && key == "IMPACT":
			current.Impact = value
		case line == noRiskMarker:
		default:
			desc = append(desc, line)
		}
	}
	flush()

	return risks
}

func normalizeSeverity(s string) string {
	switch strings.ToLower(strings.Trim(s, "[] ")) {
	case models.SeverityHigh:
		return models.SeverityHigh
	case models.SeverityLow:
		return models.SeverityLow
	default:
		return models.SeverityMedium
	}
}

// cleanLine trims whitespace, list bullets and markdown emphasis.
func cleanLine(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "-*• ")
	s = strings.ReplaceAll(s, "**", "")
	return strings.TrimSpace(s)
}

var riskFields = []string{"RISK", "SEVERITY", "EVIDENCE", "IMPACT"}

// field splits "KEY: value" for the known risk field names.
func field(line string) (key, value string, ok bool) {
	k, v, found := strings.Cut(line, ":")
	if !found {
		return "", "", false
	}
	k = strings.ToUpper(strings.TrimSpace(k))
	for _, f := range riskFields {
		if k == f {
			return f, strings.TrimSpace(v), true
		}
	}
	return "", "", false
}

// SplitKeywords separates a trailing "KEYWORDS: a, b" line from an analysis.
func SplitKeywords(text string) (string, []string) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := cleanLine(lines[i])
		if line == "" {
			continue
		}
		k, v, found := strings.Cut(line, ":")
		if !found || strings.ToUpper(strings.TrimSpace(k)) != "KEYWORDS" {
			break
		}

		var keywords []string
		for _, kw := range strings.Split(v, ",") {
			if kw = strings.TrimSpace(kw); kw != "" {
				keywords = append(keywords, strings.ToLower(kw))
			}
		}
		return strings.TrimSpace(strings.Join(lines[:i], "\n")), keywords
	}
	return strings.TrimSpace(text), nil
}

// SplitCapabilities removes "SUPPORTED: a, b" and "UNSUPPORTED: c" lines from
// an analysis and returns them as a capability map. Names that match a
// tech-stack entry case-insensitively take the stack's spelling. The map is
// nil when neither line is present.
func SplitCapabilities(text string, techStack []string) (string, map[string]bool) {
	var (
		kept []string
		caps map[string]bool
	)
	for _, raw := range strings.Split(text, "\n") {
		k, v, found := strings.Cut(cleanLine(raw), ":")
		key := strings.ToUpper(strings.TrimSpace(k))
		if !found || (key != "SUPPORTED" && key != "UNSUPPORTED") {
			kept = append(kept, raw)
			continue
		}
		if caps == nil {
			caps = map[string]bool{}
		}
		for _, name := range strings.Split(v, ",") {
			name = strings.Trim(strings.TrimSpace(name), ".")
			if name == "" || strings.EqualFold(name, "none") || name == "-" {
				continue
			}
			for _, tech := range techStack {
				if strings.EqualFold(strings.TrimSpace(tech), name) {
					name = strings.TrimSpace(tech)
					break
				}
			}
			caps[name] = key == "SUPPORTED"
		}
	}
	return strings.TrimSpace(strings.Join(kept, "\n")), caps
}
