package recommend

import (
	"regexp"
	"strings"

	"github.com/GondaliaKaran/openclaw-buildathon/internal/models"
)

// Narrative is the structured form of the narrative oracle's prose.
type Narrative struct {
	RecommendedVendor string
	Rationale         string
	TradeOffs         []string
	Alternatives      []models.Alternative
	NextSteps         []string
}

type section int

const (
	sectionNone section = iota
	sectionRationale
	sectionTradeOffs
	sectionAlternatives
	sectionNextSteps
)

var markers = []struct {
	text    string
	section section
}{
	{"RATIONALE:", sectionRationale},
	{"TRADE-OFFS:", sectionTradeOffs},
	{"TRADE-OFF:", sectionTradeOffs},
	{"ALTERNATIVES:", sectionAlternatives},
	{"ALTERNATIVE:", sectionAlternatives},
	{"NEXT STEPS:", sectionNextSteps},
}

const vendorMarker = "RECOMMENDED VENDOR:"

// ParseNarrative reads the sectioned recommendation format. Markers open a
// line; matching is case-insensitive and tolerates markdown headings and
// emphasis. Text after a section marker on the same line belongs to that
// section.
func ParseNarrative(text string) Narrative {
	var (
		n         Narrative
		current   = sectionNone
		rationale []string
	)

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		plain := strings.TrimLeft(strings.ReplaceAll(line, "**", ""), "#_ ")
		upper := strings.ToUpper(plain)

		if strings.HasPrefix(upper, vendorMarker) {
			n.RecommendedVendor = strings.Trim(plain[len(vendorMarker):], " *_#[]")
			current = sectionNone
			continue
		}

		if sec, rest, ok := matchMarker(plain, upper); ok {
			current = sec
			if rest == "" {
				continue
			}
			line = rest
		}

		switch current {
		case sectionRationale:
			rationale = append(rationale, line)
		case sectionTradeOffs:
			if item, ok := bullet(line); ok {
				n.TradeOffs = append(n.TradeOffs, item)
			}
		case sectionAlternatives:
			if item, ok := bullet(line); ok {
				n.Alternatives = append(n.Alternatives, parseAlternative(item))
			}
		case sectionNextSteps:
			if item, ok := step(line); ok {
				n.NextSteps = append(n.NextSteps, item)
			}
		}
	}

	n.Rationale = strings.Join(rationale, " ")
	return n
}

// matchMarker reports the section a line opens. Markers only count at the
// start of the line, so a bullet mentioning "alternatives:" stays a bullet.
func matchMarker(plain, upper string) (section, string, bool) {
	for _, m := range markers {
		if strings.HasPrefix(upper, m.text) {
			return m.section, strings.TrimSpace(plain[len(m.text):]), true
		}
	}
	return sectionNone, "", false
}

func bullet(line string) (string, bool) {
	if !strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "*") && !strings.HasPrefix(line, "•") {
		return "", false
	}
	item := strings.TrimSpace(strings.TrimLeft(line, "-*• "))
	return item, item != ""
}

func step(line string) (string, bool) {
	if item, ok := bullet(line); ok {
		return item, true
	}
	loc := numbered.FindStringIndex(line)
	if loc == nil {
		return "", false
	}
	item := strings.TrimSpace(line[loc[1]:])
	return item, item != ""
}

var numbered = regexp.MustCompile(`^\d+[.)\-]*\s*`)

var alternativePattern = regexp.MustCompile(`(?i)^if\s+(.+?):\s*consider\s+(.+?)(?:\s+because\s+(.+))?$`)

// parseAlternative splits "If X: Consider Y because Z" into its parts. Text
// that doesn't follow the pattern is kept verbatim.
func parseAlternative(text string) models.Alternative {
	alt := models.Alternative{Text: text}
	if m := alternativePattern.FindStringSubmatch(text); m != nil {
		alt.Condition = strings.TrimSpace(m[1])
		alt.Vendor = strings.TrimSpace(m[2])
		alt.Reason = strings.TrimSpace(m[3])
	}
	return alt
}
