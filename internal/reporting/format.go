package reporting

import (
	"fmt"
	"io"
	"strings"

	"github.com/GondaliaKaran/openclaw-buildathon/internal/models"
)

// Format names an output format.
type Format string

const (
	MarkdownFormat Format = "markdown"
	JSONFormat     Format = "json"
	HTMLFormat     Format = "html"
	SummaryFormat  Format = "summary"
)

// Formats lists the supported output formats.
var Formats = []Format{MarkdownFormat, JSONFormat, HTMLFormat, SummaryFormat}

// ParseFormat accepts a format name, case-insensitively. "md" is an alias
// for markdown.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "md":
		return MarkdownFormat, nil
	case MarkdownFormat, JSONFormat, HTMLFormat, SummaryFormat:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q: must be one of markdown, json, html, summary", s)
}

// Render writes rec to w in format f.
func Render(w io.Writer, rec *models.Recommendation, f Format) error {
	var out string
	switch f {
	case JSONFormat:
		return WriteJSON(w, rec)
	case HTMLFormat:
		html, err := FormatHTML(rec)
		if err != nil {
			return err
		}
		out = html
	case SummaryFormat:
		out = FormatSummary(rec)
	case MarkdownFormat, "":
		out = FormatMarkdown(rec)
	default:
		return fmt.Errorf("unknown format %q", f)
	}
	_, err := io.WriteString(w, out)
	return err
}
