package reporting

import (
	"bytes"
	"fmt"
	"html"

	"github.com/GondaliaKaran/openclaw-buildathon/internal/models"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdownRenderer = goldmark.New(goldmark.WithExtensions(extension.Table))

const htmlStyle = `body{font-family:system-ui,sans-serif;max-width:960px;margin:2rem auto;padding:0 1rem;line-height:1.5}
table{border-collapse:collapse}th,td{border:1px solid #ccc;padding:.3rem .6rem;text-align:left}`

// FormatHTML renders the markdown report as a standalone HTML page.
func FormatHTML(rec *models.Recommendation) (string, error) {
	var body bytes.Buffer
	if err := markdownRenderer.Convert([]byte(FormatMarkdown(rec)), &body); err != nil {
		return "", fmt.Errorf("rendering html: %w", err)
	}

	title := "Vendor Evaluation Report"
	if rec.RecommendedVendor != "" {
		title += ": " + rec.RecommendedVendor
	}

	return fmt.Sprintf("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n<style>%s</style>\n</head>\n<body>\n%s</body>\n</html>\n",
		html.EscapeString(title), htmlStyle, body.String()), nil
}
