// Package dataset loads candidate lists from CSV files.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/GondaliaKaran/openclaw-buildathon/internal/models"
)

// Row represents a single CSV row with column name to value mapping.
// Column names are lower-cased and trimmed.
type Row map[string]string

// Candidate columns. Only name is required; other columns are ignored.
const (
	ColumnName        = "name"
	ColumnWebsite     = "website"
	ColumnGitHubURL   = "github_url"
	ColumnDescription = "description"
)

// ReadCSV reads CSV data and returns rows as maps of column to value.
// The first row is treated as headers. Blank lines are skipped.
func ReadCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("csv: empty input (no header row)")
	}
	if err != nil {
		return nil, fmt.Errorf("csv: parse header: %w", err)
	}
	for i, h := range headers {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// csv.ParseError carries the line number.
			return nil, fmt.Errorf("csv: %w", err)
		}
		row := make(Row, len(headers))
		for j, h := range headers {
			row[h] = strings.TrimSpace(record[j])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// LoadCandidates reads candidates from a CSV file with a header row naming
// at least the name column.
func LoadCandidates(path string) ([]models.Candidate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	rows, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(rows) > 0 {
		if _, ok := rows[0][ColumnName]; !ok {
			return nil, fmt.Errorf("%s: csv: missing %q column", path, ColumnName)
		}
	}

	candidates := make([]models.Candidate, 0, len(rows))
	for i, row := range rows {
		if row[ColumnName] == "" {
			return nil, fmt.Errorf("%s: csv: row %d has no %s", path, i+2, ColumnName)
		}
		candidates = append(candidates, models.Candidate{
			Name:        row[ColumnName],
			Website:     row[ColumnWebsite],
			GitHubURL:   row[ColumnGitHubURL],
			Description: row[ColumnDescription],
		})
	}
	return candidates, nil
}
