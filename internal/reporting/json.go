package reporting

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/GondaliaKaran/openclaw-buildathon/internal/models"
)

// WriteJSON writes rec as indented JSON.
func WriteJSON(w io.Writer, rec *models.Recommendation) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

// ReadJSON reads a report previously written by WriteJSON.
func ReadJSON(r io.Reader) (*models.Recommendation, error) {
	var rec models.Recommendation
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("decoding report: %w", err)
	}
	if rec.RecommendedVendor == "" && len(rec.VendorScores) == 0 {
		return nil, fmt.Errorf("decoding report: not a vendor evaluation report")
	}
	return &rec, nil
}
