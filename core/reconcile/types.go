package reconcile

import (
	"strconv"

	"tablet-ingest/core/serial"
)

// MatchResult is the reconciliation output for a single unmatched serial.
type MatchResult struct {
	// ID is the unmatched serial number.
	ID serial.Number `json:"serial_number"`

	// ClosestMatch is the most similar serial on the other side.
	// Empty when Matched is false.
	ClosestMatch serial.Number `json:"closest_match,omitempty"`

	// Score is the similarity of ID and ClosestMatch, in [0, 1].
	Score float64 `json:"closest_match_percentage"`

	// Matched is false when there was nothing to compare against.
	Matched bool `json:"matched"`
}

// Record returns the result as a table row. An absent match yields empty cells.
func (r MatchResult) Record() []string {
	if !r.Matched {
		return []string{r.ID.String(), "", ""}
	}
	return []string{r.ID.String(), r.ClosestMatch.String(), strconv.FormatFloat(r.Score, 'f', 1, 64)}
}

// Header is the column layout produced by MatchResult.Record.
var Header = []string{"serial_number", "closest_match", "closest_match_percentage"}

// Options controls result ordering.
type Options struct {
	// Sort orders results by serial number instead of first appearance.
	Sort bool
}

// Report contains both reconciliation directions.
type Report struct {
	// Missing holds serials observed in usage data but absent from the tracker.
	Missing []MatchResult `json:"missing"`

	// Unused holds serials in the tracker that were never observed.
	Unused []MatchResult `json:"unused"`

	// Summary provides aggregate counts.
	Summary Summary `json:"summary"`
}

// Summary provides aggregate statistics for a report.
type Summary struct {
	// Reference is the number of distinct tracker serials.
	Reference int `json:"reference"`

	// Observed is the number of distinct serials in usage data.
	Observed int `json:"observed"`

	// Missing counts serials absent from the tracker.
	Missing int `json:"missing"`

	// Unused counts tracker serials never observed.
	Unused int `json:"unused"`
}
