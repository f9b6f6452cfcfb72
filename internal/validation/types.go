package validation

import (
	"fmt"
	"strings"
)

// ColumnReport describes which critical columns one input file provides.
// Missing columns are synthesized with defaults during normalization,
// so an incomplete file is a warning, not an error.
type ColumnReport struct {
	File     string   `json:"file"`
	RowCount int      `json:"row_count"`
	Present  []string `json:"present,omitempty"`
	Missing  []string `json:"missing,omitempty"`
	Err      string   `json:"error,omitempty"`
}

// Complete reports whether every critical column is present
func (r ColumnReport) Complete() bool {
	return r.Err == "" && len(r.Missing) == 0
}

func (r ColumnReport) String() string {
	if r.Err != "" {
		return fmt.Sprintf("%s: UNREADABLE (%s)", r.File, r.Err)
	}
	if r.Complete() {
		return fmt.Sprintf("%s: %d rows, all %d critical columns present", r.File, r.RowCount, len(r.Present))
	}
	return fmt.Sprintf("%s: %d rows, missing %s", r.File, r.RowCount, strings.Join(r.Missing, ", "))
}
