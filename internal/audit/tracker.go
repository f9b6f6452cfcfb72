package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Tracker accumulates per-file and per-run statistics during a
// normalization run and renders the terminal summary.
type Tracker struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Files           []FileStats    `json:"files"`
	DefaultsApplied map[string]int `json:"defaults_applied,omitempty"`

	TimeRows     int `json:"time_rows"`
	OffenseRows  int `json:"offense_rows"`
	LocationRows int `json:"location_rows"`
	CaseTypeRows int `json:"case_type_rows"`
	FactRows     int `json:"fact_rows"`
}

// FileStats records one input file's contribution to the run
type FileStats struct {
	Name           string   `json:"name"`
	RowsRead       int      `json:"rows_read"`
	Facts          int      `json:"facts"`
	NewTime        int      `json:"new_time"`
	NewOffense     int      `json:"new_offense"`
	NewLocation    int      `json:"new_location"`
	NewCaseType    int      `json:"new_case_type"`
	MissingColumns []string `json:"missing_columns,omitempty"`
	Skipped        bool     `json:"skipped,omitempty"`
	Reason         string   `json:"reason,omitempty"`
}

// NewTracker starts tracking a run under a fresh run identifier
func NewTracker() *Tracker {
	return &Tracker{
		RunID:           uuid.NewString(),
		StartedAt:       time.Now(),
		DefaultsApplied: make(map[string]int),
	}
}

// FileProcessed records a successfully folded file
func (t *Tracker) FileProcessed(fs FileStats) {
	t.Files = append(t.Files, fs)
}

// FileSkipped records a file excluded from the run
func (t *Tracker) FileSkipped(name string, err error) {
	t.Files = append(t.Files, FileStats{
		Name:    name,
		Skipped: true,
		Reason:  err.Error(),
	})
}

// AddDefaults merges per-column default counts from one file
func (t *Tracker) AddDefaults(counts map[string]int) {
	for col, n := range counts {
		t.DefaultsApplied[col] += n
	}
}

// Finish stamps the end time and the final table sizes
func (t *Tracker) Finish(timeRows, offenseRows, locationRows, caseTypeRows, factRows int) {
	t.FinishedAt = time.Now()
	t.TimeRows = timeRows
	t.OffenseRows = offenseRows
	t.LocationRows = locationRows
	t.CaseTypeRows = caseTypeRows
	t.FactRows = factRows
}

// ProcessedFiles counts files that contributed rows
func (t *Tracker) ProcessedFiles() int {
	n := 0
	for _, f := range t.Files {
		if !f.Skipped {
			n++
		}
	}
	return n
}

// SkippedFiles counts files excluded from the run
func (t *Tracker) SkippedFiles() int {
	return len(t.Files) - t.ProcessedFiles()
}

// Summary renders the terminal run summary
func (t *Tracker) Summary() string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n=== Normalization Run Summary ===\n")
	fmt.Fprintf(&b, "Run ID: %s\n", t.RunID)
	fmt.Fprintf(&b, "Duration: %v\n", t.FinishedAt.Sub(t.StartedAt).Round(time.Millisecond))
	fmt.Fprintf(&b, "Files processed: %d (%d skipped)\n", t.ProcessedFiles(), t.SkippedFiles())

	for _, f := range t.Files {
		if f.Skipped {
			fmt.Fprintf(&b, "  ✗ %s: skipped (%s)\n", f.Name, f.Reason)
			continue
		}
		fmt.Fprintf(&b, "  ✓ %s: %d rows, %d facts\n", f.Name, f.RowsRead, f.Facts)
	}

	if len(t.DefaultsApplied) > 0 {
		cols := make([]string, 0, len(t.DefaultsApplied))
		for col := range t.DefaultsApplied {
			cols = append(cols, col)
		}
		sort.Strings(cols)

		fmt.Fprintf(&b, "Defaults applied:\n")
		for _, col := range cols {
			fmt.Fprintf(&b, "  %s: %d\n", col, t.DefaultsApplied[col])
		}
	}

	fmt.Fprintf(&b, "Dim_Tiempo: %d rows\n", t.TimeRows)
	fmt.Fprintf(&b, "Dim_Delito: %d rows\n", t.OffenseRows)
	fmt.Fprintf(&b, "Dim_Ubicacion: %d rows\n", t.LocationRows)
	fmt.Fprintf(&b, "Dim_TipoCaso: %d rows\n", t.CaseTypeRows)
	fmt.Fprintf(&b, "Total de denuncias procesadas: %d\n", t.FactRows)

	return b.String()
}

// WriteJSON writes the full run record to path, creating the parent
// directory if needed
func (t *Tracker) WriteJSON(path string) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run record: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write run record: %w", err)
	}
	return nil
}
