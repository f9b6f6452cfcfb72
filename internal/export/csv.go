package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// utf8BOM is prepended to CSV files when BOM output is enabled, so
// spreadsheet tools open accented names correctly.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Exporter writes finished tables into the output directory
type Exporter struct {
	dir string
	bom bool
}

// NewExporter creates an exporter rooted at dir
func NewExporter(dir string, bom bool) *Exporter {
	return &Exporter{dir: dir, bom: bom}
}

// WriteCSV writes a single table as <dir>/<name>.csv and returns the path
func (e *Exporter) WriteCSV(t Table) (string, error) {
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(e.dir, t.Name+".csv")
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if e.bom {
		if _, err := file.Write(utf8BOM); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(t.Columns); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	for _, row := range t.Rows {
		if err := writer.Write(row); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	return path, nil
}

// WriteAll writes every table, stopping at the first failure
func (e *Exporter) WriteAll(tables []Table) error {
	for _, t := range tables {
		path, err := e.WriteCSV(t)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Exported %d rows to %s\n", len(t.Rows), path)
	}
	return nil
}
