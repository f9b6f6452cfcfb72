package validation

import (
	"path/filepath"

	"github.com/denuncias-dw/internal/csvio"
	"github.com/denuncias-dw/internal/normalize"
)

// CheckColumns reports which critical columns a table provides
func CheckColumns(t *csvio.Table) ColumnReport {
	report := ColumnReport{
		File:     filepath.Base(t.Path),
		RowCount: len(t.Rows),
	}

	for _, col := range normalize.CriticalColumns {
		if t.HasColumn(col) {
			report.Present = append(report.Present, col)
		} else {
			report.Missing = append(report.Missing, col)
		}
	}

	return report
}

// ValidateInputDir pre-flights every year-named file in dir without
// running the pipeline. Unreadable files report their error in place.
func ValidateInputDir(dir string) ([]ColumnReport, error) {
	files, err := csvio.DiscoverYearFiles(dir)
	if err != nil {
		return nil, err
	}

	reports := make([]ColumnReport, 0, len(files))
	for _, path := range files {
		table, err := csvio.ReadTable(path)
		if err != nil {
			reports = append(reports, ColumnReport{
				File: filepath.Base(path),
				Err:  err.Error(),
			})
			continue
		}
		reports = append(reports, CheckColumns(table))
	}

	return reports, nil
}
