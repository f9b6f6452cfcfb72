package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// yearFilePattern matches the yearly extract naming scheme (2019.csv, 2020.csv, ...)
var yearFilePattern = regexp.MustCompile(`^[0-9]{4}\.csv$`)

// Table is one CSV file read into memory with header-based column access
type Table struct {
	Path    string
	Headers []string
	Rows    [][]string

	columns map[string]int
}

// ReadTable reads a CSV file whose first row is the header.
// Ragged rows are tolerated; missing cells read as empty strings.
func ReadTable(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(header) > 0 {
		header[0] = stripBOM(header[0])
	}

	// Create column mapping
	columnMap := make(map[string]int)
	for i, col := range header {
		columnMap[strings.ToLower(strings.TrimSpace(col))] = i
	}

	table := &Table{
		Path:    path,
		Headers: header,
		columns: columnMap,
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		table.Rows = append(table.Rows, record)
	}

	return table, nil
}

// ReadGrid reads a CSV file as a raw cell grid with no header assumption
func ReadGrid(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	var grid [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		if len(grid) == 0 && len(record) > 0 {
			record[0] = stripBOM(record[0])
		}
		grid = append(grid, record)
	}

	return grid, nil
}

// HasColumn reports whether the header contains the named column
func (t *Table) HasColumn(name string) bool {
	_, ok := t.columns[strings.ToLower(name)]
	return ok
}

// Get extracts a column value from a record using the column mapping
func (t *Table) Get(record []string, name string) string {
	idx, ok := t.columns[strings.ToLower(name)]
	if !ok || idx >= len(record) {
		return ""
	}
	return record[idx]
}

// DiscoverYearFiles returns the year-named CSV files in dir, lexicographically sorted.
// The sort order decides which file first introduces a dimension key.
func DiscoverYearFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if yearFilePattern.MatchString(entry.Name()) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}

func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\uFEFF")
}
