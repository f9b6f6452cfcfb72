package poblacion

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Region levels in the normalized output
const (
	LevelDepartment = "departamento"
	LevelProvince   = "provincia"
	LevelDistrict   = "distrito"
)

// nationalCode marks the country-total row. Its code shape classifies
// it as a department; the report's national growth section reads it.
const nationalCode = "000000"

// headerSniffLimit is the default bound on how deep into the grid the
// UBIGEO header row is searched for.
const headerSniffLimit = 20

// maxPopulation rejects values no Peruvian region can reach
const maxPopulation = 50000000

// populationYears names the projection series carried by the grid, one
// value column per year starting at the third grid column.
var populationYears = []string{"2018", "2019", "2020", "2021", "2022"}

var (
	nonDigitPattern = regexp.MustCompile(`[^0-9]`)
	continuaPattern = regexp.MustCompile(`(?i)\(?continúa[.…]*\)?`)
	createdPattern  = regexp.MustCompile(`(?i)creado [0-9]+`)
	leadingPattern  = regexp.MustCompile(`^[0-9]+[\s.,;:-]*`)
	spacePattern    = regexp.MustCompile(`\s+`)
)

// Row is one normalized population record. Populations holds one value
// per entry of populationYears; nil marks a cell that did not validate.
type Row struct {
	Code           string `json:"ubigeo"`
	Name           string `json:"nombre"`
	Level          string `json:"nivel"`
	DepartmentCode string `json:"cod_departamento"`
	ProvinceCode   string `json:"cod_provincia"`
	Department     string `json:"departamento"`
	Province       string `json:"provincia"`
	Populations    []*int `json:"poblaciones"`
}

// population reads the year value at index j, tolerating short slices
func (r Row) population(j int) *int {
	if j < 0 || j >= len(r.Populations) {
		return nil
	}
	return r.Populations[j]
}

// Rejection records one grid row dropped during processing
type Rejection struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// Stats summarizes a population processing pass. NullValues counts,
// per year, the kept rows whose value for that year did not validate.
type Stats struct {
	RowsRead       int            `json:"rows_read"`
	Departments    int            `json:"departments"`
	Provinces      int            `json:"provinces"`
	Districts      int            `json:"districts"`
	MissingParents int            `json:"missing_parents"`
	NullValues     map[string]int `json:"null_values,omitempty"`
	Rejections     []Rejection    `json:"rejections,omitempty"`
}

func (s *Stats) reject(line int, reason string) {
	s.Rejections = append(s.Rejections, Rejection{Line: line, Reason: reason})
}

// Processor turns a raw population grid into normalized rows
type Processor struct {
	log       zerolog.Logger
	sniffRows int
}

// New creates a processor logging through log. sniffRows bounds the
// header search; zero or negative selects the default.
func New(log zerolog.Logger, sniffRows int) *Processor {
	if sniffRows <= 0 {
		sniffRows = headerSniffLimit
	}
	return &Processor{log: log, sniffRows: sniffRows}
}

// Process locates the header row, cleans every data row below it and
// backfills parent region names. Rows that cannot be salvaged are
// dropped and recorded with their reason; a value cell that does not
// validate leaves a null in its year, never drops the row. Only a
// missing header row fails the whole grid.
func (p *Processor) Process(grid [][]string) ([]Row, Stats, error) {
	headerRow, err := findHeader(grid, p.sniffRows)
	if err != nil {
		return nil, Stats{}, err
	}
	p.log.Debug().Int("header_row", headerRow+1).Msg("located UBIGEO header")

	stats := Stats{NullValues: make(map[string]int)}
	var rows []Row
	departments := make(map[string]string)
	provinces := make(map[string]string)

	for i := headerRow + 1; i < len(grid); i++ {
		line := i + 1
		cells := grid[i]
		stats.RowsRead++

		code := cleanCode(cell(cells, 0))
		if code == "" {
			stats.reject(line, fmt.Sprintf("invalid region code %q", cell(cells, 0)))
			continue
		}

		name := cleanName(cell(cells, 1))
		if name == "" {
			stats.reject(line, fmt.Sprintf("empty name for region %s", code))
			continue
		}

		populations := make([]*int, len(populationYears))
		for j, year := range populationYears {
			v, ok := parsePopulation(cell(cells, 2+j))
			if !ok {
				stats.NullValues[year]++
				continue
			}
			value := v
			populations[j] = &value
		}

		level := classifyLevel(code)
		departmentCode, provinceCode := hierarchyCodes(code, level)

		switch level {
		case LevelDepartment:
			departments[code] = name
			stats.Departments++
		case LevelProvince:
			provinces[code] = name
			stats.Provinces++
		default:
			stats.Districts++
		}

		rows = append(rows, Row{
			Code:           code,
			Name:           name,
			Level:          level,
			DepartmentCode: departmentCode,
			ProvinceCode:   provinceCode,
			Populations:    populations,
		})
	}

	backfillParents(rows, departments, provinces, &stats)

	for _, r := range stats.Rejections {
		p.log.Debug().Int("line", r.Line).Str("reason", r.Reason).Msg("rejected grid row")
	}
	p.log.Info().
		Int("rows", len(rows)).
		Int("rejected", len(stats.Rejections)).
		Msg("population grid processed")

	return rows, stats, nil
}

// backfillParents fills department and province names from the rows
// registered during the pass. A child whose parent never appeared keeps
// an empty name and is counted.
func backfillParents(rows []Row, departments, provinces map[string]string, stats *Stats) {
	for i := range rows {
		r := &rows[i]

		if name, ok := departments[r.DepartmentCode]; ok {
			r.Department = name
		} else {
			stats.MissingParents++
		}

		if r.ProvinceCode == "" {
			continue
		}
		if name, ok := provinces[r.ProvinceCode]; ok {
			r.Province = name
		} else if r.Level == LevelDistrict {
			stats.MissingParents++
		}
	}
}

// findHeader scans the top of the grid for the row holding the UBIGEO
// column header, looking at most limit rows deep.
func findHeader(grid [][]string, limit int) (int, error) {
	if len(grid) < limit {
		limit = len(grid)
	}
	for i := 0; i < limit; i++ {
		for _, c := range grid[i] {
			if strings.EqualFold(strings.TrimSpace(c), "UBIGEO") {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("no UBIGEO header row found in first %d rows", limit)
}

// cleanCode normalizes a raw region code to 6 digits. Codes with no
// digits at all are rejected. The all-zero national total code passes
// through like any other.
func cleanCode(raw string) string {
	code := nonDigitPattern.ReplaceAllString(raw, "")
	if code == "" {
		return ""
	}
	if len(code) > 6 {
		code = code[:6]
	}
	if len(code) < 6 {
		code = strings.Repeat("0", 6-len(code)) + code
	}
	return code
}

// classifyLevel derives the region level from the code shape:
// XX0000 is a department, XXXX00 a province, anything else a district.
func classifyLevel(code string) string {
	switch {
	case code[2:] == "0000":
		return LevelDepartment
	case code[4:] == "00":
		return LevelProvince
	default:
		return LevelDistrict
	}
}

// hierarchyCodes derives the parent codes for a region. Departments
// have no province parent.
func hierarchyCodes(code, level string) (department, province string) {
	department = code[:2] + "0000"
	if level == LevelDepartment {
		return department, ""
	}
	return department, code[:4] + "00"
}

// cleanName scrubs spreadsheet artifacts out of a region name:
// continuation markers, "Creado NNNN" annotations, region codes spilled
// into the name cell, and runs of whitespace.
func cleanName(raw string) string {
	name := strings.TrimSpace(raw)
	name = continuaPattern.ReplaceAllString(name, " ")
	name = createdPattern.ReplaceAllString(name, " ")
	name = leadingPattern.ReplaceAllString(name, "")
	name = spacePattern.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// parsePopulation strips thousands separators and validates the value
// against a plausible range. Floats are range-checked before the int
// conversion, which is implementation-defined out of range.
func parsePopulation(raw string) (int, bool) {
	s := strings.ReplaceAll(raw, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, false
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f < 0 || f >= maxPopulation {
			return 0, false
		}
		v = int(f)
	}

	if v < 0 || v >= maxPopulation {
		return 0, false
	}
	return v, true
}

// cell reads a grid cell, tolerating ragged rows
func cell(cells []string, i int) string {
	if i >= len(cells) {
		return ""
	}
	return cells[i]
}
