package poblacion

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestCleanCode(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"full district code", "150101", "150101"},
		{"department code", "150000", "150000"},
		{"lost leading zero", "90000", "090000"},
		{"surrounding noise", " 150101 ", "150101"},
		{"internal space", "15 0101", "150101"},
		{"code with separator", "15-01-01", "150101"},
		{"too long truncates", "1501011234", "150101"},
		{"no digits", "DEPARTAMENTO", ""},
		{"empty", "", ""},
		{"national total kept", "000000", "000000"},
		{"zero pads to national total", "0", "000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanCode(tt.raw); got != tt.want {
				t.Errorf("cleanCode(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestClassifyLevel(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"150000", LevelDepartment},
		{"150100", LevelProvince},
		{"150101", LevelDistrict},
		{"010000", LevelDepartment},
		{"010101", LevelDistrict},
		{"000000", LevelDepartment},
	}

	for _, tt := range tests {
		if got := classifyLevel(tt.code); got != tt.want {
			t.Errorf("classifyLevel(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestHierarchyCodes(t *testing.T) {
	tests := []struct {
		name           string
		code           string
		level          string
		wantDepartment string
		wantProvince   string
	}{
		{"district", "150101", LevelDistrict, "150000", "150100"},
		{"province", "150100", LevelProvince, "150000", "150100"},
		{"department", "150000", LevelDepartment, "150000", ""},
		{"national total", "000000", LevelDepartment, "000000", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			department, province := hierarchyCodes(tt.code, tt.level)
			if department != tt.wantDepartment || province != tt.wantProvince {
				t.Errorf("hierarchyCodes(%q, %q) = (%q, %q), want (%q, %q)",
					tt.code, tt.level, department, province, tt.wantDepartment, tt.wantProvince)
			}
		})
	}
}

func TestCleanName(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "LIMA", "LIMA"},
		{"surrounding space", "  LIMA  ", "LIMA"},
		{"continuation marker", "LIMA (Continúa...)", "LIMA"},
		{"bare continuation", "Continúa", ""},
		{"created annotation", "AMAZONAS Creado 1832", "AMAZONAS"},
		{"code spilled into name", "01 AMAZONAS", "AMAZONAS"},
		{"collapses spaces", "SAN   MARTÍN", "SAN MARTÍN"},
		{"only digits", "150101", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanName(tt.raw); got != tt.want {
				t.Errorf("cleanName(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParsePopulation(t *testing.T) {
	tests := []struct {
		raw    string
		want   int
		wantOK bool
	}{
		{"268352", 268352, true},
		{"10,628,470", 10628470, true},
		{"10 628 470", 10628470, true},
		{"268352.0", 268352, true},
		{"0", 0, true},
		{"49999999", 49999999, true},
		{"50000000", 0, false},
		{"99,999,999", 0, false},
		{"1e20", 0, false},
		{"-5", 0, false},
		{"habitantes", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := parsePopulation(tt.raw)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("parsePopulation(%q) = (%d, %v), want (%d, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestFindHeader(t *testing.T) {
	grid := [][]string{
		{"PERÚ: POBLACIÓN PROYECTADA POR DISTRITO"},
		{""},
		{"", "Cuadro N° 1"},
		{"UBIGEO", "DISTRITO", "2018", "2019", "2020", "2021", "2022"},
		{"150101", "LIMA", "255,000", "258,000", "261,000", "264,000", "268,352"},
	}

	got, err := findHeader(grid, headerSniffLimit)
	if err != nil {
		t.Fatalf("findHeader() error = %v", err)
	}
	if got != 3 {
		t.Errorf("findHeader() = %d, want 3", got)
	}
}

func TestFindHeaderHonorsLimit(t *testing.T) {
	grid := [][]string{
		{"preamble"},
		{"more preamble"},
		{"still preamble"},
		{"UBIGEO", "DISTRITO", "2018"},
	}

	if _, err := findHeader(grid, 2); err == nil {
		t.Error("findHeader() with limit 2 should not reach the header on row 4")
	}

	got, err := findHeader(grid, 10)
	if err != nil {
		t.Fatalf("findHeader() error = %v", err)
	}
	if got != 3 {
		t.Errorf("findHeader() = %d, want 3", got)
	}
}

func TestFindHeaderCaseInsensitive(t *testing.T) {
	grid := [][]string{
		{"preamble"},
		{" ubigeo ", "nombre", "poblacion"},
	}

	got, err := findHeader(grid, headerSniffLimit)
	if err != nil {
		t.Fatalf("findHeader() error = %v", err)
	}
	if got != 1 {
		t.Errorf("findHeader() = %d, want 1", got)
	}
}

func TestFindHeaderMissing(t *testing.T) {
	grid := [][]string{
		{"no", "header", "here"},
		{"150101", "LIMA", "268,352"},
	}

	if _, err := findHeader(grid, headerSniffLimit); err == nil {
		t.Fatal("findHeader() expected error for grid without UBIGEO row")
	}
}

func testGrid() [][]string {
	return [][]string{
		{"PERÚ: POBLACIÓN PROYECTADA 2018-2022"},
		{""},
		{"UBIGEO", "DISTRITO", "2018", "2019", "2020", "2021", "2022"},
		{"000000", "PERÚ", "31,237,385", "31,826,018", "32,625,948", "33,035,304", "33,396,698"},
		{"150000", "LIMA", "10,295,249", "10,380,512", "10,467,783", "10,550,139", "10,628,470"},
		{"150100", "LIMA", "9,320,000", "9,400,000", "9,485,405", "9,562,280", "9,674,755"},
		{"150101", "LIMA", "255,000", "258,000", "261,000", "264,000", "268,352"},
		{"150102", "ANCÓN", "no disponible", "39,600", "40,951", "42,157", "43,382"},
		{"", "Continúa...", "", "", "", "", ""},
		{"150103", "", "10,500", "11,000", "11,500", "12,000", "12,145"},
	}
}

func TestProcess(t *testing.T) {
	rows, stats, err := New(zerolog.Nop(), 0).Process(testGrid())
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if len(rows) != 5 {
		t.Fatalf("Process() returned %d rows, want 5", len(rows))
	}
	if stats.RowsRead != 7 {
		t.Errorf("RowsRead = %d, want 7", stats.RowsRead)
	}
	if stats.Departments != 2 || stats.Provinces != 1 || stats.Districts != 2 {
		t.Errorf("level counts = %d/%d/%d, want 2/1/2",
			stats.Departments, stats.Provinces, stats.Districts)
	}
	if len(stats.Rejections) != 2 {
		t.Fatalf("Rejections = %d, want 2", len(stats.Rejections))
	}

	wantLevels := []string{LevelDepartment, LevelDepartment, LevelProvince, LevelDistrict, LevelDistrict}
	for i, want := range wantLevels {
		if rows[i].Level != want {
			t.Errorf("rows[%d].Level = %q, want %q", i, rows[i].Level, want)
		}
	}

	national := rows[0]
	if national.Code != "000000" || national.Name != "PERÚ" {
		t.Errorf("national row = %q %q, want 000000 PERÚ", national.Code, national.Name)
	}
	if v := national.population(4); v == nil || *v != 33396698 {
		t.Errorf("national 2022 = %v, want 33396698", v)
	}

	ancon := rows[4]
	if ancon.Code != "150102" || ancon.Name != "ANCÓN" {
		t.Errorf("district row = %q %q, want 150102 ANCÓN", ancon.Code, ancon.Name)
	}
	if ancon.DepartmentCode != "150000" || ancon.ProvinceCode != "150100" {
		t.Errorf("district hierarchy = %q/%q, want 150000/150100", ancon.DepartmentCode, ancon.ProvinceCode)
	}
	if got := ancon.population(0); got != nil {
		t.Errorf("unparseable 2018 value = %v, want nil", got)
	}
	if v := ancon.population(4); v == nil || *v != 43382 {
		t.Errorf("district 2022 = %v, want 43382", v)
	}
	if stats.NullValues["2018"] != 1 {
		t.Errorf("NullValues[2018] = %d, want 1", stats.NullValues["2018"])
	}
	if stats.NullValues["2022"] != 0 {
		t.Errorf("NullValues[2022] = %d, want 0", stats.NullValues["2022"])
	}
}

func TestProcessBackfillsParentNames(t *testing.T) {
	rows, stats, err := New(zerolog.Nop(), 0).Process(testGrid())
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if national := rows[0]; national.Department != "PERÚ" || national.Province != "" {
		t.Errorf("national parents = %q/%q, want PERÚ and empty", national.Department, national.Province)
	}
	for _, r := range rows[1:] {
		if r.Department != "LIMA" {
			t.Errorf("row %s: Department = %q, want LIMA", r.Code, r.Department)
		}
	}

	district := rows[3]
	if district.Province != "LIMA" {
		t.Errorf("district Province = %q, want LIMA", district.Province)
	}
	department := rows[1]
	if department.Province != "" {
		t.Errorf("department Province = %q, want empty", department.Province)
	}
	if stats.MissingParents != 0 {
		t.Errorf("MissingParents = %d, want 0", stats.MissingParents)
	}
}

func TestProcessCountsMissingParents(t *testing.T) {
	grid := [][]string{
		{"UBIGEO", "DISTRITO", "2018", "2019", "2020", "2021", "2022"},
		{"080101", "CUSCO", "111,930", "112,600", "113,280", "113,960", "114,630"},
	}

	rows, stats, err := New(zerolog.Nop(), 0).Process(grid)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Process() returned %d rows, want 1", len(rows))
	}
	if rows[0].Department != "" || rows[0].Province != "" {
		t.Errorf("orphan row parents = %q/%q, want empty", rows[0].Department, rows[0].Province)
	}
	if stats.MissingParents != 2 {
		t.Errorf("MissingParents = %d, want 2", stats.MissingParents)
	}
}

func TestProcessShortRowLeavesNulls(t *testing.T) {
	grid := [][]string{
		{"UBIGEO", "DISTRITO", "2018", "2019", "2020", "2021", "2022"},
		{"150101", "LIMA", "255,000"},
	}

	rows, stats, err := New(zerolog.Nop(), 0).Process(grid)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Process() returned %d rows, want 1", len(rows))
	}
	if v := rows[0].population(0); v == nil || *v != 255000 {
		t.Errorf("2018 value = %v, want 255000", v)
	}
	for j := 1; j < 5; j++ {
		if rows[0].population(j) != nil {
			t.Errorf("missing year %d should be nil", j)
		}
	}
	if stats.NullValues["2022"] != 1 {
		t.Errorf("NullValues[2022] = %d, want 1", stats.NullValues["2022"])
	}
}

func TestProcessMissingHeader(t *testing.T) {
	grid := [][]string{
		{"just", "noise"},
		{"150101", "LIMA", "268,352"},
	}

	if _, _, err := New(zerolog.Nop(), 0).Process(grid); err == nil {
		t.Fatal("Process() expected error for grid without header row")
	}
}

func TestOutputTable(t *testing.T) {
	rows, _, err := New(zerolog.Nop(), 0).Process(testGrid())
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	table := OutputTable(rows)
	if table.Name != "Poblacion" {
		t.Errorf("table.Name = %q, want Poblacion", table.Name)
	}
	if len(table.Columns) != 12 {
		t.Fatalf("table has %d columns, want 12", len(table.Columns))
	}
	if len(table.Columns) != len(table.Types) {
		t.Errorf("%d columns but %d types", len(table.Columns), len(table.Types))
	}
	if table.Columns[7] != "poblacion_2018" || table.Columns[11] != "poblacion_2022" {
		t.Errorf("year columns = %q..%q, want poblacion_2018..poblacion_2022", table.Columns[7], table.Columns[11])
	}
	if len(table.Rows) != len(rows) {
		t.Fatalf("table has %d rows, want %d", len(table.Rows), len(rows))
	}

	want := []string{
		"150000", "LIMA", LevelDepartment, "150000", "", "LIMA", "",
		"10295249", "10380512", "10467783", "10550139", "10628470",
	}
	for i, cell := range table.Rows[1] {
		if cell != want[i] {
			t.Errorf("row[1][%d] = %q, want %q", i, cell, want[i])
		}
	}
	// ANCÓN's 2018 value did not validate; its cell must stay empty.
	if got := table.Rows[4][7]; got != "" {
		t.Errorf("null population cell = %q, want empty", got)
	}
}

func TestReport(t *testing.T) {
	rows, stats, err := New(zerolog.Nop(), 0).Process(testGrid())
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	report := Report(rows, stats)
	for _, want := range []string{
		"INFORME DE VALIDACIÓN",
		"Registros válidos: 5",
		"Departamentos: 2",
		"TOP 10 DEPARTAMENTOS POR POBLACIÓN (2022):",
		"- PERÚ: 33,396,698 habitantes",
		"- LIMA: 10,628,470 habitantes",
		"CRECIMIENTO POBLACIONAL NACIONAL:",
		"- Población 2018: 31,237,385",
		"- Población 2022: 33,396,698",
		"- Crecimiento total: 6.91%",
		"Registros sin población 2018: 1",
		"Filas rechazadas: 2",
		"FILAS RECHAZADAS:",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}

func TestReportWithoutNationalRow(t *testing.T) {
	grid := [][]string{
		{"UBIGEO", "DISTRITO", "2018", "2019", "2020", "2021", "2022"},
		{"150000", "LIMA", "10,295,249", "10,380,512", "10,467,783", "10,550,139", "10,628,470"},
	}

	rows, stats, err := New(zerolog.Nop(), 0).Process(grid)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	report := Report(rows, stats)
	if strings.Contains(report, "CRECIMIENTO POBLACIONAL NACIONAL") {
		t.Errorf("report has national growth section without a national row:\n%s", report)
	}
}
