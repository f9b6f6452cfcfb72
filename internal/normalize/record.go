package normalize

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/denuncias-dw/internal/csvio"
)

// Sentinel defaults for critical columns
const (
	Unknown             = "DESCONOCIDO"
	DefaultDate         = "1900-01-01"
	DefaultLocationCode = "000000"
)

// Input column names of the yearly complaint extracts
const (
	ColDownloadDate   = "Fecha_descarga"
	ColYear           = "anio_denuncia"
	ColPeriod         = "periodo_denuncia"
	ColCutoffDate     = "fecha_corte"
	ColGeneric        = "generico"
	ColSubGeneric     = "subgenerico"
	ColArticle        = "articulo"
	ColArticleDesc    = "des_articulo"
	ColLocationCode   = "ubigeo_pjfs"
	ColDistrictOffice = "distrito_fiscal"
	ColDepartment     = "dpto_pjfs"
	ColProvince       = "prov_pjfs"
	ColDistrict       = "dist_pjfs"
	ColCaseType       = "tipo_caso"
	ColSpecialty      = "especialidad"
	ColQuantity       = "cantidad"
)

// CriticalColumns lists every column a complaint extract must provide.
// Absent columns are synthesized with their defaults rather than rejected.
var CriticalColumns = []string{
	ColDownloadDate,
	ColYear,
	ColPeriod,
	ColCutoffDate,
	ColGeneric,
	ColSubGeneric,
	ColArticle,
	ColArticleDesc,
	ColLocationCode,
	ColDistrictOffice,
	ColDepartment,
	ColProvince,
	ColDistrict,
	ColCaseType,
	ColSpecialty,
	ColQuantity,
}

// dateLayouts accepted for the day/month/year date columns
var dateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
}

// Record is one complaint row after cleaning, with every critical field present
type Record struct {
	DownloadDate   string // canonical YYYY-MM-DD
	Year           int
	Period         string
	CutoffDate     string // canonical YYYY-MM-DD
	Generic        string
	SubGeneric     string
	Article        string
	ArticleDesc    string
	LocationCode   string // 6-digit zero-padded
	DistrictOffice string
	Department     string
	Province       string
	District       string
	CaseType       string
	Specialty      string
	Quantity       int
}

// FileReport summarizes the cleaning work done on one input table
type FileReport struct {
	RowsRead        int            `json:"rows_read"`
	MissingColumns  []string       `json:"missing_columns,omitempty"`
	DefaultsApplied map[string]int `json:"defaults_applied,omitempty"`
}

// Normalizer cleans raw complaint tables into Record rows
type Normalizer struct {
	log zerolog.Logger
}

// New creates a record normalizer
func New(log zerolog.Logger) *Normalizer {
	return &Normalizer{log: log}
}

// NormalizeTable cleans every row of one input table.
// Missing critical columns are synthesized with defaults; unparseable
// values fall back to their defaults. Cleaning never fails a row.
func (n *Normalizer) NormalizeTable(t *csvio.Table) ([]Record, FileReport) {
	report := FileReport{
		RowsRead:        len(t.Rows),
		DefaultsApplied: make(map[string]int),
	}

	for _, col := range CriticalColumns {
		if !t.HasColumn(col) {
			report.MissingColumns = append(report.MissingColumns, col)
			n.log.Warn().
				Str("file", t.Path).
				Str("column", col).
				Msg("critical column missing, filling with default")
		}
	}

	records := make([]Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		records = append(records, Record{
			DownloadDate:   n.cleanDate(t, row, ColDownloadDate, &report),
			Year:           n.cleanInt(t, row, ColYear, &report),
			Period:         n.cleanString(t, row, ColPeriod, &report),
			CutoffDate:     n.cleanDate(t, row, ColCutoffDate, &report),
			Generic:        n.cleanString(t, row, ColGeneric, &report),
			SubGeneric:     n.cleanString(t, row, ColSubGeneric, &report),
			Article:        n.cleanString(t, row, ColArticle, &report),
			ArticleDesc:    n.cleanString(t, row, ColArticleDesc, &report),
			LocationCode:   n.cleanLocationCode(t, row, &report),
			DistrictOffice: n.cleanString(t, row, ColDistrictOffice, &report),
			Department:     n.cleanString(t, row, ColDepartment, &report),
			Province:       n.cleanString(t, row, ColProvince, &report),
			District:       n.cleanString(t, row, ColDistrict, &report),
			CaseType:       n.cleanString(t, row, ColCaseType, &report),
			Specialty:      n.cleanString(t, row, ColSpecialty, &report),
			Quantity:       n.cleanInt(t, row, ColQuantity, &report),
		})
	}

	n.log.Debug().
		Str("file", t.Path).
		Int("rows", report.RowsRead).
		Int("missing_columns", len(report.MissingColumns)).
		Msg("table normalized")

	return records, report
}

// cleanString returns the trimmed cell value or the DESCONOCIDO sentinel
func (n *Normalizer) cleanString(t *csvio.Table, row []string, col string, report *FileReport) string {
	if !t.HasColumn(col) {
		return Unknown
	}
	v := strings.TrimSpace(t.Get(row, col))
	if v == "" {
		report.DefaultsApplied[col]++
		return Unknown
	}
	return v
}

// cleanDate parses a day/month/year cell into canonical form, failing to 1900-01-01
func (n *Normalizer) cleanDate(t *csvio.Table, row []string, col string, report *FileReport) string {
	if !t.HasColumn(col) {
		return DefaultDate
	}
	v := strings.TrimSpace(t.Get(row, col))
	if v == "" {
		report.DefaultsApplied[col]++
		return DefaultDate
	}
	if parsed, ok := parseDate(v); ok {
		return parsed.Format("2006-01-02")
	}
	report.DefaultsApplied[col]++
	return DefaultDate
}

// cleanInt parses a numeric cell, failing to 0
func (n *Normalizer) cleanInt(t *csvio.Table, row []string, col string, report *FileReport) int {
	if !t.HasColumn(col) {
		return 0
	}
	v := strings.TrimSpace(t.Get(row, col))
	if v == "" {
		report.DefaultsApplied[col]++
		return 0
	}
	if parsed, ok := parseIntLoose(v); ok {
		return parsed
	}
	report.DefaultsApplied[col]++
	return 0
}

// cleanLocationCode zero-pads the ubigeo to exactly 6 characters
func (n *Normalizer) cleanLocationCode(t *csvio.Table, row []string, report *FileReport) string {
	if !t.HasColumn(ColLocationCode) {
		return DefaultLocationCode
	}
	v := strings.TrimSpace(t.Get(row, ColLocationCode))
	if v == "" {
		report.DefaultsApplied[ColLocationCode]++
		return DefaultLocationCode
	}
	return PadLocationCode(v)
}

// PadLocationCode left-pads a location code with zeros to 6 characters
func PadLocationCode(v string) string {
	for len(v) < 6 {
		v = "0" + v
	}
	return v
}

// parseDate tries the accepted day/month/year layouts
func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseIntLoose accepts plain integers and integral floats ("3", "3.0").
// Floats outside the int32 range are rejected rather than converted,
// since float-to-int conversion of out-of-range values is
// implementation-defined.
func parseIntLoose(s string) (int, bool) {
	if v, err := strconv.Atoi(s); err == nil {
		return v, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f >= math.MinInt32 && f <= math.MaxInt32 {
		return int(f), true
	}
	return 0, false
}
