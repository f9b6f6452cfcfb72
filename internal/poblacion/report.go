package poblacion

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
)

// topDepartments caps the ranking section of the report
const topDepartments = 10

// Report renders the plain-text validation report for a processing pass
func Report(rows []Row, stats Stats) string {
	var b strings.Builder
	rule := strings.Repeat("=", 70)
	latest := len(populationYears) - 1

	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "INFORME DE VALIDACIÓN - POBLACIÓN PROYECTADA\n")
	fmt.Fprintf(&b, "%s\n\n", rule)

	var departments []Row
	for _, r := range rows {
		if r.Level == LevelDepartment && r.population(latest) != nil {
			departments = append(departments, r)
		}
	}

	fmt.Fprintf(&b, "RESUMEN GENERAL:\n")
	fmt.Fprintf(&b, "- Filas leídas: %s\n", humanize.Comma(int64(stats.RowsRead)))
	fmt.Fprintf(&b, "- Registros válidos: %s\n", humanize.Comma(int64(len(rows))))
	fmt.Fprintf(&b, "- Departamentos: %d\n", stats.Departments)
	fmt.Fprintf(&b, "- Provincias: %d\n", stats.Provinces)
	fmt.Fprintf(&b, "- Distritos: %d\n\n", stats.Districts)

	if len(departments) > 0 {
		sort.SliceStable(departments, func(i, j int) bool {
			return *departments[i].population(latest) > *departments[j].population(latest)
		})
		if len(departments) > topDepartments {
			departments = departments[:topDepartments]
		}

		fmt.Fprintf(&b, "TOP %d DEPARTAMENTOS POR POBLACIÓN (%s):\n", topDepartments, populationYears[latest])
		for _, d := range departments {
			fmt.Fprintf(&b, "- %s: %s habitantes\n", d.Name, humanize.Comma(int64(*d.population(latest))))
		}
		fmt.Fprintf(&b, "\n")
	}

	writeNationalGrowth(&b, rows, latest)

	fmt.Fprintf(&b, "CALIDAD DE DATOS:\n")
	fmt.Fprintf(&b, "- Filas rechazadas: %d\n", len(stats.Rejections))
	fmt.Fprintf(&b, "- Regiones sin padre registrado: %d\n", stats.MissingParents)
	for _, year := range populationYears {
		fmt.Fprintf(&b, "- Registros sin población %s: %d\n", year, stats.NullValues[year])
	}

	if len(stats.Rejections) > 0 {
		fmt.Fprintf(&b, "\nFILAS RECHAZADAS:\n")
		for _, r := range stats.Rejections {
			fmt.Fprintf(&b, "- fila %d: %s\n", r.Line, r.Reason)
		}
	}

	fmt.Fprintf(&b, "%s\n", rule)
	return b.String()
}

// writeNationalGrowth renders the country-total growth over the
// projection window. The section only appears when the national row
// exists and carries both endpoint values.
func writeNationalGrowth(b *strings.Builder, rows []Row, latest int) {
	for _, r := range rows {
		if r.Code != nationalCode {
			continue
		}
		first, last := r.population(0), r.population(latest)
		if first == nil || last == nil || *first == 0 {
			return
		}

		growth := (float64(*last) - float64(*first)) / float64(*first) * 100
		fmt.Fprintf(b, "CRECIMIENTO POBLACIONAL NACIONAL:\n")
		fmt.Fprintf(b, "- Población %s: %s\n", populationYears[0], humanize.Comma(int64(*first)))
		fmt.Fprintf(b, "- Población %s: %s\n", populationYears[latest], humanize.Comma(int64(*last)))
		fmt.Fprintf(b, "- Crecimiento total: %.2f%%\n\n", growth)
		return
	}
}

// WriteReport writes the validation report to path
func WriteReport(path string, rows []Row, stats Stats) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(Report(rows, stats)), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
