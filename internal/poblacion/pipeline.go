package poblacion

import (
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/denuncias-dw/internal/config"
	"github.com/denuncias-dw/internal/csvio"
	"github.com/denuncias-dw/internal/debug"
	"github.com/denuncias-dw/internal/export"
)

// Runner executes the population pipeline end to end
type Runner struct {
	cfg config.Config
	log zerolog.Logger
}

// NewRunner creates a runner for cfg
func NewRunner(cfg config.Config, log zerolog.Logger) *Runner {
	return &Runner{cfg: cfg, log: log}
}

// Run reads the grid file, normalizes it and writes every configured
// sink. Only read and sink failures abort the run; bad rows are
// reported, not fatal.
func (r *Runner) Run(gridPath string) error {
	defer debug.DebugTiming(r.cfg.Debug, "population pipeline")()
	started := time.Now()

	r.log.Info().Str("file", gridPath).Msg("processing population grid")

	grid, err := csvio.ReadGrid(gridPath)
	if err != nil {
		return err
	}
	debug.DebugOutput(r.cfg.Debug, "grid loaded: %d rows", len(grid))

	rows, stats, err := New(r.log, r.cfg.SniffRows).Process(grid)
	if err != nil {
		return err
	}

	table := OutputTable(rows)
	exporter := export.NewExporter(r.cfg.OutputDir, r.cfg.BOM)
	if err := exporter.WriteAll([]export.Table{table}); err != nil {
		return err
	}

	if r.cfg.SQLitePath != "" {
		if err := export.WriteSQLite(r.cfg.SQLitePath, []export.Table{table}); err != nil {
			return err
		}
		fmt.Printf("✓ Exported SQLite database to %s\n", r.cfg.SQLitePath)
	}

	if r.cfg.ReportPath != "" {
		if err := WriteReport(r.cfg.ReportPath, rows, stats); err != nil {
			return err
		}
		r.log.Info().Str("path", r.cfg.ReportPath).Msg("validation report written")
	}

	fmt.Println(Report(rows, stats))
	r.log.Info().
		Dur("elapsed", time.Since(started).Round(time.Millisecond)).
		Int("rows", len(rows)).
		Msg("population run complete")

	return nil
}

// OutputTable shapes normalized rows into the Poblacion output table,
// one column per projection year. Null year values become empty cells.
func OutputTable(rows []Row) export.Table {
	columns := []string{"ubigeo", "nombre", "nivel", "cod_departamento", "cod_provincia", "departamento", "provincia"}
	types := []string{"TEXT", "TEXT", "TEXT", "TEXT", "TEXT", "TEXT", "TEXT"}
	for _, year := range populationYears {
		columns = append(columns, "poblacion_"+year)
		types = append(types, "INTEGER")
	}

	t := export.Table{
		Name:    "Poblacion",
		Columns: columns,
		Types:   types,
		Indexes: []string{"ubigeo"},
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		row := []string{r.Code, r.Name, r.Level, r.DepartmentCode, r.ProvinceCode, r.Department, r.Province}
		for j := range populationYears {
			if v := r.population(j); v != nil {
				row = append(row, strconv.Itoa(*v))
			} else {
				row = append(row, "")
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
