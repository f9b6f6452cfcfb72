package etl

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/denuncias-dw/internal/audit"
	"github.com/denuncias-dw/internal/config"
	"github.com/denuncias-dw/internal/csvio"
	"github.com/denuncias-dw/internal/debug"
	"github.com/denuncias-dw/internal/export"
	"github.com/denuncias-dw/internal/normalize"
	"github.com/denuncias-dw/internal/star"
)

// Pipeline drives one normalization run: discover the yearly extracts,
// clean them, fold them into the global dimensional model and write
// every configured sink.
type Pipeline struct {
	cfg  config.Config
	log  zerolog.Logger
	norm *normalize.Normalizer
	star *star.Star
	run  *audit.Tracker
}

// NewPipeline creates a pipeline for cfg
func NewPipeline(cfg config.Config, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		cfg:  cfg,
		log:  log,
		norm: normalize.New(log),
		star: star.NewStar(),
		run:  audit.NewTracker(),
	}
}

// Run processes every year file in sorted name order. A file that
// cannot be read is skipped and the run continues with the remaining
// files; only sink failures abort the run.
func (p *Pipeline) Run() error {
	defer debug.DebugTiming(p.cfg.Debug, "normalization run")()

	p.log.Info().
		Str("run_id", p.run.RunID).
		Str("input", p.cfg.InputDir).
		Msg("starting normalization run")

	files, err := csvio.DiscoverYearFiles(p.cfg.InputDir)
	if err != nil {
		p.log.Warn().Err(err).Msg("input directory not readable, nothing to process")
	}
	if len(files) == 0 {
		p.log.Warn().Str("input", p.cfg.InputDir).Msg("no year files found")
	}

	for _, path := range files {
		if err := p.processFile(path); err != nil {
			name := filepath.Base(path)
			p.log.Error().Err(err).Str("file", name).Msg("file skipped")
			p.run.FileSkipped(name, err)
		}
	}

	p.run.Finish(
		len(p.star.Tables.Time),
		len(p.star.Tables.Offense),
		len(p.star.Tables.Location),
		len(p.star.Tables.CaseType),
		len(p.star.Tables.Facts),
	)

	if err := p.writeOutputs(); err != nil {
		return err
	}

	fmt.Print(p.run.Summary())
	return nil
}

// processFile reads, cleans and folds one yearly extract. The fold only
// happens after the whole file has been read, so a malformed file never
// contributes partial rows.
func (p *Pipeline) processFile(path string) error {
	name := filepath.Base(path)
	defer debug.DebugTiming(p.cfg.Debug, "processing "+name)()

	table, err := csvio.ReadTable(path)
	if err != nil {
		return err
	}

	records, report := p.norm.NormalizeTable(table)
	stats := p.star.Fold(star.BuildFile(records))

	debug.DebugOutput(p.cfg.Debug, "%s: %d rows -> %d facts (%d/%d/%d/%d new keys)",
		name, report.RowsRead, stats.Facts,
		stats.NewTime, stats.NewOffense, stats.NewLocation, stats.NewCaseType)

	p.run.AddDefaults(report.DefaultsApplied)
	p.run.FileProcessed(audit.FileStats{
		Name:           name,
		RowsRead:       report.RowsRead,
		Facts:          stats.Facts,
		NewTime:        stats.NewTime,
		NewOffense:     stats.NewOffense,
		NewLocation:    stats.NewLocation,
		NewCaseType:    stats.NewCaseType,
		MissingColumns: report.MissingColumns,
	})

	p.log.Info().
		Str("file", name).
		Int("rows", report.RowsRead).
		Int("facts", stats.Facts).
		Msg("file folded into model")

	return nil
}

// writeOutputs flushes the global model to every configured sink
func (p *Pipeline) writeOutputs() error {
	tables := export.StarTables(p.star.Tables)

	exporter := export.NewExporter(p.cfg.OutputDir, p.cfg.BOM)
	if err := exporter.WriteAll(tables); err != nil {
		return err
	}

	if p.cfg.SQLitePath != "" {
		if err := export.WriteSQLite(p.cfg.SQLitePath, tables); err != nil {
			return err
		}
		fmt.Printf("✓ Exported SQLite database to %s\n", p.cfg.SQLitePath)
	}

	if p.cfg.ReportPath != "" {
		if err := p.run.WriteJSON(p.cfg.ReportPath); err != nil {
			return err
		}
		p.log.Info().Str("path", p.cfg.ReportPath).Msg("run record written")
	}

	return nil
}
