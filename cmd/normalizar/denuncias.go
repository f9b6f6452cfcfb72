package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/denuncias-dw/internal/etl"
	"github.com/denuncias-dw/internal/logging"
)

// createDenunciasCmd creates the complaints normalization subcommand
func createDenunciasCmd() *cobra.Command {
	var configPath, input, output, sqlitePath, report string
	var bom, debugFlag bool

	cmd := &cobra.Command{
		Use:   "denuncias",
		Short: "Normalize yearly complaint extracts into the star schema",
		Long:  `Reads every year-named CSV in the input directory in sorted order, deduplicates dimension keys across files and writes the dimension and fact tables`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := loadRunConfig(configPath, input, output, sqlitePath, report, bom, debugFlag)
			if err != nil {
				log.Fatalf("Invalid configuration: %v", err)
			}

			logger := logging.NewComponentLogger("etl", version)
			if cfg.Debug {
				logging.SetLevel("debug")
			}

			pipeline := etl.NewPipeline(cfg, logger.Logger())
			if err := pipeline.Run(); err != nil {
				log.Fatalf("Normalization run failed: %v", err)
			}
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "YAML configuration file")
	cmd.Flags().StringVar(&input, "input", "", "Directory containing the yearly extracts")
	cmd.Flags().StringVar(&output, "output", "", "Output directory for the star-schema CSVs")
	cmd.Flags().StringVar(&sqlitePath, "sqlite", "", "Also export the tables into a SQLite database at this path")
	cmd.Flags().StringVar(&report, "report", "", "Write the JSON run record to this path")
	cmd.Flags().BoolVar(&bom, "bom", false, "Prefix output CSVs with a UTF-8 BOM")
	cmd.Flags().BoolVar(&debugFlag, "debug", false, "Enable debug output")

	return cmd
}
