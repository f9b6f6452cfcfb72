package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/denuncias-dw/internal/logging"
	"github.com/denuncias-dw/internal/poblacion"
)

// createPoblacionCmd creates the population grid subcommand
func createPoblacionCmd() *cobra.Command {
	var configPath, input, output, sqlitePath, report string
	var bom, debugFlag bool

	cmd := &cobra.Command{
		Use:   "poblacion [grid.csv]",
		Short: "Normalize the population projection grid",
		Long:  `Cleans the irregular population spreadsheet export into a single region table with department and province hierarchy, and writes a validation report`,
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := loadRunConfig(configPath, "", output, sqlitePath, report, bom, debugFlag)
			if err != nil {
				log.Fatalf("Invalid configuration: %v", err)
			}

			gridPath := input
			if len(args) > 0 {
				gridPath = args[0]
			}
			if gridPath == "" {
				log.Fatalf("Population grid file required (positional argument or --input)")
			}

			logger := logging.NewComponentLogger("poblacion", version)
			if cfg.Debug {
				logging.SetLevel("debug")
			}

			runner := poblacion.NewRunner(cfg, logger.Logger())
			if err := runner.Run(gridPath); err != nil {
				log.Fatalf("Population run failed: %v", err)
			}
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "YAML configuration file")
	cmd.Flags().StringVar(&input, "input", "", "Population grid CSV file")
	cmd.Flags().StringVar(&output, "output", "", "Output directory for Poblacion.csv")
	cmd.Flags().StringVar(&sqlitePath, "sqlite", "", "Also export the table into a SQLite database at this path")
	cmd.Flags().StringVar(&report, "report", "", "Write the validation report to this path")
	cmd.Flags().BoolVar(&bom, "bom", false, "Prefix output CSVs with a UTF-8 BOM")
	cmd.Flags().BoolVar(&debugFlag, "debug", false, "Enable debug output")

	return cmd
}
