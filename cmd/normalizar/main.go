package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/denuncias-dw/internal/config"
)

const version = "1.0.0"

func main() {
	config.LoadEnv()

	rootCmd := &cobra.Command{
		Use:   "normalizar",
		Short: "Denuncias star-schema normalizer",
		Long:  `Normalizes yearly criminal complaint extracts and population projections into dimension and fact tables`,
	}

	rootCmd.AddCommand(createDenunciasCmd())
	rootCmd.AddCommand(createPoblacionCmd())
	rootCmd.AddCommand(createValidateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// loadRunConfig resolves settings in precedence order: flags over the
// YAML config file over environment defaults.
func loadRunConfig(configPath, input, output, sqlitePath, report string, bom, debugFlag bool) (config.Config, error) {
	cfg := config.Default()

	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if input != "" {
		cfg.InputDir = input
	}
	if output != "" {
		cfg.OutputDir = output
	}
	if sqlitePath != "" {
		cfg.SQLitePath = sqlitePath
	}
	if report != "" {
		cfg.ReportPath = report
	}
	if bom {
		cfg.BOM = true
	}
	if debugFlag {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}
