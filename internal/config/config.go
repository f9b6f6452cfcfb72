package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the settings for one pipeline run
type Config struct {
	// InputDir is the directory scanned for year-named complaint extracts
	InputDir string `yaml:"input_dir"`
	// OutputDir receives the dimension and fact CSV files
	OutputDir string `yaml:"output_dir"`
	// SQLitePath, when non-empty, enables the SQLite export sink
	SQLitePath string `yaml:"sqlite_path"`
	// BOM prefixes every output CSV with a UTF-8 byte order mark
	BOM bool `yaml:"bom"`
	// ReportPath, when non-empty, receives the run report
	ReportPath string `yaml:"report_path"`
	// SniffRows bounds how many leading grid rows are searched for the
	// population header row
	SniffRows int `yaml:"sniff_rows"`
	// Debug enables verbose diagnostics and timing output
	Debug bool `yaml:"debug"`
}

// Default returns a Config populated from environment variables
func Default() Config {
	return Config{
		InputDir:   GetEnv("DENUNCIAS_INPUT_DIR", "."),
		OutputDir:  GetEnv("DENUNCIAS_OUTPUT_DIR", "normalizados"),
		SQLitePath: GetEnv("DENUNCIAS_SQLITE", ""),
		BOM:        GetEnvBool("DENUNCIAS_BOM", false),
		ReportPath: GetEnv("DENUNCIAS_REPORT", ""),
		SniffRows:  GetEnvInt("DENUNCIAS_SNIFF_ROWS", 20),
		Debug:      GetEnvBool("DEBUG", false),
	}
}

// LoadConfig reads a YAML config file over the environment defaults
func LoadConfig(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is usable
func (c Config) Validate() error {
	if c.InputDir == "" {
		return fmt.Errorf("input directory is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	return nil
}
