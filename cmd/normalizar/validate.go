package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/denuncias-dw/internal/config"
	"github.com/denuncias-dw/internal/validation"
)

// createValidateCmd creates the pre-flight column check subcommand
func createValidateCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check which critical columns each yearly extract provides",
		Long:  `Reads only the headers of every year-named CSV and reports the columns that would be synthesized with defaults during normalization`,
		Run: func(cmd *cobra.Command, args []string) {
			dir := input
			if dir == "" {
				dir = config.Default().InputDir
			}

			reports, err := validation.ValidateInputDir(dir)
			if err != nil {
				log.Fatalf("Validation failed: %v", err)
			}
			if len(reports) == 0 {
				fmt.Printf("No year files found in %s\n", dir)
				return
			}

			fmt.Printf("\n=== Column Validation: %s ===\n", dir)
			complete := 0
			for _, r := range reports {
				marker := "✗"
				if r.Complete() {
					marker = "✓"
					complete++
				}
				fmt.Printf("%s %s\n", marker, r.String())
			}
			fmt.Printf("%d/%d files provide every critical column\n", complete, len(reports))
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Directory containing the yearly extracts")

	return cmd
}
