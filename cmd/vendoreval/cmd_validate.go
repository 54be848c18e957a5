package main

import (
	"fmt"

	"github.com/GondaliaKaran/openclaw-buildathon/internal/validation"
	"github.com/spf13/cobra"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <request.yaml>",
		Short: "Validate a request file",
		Long: `Validate a request file against the request schema.

Reports unknown fields, unknown criteria in evidence fixtures, invalid risk
severities, and missing or duplicate candidates.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			issues, err := validation.ValidateRequestFile(path)
			if err != nil {
				return fmt.Errorf("failed to read request: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(issues) == 0 {
				fmt.Fprintf(out, "✓ %s is a valid evaluation request\n", path) //nolint:errcheck
				return nil
			}

			fmt.Fprintf(out, "✗ %s\n", path) //nolint:errcheck
			for _, issue := range issues {
				fmt.Fprintf(out, "  - %s\n", issue) //nolint:errcheck
			}
			return &ValidationError{Path: path, Issues: issues}
		},
	}
}
