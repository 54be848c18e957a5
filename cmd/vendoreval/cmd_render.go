package main

import (
	"fmt"
	"os"

	"github.com/GondaliaKaran/openclaw-buildathon/internal/reporting"
	"github.com/spf13/cobra"
)

func newRenderCommand() *cobra.Command {
	var (
		format     string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "render <report.json>",
		Short: "Re-render a saved JSON report",
		Long: `Re-render a report saved with "evaluate --format json" in another format.

No research is repeated; the saved scores, weights and recommendation are
rendered as they are.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := reporting.ParseFormat(format)
			if err != nil {
				return err
			}

			in, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open report: %w", err)
			}
			defer in.Close() //nolint:errcheck

			rec, err := reporting.ReadJSON(in)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			return writeReport(cmd, rec, f, outputPath)
		},
	}

	cmd.Flags().StringVar(&format, "format", string(reporting.MarkdownFormat), "Output format: markdown, json, html, summary")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the report to a file instead of stdout")

	return cmd
}
