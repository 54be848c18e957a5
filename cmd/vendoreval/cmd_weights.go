package main

import (
	"fmt"
	"strings"

	"github.com/GondaliaKaran/openclaw-buildathon/internal/models"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/weights"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

func newWeightsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "weights <request.yaml>",
		Short: "Show the initial criteria weights for a request",
		Long: `Show the criteria weights an evaluation of the request would start from.

Weights depend on the request context: compliance requirements pin the
compliance criterion, and priorities or domain can boost related criteria.
Research discoveries adjust these weights further during evaluation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := models.LoadEvaluationRequest(args[0])
			if err != nil {
				return fmt.Errorf("failed to load request: %w", err)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), formatWeights(weights.Initialize(req.Context), req.Context))
			return err
		},
	}
}

const weightsNameWidth = 26

func formatWeights(table *weights.Table, ctx models.EvaluationContext) string {
	var sb strings.Builder

	if summary := ctx.Summary(); summary != "" {
		sb.WriteString(summary + "\n\n")
	}
	sb.WriteString(runewidth.FillRight("Criterion", weightsNameWidth) + "  Weight\n")
	sb.WriteString(strings.Repeat("─", weightsNameWidth+8) + "\n")
	for _, c := range table.All() {
		fmt.Fprintf(&sb, "%s  %5.1f%%\n", runewidth.FillRight(c.Name, weightsNameWidth), c.CurrentWeight)
	}
	sb.WriteString(strings.Repeat("─", weightsNameWidth+8) + "\n")
	fmt.Fprintf(&sb, "%s  %5.1f%%\n", runewidth.FillRight("Total", weightsNameWidth), table.Sum())
	return sb.String()
}
