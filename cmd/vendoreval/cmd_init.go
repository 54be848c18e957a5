package main

import (
	"fmt"
	"os"

	"github.com/GondaliaKaran/openclaw-buildathon/internal/wizard"
	"github.com/spf13/cobra"
)

const defaultRequestFile = "request.yaml"

func newInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Create a request file interactively",
		Long: `Create an evaluation request file by answering a few questions.

The file defaults to request.yaml in the current directory. Existing files
are never overwritten unless --force is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultRequestFile
			if len(args) > 0 {
				path = args[0]
			}
			return initCommandE(cmd, path, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}

func initCommandE(cmd *cobra.Command, path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	req, err := wizard.RunRequestWizard(cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}

	content, err := wizard.GenerateRequestYAML(req)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s with %d candidate(s)\n", path, len(req.Candidates)) //nolint:errcheck
	fmt.Fprintf(cmd.OutOrStdout(), "Next: vendoreval evaluate %s\n", path)                         //nolint:errcheck
	return nil
}
