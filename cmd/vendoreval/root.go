package main

import (
	"log/slog"

	"github.com/GondaliaKaran/openclaw-buildathon/internal/projectconfig"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/utils"
	"github.com/spf13/cobra"
)

var version = "dev"

// debugLogging is set by the persistent --debug flag and wins over the
// configured log level.
var debugLogging bool

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vendoreval",
		Short: "vendoreval - adaptive vendor evaluation",
		Long: `vendoreval researches competing vendors, adjusts criteria weights based on
what the research uncovers, and recommends the best fit for your context.

Every weight change is recorded with the discovery that caused it, so the
final recommendation can be audited end to end.`,
		Version:      version,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVar(&debugLogging, "debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newEvaluateCommand())
	cmd.AddCommand(newWeightsCommand())
	cmd.AddCommand(newValidateCommand())
	cmd.AddCommand(newInitCommand())
	cmd.AddCommand(newRenderCommand())
	cmd.AddCommand(newCacheCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}

// loadConfig loads .vendoreval.yaml from the working directory upwards and
// applies its log level unless --debug was given.
func loadConfig() (*projectconfig.ProjectConfig, error) {
	cfg, err := projectconfig.Load(".")
	if err != nil {
		return nil, err
	}
	if !debugLogging {
		level, err := utils.ParseLevel(cfg.Logging.Level)
		if err != nil {
			return nil, err
		}
		slog.SetLogLoggerLevel(level)
	}
	return cfg, nil
}
