package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/GondaliaKaran/openclaw-buildathon/internal/cache"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/dataset"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/discovery"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/evaluation"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/hooks"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/models"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/oracle"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/projectconfig"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/recommend"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/reporting"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/research"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/scoring"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/transcript"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/utils"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/weights"
	"github.com/spf13/cobra"
)

type evaluateOptions struct {
	engine           string
	model            string
	workers          int
	noDynamicWeights bool
	format           string
	outputPath       string
	enableCache      bool
	cacheDir         string
	personaFile      string
	candidatesFile   string
	transcriptDir    string
}

func newEvaluateCommand() *cobra.Command {
	opts := &evaluateOptions{}

	cmd := &cobra.Command{
		Use:   "evaluate <request.yaml>",
		Short: "Evaluate the candidates of a request",
		Long: `Evaluate the candidate vendors named in a request file.

Each candidate is researched across every criterion, discoveries adjust the
criteria weights, candidates are scored and ranked, and a recommendation is
written in the chosen format.

The mock engine answers from the evidence and narrative recorded in the
request file and needs no network access.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return evaluateCommandE(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.engine, "engine", "", "Evidence engine: copilot-sdk, mock (default from config)")
	cmd.Flags().StringVar(&opts.model, "model", "", "Model used by the copilot-sdk engine")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Number of concurrent research queries")
	cmd.Flags().BoolVar(&opts.noDynamicWeights, "no-dynamic-weights", false, "Keep the initial weights regardless of discoveries")
	cmd.Flags().StringVar(&opts.format, "format", string(reporting.MarkdownFormat), "Output format: markdown, json, html, summary")
	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&opts.enableCache, "cache", false, "Cache evidence answers between runs")
	cmd.Flags().StringVar(&opts.cacheDir, "cache-dir", "", "Evidence cache directory (default from config)")
	cmd.Flags().StringVar(&opts.personaFile, "persona", "", "Persona file for the recommendation narrative")
	cmd.Flags().StringVar(&opts.candidatesFile, "candidates", "", "CSV file of additional candidates (columns: name, website, github_url, description)")
	cmd.Flags().StringVar(&opts.transcriptDir, "transcript-dir", "", "Directory to save a JSON transcript of every oracle exchange")

	return cmd
}

func evaluateCommandE(cmd *cobra.Command, requestPath string, opts *evaluateOptions) error {
	format, err := reporting.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := opts.apply(cfg); err != nil {
		return err
	}

	req, err := loadRequest(requestPath, opts.candidatesFile)
	if err != nil {
		return fmt.Errorf("failed to load request: %w", err)
	}

	evidence, narrator, closeFn, err := newOracles(cfg, req)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeFn(); err != nil {
			slog.Warn("failed to close oracle", "error", err)
		}
	}()

	var recorder *transcript.Recorder
	if cfg.TranscriptPath() != "" {
		recorder = transcript.NewRecorder(evidence)
		evidence = recorder
	}

	runner := newRunner(cfg, evidence, narrator)

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	hookRunner := cfg.HookRunner()
	hookEnv := map[string]string{hooks.EnvRequest: requestPath}
	if err := hookRunner.Execute(ctx, hooks.BeforeEvaluate, cfg.Hooks.BeforeEvaluate, hookEnv); err != nil {
		return err
	}

	slog.Info("evaluating", "request", requestPath, "engine", cfg.Engine, "model", cfg.Model, "workers", cfg.Workers)
	startedAt := time.Now()
	stop := startProgress(cmd.ErrOrStderr(), runner)
	rec, err := runner.Run(ctx, req)
	stop()
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	if recorder != nil {
		path, err := transcript.Write(cfg.TranscriptPath(), &transcript.Transcript{
			Name:        req.Name,
			RunID:       rec.RunID,
			StartedAt:   startedAt,
			CompletedAt: time.Now(),
			Entries:     recorder.Entries(),
			Narrative:   rec.Narrative,
		})
		if err != nil {
			slog.Warn("failed to write transcript", "error", err)
		} else {
			slog.Info("transcript saved", "path", path)
		}
	}

	if err := writeReport(cmd, rec, format, opts.outputPath); err != nil {
		return err
	}

	hookEnv[hooks.EnvRunID] = rec.RunID
	hookEnv[hooks.EnvRecommended] = rec.RecommendedVendor
	hookEnv[hooks.EnvReport] = opts.outputPath
	return hookRunner.Execute(ctx, hooks.AfterEvaluate, cfg.Hooks.AfterEvaluate, hookEnv)
}

// loadRequest reads the request file and appends candidates from an optional
// CSV file before validating.
func loadRequest(path, candidatesFile string) (*models.EvaluationRequest, error) {
	if candidatesFile == "" {
		return models.LoadEvaluationRequest(path)
	}

	req, err := models.ReadEvaluationRequest(path)
	if err != nil {
		return nil, err
	}
	extra, err := dataset.LoadCandidates(candidatesFile)
	if err != nil {
		return nil, err
	}
	req.Candidates = append(req.Candidates, extra...)
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// apply layers flags that were explicitly set onto the loaded config. Paths
// given as flags are relative to the working directory, not the config file.
func (o *evaluateOptions) apply(cfg *projectconfig.ProjectConfig) error {
	if o.engine != "" {
		cfg.Engine = o.engine
	}
	if o.model != "" {
		cfg.Model = o.model
	}
	if o.workers > 0 {
		cfg.Workers = o.workers
	}
	if o.noDynamicWeights {
		cfg.Weighting.Dynamic = utils.Ptr(false)
	}
	if o.enableCache {
		cfg.Cache.Enabled = utils.Ptr(true)
	}
	for _, p := range []struct {
		flag string
		dst  *string
	}{
		{o.cacheDir, &cfg.Cache.Dir},
		{o.personaFile, &cfg.Narrative.PersonaFile},
		{o.transcriptDir, &cfg.TranscriptDir},
	} {
		if p.flag == "" {
			continue
		}
		abs, err := filepath.Abs(p.flag)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", p.flag, err)
		}
		*p.dst = abs
	}
	return cfg.Validate()
}

// newOracles builds the evidence and narrative oracles for the configured
// engine. The returned close function releases engine resources.
func newOracles(cfg *projectconfig.ProjectConfig, req *models.EvaluationRequest) (oracle.EvidenceOracle, oracle.NarrativeOracle, func() error, error) {
	var (
		evidence oracle.EvidenceOracle
		narrator oracle.NarrativeOracle
		closeFn  = func() error { return nil }
		cacheKey string
	)

	switch cfg.Engine {
	case projectconfig.EngineMock:
		evidence = oracle.NewFixtureEvidence(req.Evidence)
		narrator = oracle.StaticNarrator{Text: req.Narrative}
		cacheKey = projectconfig.EngineMock
	case projectconfig.EngineCopilot:
		c := oracle.NewCopilot(cfg.Model, &oracle.CopilotOptions{Timeout: cfg.QueryTimeout()})
		evidence, narrator, closeFn = c, c, c.Close
		cacheKey = cfg.Model
	default:
		return nil, nil, nil, fmt.Errorf("unknown engine type: %s", cfg.Engine)
	}

	if c := cfg.NewCache(); c != nil {
		slog.Info("evidence cache enabled", "dir", cfg.CacheDir())
		evidence = cache.NewCachingOracle(evidence, c, cacheKey)
	}
	return evidence, narrator, closeFn, nil
}

func newRunner(cfg *projectconfig.ProjectConfig, evidence oracle.EvidenceOracle, narrator oracle.NarrativeOracle) *evaluation.Runner {
	logger := slog.Default()

	researcher := research.New(evidence, append(cfg.ResearchOptions(), research.WithLogger(logger))...)
	engine := recommend.NewEngine(
		scoring.NewHeuristicScorer(cfg.ScoringKeywords()),
		narrator,
		append(cfg.EngineOptions(), recommend.WithLogger(logger))...,
	)

	return evaluation.NewRunner(researcher,
		evaluation.WithExtractor(discovery.NewExtractor(cfg.DiscoveryKeywords())),
		evaluation.WithAdjuster(weights.NewAdjuster(append(cfg.AdjusterOptions(), weights.WithLogger(logger))...)),
		evaluation.WithEngine(engine),
		evaluation.WithLogger(logger),
	)
}

func writeReport(cmd *cobra.Command, rec *models.Recommendation, format reporting.Format, outputPath string) error {
	if outputPath == "" {
		return reporting.Render(cmd.OutOrStdout(), rec, format)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := reporting.Render(f, rec, format); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Report saved to: %s\n", outputPath) //nolint:errcheck
	return nil
}
