// Package projectconfig provides the ProjectConfig struct and loader for
// .vendoreval.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/GondaliaKaran/openclaw-buildathon/internal/cache"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/discovery"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/hooks"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/oracle"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/recommend"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/research"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/scoring"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/utils"
	"github.com/GondaliaKaran/openclaw-buildathon/internal/weights"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up by Load.
const FileName = ".vendoreval.yaml"

// Engines understood by the evaluate command.
const (
	EngineCopilot = "copilot-sdk"
	EngineMock    = "mock"
)

// Default values for project configuration. New() references them and no
// other code should duplicate them.
const (
	DefaultEngine  = EngineCopilot
	DefaultModel   = "claude-sonnet-4.6"
	DefaultTimeout = 120 // seconds per evidence query
	DefaultWorkers = research.DefaultWorkers

	DefaultMinWeight          = weights.DefaultMinWeight
	DefaultMaxWeight          = weights.DefaultMaxWeight
	DefaultPriorityMultiplier = weights.DefaultPriorityMultiplier

	DefaultMaxCandidates = research.DefaultMaxCandidates

	DefaultPersonaFile      = "SOUL.md"
	DefaultNarrativeTimeout = 120 // seconds

	DefaultCacheDir = ".vendoreval-cache"

	DefaultLogLevel = "info"
)

// WeightingConfig holds weight adjustment settings.
type WeightingConfig struct {
	Dynamic            *bool   `yaml:"dynamic,omitempty" mapstructure:"dynamic"`
	MinWeight          float64 `yaml:"min_weight,omitempty" mapstructure:"min_weight"`
	MaxWeight          float64 `yaml:"max_weight,omitempty" mapstructure:"max_weight"`
	PriorityMultiplier float64 `yaml:"priority_multiplier,omitempty" mapstructure:"priority_multiplier"`
}

// ResearchConfig holds research fan-out settings.
type ResearchConfig struct {
	HiddenRiskDetection *bool `yaml:"hidden_risk_detection,omitempty" mapstructure:"hidden_risk_detection"`
	MaxCandidates       int   `yaml:"max_candidates,omitempty" mapstructure:"max_candidates"`
}

// NarrativeConfig holds narrative oracle settings.
type NarrativeConfig struct {
	PersonaFile string `yaml:"persona_file,omitempty" mapstructure:"persona_file"`
	Timeout     int    `yaml:"timeout,omitempty" mapstructure:"timeout"`
}

// KeywordsConfig overrides the keyword lists used by scoring and discovery
// extraction. Empty lists keep the built-in defaults.
type KeywordsConfig struct {
	Positive   []string `yaml:"positive,omitempty" mapstructure:"positive"`
	Negative   []string `yaml:"negative,omitempty" mapstructure:"negative"`
	Uptime     []string `yaml:"uptime,omitempty" mapstructure:"uptime"`
	Pricing    []string `yaml:"pricing,omitempty" mapstructure:"pricing"`
	Compliance []string `yaml:"compliance,omitempty" mapstructure:"compliance"`
}

// CacheConfig holds evidence cache settings.
type CacheConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty" mapstructure:"enabled"`
	Dir     string `yaml:"dir,omitempty" mapstructure:"dir"`
}

// LoggingConfig holds log settings.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty" mapstructure:"level"`
}

// ProjectConfig is the top-level configuration loaded from .vendoreval.yaml.
type ProjectConfig struct {
	Engine  string `yaml:"engine,omitempty" mapstructure:"engine"`
	Model   string `yaml:"model,omitempty" mapstructure:"model"`
	Timeout int    `yaml:"timeout,omitempty" mapstructure:"timeout"`
	Workers int    `yaml:"workers,omitempty" mapstructure:"workers"`

	Weighting WeightingConfig   `yaml:"weighting,omitempty" mapstructure:"weighting"`
	Research  ResearchConfig    `yaml:"research,omitempty" mapstructure:"research"`
	Narrative NarrativeConfig   `yaml:"narrative,omitempty" mapstructure:"narrative"`
	Keywords  KeywordsConfig    `yaml:"keywords,omitempty" mapstructure:"keywords"`
	Cache     CacheConfig       `yaml:"cache,omitempty" mapstructure:"cache"`
	Logging   LoggingConfig     `yaml:"logging,omitempty" mapstructure:"logging"`
	Hooks     hooks.HooksConfig `yaml:"hooks,omitempty" mapstructure:"hooks"`

	// TranscriptDir, when set, receives a JSON transcript of every oracle
	// exchange of each evaluation.
	TranscriptDir string `yaml:"transcript_dir,omitempty" mapstructure:"transcript_dir"`

	// Dir is the directory relative paths resolve against: where the config
	// file was found, or the start directory when there is none.
	Dir string `yaml:"-" mapstructure:"-"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Engine:  DefaultEngine,
		Model:   DefaultModel,
		Timeout: DefaultTimeout,
		Workers: DefaultWorkers,
		Weighting: WeightingConfig{
			Dynamic:            utils.Ptr(true),
			MinWeight:          DefaultMinWeight,
			MaxWeight:          DefaultMaxWeight,
			PriorityMultiplier: DefaultPriorityMultiplier,
		},
		Research: ResearchConfig{
			HiddenRiskDetection: utils.Ptr(true),
			MaxCandidates:       DefaultMaxCandidates,
		},
		Narrative: NarrativeConfig{
			PersonaFile: DefaultPersonaFile,
			Timeout:     DefaultNarrativeTimeout,
		},
		Cache: CacheConfig{
			Enabled: utils.Ptr(false),
			Dir:     DefaultCacheDir,
		},
		Logging: LoggingConfig{
			Level: DefaultLogLevel,
		},
	}
}

// Load finds .vendoreval.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults. Environment
// overrides are applied last, after loading a .env file from the config
// directory if one exists.
// If no config file is found, returns defaults (plus environment) with a nil
// error. Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", startDir, err)
	}
	cfg.Dir = absStart

	path, data, err := findConfigFile(absStart)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// no file found → defaults
	case err != nil:
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	default:
		var fileCfg ProjectConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		mergeConfig(cfg, &fileCfg)
		cfg.Dir = filepath.Dir(path)
	}

	if err := loadDotEnv(cfg.Dir); err != nil {
		return nil, err
	}

	envCfg, err := envOverrides()
	if err != nil {
		return nil, err
	}
	mergeConfig(cfg, envCfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile walks up from dir looking for .vendoreval.yaml (max 10
// levels). Returns os.ErrNotExist if no config file is found.
func findConfigFile(dir string) (string, []byte, error) {
	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return p, data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return "", nil, os.ErrNotExist
}

// loadDotEnv loads dir/.env into the process environment. Variables that
// are already set win over the file.
func loadDotEnv(dir string) error {
	p := filepath.Join(dir, ".env")
	if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(p); err != nil {
		return fmt.Errorf("loading %s: %w", p, err)
	}
	return nil
}

// envBindings maps config keys to environment variables, highest precedence
// first. The unprefixed names are accepted for compatibility.
var envBindings = [][]string{
	{"engine", "VENDOREVAL_ENGINE"},
	{"model", "VENDOREVAL_MODEL"},
	{"timeout", "VENDOREVAL_TIMEOUT"},
	{"workers", "VENDOREVAL_WORKERS"},
	{"weighting.dynamic", "VENDOREVAL_WEIGHTING_DYNAMIC", "ENABLE_DYNAMIC_WEIGHTING"},
	{"weighting.min_weight", "VENDOREVAL_WEIGHTING_MIN_WEIGHT"},
	{"weighting.max_weight", "VENDOREVAL_WEIGHTING_MAX_WEIGHT"},
	{"weighting.priority_multiplier", "VENDOREVAL_WEIGHTING_PRIORITY_MULTIPLIER"},
	{"research.hidden_risk_detection", "VENDOREVAL_RESEARCH_HIDDEN_RISK_DETECTION", "ENABLE_HIDDEN_RISK_DETECTION"},
	{"research.max_candidates", "VENDOREVAL_RESEARCH_MAX_CANDIDATES", "MAX_CANDIDATES"},
	{"narrative.persona_file", "VENDOREVAL_NARRATIVE_PERSONA_FILE"},
	{"narrative.timeout", "VENDOREVAL_NARRATIVE_TIMEOUT"},
	{"keywords.positive", "VENDOREVAL_KEYWORDS_POSITIVE"},
	{"keywords.negative", "VENDOREVAL_KEYWORDS_NEGATIVE"},
	{"keywords.uptime", "VENDOREVAL_KEYWORDS_UPTIME"},
	{"keywords.pricing", "VENDOREVAL_KEYWORDS_PRICING"},
	{"keywords.compliance", "VENDOREVAL_KEYWORDS_COMPLIANCE"},
	{"cache.enabled", "VENDOREVAL_CACHE_ENABLED"},
	{"cache.dir", "VENDOREVAL_CACHE_DIR"},
	{"logging.level", "VENDOREVAL_LOGGING_LEVEL", "LOG_LEVEL"},
	{"transcript_dir", "VENDOREVAL_TRANSCRIPT_DIR"},
}

// envOverrides reads the bound environment variables into a sparse
// ProjectConfig; unset variables leave their fields zero.
func envOverrides() (*ProjectConfig, error) {
	v := viper.New()
	for _, binding := range envBindings {
		if err := v.BindEnv(binding...); err != nil {
			return nil, fmt.Errorf("binding %s: %w", binding[0], err)
		}
	}

	var envCfg ProjectConfig
	if err := v.Unmarshal(&envCfg); err != nil {
		return nil, fmt.Errorf("reading environment overrides: %w", err)
	}
	return &envCfg, nil
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	if src.Engine != "" {
		dst.Engine = src.Engine
	}
	if src.Model != "" {
		dst.Model = src.Model
	}
	if src.Timeout != 0 {
		dst.Timeout = src.Timeout
	}
	if src.Workers != 0 {
		dst.Workers = src.Workers
	}

	// Weighting
	if src.Weighting.Dynamic != nil {
		dst.Weighting.Dynamic = src.Weighting.Dynamic
	}
	if src.Weighting.MinWeight != 0 {
		dst.Weighting.MinWeight = src.Weighting.MinWeight
	}
	if src.Weighting.MaxWeight != 0 {
		dst.Weighting.MaxWeight = src.Weighting.MaxWeight
	}
	if src.Weighting.PriorityMultiplier != 0 {
		dst.Weighting.PriorityMultiplier = src.Weighting.PriorityMultiplier
	}

	// Research
	if src.Research.HiddenRiskDetection != nil {
		dst.Research.HiddenRiskDetection = src.Research.HiddenRiskDetection
	}
	if src.Research.MaxCandidates != 0 {
		dst.Research.MaxCandidates = src.Research.MaxCandidates
	}

	// Narrative
	if src.Narrative.PersonaFile != "" {
		dst.Narrative.PersonaFile = src.Narrative.PersonaFile
	}
	if src.Narrative.Timeout != 0 {
		dst.Narrative.Timeout = src.Narrative.Timeout
	}

	// Keywords
	if len(src.Keywords.Positive) > 0 {
		dst.Keywords.Positive = src.Keywords.Positive
	}
	if len(src.Keywords.Negative) > 0 {
		dst.Keywords.Negative = src.Keywords.Negative
	}
	if len(src.Keywords.Uptime) > 0 {
		dst.Keywords.Uptime = src.Keywords.Uptime
	}
	if len(src.Keywords.Pricing) > 0 {
		dst.Keywords.Pricing = src.Keywords.Pricing
	}
	if len(src.Keywords.Compliance) > 0 {
		dst.Keywords.Compliance = src.Keywords.Compliance
	}

	// Cache
	if src.Cache.Enabled != nil {
		dst.Cache.Enabled = src.Cache.Enabled
	}
	if src.Cache.Dir != "" {
		dst.Cache.Dir = src.Cache.Dir
	}

	// Logging
	if src.Logging.Level != "" {
		dst.Logging.Level = src.Logging.Level
	}

	// Hooks replace per lifecycle point
	if len(src.Hooks.BeforeEvaluate) > 0 {
		dst.Hooks.BeforeEvaluate = src.Hooks.BeforeEvaluate
	}
	if len(src.Hooks.AfterEvaluate) > 0 {
		dst.Hooks.AfterEvaluate = src.Hooks.AfterEvaluate
	}
	if src.TranscriptDir != "" {
		dst.TranscriptDir = src.TranscriptDir
	}
}

// Validate reports settings that cannot produce a meaningful evaluation.
func (c *ProjectConfig) Validate() error {
	var errs []error
	if !slices.Contains([]string{EngineCopilot, EngineMock}, c.Engine) {
		errs = append(errs, fmt.Errorf("engine %q: must be %s or %s", c.Engine, EngineCopilot, EngineMock))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	if c.Timeout < 1 {
		errs = append(errs, fmt.Errorf("timeout must be at least 1 second, got %d", c.Timeout))
	}
	if c.Weighting.MinWeight < 0 || c.Weighting.MinWeight > c.Weighting.MaxWeight || c.Weighting.MaxWeight > weights.Total {
		errs = append(errs, fmt.Errorf("weighting bounds [%g, %g] must satisfy 0 <= min <= max <= %g",
			c.Weighting.MinWeight, c.Weighting.MaxWeight, float64(weights.Total)))
	}
	if c.Weighting.PriorityMultiplier < 1 {
		errs = append(errs, fmt.Errorf("weighting.priority_multiplier must be at least 1, got %g", c.Weighting.PriorityMultiplier))
	}
	if c.Research.MaxCandidates < 1 {
		errs = append(errs, fmt.Errorf("research.max_candidates must be at least 1, got %d", c.Research.MaxCandidates))
	}
	if _, err := utils.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// QueryTimeout is the per-evidence-query timeout.
func (c *ProjectConfig) QueryTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// NarrativeTimeout bounds the single narrative oracle call.
func (c *ProjectConfig) NarrativeTimeout() time.Duration {
	return time.Duration(c.Narrative.Timeout) * time.Second
}

// CacheDir returns the resolved cache directory.
func (c *ProjectConfig) CacheDir() string {
	return utils.ResolvePath(c.Cache.Dir, c.Dir)
}

// TranscriptPath returns the resolved transcript directory, or "" when
// transcripts are off.
func (c *ProjectConfig) TranscriptPath() string {
	return utils.ResolvePath(c.TranscriptDir, c.Dir)
}

// HookRunner returns a hook runner whose hooks run in the config directory
// unless they name their own.
func (c *ProjectConfig) HookRunner() *hooks.Runner {
	return &hooks.Runner{Dir: c.Dir}
}

// Persona reads the persona file. A missing or unreadable file yields the
// built-in persona.
func (c *ProjectConfig) Persona() string {
	p := utils.ResolvePath(c.Narrative.PersonaFile, c.Dir)
	if p == "" {
		return oracle.DefaultPersona
	}
	data, err := os.ReadFile(p)
	if err != nil || len(data) == 0 {
		return oracle.DefaultPersona
	}
	return string(data)
}

// AdjusterOptions translates the weighting section.
func (c *ProjectConfig) AdjusterOptions() []weights.AdjusterOption {
	return []weights.AdjusterOption{
		weights.WithDynamic(c.Weighting.Dynamic == nil || *c.Weighting.Dynamic),
		weights.WithBounds(c.Weighting.MinWeight, c.Weighting.MaxWeight),
		weights.WithPriorityMultiplier(c.Weighting.PriorityMultiplier),
	}
}

// ResearchOptions translates the research section and worker count.
func (c *ProjectConfig) ResearchOptions() []research.Option {
	return []research.Option{
		research.WithWorkers(c.Workers),
		research.WithMaxCandidates(c.Research.MaxCandidates),
		research.WithHiddenRiskDetection(c.Research.HiddenRiskDetection == nil || *c.Research.HiddenRiskDetection),
	}
}

// ScoringKeywords returns the sentiment keyword overrides.
func (c *ProjectConfig) ScoringKeywords() scoring.Keywords {
	return scoring.Keywords{Positive: c.Keywords.Positive, Negative: c.Keywords.Negative}
}

// DiscoveryKeywords returns the discovery keyword overrides.
func (c *ProjectConfig) DiscoveryKeywords() discovery.Keywords {
	return discovery.Keywords{Uptime: c.Keywords.Uptime, Pricing: c.Keywords.Pricing, Compliance: c.Keywords.Compliance}
}

// EngineOptions returns the narrative settings for the recommendation engine.
func (c *ProjectConfig) EngineOptions() []recommend.EngineOption {
	return []recommend.EngineOption{
		recommend.WithPersona(c.Persona()),
		recommend.WithNarrativeTimeout(c.NarrativeTimeout()),
	}
}

// NewCache returns the evidence cache when caching is enabled, nil otherwise.
func (c *ProjectConfig) NewCache() *cache.Cache {
	if c.Cache.Enabled == nil || !*c.Cache.Enabled {
		return nil
	}
	return cache.New(c.CacheDir())
}
