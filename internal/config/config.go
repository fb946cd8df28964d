package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "iplreport/internal/errors"
)

// EnvPrefix namespaces every environment override, e.g. IPLREPORT_INPUT_PRIMARY
const EnvPrefix = "IPLREPORT"

// Config represents the complete report generator configuration
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	Analysis  AnalysisConfig  `yaml:"analysis"`
	Export    ExportConfig    `yaml:"export"`
	Logging   LoggingConfig   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// InputConfig names the delivery log and its single fallback location
type InputConfig struct {
	Primary  string `yaml:"primary" split_words:"true" validate:"required"`
	Fallback string `yaml:"fallback" split_words:"true"`
}

// OutputConfig controls where the report document is written
type OutputConfig struct {
	Path   string `yaml:"path" split_words:"true" validate:"required"`
	Verify bool   `yaml:"verify" split_words:"true"`
}

// AnalysisConfig holds the aggregation parameters
type AnalysisConfig struct {
	FeaturedPlayer     string `yaml:"featured_player" split_words:"true" validate:"required"`
	TopScorers         int    `yaml:"top_scorers" split_words:"true" validate:"min=1"`
	TopBoundaryHitters int    `yaml:"top_boundary_hitters" split_words:"true" validate:"min=1"`
	TopDeathHitters    int    `yaml:"top_death_hitters" split_words:"true" validate:"min=1"`
	DeathOversAfter    int    `yaml:"death_overs_after" split_words:"true" validate:"min=0"`
	TopInnings         int    `yaml:"top_innings" split_words:"true" validate:"min=1"`
	StrikeRateMinRuns  int    `yaml:"strike_rate_min_runs" split_words:"true" validate:"min=0"`
	TopStrikeRates     int    `yaml:"top_strike_rates" split_words:"true" validate:"min=1"`
	TeamBuckets        int    `yaml:"team_buckets" split_words:"true" validate:"min=1"`
}

// ExportConfig enables the optional summary table exports
type ExportConfig struct {
	WorkbookPath string `yaml:"workbook_path" split_words:"true"`
	CSVDir       string `yaml:"csv_dir" split_words:"true"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" split_words:"true" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" split_words:"true" validate:"oneof=json text"`
	Output   string `yaml:"output" split_words:"true" validate:"oneof=stderr stdout file both"`
	FilePath string `yaml:"file_path" split_words:"true" validate:"required_if=Output file,required_if=Output both"`
}

// TelemetryConfig contains tracing and metrics configuration
type TelemetryConfig struct {
	Environment   string `yaml:"environment" split_words:"true"`
	TraceExporter string `yaml:"trace_exporter" split_words:"true" validate:"oneof=none stdout"`
	MetricsFile   string `yaml:"metrics_file" split_words:"true"`
}

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Primary:  "deliveries.csv",
			Fallback: "content/deliveries.csv",
		},
		Output: OutputConfig{
			Path:   "report.pdf",
			Verify: true,
		},
		Analysis: AnalysisConfig{
			FeaturedPlayer:     "V Kohli",
			TopScorers:         10,
			TopBoundaryHitters: 5,
			TopDeathHitters:    5,
			DeathOversAfter:    15,
			TopInnings:         5,
			StrikeRateMinRuns:  500,
			TopStrikeRates:     10,
			TeamBuckets:        6,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "stderr",
			FilePath: "logs/ipl-report.log",
		},
		Telemetry: TelemetryConfig{
			Environment:   "development",
			TraceExporter: "none",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// IPLREPORT_* environment variables, in increasing order of precedence.
// An empty path searches the default config file locations.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = getConfigFilePath()
	}
	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err).
				WithContext("path", path)
		}
	}

	// Env vars are only applied when set, so file values survive
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile overlays YAML values onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks the configuration against its struct tags
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return apperrors.NewConfigError("config validation failed", err)
	}
	return nil
}

// InputCandidates returns the input paths in the order they are tried
func (c *Config) InputCandidates() []string {
	candidates := []string{c.Input.Primary}
	if c.Input.Fallback != "" && c.Input.Fallback != c.Input.Primary {
		candidates = append(candidates, c.Input.Fallback)
	}
	return candidates
}

// String renders a one-line description of the run configuration for logs
func (c *Config) String() string {
	return fmt.Sprintf("input=%s fallback=%s output=%s player=%q",
		c.Input.Primary, c.Input.Fallback, c.Output.Path, c.Analysis.FeaturedPlayer)
}

// getConfigFilePath returns the first config file found in the common locations
func getConfigFilePath() string {
	locations := []string{
		"report.yaml",
		"configs/report.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}
