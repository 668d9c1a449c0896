package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultFailurePenalty = 20
	DefaultFlakyPenalty   = 10
	DefaultPropertyKey    = "build_health_data"
	DefaultWatchDebounce  = 2 * time.Second
)

// Config is the analyzer half of config.yaml. Fields map 1:1 to
// config.example.yaml.
type Config struct {
	Analyzer AnalyzerConfig `yaml:"analyzer"`
}

// AnalyzerConfig holds all analyzer-side settings.
type AnalyzerConfig struct {
	// Reports is the list of glob patterns for JUnit XML report files,
	// analyzed in lexicographic path order.
	Reports []string `yaml:"reports"`

	// Scoring adjusts the penalty points of the health score formula.
	Scoring ScoringConfig `yaml:"scoring"`

	// Jira configures the primary publishing target. Optional; when the
	// domain is empty the Jira sink is disabled.
	Jira JiraConfig `yaml:"jira"`

	// Dashboard configures the optional dashboard server sink.
	Dashboard DashboardConfig `yaml:"dashboard"`

	// WatchDebounce is how long the watcher waits after the last report
	// change before re-running the analysis.
	WatchDebounce time.Duration `yaml:"watch_debounce"`
}

// ScoringConfig overrides the score penalties. An omitted key keeps its
// default; an explicit 0 disables that deduction entirely.
type ScoringConfig struct {
	// FailurePenalty is subtracted per currently failing test.
	FailurePenalty int `yaml:"failure_penalty"`

	// FlakyPenalty is subtracted per flaky test.
	FlakyPenalty int `yaml:"flaky_penalty"`
}

// JiraConfig describes the Jira entity-property sink.
type JiraConfig struct {
	// Domain is the Jira site host, e.g. "yourcompany.atlassian.net".
	Domain string `yaml:"domain"`

	// Issue is the issue key the summary is attached to, e.g. "CI-123".
	// May be overridden per invocation with the -issue flag.
	Issue string `yaml:"issue"`

	// PropertyKey is the entity property name the payload is stored under.
	PropertyKey string `yaml:"property_key"`

	// Email is the account email for basic auth (safe to store in config).
	Email string `yaml:"email"`

	// TokenEnv is the name of the environment variable holding the API token.
	TokenEnv string `yaml:"token_env"`
}

// Token returns the Jira API token resolved from the environment.
// Returns empty string if TokenEnv is unset or the variable is not found.
func (j JiraConfig) Token() string {
	if j.TokenEnv == "" {
		return ""
	}
	return os.Getenv(j.TokenEnv)
}

// Enabled reports whether the Jira sink is configured.
func (j JiraConfig) Enabled() bool {
	return j.Domain != ""
}

// DashboardConfig describes the dashboard server sink.
type DashboardConfig struct {
	// Endpoint is the base URL of the dashboard server, e.g.
	// "http://localhost:8080". Empty disables the sink.
	Endpoint string `yaml:"endpoint"`

	// Header is the HTTP header name the API key is sent in.
	Header string `yaml:"header"`

	// KeyEnv is the name of the environment variable holding the API key.
	KeyEnv string `yaml:"key_env"`
}

// Key returns the dashboard API key resolved from the environment.
func (d DashboardConfig) Key() string {
	if d.KeyEnv == "" {
		return ""
	}
	return os.Getenv(d.KeyEnv)
}

// Enabled reports whether the dashboard sink is configured.
func (d DashboardConfig) Enabled() bool {
	return d.Endpoint != ""
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with sensible defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Analyzer: AnalyzerConfig{
			Scoring: ScoringConfig{
				FailurePenalty: DefaultFailurePenalty,
				FlakyPenalty:   DefaultFlakyPenalty,
			},
			Jira: JiraConfig{
				PropertyKey: DefaultPropertyKey,
			},
			WatchDebounce: DefaultWatchDebounce,
		},
	}
}

// validate checks required fields and structural constraints.
func validate(cfg *Config) error {
	a := cfg.Analyzer
	if a.Scoring.FailurePenalty < 0 {
		return fmt.Errorf("analyzer.scoring.failure_penalty must not be negative")
	}
	if a.Scoring.FlakyPenalty < 0 {
		return fmt.Errorf("analyzer.scoring.flaky_penalty must not be negative")
	}
	if a.WatchDebounce <= 0 {
		return fmt.Errorf("analyzer.watch_debounce must be positive")
	}
	if a.Jira.Enabled() {
		if a.Jira.Email == "" {
			return fmt.Errorf("analyzer.jira.email is required when jira.domain is set")
		}
		if a.Jira.TokenEnv == "" {
			return fmt.Errorf("analyzer.jira.token_env is required when jira.domain is set")
		}
		if a.Jira.PropertyKey == "" {
			return fmt.Errorf("analyzer.jira.property_key must not be empty")
		}
	}
	return nil
}
