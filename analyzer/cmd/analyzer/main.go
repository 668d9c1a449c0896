package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/buildhealth/buildhealth/analyzer/internal/config"
	"github.com/buildhealth/buildhealth/analyzer/internal/health"
	"github.com/buildhealth/buildhealth/analyzer/internal/junit"
	"github.com/buildhealth/buildhealth/analyzer/internal/publish"
	"github.com/buildhealth/buildhealth/analyzer/internal/sources"
	"github.com/buildhealth/buildhealth/pkg/summary"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	issueKey := flag.String("issue", "", "Jira issue key to publish to (overrides jira.issue)")
	watch := flag.Bool("watch", false, "keep running and re-analyze when report files change")
	printOnly := flag.Bool("print", false, "print the summary payload to stdout and skip publishing")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	// Positional args override the configured report patterns.
	patterns := cfg.Analyzer.Reports
	if flag.NArg() > 0 {
		patterns = flag.Args()
	}
	if len(patterns) == 0 {
		slog.Error("no report patterns given (set analyzer.reports or pass them as arguments)")
		os.Exit(1)
	}

	key := cfg.Analyzer.Jira.Issue
	if *issueKey != "" {
		key = *issueKey
	}

	sinks, err := buildSinks(cfg, key, *printOnly)
	if err != nil {
		slog.Error("invalid sink configuration", "err", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if !*watch {
		if err := cycle(ctx, cfg, patterns, key, sinks, *printOnly); err != nil {
			slog.Error("analysis failed", "err", err)
			os.Exit(1)
		}
		return
	}

	// Watch mode: run once up front, then again on every report change.
	// Publish failures are logged but do not stop the watcher.
	run := func() {
		if err := cycle(ctx, cfg, patterns, key, sinks, *printOnly); err != nil {
			slog.Error("analysis failed", "err", err)
		}
	}
	run()
	if err := sources.Watch(ctx, patterns, cfg.Analyzer.WatchDebounce, run); err != nil {
		slog.Error("watcher stopped", "err", err)
		os.Exit(1)
	}
	slog.Info("analyzer shutting down")
}

// buildSinks assembles the configured publishers. With -print no sinks are
// required; otherwise at least one must be configured, and the Jira sink
// needs an issue key and a resolvable token.
func buildSinks(cfg *config.Config, key string, printOnly bool) ([]publish.Publisher, error) {
	var sinks []publish.Publisher

	if j := cfg.Analyzer.Jira; j.Enabled() {
		if key == "" {
			return nil, fmt.Errorf("jira sink needs an issue key (jira.issue or -issue)")
		}
		token := j.Token()
		if token == "" {
			return nil, fmt.Errorf("environment variable %s is empty", j.TokenEnv)
		}
		sinks = append(sinks, publish.NewJira(j.Domain, j.PropertyKey, j.Email, token))
	}
	if d := cfg.Analyzer.Dashboard; d.Enabled() {
		sinks = append(sinks, publish.NewDashboard(d.Endpoint, d.Header, d.Key()))
	}

	if len(sinks) == 0 && !printOnly {
		return nil, fmt.Errorf("no sinks configured (set analyzer.jira or analyzer.dashboard, or use -print)")
	}
	return sinks, nil
}

// cycle runs one full analyze-and-publish pass.
func cycle(ctx context.Context, cfg *config.Config, patterns []string, key string, sinks []publish.Publisher, printOnly bool) error {
	payload, err := analyze(cfg, patterns)
	if err != nil {
		return err
	}

	slog.Info("build health computed",
		"score", payload.Summary.Score,
		"status", payload.Summary.Status,
		"failures", len(payload.CurrentFailures),
		"flaky", len(payload.FlakyTests),
		"total_duration", payload.Summary.TotalDuration,
	)

	if printOnly {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}

	for _, sink := range sinks {
		if err := sink.Publish(ctx, key, payload); err != nil {
			return fmt.Errorf("%s: %w", sink.Name(), err)
		}
		slog.Info("summary published", "sink", sink.Name(), "key", key)
	}
	return nil
}

// analyze expands the report patterns and folds every report into one
// summary. Reports are processed in lexicographic path order; the last one
// is the latest batch. A report that fails to parse is logged and skipped,
// it never aborts the run.
func analyze(cfg *config.Config, patterns []string) (summary.Payload, error) {
	paths, err := sources.Resolve(patterns)
	if err != nil {
		return summary.Payload{}, err
	}

	run := health.NewRun(health.Penalties{
		Failure: cfg.Analyzer.Scoring.FailurePenalty,
		Flaky:   cfg.Analyzer.Scoring.FlakyPenalty,
	})
	for i, path := range paths {
		batch, err := junit.ParseFile(path)
		if err != nil {
			slog.Warn("skipping unreadable report", "path", path, "err", err)
			batch = nil
		}
		run.Add(batch, i == len(paths)-1)
	}
	return run.Summarize(), nil
}
