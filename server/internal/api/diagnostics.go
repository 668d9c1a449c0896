package api

import (
	"fmt"
	"strings"

	"github.com/buildhealth/buildhealth/pkg/summary"
)

// DiagnosticHint is one human-readable insight about a build's health.
// The UI displays these as chips on the build card; clicking one shows
// Detail, written like an assistant explaining the problem in plain
// English.
type DiagnosticHint struct {
	// Key is a stable machine-readable identifier (used for dedup/ordering).
	Key string `json:"key"`
	// Level is "ok" | "info" | "warning" | "critical"
	Level string `json:"level"`
	// Title is a short label shown on the chip.
	Title string `json:"title"`
	// Detail is the full explanation shown on click/hover.
	Detail string `json:"detail"`
	// Value is an optional numeric value associated with this hint.
	Value *float64 `json:"value,omitempty"`
}

// computeDiagnostics derives human-readable hints from a build summary.
// Hints are ordered: failures first, then flakiness, then duration notes.
func computeDiagnostics(p summary.Payload) []DiagnosticHint {
	var hints []DiagnosticHint

	if n := len(p.CurrentFailures); n > 0 {
		v := float64(n)
		level := "warning"
		if p.Summary.Status == "Critical" {
			level = "critical"
		}
		names := make([]string, 0, n)
		for _, f := range p.CurrentFailures {
			names = append(names, f.Test)
		}
		shown := names
		if len(shown) > 3 {
			shown = shown[:3]
		}
		detail := fmt.Sprintf(
			"The latest run has %d failing test(s): %s. Each failure costs the "+
				"build 20 points, so fixing these is the fastest way to recover the "+
				"score. Start with the failure messages on this card; they are taken "+
				"straight from the test reports.",
			n, strings.Join(shown, ", "),
		)
		hints = append(hints, DiagnosticHint{
			Key:    "failing_tests",
			Level:  level,
			Title:  fmt.Sprintf("%d failing", n),
			Detail: detail,
			Value:  &v,
		})
	}

	if n := len(p.FlakyTests); n > 0 {
		v := float64(n)
		shown := p.FlakyTests
		if len(shown) > 3 {
			shown = shown[:3]
		}
		detail := fmt.Sprintf(
			"%d test(s) failed earlier in this build and then passed on a later "+
				"run: %s. They pass now, but flaky tests erode trust in the suite "+
				"and each one costs 10 points. Look for shared state, timing "+
				"assumptions, or external dependencies in these tests.",
			n, strings.Join(shown, ", "),
		)
		hints = append(hints, DiagnosticHint{
			Key:    "flaky_tests",
			Level:  "warning",
			Title:  fmt.Sprintf("%d flaky", n),
			Detail: detail,
			Value:  &v,
		})
	}

	if p.Summary.TotalDuration > 600 {
		v := p.Summary.TotalDuration
		hints = append(hints, DiagnosticHint{
			Key:   "slow_suite",
			Level: "info",
			Title: "Slow suite",
			Detail: fmt.Sprintf(
				"The latest run took %.0f seconds of test time. Long suites slow "+
					"down every merge and make developers skip running tests locally. "+
					"Consider splitting the suite or parallelizing the slowest tests.",
				v,
			),
			Value: &v,
		})
	}

	if len(hints) == 0 {
		score := float64(p.Summary.Score)
		hints = append(hints, DiagnosticHint{
			Key:   "healthy",
			Level: "ok",
			Title: "All clear",
			Detail: fmt.Sprintf(
				"This build is healthy with a score of %d/100. No failing tests "+
					"and no flakiness detected across the analyzed runs.",
				p.Summary.Score,
			),
			Value: &score,
		})
	}

	return hints
}
