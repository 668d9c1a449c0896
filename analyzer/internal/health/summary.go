package health

import (
	"math"
	"strings"

	"github.com/buildhealth/buildhealth/pkg/summary"
)

// maxMessageLen is the longest error message the payload carries. Longer
// messages keep their first 97 characters plus a "..." marker, so the
// truncated form is exactly maxMessageLen characters.
const maxMessageLen = 100

// Summarize builds the publishable payload from the run's current state.
func (r *Run) Summarize() summary.Payload {
	flaky := r.FlakyTests()
	failures := r.CurrentFailures()

	out := Compute(Input{
		FailureCount: len(failures),
		FlakyCount:   len(flaky),
		Penalties:    r.penalties,
	})

	p := summary.New()
	p.Summary = summary.Overview{
		Score:         out.Score,
		Status:        out.Status,
		TotalDuration: round2(r.totalDuration),
	}
	p.FlakyTests = flaky
	for _, f := range failures {
		p.CurrentFailures = append(p.CurrentFailures, summary.Failure{
			Test:  f.Name,
			Error: cleanMessage(f.Message),
		})
	}
	return p
}

// cleanMessage collapses all whitespace runs (including newlines) to single
// spaces, trims the ends, and truncates the result to maxMessageLen.
// Truncation counts characters, not bytes, so multibyte assertion output is
// never cut mid-rune.
func cleanMessage(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > maxMessageLen {
		s = string(r[:maxMessageLen-3]) + "..."
	}
	return s
}

// round2 rounds to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
