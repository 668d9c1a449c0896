package health

import (
	"github.com/buildhealth/buildhealth/analyzer/internal/junit"
)

// Run accumulates test outcomes across an ordered sequence of report
// batches and answers the questions the summary needs: which tests are
// flaky, which are currently failing, and how long the latest batch took.
//
// A Run is a per-invocation value, not a process singleton; callers create
// one per analysis cycle. It is not safe for concurrent use.
type Run struct {
	penalties Penalties

	// history holds one appended status per batch that mentioned the test.
	history map[string][]junit.Status

	// order records test names in first-seen order so that every derived
	// list is deterministic regardless of map iteration.
	order []string

	// latest is the most recent outcome per test from the newest batch.
	latest      map[string]junit.TestOutcome
	latestOrder []string

	totalDuration float64
}

// NewRun returns an empty aggregation context using the given penalties.
func NewRun(p Penalties) *Run {
	return &Run{
		penalties: p,
		history:   make(map[string][]junit.Status),
		latest:    make(map[string]junit.TestOutcome),
	}
}

// Add folds one report batch into the run. Within a batch a repeated test
// name keeps only its last occurrence (the JUnit retry convention), so at
// most one status per test is appended to its history.
//
// When latest is true the batch replaces the current-failure snapshot and
// its durations become the run's total duration.
func (r *Run) Add(batch []junit.TestOutcome, latest bool) {
	// Last occurrence wins within the batch.
	resolved := make(map[string]junit.TestOutcome)
	var batchOrder []string
	for _, o := range batch {
		if _, ok := resolved[o.Name]; !ok {
			batchOrder = append(batchOrder, o.Name)
		}
		resolved[o.Name] = o
	}

	for _, name := range batchOrder {
		if _, ok := r.history[name]; !ok {
			r.order = append(r.order, name)
		}
		r.history[name] = append(r.history[name], resolved[name].Status)
	}

	if latest {
		r.latest = resolved
		r.latestOrder = batchOrder
		r.totalDuration = 0
		for _, name := range batchOrder {
			r.totalDuration += resolved[name].Duration
		}
	}
}

// FlakyTests returns the names of tests whose history ends in PASS but
// contains at least one earlier FAIL, in first-seen order.
func (r *Run) FlakyTests() []string {
	flaky := []string{}
	for _, name := range r.order {
		if isFlaky(r.history[name]) {
			flaky = append(flaky, name)
		}
	}
	return flaky
}

// isFlaky reports whether a status history shows recovery after failure:
// at least two entries, a final PASS, and a FAIL somewhere before it.
func isFlaky(history []junit.Status) bool {
	if len(history) < 2 {
		return false
	}
	if history[len(history)-1] != junit.StatusPass {
		return false
	}
	for _, s := range history[:len(history)-1] {
		if s == junit.StatusFail {
			return true
		}
	}
	return false
}

// CurrentFailures returns the failing outcomes of the latest batch in the
// order the batch first mentioned them.
func (r *Run) CurrentFailures() []junit.TestOutcome {
	failures := []junit.TestOutcome{}
	for _, name := range r.latestOrder {
		if o := r.latest[name]; o.Status == junit.StatusFail {
			failures = append(failures, o)
		}
	}
	return failures
}

// TotalDuration is the summed duration of the latest batch in seconds.
func (r *Run) TotalDuration() float64 {
	return r.totalDuration
}
