package health

// Default penalty points per offending test. Both can be overridden
// through configuration, including down to zero to ignore a category.
const (
	DefaultFailurePenalty = 20
	DefaultFlakyPenalty   = 10
)

// Status constants returned by the score calculator.
const (
	StatusStable   = "Stable"
	StatusUnstable = "Unstable"
	StatusCritical = "Critical"
)

// Thresholds that map a score to a status.
const (
	ThresholdStable   = 80
	ThresholdUnstable = 50
)

// Penalties holds the per-test deductions applied by Compute. Values are
// used exactly as given; a zero penalty means that category does not
// affect the score.
type Penalties struct {
	// Failure is subtracted once per currently failing test.
	Failure int

	// Flaky is subtracted once per flaky test.
	Flaky int
}

// DefaultPenalties returns the standard deductions.
func DefaultPenalties() Penalties {
	return Penalties{
		Failure: DefaultFailurePenalty,
		Flaky:   DefaultFlakyPenalty,
	}
}

// Input holds the counts fed into the score formula.
type Input struct {
	// FailureCount is the number of tests failing in the latest report batch.
	FailureCount int

	// FlakyCount is the number of tests classified flaky across the run.
	FlakyCount int

	// Penalties are the deductions to apply, typically DefaultPenalties()
	// or values resolved from configuration.
	Penalties Penalties
}

// Output is the result of the score calculation.
type Output struct {
	// Score is the build health score in the range 0–100.
	Score int

	// Status is one of "Stable", "Unstable", "Critical".
	Status string
}

// Compute calculates the build health score:
//
//	score = clamp(100 - failurePenalty*failures - flakyPenalty*flaky, 0, 100)
//
// A build with no failures and no flaky tests scores a perfect 100.
func Compute(in Input) Output {
	score := clampScore(100 -
		in.Penalties.Failure*in.FailureCount -
		in.Penalties.Flaky*in.FlakyCount)
	return Output{
		Score:  score,
		Status: statusFromScore(score),
	}
}

// statusFromScore maps a numeric score to a named status.
func statusFromScore(score int) string {
	switch {
	case score >= ThresholdStable:
		return StatusStable
	case score >= ThresholdUnstable:
		return StatusUnstable
	default:
		return StatusCritical
	}
}

// clampScore restricts v to the range [0, 100].
func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
