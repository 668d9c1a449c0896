// Package health turns parsed test outcomes into a build health summary.
//
// It has three layers: Run accumulates per-test status history across
// ordered report batches, Compute is the pure scoring formula, and
// Summarize assembles the publishable payload.
package health
