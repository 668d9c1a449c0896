package api

import "github.com/buildhealth/buildhealth/pkg/summary"

// HealthResponse is the payload for GET /api/v1/health.
type HealthResponse struct {
	AverageScore  float64 `json:"average_score"`
	Status        string  `json:"status"`
	BuildCount    int     `json:"build_count"`
	StableCount   int     `json:"stable_count"`
	UnstableCount int     `json:"unstable_count"`
	CriticalCount int     `json:"critical_count"`
	AlertCount    int     `json:"alert_count"`
}

// SummaryResponse is one build entry in GET /api/v1/summaries or
// GET /api/v1/summaries/{key}.
type SummaryResponse struct {
	Key           string            `json:"key"`
	Score         int               `json:"score"`
	Status        string            `json:"status"`
	TotalDuration float64           `json:"total_duration"`
	FlakyTests    []string          `json:"flaky_tests"`
	Failures      []summary.Failure `json:"failures"`
	Diagnostics   []DiagnosticHint  `json:"diagnostics"`
	LastSeen      string            `json:"last_seen"` // RFC3339
}

// SnapshotResponse is the full dashboard state, used by GET
// /api/v1/snapshot and the WebSocket broadcast.
type SnapshotResponse struct {
	Builds      []SummaryResponse `json:"builds"`
	GeneratedAt string            `json:"generated_at"` // RFC3339
}

// errorResponse is a generic JSON error body.
type errorResponse struct {
	Error string `json:"error"`
}
