package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/buildhealth/buildhealth/server/internal/alerts"
	"github.com/buildhealth/buildhealth/server/internal/store"
)

// Handler is the HTTP handler for the read-only /api/v1/* endpoints.
// It reads build state from the summary store and returns JSON responses.
type Handler struct {
	store  *store.Store
	alerts *alerts.Engine
	mux    *http.ServeMux
}

// New creates a Handler wired to the given store and alert engine and
// registers all routes.
func New(st *store.Store, eng *alerts.Engine) http.Handler {
	h := &Handler{store: st, alerts: eng, mux: http.NewServeMux()}

	h.mux.HandleFunc("/api/v1/health", h.health)
	h.mux.HandleFunc("/api/v1/summaries", h.listSummaries)
	h.mux.HandleFunc("/api/v1/summaries/", h.getSummary) // subtree, extracts {key}
	h.mux.HandleFunc("/api/v1/alerts", h.listAlerts)
	h.mux.HandleFunc("/api/v1/snapshot", h.snapshot)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// --- route handlers ---------------------------------------------------------

// health returns GET /api/v1/health: the fleet-wide score and per-status
// counts across all live builds.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	entries := h.store.List()
	resp := HealthResponse{
		BuildCount: len(entries),
		AlertCount: len(h.alerts.Active()),
	}

	if len(entries) == 0 {
		resp.Status = "unknown"
		jsonResp(w, http.StatusOK, resp)
		return
	}

	var totalScore int
	for _, e := range entries {
		totalScore += e.Payload.Summary.Score
		switch e.Payload.Summary.Status {
		case "Stable":
			resp.StableCount++
		case "Unstable":
			resp.UnstableCount++
		case "Critical":
			resp.CriticalCount++
		}
	}

	resp.AverageScore = float64(totalScore) / float64(len(entries))
	resp.Status = statusFromScore(resp.AverageScore)
	jsonResp(w, http.StatusOK, resp)
}

// listSummaries returns GET /api/v1/summaries: all live builds.
func (h *Handler) listSummaries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	entries := h.store.List()
	out := make([]SummaryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toSummaryResponse(e))
	}
	jsonResp(w, http.StatusOK, out)
}

// getSummary returns GET /api/v1/summaries/{key}: a single live build.
func (h *Handler) getSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	key := strings.TrimPrefix(r.URL.Path, "/api/v1/summaries/")
	if key == "" {
		h.listSummaries(w, r)
		return
	}

	e, ok := h.store.Get(key)
	if !ok {
		jsonErr(w, http.StatusNotFound, "summary not found")
		return
	}
	// Stale entries are treated as not found.
	if time.Since(e.UpdatedAt) > h.store.TTL() {
		jsonErr(w, http.StatusNotFound, "summary not found")
		return
	}

	jsonResp(w, http.StatusOK, toSummaryResponse(e))
}

// listAlerts returns GET /api/v1/alerts: firing and recently resolved
// alerts.
func (h *Handler) listAlerts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, h.alerts.Active())
}

// snapshot returns GET /api/v1/snapshot: the full dashboard state.
func (h *Handler) snapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, BuildSnapshot(h.store))
}

// --- helpers ----------------------------------------------------------------

// BuildSnapshot assembles the full dashboard state from the store. The
// WebSocket hub uses it to build its broadcast messages.
func BuildSnapshot(st *store.Store) SnapshotResponse {
	entries := st.List()
	builds := make([]SummaryResponse, 0, len(entries))
	for _, e := range entries {
		builds = append(builds, toSummaryResponse(e))
	}
	return SnapshotResponse{
		Builds:      builds,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}

// statusFromScore converts a fleet-average score to a status string.
// Mirrors the thresholds in analyzer/internal/health.
func statusFromScore(score float64) string {
	switch {
	case score >= 80:
		return "Stable"
	case score >= 50:
		return "Unstable"
	default:
		return "Critical"
	}
}

// toSummaryResponse maps a store.Entry to its JSON representation.
func toSummaryResponse(e *store.Entry) SummaryResponse {
	p := e.Payload
	return SummaryResponse{
		Key:           e.Key,
		Score:         p.Summary.Score,
		Status:        p.Summary.Status,
		TotalDuration: p.Summary.TotalDuration,
		FlakyTests:    p.FlakyTests,
		Failures:      p.CurrentFailures,
		Diagnostics:   computeDiagnostics(p),
		LastSeen:      e.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
