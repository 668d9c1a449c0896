package receiver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/buildhealth/buildhealth/pkg/summary"
	"github.com/buildhealth/buildhealth/server/internal/alerts"
	"github.com/buildhealth/buildhealth/server/internal/store"
)

// maxBodySize caps ingest request bodies. A build summary is small; a
// larger body means a misbehaving client.
const maxBodySize = 1 << 20

// Receiver handles POST /api/v1/summaries: the analyzer's ingest path.
// Each accepted envelope is stored and fed to the alert engine.
type Receiver struct {
	store  *store.Store
	alerts *alerts.Engine
}

// New creates a Receiver wired to the given store and alert engine.
func New(st *store.Store, eng *alerts.Engine) *Receiver {
	return &Receiver{store: st, alerts: eng}
}

func (rc *Receiver) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var env summary.Envelope
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err := dec.Decode(&env); err != nil {
		jsonErr(w, http.StatusBadRequest, "invalid envelope: "+err.Error())
		return
	}
	if env.Key == "" {
		jsonErr(w, http.StatusBadRequest, "envelope key is required")
		return
	}

	rc.store.Put(env.Key, env.Payload)
	rc.alerts.Evaluate(env.Key, env.Payload)

	slog.Debug("receiver: summary accepted",
		"key", env.Key,
		"score", env.Payload.Summary.Score,
		"status", env.Payload.Summary.Status,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{"status": "accepted"}) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg}) //nolint:errcheck
}
