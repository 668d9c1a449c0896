package metrics

import (
	"log/slog"
	"net/http"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"

	"github.com/buildhealth/buildhealth/server/internal/store"
)

// Handler serves GET /metrics in the Prometheus text exposition format.
// Every live build contributes one sample per gauge, labelled with its
// summary key.
type Handler struct {
	store *store.Store
}

// New creates a metrics Handler reading from st.
func New(st *store.Store) *Handler {
	return &Handler{store: st}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", string(expfmt.NewFormat(expfmt.TypeTextPlain)))
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range h.families() {
		// The text encoder rejects families without samples.
		if len(mf.Metric) == 0 {
			continue
		}
		if err := enc.Encode(mf); err != nil {
			slog.Error("metrics: encode failed", "family", mf.GetName(), "err", err)
			return
		}
	}
}

// families builds the metric families from the current store contents.
func (h *Handler) families() []*dto.MetricFamily {
	entries := h.store.List()

	score := newGaugeFamily("buildhealth_score",
		"Build health score (0-100) per build.")
	failures := newGaugeFamily("buildhealth_current_failures",
		"Number of tests failing in the latest run per build.")
	flaky := newGaugeFamily("buildhealth_flaky_tests",
		"Number of flaky tests per build.")
	duration := newGaugeFamily("buildhealth_total_duration_seconds",
		"Total test duration of the latest run per build.")
	builds := newGaugeFamily("buildhealth_builds",
		"Number of builds currently tracked.")

	for _, e := range entries {
		labels := []*dto.LabelPair{{
			Name:  proto.String("key"),
			Value: proto.String(e.Key),
		}}
		score.Metric = append(score.Metric, gauge(labels, float64(e.Payload.Summary.Score)))
		failures.Metric = append(failures.Metric, gauge(labels, float64(len(e.Payload.CurrentFailures))))
		flaky.Metric = append(flaky.Metric, gauge(labels, float64(len(e.Payload.FlakyTests))))
		duration.Metric = append(duration.Metric, gauge(labels, e.Payload.Summary.TotalDuration))
	}
	builds.Metric = append(builds.Metric, gauge(nil, float64(len(entries))))

	return []*dto.MetricFamily{score, failures, flaky, duration, builds}
}

func newGaugeFamily(name, help string) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name: proto.String(name),
		Help: proto.String(help),
		Type: dto.MetricType_GAUGE.Enum(),
	}
}

func gauge(labels []*dto.LabelPair, v float64) *dto.Metric {
	return &dto.Metric{
		Label: labels,
		Gauge: &dto.Gauge{Value: proto.Float64(v)},
	}
}
