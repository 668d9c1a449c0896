package publish

import (
	"context"
	"net/http"
	"time"

	"github.com/buildhealth/buildhealth/pkg/summary"
)

// requestTimeout bounds every outbound publish request.
const requestTimeout = 30 * time.Second

// Publisher delivers a build health summary to one sink.
type Publisher interface {
	// Publish sends the payload under the given summary key. A non-nil
	// error means the sink did not durably accept the payload.
	Publish(ctx context.Context, key string, payload summary.Payload) error

	// Name identifies the sink in logs.
	Name() string
}

// newClient returns the HTTP client shared by all sinks.
func newClient() *http.Client {
	return &http.Client{Timeout: requestTimeout}
}
