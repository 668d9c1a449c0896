package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/buildhealth/buildhealth/pkg/summary"
)

// Dashboard posts the payload to a buildhealth dashboard server.
type Dashboard struct {
	// Endpoint is the server base URL without a trailing slash.
	Endpoint string

	// Header and Key configure optional API-key auth. When either is
	// empty no auth header is sent.
	Header string
	Key    string

	client *http.Client
}

// NewDashboard returns a dashboard sink for the given base endpoint.
func NewDashboard(endpoint, header, key string) *Dashboard {
	return &Dashboard{
		Endpoint: strings.TrimRight(endpoint, "/"),
		Header:   header,
		Key:      key,
		client:   newClient(),
	}
}

func (d *Dashboard) Name() string { return "dashboard" }

// Publish POSTs a {key, payload} envelope to the server's ingest endpoint.
func (d *Dashboard) Publish(ctx context.Context, key string, payload summary.Payload) error {
	body, err := json.Marshal(summary.Envelope{Key: key, Payload: payload})
	if err != nil {
		return fmt.Errorf("publish: encode envelope: %w", err)
	}

	url := d.Endpoint + "/api/v1/summaries"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("publish: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if d.Header != "" && d.Key != "" {
		req.Header.Set(d.Header, d.Key)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("publish: dashboard request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("publish: dashboard returned %d", resp.StatusCode)
	}
	return nil
}
