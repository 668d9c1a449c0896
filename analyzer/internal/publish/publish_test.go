package publish

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/buildhealth/buildhealth/pkg/summary"
)

func testPayload() summary.Payload {
	p := summary.New()
	p.Summary = summary.Overview{Score: 70, Status: "Unstable", TotalDuration: 12.5}
	p.FlakyTests = []string{"pkg.T.testFlaky"}
	p.CurrentFailures = []summary.Failure{{Test: "pkg.T.testBroken", Error: "boom"}}
	return p
}

func TestJiraPublish(t *testing.T) {
	var gotMethod, gotPath, gotAuth string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	j := NewJira("example.atlassian.net", "build_health_data", "bot@example.com", "tok")
	j.BaseURL = srv.URL

	if err := j.Publish(context.Background(), "CI-123", testPayload()); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if gotMethod != http.MethodPut {
		t.Errorf("method = %s, want PUT", gotMethod)
	}
	if want := "/rest/api/3/issue/CI-123/properties/build_health_data"; gotPath != want {
		t.Errorf("path = %s, want %s", gotPath, want)
	}
	if gotAuth == "" {
		t.Error("missing basic auth header")
	}

	var p summary.Payload
	if err := json.Unmarshal(gotBody, &p); err != nil {
		t.Fatalf("body is not a payload: %v", err)
	}
	if p.Summary.Score != 70 || len(p.FlakyTests) != 1 {
		t.Errorf("round-tripped payload = %+v", p)
	}
}

func TestJiraPublishNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such issue", http.StatusNotFound)
	}))
	defer srv.Close()

	j := NewJira("example.atlassian.net", "build_health_data", "bot@example.com", "tok")
	j.BaseURL = srv.URL

	if err := j.Publish(context.Background(), "CI-404", testPayload()); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestDashboardPublish(t *testing.T) {
	var gotPath, gotKey string
	var gotEnv summary.Envelope
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-API-Key")
		_ = json.NewDecoder(r.Body).Decode(&gotEnv)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	d := NewDashboard(srv.URL+"/", "X-API-Key", "k1")
	if err := d.Publish(context.Background(), "CI-123", testPayload()); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if gotPath != "/api/v1/summaries" {
		t.Errorf("path = %s, want /api/v1/summaries", gotPath)
	}
	if gotKey != "k1" {
		t.Errorf("api key header = %q, want k1", gotKey)
	}
	if gotEnv.Key != "CI-123" || gotEnv.Payload.Summary.Score != 70 {
		t.Errorf("envelope = %+v", gotEnv)
	}
}

func TestDashboardPublishNoAuthHeader(t *testing.T) {
	var sawHeader bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawHeader = r.Header.Get("X-API-Key") != ""
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	d := NewDashboard(srv.URL, "X-API-Key", "")
	if err := d.Publish(context.Background(), "CI-1", testPayload()); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if sawHeader {
		t.Error("auth header sent despite empty key")
	}
}

func TestDashboardPublishServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	d := NewDashboard(srv.URL, "", "")
	if err := d.Publish(context.Background(), "CI-1", testPayload()); err == nil {
		t.Fatal("expected transport error")
	}
}
