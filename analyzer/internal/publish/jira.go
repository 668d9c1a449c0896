package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/buildhealth/buildhealth/pkg/summary"
)

// Jira stores the payload as an entity property on a Jira issue. Entity
// property writes are idempotent upserts, so republishing the same build
// simply overwrites the previous summary.
type Jira struct {
	// BaseURL is the scheme+host of the Jira site, e.g.
	// "https://yourcompany.atlassian.net".
	BaseURL string

	// PropertyKey is the entity property name the payload lives under.
	PropertyKey string

	// Email and Token form the basic-auth credential pair.
	Email string
	Token string

	client *http.Client
}

// NewJira returns a Jira sink for the given site domain.
func NewJira(domain, propertyKey, email, token string) *Jira {
	return &Jira{
		BaseURL:     "https://" + domain,
		PropertyKey: propertyKey,
		Email:       email,
		Token:       token,
		client:      newClient(),
	}
}

func (j *Jira) Name() string { return "jira" }

// Publish PUTs the payload to the issue's entity property. The key is the
// Jira issue key, e.g. "CI-123".
func (j *Jira) Publish(ctx context.Context, key string, payload summary.Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("publish: encode payload: %w", err)
	}

	url := fmt.Sprintf("%s/rest/api/3/issue/%s/properties/%s", j.BaseURL, key, j.PropertyKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("publish: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(j.Email, j.Token)

	resp, err := j.client.Do(req)
	if err != nil {
		return fmt.Errorf("publish: jira request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("publish: jira returned %d for issue %s: %s",
			resp.StatusCode, key, bytes.TrimSpace(snippet))
	}
	return nil
}
