package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Source describes one backend endpoint that contributes to a snapshot.
// Sources are declared in a fixed order; the engine joins their results in
// that same order so merges stay deterministic.
type Source struct {
	Name string
	URL  string
}

// DefaultSources returns the endpoints polled for a Claude-style account.
func DefaultSources(baseURL, orgID string) []Source {
	return []Source{
		{Name: "usage", URL: fmt.Sprintf("%s/api/organizations/%s/usage", baseURL, orgID)},
		{Name: "profile", URL: fmt.Sprintf("%s/api/organizations/%s/profile", baseURL, orgID)},
	}
}

// StatusError reports a non-success HTTP response. 401/403 are surfaced
// distinctly so callers can render an auth prompt instead of a generic
// failure.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API returned %d: %s", e.Code, e.Body)
}

func (e *StatusError) AuthRequired() bool {
	return e.Code == http.StatusUnauthorized || e.Code == http.StatusForbidden
}

type Client struct {
	httpClient *http.Client
	token      string
	userAgent  string
}

func NewClient(token string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		token:      token,
		userAgent:  "usagelens",
	}
}

// FetchJSON issues an authenticated GET and decodes the body into an
// untyped JSON value for the extractor. The transport layer owns HTTP
// status handling; the normalizer only ever sees already-successful bodies.
func (c *Client) FetchJSON(ctx context.Context, src Source) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", src.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%s: %w", src.Name, &StatusError{Code: resp.StatusCode, Body: string(body)})
	}

	var doc any
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", src.Name, err)
	}
	return doc, nil
}
