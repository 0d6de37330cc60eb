package youtrack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// NotFoundTitle is the placeholder title used when the tracker has no usable
// summary for an identifier.
const NotFoundTitle = "~~Not Found~~"

// ErrMissingToken reports that no API token is configured. No request is made
// without one.
var ErrMissingToken = errors.New("youtrack API token is not configured")

// Config holds configuration for the YouTrack client.
type Config struct {
	Host  string `koanf:"host"`
	Token string `koanf:"token"`
}

// Client fetches issue summaries from the YouTrack REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a Client with the supplied configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeHost(cfg.Host),
		token:      strings.TrimSpace(cfg.Token),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// normalizeHost strips trailing slashes and prefixes bare hostnames with
// https. Hosts carrying an explicit scheme are used as-is.
func normalizeHost(host string) string {
	h := strings.TrimSuffix(strings.TrimSpace(host), "/")
	if h == "" {
		return ""
	}
	if !strings.Contains(h, "://") {
		h = "https://" + h
	}
	return h
}

// GetIssueTitle fetches the summary for an issue identifier such as EP-11.
// A 404 and a response without a summary both yield NotFoundTitle with no
// error. Transport failures and other non-2xx statuses are returned as
// errors. Each call makes exactly one request.
func (c *Client) GetIssueTitle(ctx context.Context, id string) (string, error) {
	if c.token == "" {
		return "", ErrMissingToken
	}

	apiURL := fmt.Sprintf("%s/api/issues/%s?fields=idReadable,summary", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	c.applyHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch issue %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		log.Debug().Str("issue", id).Msg("issue not found")
		return NotFoundTitle, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("youtrack issue fetch failed (%d): %s", resp.StatusCode, string(body))
	}

	var issue issueResponse
	if err := json.NewDecoder(resp.Body).Decode(&issue); err != nil {
		return "", fmt.Errorf("failed to decode youtrack response: %w", err)
	}

	if issue.Summary == "" {
		return NotFoundTitle, nil
	}
	return issue.Summary, nil
}

// applyHeaders applies auth and content negotiation headers.
func (c *Client) applyHeaders(req *http.Request) {
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
}

// issueResponse mirrors the subset of fields we need from YouTrack.
type issueResponse struct {
	IDReadable string `json:"idReadable"`
	Summary    string `json:"summary"`
}
