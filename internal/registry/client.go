package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/ZiggyLiu/clinical-study-visual/pkg/logger"
)

const (
	// DefaultBaseURL is the public v2 search endpoint.
	DefaultBaseURL = "https://clinicaltrials.gov/api/v2/studies"

	// MaxPageSize is the largest page the registry will serve per request.
	MaxPageSize = 1000

	// errorBodyLimit caps how much of a failed response body is carried in
	// a RequestError.
	errorBodyLimit = 500

	userAgent = "clinical-study-visual/0.1"
)

// Client fetches study pages from the clinical-trials registry.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewClient creates a new registry client.
func NewClient(baseURL string, timeout time.Duration, logger *logger.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger.Named("registry-cli"),
	}
}

// SearchPage holds the parameters for a single paged search request.
type SearchPage struct {
	Condition string
	PageSize  int
	PageToken string // empty on the first request
}

// Search fetches one page of studies matching the page parameters.
func (c *Client) Search(ctx context.Context, page SearchPage) (*SearchResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	q := req.URL.Query()
	q.Set("query.term", page.Condition)
	q.Set("pageSize", strconv.Itoa(page.PageSize))
	q.Set("format", "json")
	if page.PageToken != "" {
		q.Set("pageToken", page.PageToken)
	}
	req.URL.RawQuery = q.Encode()

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("Fetching registry page",
		logger.String("condition", page.Condition),
		logger.Int("page_size", page.PageSize),
		logger.Bool("has_token", page.PageToken != ""),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Registry request failed", logger.Error(err), logger.String("url", c.baseURL))
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("Failed to read registry response", logger.Error(err))
		return nil, &TransportError{Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Error("Unexpected registry status",
			logger.Int("status_code", resp.StatusCode),
			logger.String("body", truncate(string(body), 200)),
		)
		return nil, &RequestError{StatusCode: resp.StatusCode, Body: truncate(string(body), errorBodyLimit)}
	}

	var result SearchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		c.logger.Error("Failed to parse registry response", logger.Error(err))
		return nil, &ResponseError{Err: err}
	}

	c.logger.Debug("Fetched registry page",
		logger.Int("studies", len(result.Studies)),
		logger.Bool("has_next", result.NextPageToken != ""),
	)

	return &result, nil
}

// truncate clips s to at most limit bytes.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
