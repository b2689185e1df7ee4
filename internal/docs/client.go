// Package docs is the client for the documentation search service.
package docs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/revanth0212/commerce-extensibility-mcp/internal/cache"
	"github.com/revanth0212/commerce-extensibility-mcp/internal/common"
)

// Repeated identical queries within this window are answered from cache.
const (
	cacheTTL     = 5 * time.Minute
	cacheEntries = 128
)

// SearchResult is one documentation excerpt returned by the service.
type SearchResult struct {
	PageContent    string         `json:"pageContent"`
	Metadata       map[string]any `json:"metadata"`
	RelevanceScore float64        `json:"relevanceScore,omitempty"`
}

// Client posts search queries to the documentation service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	results    *cache.Cache[[]SearchResult]
	logger     *common.Logger
}

// NewClient creates a documentation search client targeting baseURL.
func NewClient(baseURL string, logger *common.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		results: cache.New[[]SearchResult](cacheTTL, cacheEntries),
		logger:  logger,
	}
}

// Search posts {query, count} to the service's /query endpoint and returns
// the result list. Non-2xx responses are errors.
func (c *Client) Search(ctx context.Context, query string, count int) ([]SearchResult, error) {
	cacheKey := fmt.Sprintf("%s|%d", query, count)
	if cached, ok := c.results.Get(cacheKey); ok {
		c.logger.Debug().Str("query", query).Msg("docs search cache hit")
		return cached, nil
	}

	payload, err := json.Marshal(map[string]any{
		"query": query,
		"count": count,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/query", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug().Str("query", query).Int("count", count).Msg("docs search request")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.logger.Warn().Err(err).Dur("duration", duration).Msg("docs search request failed")
		return nil, fmt.Errorf("documentation service request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug().Int("status_code", resp.StatusCode).Dur("duration", duration).Msg("docs search response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("documentation service returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed struct {
		Results []SearchResult `json:"results"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}
	c.results.Set(cacheKey, parsed.Results)
	return parsed.Results, nil
}
