// Package tmdb talks to a TMDB-compatible catalog API and maps its JSON
// payloads to domain entities.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/reel/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Reel/1.0"
)

// Client is a thin authenticated HTTP client for the catalog API
type Client struct {
	baseURL    string
	apiKey     string
	language   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new catalog API client. A zero timeout selects the
// default.
func NewClient(baseURL, apiKey, language string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		language: language,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// BaseURL returns the server the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doRequest performs an authenticated GET request
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)
	if c.language != "" {
		query.Set("language", c.language)
	}
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	// Never log the key
	c.logger.Debug("catalog request", "path", path, "page", query.Get("page"))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Error("catalog request failed", "path", path, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusUnauthorized:
		return nil, domain.ErrAuthFailed
	case http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", path, domain.ErrNotFound)
	case http.StatusTooManyRequests:
		return nil, domain.ErrRateLimited
	}

	c.logger.Error("catalog request error", "path", path, "status", resp.StatusCode, "body", errorStatus(body))
	if msg := errorStatus(body); msg != "" {
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, msg)
	}
	return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
}

// getJSON fetches path and decodes the body into v. A literal JSON null
// leaves pointer targets nil, which callers report as "no data".
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, v any) error {
	body, err := c.doRequest(ctx, path, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		c.logger.Error("JSON parse error", "path", path, "error", err, "bodyLen", len(body))
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// errorStatus extracts status_message from an API error body
func errorStatus(body []byte) string {
	var e errorDTO
	if json.Unmarshal(body, &e) != nil {
		return ""
	}
	return e.StatusMessage
}
