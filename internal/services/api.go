// Plain HTTP client for fetching lyrics pages
package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/desertthunder/lyricbook/internal/shared"
)

// maxPageSize caps how much of a page is read.
const maxPageSize = 8 << 20

const userAgent = "lyricbook/1.0 (+https://github.com/desertthunder/lyricbook)"

// APIService fetches raw pages without credentials.
//
// Lyrics pages live on arbitrary hosts, so the API token must not be sent with them.
type APIService struct {
	httpClient *http.Client
}

// NewAPIService creates a page fetcher. A nil client uses [http.DefaultClient].
func NewAPIService(client *http.Client) *APIService {
	if client == nil {
		client = http.DefaultClient
	}
	return &APIService{httpClient: client}
}

// APIResponse represents a raw API response with status and body.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// IsHTML reports whether the response declared an HTML body
func (r *APIResponse) IsHTML() bool {
	return strings.Contains(r.Headers.Get("Content-Type"), "html")
}

// Get performs a GET request to rawURL and returns the raw response.
func (a *APIService) Get(ctx context.Context, rawURL string) (*APIResponse, error) {
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return nil, fmt.Errorf("%w: url must be http or https: %s", shared.ErrInvalidArgument, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}, nil
}
