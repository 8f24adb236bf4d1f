package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/desertthunder/lyricbook/internal/extract"
	"github.com/desertthunder/lyricbook/internal/models"
	"github.com/desertthunder/lyricbook/internal/shared"
)

const (
	defaultGeniusBaseURL = "https://api.genius.com"
	defaultTimeout       = 15 * time.Second
)

// GeniusService searches the Genius API and scrapes lyrics from Genius song pages.
//
// API requests carry the access token through an [oauth2.StaticTokenSource] and are
// throttled by a [rate.Limiter]. Page requests go through a plain [APIService].
type GeniusService struct {
	baseURL    string
	httpClient *http.Client
	pages      *APIService
	limiter    *rate.Limiter
	timeout    time.Duration
	base       http.RoundTripper
}

// GeniusOptions configures [NewGeniusService].
type GeniusOptions struct {
	BaseURL           string
	RequestsPerSecond float64
	Timeout           time.Duration
	Transport         http.RoundTripper // Transport is used for every request; nil means [http.DefaultTransport]
}

// NewGeniusService creates an unauthenticated Genius client.
func NewGeniusService(opts GeniusOptions) *GeniusService {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultGeniusBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}
	if opts.Transport == nil {
		opts.Transport = http.DefaultTransport
	}

	plain := &http.Client{Transport: opts.Transport, Timeout: opts.Timeout}
	return &GeniusService{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		pages:   NewAPIService(plain),
		limiter: rate.NewLimiter(limit, 1),
		timeout: opts.Timeout,
		base:    opts.Transport,
	}
}

// NewGeniusServiceFromConfig builds a client from the [genius] config section and authenticates it
// when a token is configured.
//
// The service is always returned; when the configured token is rejected it stays unauthenticated
// and the error says why.
func NewGeniusServiceFromConfig(ctx context.Context, cfg shared.GeniusConfig) (*GeniusService, error) {
	svc := NewGeniusService(GeniusOptions{
		BaseURL:           cfg.BaseURL,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Timeout:           time.Duration(cfg.TimeoutSeconds) * time.Second,
	})
	if cfg.AccessToken == "" {
		return svc, nil
	}
	if err := svc.Authenticate(ctx, map[string]string{"access_token": cfg.AccessToken}); err != nil {
		return svc, err
	}
	return svc, nil
}

func (s *GeniusService) Name() string {
	return "Genius"
}

// Authenticate expects an "access_token" in credentials.
func (s *GeniusService) Authenticate(ctx context.Context, credentials map[string]string) error {
	token := strings.TrimSpace(credentials["access_token"])
	if token == "" {
		return fmt.Errorf("%w: missing access_token", shared.ErrMissingCredentials)
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Transport: s.base})
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}))
	client.Timeout = s.timeout

	s.httpClient = client
	return nil
}

// Authenticated reports whether a token has been configured
func (s *GeniusService) Authenticated() bool {
	return s.httpClient != nil
}

type geniusSearchResponse struct {
	Meta struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"meta"`
	Response *struct {
		Hits []struct {
			Type   string `json:"type"`
			Result struct {
				ID            models.ID `json:"id"`
				Title         string    `json:"title"`
				URL           string    `json:"url"`
				PrimaryArtist struct {
					Name string `json:"name"`
				} `json:"primary_artist"`
			} `json:"result"`
		} `json:"hits"`
	} `json:"response"`
}

// Search queries /search?q= and maps each hit to a [models.SearchResult].
func (s *GeniusService) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query", shared.ErrMissingArgument)
	}

	var body geniusSearchResponse
	if err := s.doRequest(ctx, "/search?q="+url.QueryEscape(query), &body); err != nil {
		return nil, err
	}

	results := []models.SearchResult{}
	if body.Response == nil {
		return results, nil
	}
	for _, hit := range body.Response.Hits {
		if hit.Type != "" && hit.Type != "song" {
			continue
		}
		results = append(results, models.SearchResult{
			ID:     hit.Result.ID,
			Title:  hit.Result.Title,
			Artist: hit.Result.PrimaryArtist.Name,
			URL:    hit.Result.URL,
		})
	}
	return results, nil
}

// FetchLyrics downloads a song page and runs [extract.Lyrics] over it.
func (s *GeniusService) FetchLyrics(ctx context.Context, pageURL string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}

	resp, err := s.pages.Get(ctx, pageURL)
	if err != nil {
		return "", fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: page returned status %d", shared.ErrAPIRequest, resp.StatusCode)
	}
	if resp.Headers.Get("Content-Type") != "" && !resp.IsHTML() {
		return extract.ParseError, nil
	}
	return extract.Lyrics(string(resp.Body)), nil
}

// doRequest performs an authenticated GET against the API and decodes the JSON body into result.
func (s *GeniusService) doRequest(ctx context.Context, endpoint string, result any) error {
	if !s.Authenticated() {
		return fmt.Errorf("%w: set genius.access_token or %s", shared.ErrMissingCredentials, shared.EnvGeniusToken)
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) && uerr.Timeout() {
			return fmt.Errorf("%w: %w", shared.ErrTimeout, err)
		}
		return fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return shared.ErrInvalidCredentials
	case resp.StatusCode == http.StatusTooManyRequests:
		return shared.ErrRateLimited
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: status %d", shared.ErrServiceUnavailable, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%w: genius API error: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
