// Package catalog proxies track searches to the Spotify Web API using the
// client-credentials grant. A fresh access token is fetched for every search;
// nothing is cached and nothing is retried.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"log/slog"

	"github.com/Glen2003/IPTspotifyFinal/pkg/config"
)

// ErrUpstream is returned for any failure at either upstream hop.
var ErrUpstream = errors.New("catalog upstream failure")

// Service talks to the external music catalog.
type Service struct {
	httpClient *http.Client
	logger     *slog.Logger
	cfg        config.APIConfig
}

// New constructs a Service. The HTTP client timeout bounds both upstream
// calls since the external API publishes no latency guarantees.
func New(logger *slog.Logger, cfg config.APIConfig) Service {
	return Service{
		httpClient: &http.Client{Timeout: cfg.CatalogTimeout},
		logger:     logger,
		cfg:        cfg,
	}
}

// Search exchanges service credentials for a bearer token, then forwards the
// query constrained to tracks and returns the upstream JSON verbatim.
func (s Service) Search(ctx context.Context, query string) (json.RawMessage, error) {
	if s.cfg.CatalogClientID == "" || s.cfg.CatalogClientSecret == "" {
		return nil, fmt.Errorf("%w: client credentials not configured", ErrUpstream)
	}
	token, err := s.fetchAccessToken(ctx)
	if err != nil {
		return nil, err
	}
	return s.searchTracks(ctx, token, query)
}

func (s Service) fetchAccessToken(ctx context.Context) (string, error) {
	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.CatalogTokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: build token request: %v", ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(s.cfg.CatalogClientID, s.cfg.CatalogClientSecret)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Warn("catalog token exchange failed", "error", err)
		return "", fmt.Errorf("%w: token exchange: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("catalog token exchange rejected", "status", resp.StatusCode)
		return "", fmt.Errorf("%w: token exchange status %d", ErrUpstream, resp.StatusCode)
	}
	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: decode token response: %v", ErrUpstream, err)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", ErrUpstream)
	}
	return payload.AccessToken, nil
}

func (s Service) searchTracks(ctx context.Context, token, query string) (json.RawMessage, error) {
	params := url.Values{"q": {query}, "type": {"track"}}
	endpoint := s.cfg.CatalogSearchURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build search request: %v", ErrUpstream, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Warn("catalog search failed", "error", err)
		return nil, fmt.Errorf("%w: search: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("catalog search rejected", "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: search status %d", ErrUpstream, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read search response: %v", ErrUpstream, err)
	}
	return json.RawMessage(body), nil
}
