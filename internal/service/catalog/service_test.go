package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Glen2003/IPTspotifyFinal/pkg/config"
)

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testService(tokenURL, searchURL string) Service {
	return New(newLogger(), config.APIConfig{
		CatalogTokenURL:     tokenURL,
		CatalogSearchURL:    searchURL,
		CatalogClientID:     "client-id",
		CatalogClientSecret: "client-secret",
		CatalogTimeout:      5 * time.Second,
	})
}

func TestSearchReturnsUpstreamPayloadVerbatim(t *testing.T) {
	const payload = `{"tracks":{"items":[{"id":"4uLU6hMCjMI75M1A2tKUQC","name":"One More Time"}]}}`

	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			t.Errorf("unexpected token method: %s", req.Method)
		}
		user, pass, ok := req.BasicAuth()
		if !ok || user != "client-id" || pass != "client-secret" {
			t.Errorf("missing or wrong basic auth")
		}
		if err := req.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if got := req.PostForm.Get("grant_type"); got != "client_credentials" {
			t.Errorf("unexpected grant_type: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"upstream-token","token_type":"Bearer"}`))
	}))
	defer tokenSrv.Close()

	searchSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if got := req.Header.Get("Authorization"); got != "Bearer upstream-token" {
			t.Errorf("unexpected authorization header: %q", got)
		}
		if got := req.URL.Query().Get("q"); got != "daft punk" {
			t.Errorf("unexpected query: %q", got)
		}
		if got := req.URL.Query().Get("type"); got != "track" {
			t.Errorf("unexpected type: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))
	defer searchSrv.Close()

	svc := testService(tokenSrv.URL, searchSrv.URL)
	results, err := svc.Search(context.Background(), "daft punk")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(results) != payload {
		t.Fatalf("payload altered in transit:\n got %s\nwant %s", results, payload)
	}
}

func TestSearchTokenExchangeFailure(t *testing.T) {
	var searched atomic.Bool

	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer tokenSrv.Close()

	searchSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		searched.Store(true)
		w.WriteHeader(http.StatusOK)
	}))
	defer searchSrv.Close()

	svc := testService(tokenSrv.URL, searchSrv.URL)
	results, err := svc.Search(context.Background(), "daft punk")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if results != nil {
		t.Fatalf("expected no partial results, got %s", results)
	}
	if searched.Load() {
		t.Fatalf("search endpoint must not be called after a failed token exchange")
	}
}

func TestSearchUpstreamSearchFailure(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"access_token":"upstream-token"}`))
	}))
	defer tokenSrv.Close()

	searchSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer searchSrv.Close()

	svc := testService(tokenSrv.URL, searchSrv.URL)
	if _, err := svc.Search(context.Background(), "daft punk"); !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestSearchFetchesFreshTokenPerCall(t *testing.T) {
	var tokenCalls atomic.Int64

	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		tokenCalls.Add(1)
		_, _ = w.Write([]byte(`{"access_token":"upstream-token"}`))
	}))
	defer tokenSrv.Close()

	searchSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer searchSrv.Close()

	svc := testService(tokenSrv.URL, searchSrv.URL)
	for i := 0; i < 3; i++ {
		if _, err := svc.Search(context.Background(), "query"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if got := tokenCalls.Load(); got != 3 {
		t.Fatalf("expected a fresh token per search, got %d token calls", got)
	}
}

func TestSearchRequiresConfiguredCredentials(t *testing.T) {
	svc := New(newLogger(), config.APIConfig{CatalogTimeout: time.Second})
	if _, err := svc.Search(context.Background(), "q"); !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}
