package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetcherSetsUserAgentFromPool(t *testing.T) {
	t.Parallel()

	pool := []string{"agent-one", "agent-two"}
	seen := make(map[string]bool)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen[r.Header.Get("User-Agent")] = true
		w.Write([]byte("<html><body></body></html>"))
	}))
	defer server.Close()

	f := NewFetcher(server.Client(), pool)
	for i := 0; i < 20; i++ {
		if _, err := f.Fetch(context.Background(), server.URL); err != nil {
			t.Fatalf("Fetch error: %v", err)
		}
	}

	for agent := range seen {
		if agent != "agent-one" && agent != "agent-two" {
			t.Errorf("request used User-Agent outside the pool: %q", agent)
		}
	}
	if len(seen) == 0 {
		t.Fatal("no User-Agent header recorded")
	}
}

func TestFetcherRejectsNon2xx(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	f := NewFetcher(server.Client(), nil)
	if _, err := f.Fetch(context.Background(), server.URL); err == nil {
		t.Fatal("expected error for 403 response")
	}
}

func TestFetcherTransportError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	f := NewFetcher(nil, nil)
	if _, err := f.Fetch(context.Background(), server.URL); err == nil {
		t.Fatal("expected error for refused connection")
	}
}
