package scraper

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"

	"github.com/PuerkitoBio/goquery"
)

// defaultUserAgents is the pool of browser identities rotated across
// requests. A rotated header lowers the chance of tripping basic bot
// filters; it is not a robustness guarantee.
var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/108.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/108.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/108.0.0.0 Safari/537.36",
}

// Fetcher retrieves source pages over HTTP and parses them into documents
type Fetcher struct {
	client     *http.Client
	userAgents []string
}

// NewFetcher creates a fetcher. A nil client falls back to the default
// transport (no explicit timeout); an empty userAgents pool falls back to
// the built-in one.
func NewFetcher(client *http.Client, userAgents []string) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if len(userAgents) == 0 {
		userAgents = defaultUserAgents
	}
	return &Fetcher{client: client, userAgents: userAgents}
}

// Fetch retrieves pageURL and returns the parsed HTML document. A non-2xx
// status is reported as an error.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.randomUserAgent())

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", pageURL, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", pageURL, err)
	}

	return doc, nil
}

func (f *Fetcher) randomUserAgent() string {
	return f.userAgents[rand.Intn(len(f.userAgents))]
}
