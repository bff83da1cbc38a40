package scraper

import (
	"context"
	"log"
	"time"

	readability "github.com/go-shiori/go-readability"

	"newsdesk/internal/database"
)

// Store is the subset of database operations the pipeline needs
type Store interface {
	ArticleExists(ctx context.Context, sourceURL string) (bool, error)
	GetOrCreateCategory(ctx context.Context, name string) (*database.Category, error)
	CreateArticle(ctx context.Context, article *database.Article) error
}

// Stats summarizes a single pipeline run
type Stats struct {
	New     int
	Skipped int
	Failed  int
}

// Scraper drives the fetch -> parse -> ingest pipeline over all sources
type Scraper struct {
	fetcher      *Fetcher
	store        Store
	sources      []Source
	fetchContent bool
}

// New creates a scraper. A nil fetcher uses defaults; nil sources uses the
// fixed built-in source list.
func New(store Store, fetcher *Fetcher, sources []Source, fetchContent bool) *Scraper {
	if fetcher == nil {
		fetcher = NewFetcher(nil, nil)
	}
	if sources == nil {
		sources = DefaultSources()
	}
	return &Scraper{
		fetcher:      fetcher,
		store:        store,
		sources:      sources,
		fetchContent: fetchContent,
	}
}

// Run performs one full sequential pass over all sources. Per-source and
// per-record failures are logged and do not abort the run; the pass is
// stateless and idempotent on duplicates.
func (s *Scraper) Run(ctx context.Context) Stats {
	var stats Stats

	log.Println("Starting the scraping process...")
	for _, src := range s.sources {
		log.Printf("Scraping %s...", src.Name)

		doc, err := s.fetcher.Fetch(ctx, src.URL)
		if err != nil {
			log.Printf("Could not fetch %s: %v", src.URL, err)
			continue
		}

		records := src.Parser.Extract(doc, src.URL, time.Now())
		if len(records) == 0 {
			// Stale selectors after a site redesign look exactly like this.
			log.Printf("Warning: %s extracted 0 records, selectors may be out of date", src.Name)
			continue
		}

		for i := range records {
			records[i].Category = src.Category
			s.ingest(ctx, &records[i], &stats)
		}
	}
	log.Printf("Scraping process finished: %d new, %d skipped, %d failed", stats.New, stats.Skipped, stats.Failed)

	return stats
}

// ingest persists one record, skipping it silently if its source URL is
// already stored
func (s *Scraper) ingest(ctx context.Context, rec *Record, stats *Stats) {
	exists, err := s.store.ArticleExists(ctx, rec.SourceURL)
	if err != nil {
		log.Printf("Error checking article existence for %q: %v", rec.Title, err)
		stats.Failed++
		return
	}
	if exists {
		log.Printf("Skipping existing article: %s", rec.Title)
		stats.Skipped++
		return
	}

	category, err := s.store.GetOrCreateCategory(ctx, rec.Category)
	if err != nil {
		log.Printf("Error resolving category %q: %v", rec.Category, err)
		stats.Failed++
		return
	}

	article := &database.Article{
		Title:       rec.Title,
		Summary:     rec.Summary,
		SourceURL:   rec.SourceURL,
		PublishedAt: rec.PublishedAt,
		CategoryID:  &category.ID,
	}
	if rec.ImageURL != "" {
		imageURL := rec.ImageURL
		article.ImageURL = &imageURL
	}
	if s.fetchContent {
		article.Content = s.articleContent(rec.SourceURL)
	}

	if err := s.store.CreateArticle(ctx, article); err != nil {
		// A concurrent run may have inserted the same URL between the
		// existence check and the insert; the unique constraint turns that
		// race into an ordinary skip.
		if database.IsUniqueViolation(err) {
			log.Printf("Skipping existing article: %s", rec.Title)
			stats.Skipped++
			return
		}
		log.Printf("Error saving article %q: %v", rec.Title, err)
		stats.Failed++
		return
	}

	log.Printf("Successfully saved: %s", rec.Title)
	stats.New++
}

// articleContent fetches the article's detail page and extracts readable
// text. Failures leave content empty; they never fail the record.
func (s *Scraper) articleContent(pageURL string) string {
	art, err := readability.FromURL(pageURL, 30*time.Second)
	if err != nil {
		log.Printf("Could not extract content for %s: %v", pageURL, err)
		return ""
	}
	return art.TextContent
}
