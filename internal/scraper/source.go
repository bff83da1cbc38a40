package scraper

import (
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Record is a raw article extraction that has not been persisted yet
type Record struct {
	Title       string
	Summary     string
	SourceURL   string
	ImageURL    string
	PublishedAt time.Time
	Category    string
}

// Parser extracts article records from a parsed source page. One
// implementation exists per source, tied to that site's HTML structure.
// Cards missing a title or link are skipped whole; image and publish time
// may be absent.
type Parser interface {
	Extract(doc *goquery.Document, baseURL string, now time.Time) []Record
}

// Source describes one external site: where to fetch, which category its
// articles belong to, and the parser that understands its markup.
type Source struct {
	Name     string
	URL      string
	Category string
	Parser   Parser
}

// DefaultSources returns the fixed source list the pipeline scrapes.
func DefaultSources() []Source {
	return []Source{
		{
			Name:     "ESPN",
			URL:      "https://www.espn.com/",
			Category: "ESPN Sports",
			Parser:   ESPNParser{},
		},
		{
			Name:     "BBC Sports",
			URL:      "https://www.bbc.com/sport",
			Category: "BBC Sports",
			Parser:   BBCSportParser{},
		},
	}
}

// absoluteURL resolves href against base, returning href unchanged if
// either fails to parse.
func absoluteURL(base, href string) string {
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	h, err := url.Parse(href)
	if err != nil {
		return href
	}
	return b.ResolveReference(h).String()
}
