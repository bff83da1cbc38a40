package scraper

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ESPNParser extracts article cards from the ESPN front page.
type ESPNParser struct{}

func (ESPNParser) Extract(doc *goquery.Document, baseURL string, now time.Time) []Record {
	var records []Record

	doc.Find("section.contentItem--collection").Each(func(_ int, card *goquery.Selection) {
		title := strings.TrimSpace(card.Find("h2.contentItem__title").First().Text())
		href, ok := card.Find("a.contentItem__padding").First().Attr("href")
		if title == "" || !ok || href == "" {
			return
		}

		rec := Record{
			Title:     title,
			Summary:   title, // ESPN cards carry no separate summary text
			SourceURL: absoluteURL(baseURL, href),
			// ESPN does not expose a timestamp on these cards
			PublishedAt: now,
		}

		img := card.Find("img.media-wrapper_image").First()
		if src, ok := img.Attr("src"); ok && src != "" {
			rec.ImageURL = src
		} else if src, ok := img.Attr("data-default-src"); ok {
			// lazy-loaded images keep the real URL in a fallback attribute
			rec.ImageURL = src
		}

		records = append(records, rec)
	})

	return records
}
