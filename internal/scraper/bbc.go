package scraper

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
)

// BBCSportParser extracts article promos from the BBC Sport homepage.
type BBCSportParser struct{}

var relativeTimeExpr = regexp.MustCompile(`^(\d+)([mhd])$`)

func (BBCSportParser) Extract(doc *goquery.Document, baseURL string, now time.Time) []Record {
	var records []Record

	doc.Find(`div[data-testid="promo"][type="article"]`).Each(func(_ int, card *goquery.Selection) {
		title := strings.TrimSpace(card.Find("h3 a span").First().Text())
		href, ok := card.Find("h3 a").First().Attr("href")
		if title == "" || !ok || href == "" {
			return
		}

		summary := strings.TrimSpace(card.Find("p.ssrcss-1q0x1qg-Paragraph").First().Text())
		if summary == "" {
			summary = title
		}

		rec := Record{
			Title:     title,
			Summary:   summary,
			SourceURL: absoluteURL(baseURL, href),
		}

		if src, ok := card.Find("img").First().Attr("src"); ok && src != "" {
			rec.ImageURL = src
		}

		timeText := strings.TrimSpace(card.Find("span.ssrcss-61mhsj-MetadataText").First().Text())
		rec.PublishedAt = parsePublishedAt(timeText, now)

		records = append(records, rec)
	})

	return records
}

// parsePublishedAt converts BBC's relative timestamps ("5h", "30m", "2d")
// into absolute times anchored at now. Absolute text goes through dateparse;
// anything unparseable falls back to the ingestion time.
func parsePublishedAt(text string, now time.Time) time.Time {
	if m := relativeTimeExpr.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			switch m[2] {
			case "m":
				return now.Add(-time.Duration(n) * time.Minute)
			case "h":
				return now.Add(-time.Duration(n) * time.Hour)
			case "d":
				return now.AddDate(0, 0, -n)
			}
		}
	}

	if text != "" {
		if t, err := dateparse.ParseAny(text); err == nil {
			return t
		}
	}

	return now
}
