package server

import (
	"fmt"
	"time"

	"github.com/gorilla/feeds"

	"newsdesk/internal/config"
	"newsdesk/internal/database"
)

// GenerateRSSFeed creates an RSS feed from articles
func GenerateRSSFeed(articles []*database.Article, cfg *config.Config) (string, error) {
	feed := &feeds.Feed{
		Title:       cfg.FeedTitle,
		Link:        &feeds.Link{Href: cfg.FeedLink},
		Description: cfg.FeedDescription,
		Author:      &feeds.Author{Name: cfg.FeedAuthor},
		Created:     time.Now(),
	}

	feed.Items = make([]*feeds.Item, 0, len(articles))
	for _, article := range articles {
		feed.Items = append(feed.Items, &feeds.Item{
			Title:       article.Title,
			Link:        &feeds.Link{Href: article.SourceURL},
			Id:          fmt.Sprintf("%s/articles/%d", cfg.FeedLink, article.ID),
			Description: article.Summary,
			Created:     article.PublishedAt,
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		return "", fmt.Errorf("failed to generate RSS: %w", err)
	}

	return rss, nil
}
