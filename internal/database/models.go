package database

import "time"

// Category groups articles under a single label. Rows are created lazily the
// first time the scraper sees a new category name and are never deleted by
// the pipeline.
type Category struct {
	ID   int    `db:"id"`
	Name string `db:"name"`
}

// Article represents a scraped news article
type Article struct {
	ID           int       `db:"id"`
	Title        string    `db:"title"`
	Summary      string    `db:"summary"`
	Content      string    `db:"content"`
	SourceURL    string    `db:"source_url"`
	ImageURL     *string   `db:"image_url"`
	PublishedAt  time.Time `db:"published_at"`
	CategoryID   *int      `db:"category_id"`
	CategoryName *string   `db:"-"`
	IsFeatured   bool      `db:"is_featured"`
	CreatedAt    time.Time `db:"created_at"`
}
