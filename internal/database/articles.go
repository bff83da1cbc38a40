package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

const articleColumns = `
	a.id, a.title, a.summary, a.content, a.source_url, a.image_url,
	a.published_at, a.category_id, c.name, a.is_featured, a.created_at`

const articleFrom = ` FROM articles a LEFT JOIN categories c ON c.id = a.category_id`

// CreateArticle inserts a new article into the database
func (db *DB) CreateArticle(ctx context.Context, article *Article) error {
	query := `
		INSERT INTO articles (title, summary, content, source_url, image_url, published_at, category_id, is_featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := db.pool.QueryRow(ctx, query,
		article.Title,
		article.Summary,
		article.Content,
		article.SourceURL,
		article.ImageURL,
		article.PublishedAt,
		article.CategoryID,
		article.IsFeatured,
	).Scan(&article.ID, &article.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create article: %w", err)
	}

	return nil
}

// ArticleExists checks if an article with the given source URL already exists
func (db *DB) ArticleExists(ctx context.Context, sourceURL string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM articles WHERE source_url = $1)`

	var exists bool
	err := db.pool.QueryRow(ctx, query, sourceURL).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check article existence: %w", err)
	}

	return exists, nil
}

// GetArticleByID retrieves an article by its ID
func (db *DB) GetArticleByID(ctx context.Context, id int) (*Article, error) {
	query := `SELECT` + articleColumns + articleFrom + ` WHERE a.id = $1`

	article, err := scanArticleRow(db.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("article not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get article: %w", err)
	}

	return article, nil
}

// GetRecentArticles retrieves articles ordered by publish time descending,
// skipping offset rows
func (db *DB) GetRecentArticles(ctx context.Context, limit, offset int) ([]*Article, error) {
	query := `SELECT` + articleColumns + articleFrom + `
		ORDER BY a.published_at DESC
		LIMIT $1 OFFSET $2`

	return db.queryArticles(ctx, query, limit, offset)
}

// GetFeaturedArticles retrieves the most recent featured articles
func (db *DB) GetFeaturedArticles(ctx context.Context, limit int) ([]*Article, error) {
	query := `SELECT` + articleColumns + articleFrom + `
		WHERE a.is_featured = TRUE
		ORDER BY a.published_at DESC
		LIMIT $1`

	return db.queryArticles(ctx, query, limit)
}

// GetArticlesByCategory retrieves the most recent articles in a category,
// skipping offset rows
func (db *DB) GetArticlesByCategory(ctx context.Context, categoryID, limit, offset int) ([]*Article, error) {
	query := `SELECT` + articleColumns + articleFrom + `
		WHERE a.category_id = $1
		ORDER BY a.published_at DESC
		LIMIT $2 OFFSET $3`

	return db.queryArticles(ctx, query, categoryID, limit, offset)
}

// CountArticlesByCategory returns the number of articles in a category
func (db *DB) CountArticlesByCategory(ctx context.Context, categoryID int) (int, error) {
	query := `SELECT COUNT(*) FROM articles WHERE category_id = $1`

	var count int
	err := db.pool.QueryRow(ctx, query, categoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count articles: %w", err)
	}

	return count, nil
}

func (db *DB) queryArticles(ctx context.Context, query string, args ...any) ([]*Article, error) {
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}
	defer rows.Close()

	var articles []*Article
	for rows.Next() {
		article, err := scanArticleRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, article)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating articles: %w", err)
	}

	return articles, nil
}

func scanArticleRow(row pgx.Row) (*Article, error) {
	var article Article
	err := row.Scan(
		&article.ID,
		&article.Title,
		&article.Summary,
		&article.Content,
		&article.SourceURL,
		&article.ImageURL,
		&article.PublishedAt,
		&article.CategoryID,
		&article.CategoryName,
		&article.IsFeatured,
		&article.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &article, nil
}
