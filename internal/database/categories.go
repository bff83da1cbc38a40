package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// GetOrCreateCategory resolves a category name to its row, inserting it if
// it does not exist yet
func (db *DB) GetOrCreateCategory(ctx context.Context, name string) (*Category, error) {
	query := `
		INSERT INTO categories (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name
	`

	var category Category
	err := db.pool.QueryRow(ctx, query, name).Scan(&category.ID, &category.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create category: %w", err)
	}

	return &category, nil
}

// ResolveCategory looks up a category by name, accepting either the stored
// name or its hyphen-for-space slug form, case-insensitively. Returns nil
// if no category matches (not an error, mirroring the lookup semantics of
// the pagination endpoint).
func (db *DB) ResolveCategory(ctx context.Context, name string) (*Category, error) {
	query := `
		SELECT id, name FROM categories
		WHERE LOWER(name) = LOWER($1)
		   OR LOWER(REPLACE(name, ' ', '-')) = LOWER($1)
	`

	var category Category
	err := db.pool.QueryRow(ctx, query, name).Scan(&category.ID, &category.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve category: %w", err)
	}

	return &category, nil
}

// GetCategoriesWithArticles retrieves all categories that have at least one
// article, in insertion order
func (db *DB) GetCategoriesWithArticles(ctx context.Context) ([]*Category, error) {
	query := `
		SELECT DISTINCT c.id, c.name
		FROM categories c
		JOIN articles a ON a.category_id = c.id
		ORDER BY c.id
	`

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		var category Category
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, &category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}
