package server

import (
	"context"
	"errors"
	"fmt"

	"newsdesk/internal/database"
)

// View-model bounds. The grid and latest-posts slices come from the same
// five-article fetch; the grid just shows one fewer.
const (
	carouselSize     = 5
	recentCount      = 4
	gridCount        = 4
	latestPostsCount = 5
	pageSize         = 5
)

// ErrCategoryNotFound is returned when a requested category name matches
// neither a stored name nor its slug form.
var ErrCategoryNotFound = errors.New("category not found")

// Store is the read-side subset of database operations the server needs
type Store interface {
	GetFeaturedArticles(ctx context.Context, limit int) ([]*database.Article, error)
	GetRecentArticles(ctx context.Context, limit, offset int) ([]*database.Article, error)
	GetCategoriesWithArticles(ctx context.Context) ([]*database.Category, error)
	GetArticlesByCategory(ctx context.Context, categoryID, limit, offset int) ([]*database.Article, error)
	CountArticlesByCategory(ctx context.Context, categoryID int) (int, error)
	ResolveCategory(ctx context.Context, name string) (*database.Category, error)
	GetArticleByID(ctx context.Context, id int) (*database.Article, error)
}

// FeedService assembles the read-side view models from stored articles
type FeedService struct {
	store Store
}

// NewFeedService creates a feed query service over the given store
func NewFeedService(store Store) *FeedService {
	return &FeedService{store: store}
}

// CategorySection is one category's slice of the home page
type CategorySection struct {
	Category    *database.Category
	Articles    []*database.Article // grid slice
	LatestPosts []*database.Article // sidebar slice
}

// HomePage is the view model for the front page
type HomePage struct {
	Carousel []*database.Article
	Latest   *database.Article
	Recent   []*database.Article
	Sections []CategorySection
}

// HomePage builds the front-page view model: the featured carousel (falling
// back to the most recent articles when nothing is featured), the single
// latest article, the next few recent ones, and a bounded slice per
// non-empty category.
func (f *FeedService) HomePage(ctx context.Context) (*HomePage, error) {
	page := &HomePage{}

	carousel, err := f.store.GetFeaturedArticles(ctx, carouselSize)
	if err != nil {
		return nil, fmt.Errorf("load featured articles: %w", err)
	}
	if len(carousel) == 0 {
		carousel, err = f.store.GetRecentArticles(ctx, carouselSize, 0)
		if err != nil {
			return nil, fmt.Errorf("load carousel fallback: %w", err)
		}
	}
	page.Carousel = carousel

	latest, err := f.store.GetRecentArticles(ctx, 1, 0)
	if err != nil {
		return nil, fmt.Errorf("load latest article: %w", err)
	}
	if len(latest) > 0 {
		page.Latest = latest[0]
	}

	page.Recent, err = f.store.GetRecentArticles(ctx, recentCount, 1)
	if err != nil {
		return nil, fmt.Errorf("load recent articles: %w", err)
	}

	categories, err := f.store.GetCategoriesWithArticles(ctx)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	for _, category := range categories {
		latestPosts, err := f.store.GetArticlesByCategory(ctx, category.ID, latestPostsCount, 0)
		if err != nil {
			return nil, fmt.Errorf("load articles for category %s: %w", category.Name, err)
		}
		if len(latestPosts) == 0 {
			continue
		}
		grid := latestPosts
		if len(grid) > gridCount {
			grid = grid[:gridCount]
		}
		page.Sections = append(page.Sections, CategorySection{
			Category:    category,
			Articles:    grid,
			LatestPosts: latestPosts,
		})
	}

	return page, nil
}

// CategoryPage is one fixed-size page of a category's articles
type CategoryPage struct {
	Category    *database.Category
	Articles    []*database.Article
	CurrentPage int
	TotalPages  int
	HasNext     bool
	NextPage    *int
}

// CategoryPage returns the given 1-based page of a category's articles,
// newest first. The name may be the stored category name or its
// hyphen-for-space slug, case-insensitive either way.
func (f *FeedService) CategoryPage(ctx context.Context, name string, page int) (*CategoryPage, error) {
	if page < 1 {
		return nil, fmt.Errorf("invalid page number %d", page)
	}

	category, err := f.store.ResolveCategory(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("resolve category: %w", err)
	}
	if category == nil {
		return nil, fmt.Errorf("%w: %q", ErrCategoryNotFound, name)
	}

	total, err := f.store.CountArticlesByCategory(ctx, category.ID)
	if err != nil {
		return nil, fmt.Errorf("count articles: %w", err)
	}
	totalPages := (total + pageSize - 1) / pageSize

	articles, err := f.store.GetArticlesByCategory(ctx, category.ID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("load page: %w", err)
	}

	result := &CategoryPage{
		Category:    category,
		Articles:    articles,
		CurrentPage: page,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
	}
	if result.HasNext {
		next := page + 1
		result.NextPage = &next
	}

	return result, nil
}
