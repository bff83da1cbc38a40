package server

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"newsdesk/internal/database"
)

// fakeStore implements Store in memory, mirroring the documented query
// semantics (publish-time descending, slug-or-exact category match).
type fakeStore struct {
	articles   []*database.Article
	categories []*database.Category
}

func (f *fakeStore) sorted(filter func(*database.Article) bool) []*database.Article {
	var out []*database.Article
	for _, a := range f.articles {
		if filter == nil || filter(a) {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})
	return out
}

func window(list []*database.Article, limit, offset int) []*database.Article {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if len(list) > limit {
		list = list[:limit]
	}
	return list
}

func (f *fakeStore) GetFeaturedArticles(ctx context.Context, limit int) ([]*database.Article, error) {
	return window(f.sorted(func(a *database.Article) bool { return a.IsFeatured }), limit, 0), nil
}

func (f *fakeStore) GetRecentArticles(ctx context.Context, limit, offset int) ([]*database.Article, error) {
	return window(f.sorted(nil), limit, offset), nil
}

func (f *fakeStore) GetCategoriesWithArticles(ctx context.Context) ([]*database.Category, error) {
	var out []*database.Category
	for _, c := range f.categories {
		if len(f.sorted(inCategory(c.ID))) > 0 {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeStore) GetArticlesByCategory(ctx context.Context, categoryID, limit, offset int) ([]*database.Article, error) {
	return window(f.sorted(inCategory(categoryID)), limit, offset), nil
}

func (f *fakeStore) CountArticlesByCategory(ctx context.Context, categoryID int) (int, error) {
	return len(f.sorted(inCategory(categoryID))), nil
}

func (f *fakeStore) ResolveCategory(ctx context.Context, name string) (*database.Category, error) {
	for _, c := range f.categories {
		slug := strings.ReplaceAll(c.Name, " ", "-")
		if strings.EqualFold(c.Name, name) || strings.EqualFold(slug, name) {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetArticleByID(ctx context.Context, id int) (*database.Article, error) {
	for _, a := range f.articles {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, fmt.Errorf("article not found")
}

func inCategory(id int) func(*database.Article) bool {
	return func(a *database.Article) bool {
		return a.CategoryID != nil && *a.CategoryID == id
	}
}

var baseTime = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

// testArticle publishes each article one hour later than the previous n, so
// higher n means more recent.
func testArticle(id int, categoryID int, featured bool) *database.Article {
	a := &database.Article{
		ID:          id,
		Title:       fmt.Sprintf("Article %d", id),
		Summary:     fmt.Sprintf("Summary %d", id),
		SourceURL:   fmt.Sprintf("https://example.com/articles/%d", id),
		PublishedAt: baseTime.Add(time.Duration(id) * time.Hour),
		IsFeatured:  featured,
	}
	if categoryID != 0 {
		a.CategoryID = &categoryID
	}
	return a
}

func TestHomePageCarouselFallback(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	for i := 1; i <= 8; i++ {
		store.articles = append(store.articles, testArticle(i, 0, false))
	}

	page, err := NewFeedService(store).HomePage(context.Background())
	if err != nil {
		t.Fatalf("HomePage error: %v", err)
	}

	if len(page.Carousel) != 5 {
		t.Fatalf("expected 5 carousel articles, got %d", len(page.Carousel))
	}
	// No featured articles: carousel falls back to the most recent overall.
	for i, want := range []int{8, 7, 6, 5, 4} {
		if page.Carousel[i].ID != want {
			t.Errorf("carousel[%d] = article %d, want %d", i, page.Carousel[i].ID, want)
		}
	}
}

func TestHomePageCarouselPrefersFeatured(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	for i := 1; i <= 10; i++ {
		store.articles = append(store.articles, testArticle(i, 0, i <= 6))
	}

	page, err := NewFeedService(store).HomePage(context.Background())
	if err != nil {
		t.Fatalf("HomePage error: %v", err)
	}

	if len(page.Carousel) != 5 {
		t.Fatalf("expected 5 carousel articles, got %d", len(page.Carousel))
	}
	for _, a := range page.Carousel {
		if !a.IsFeatured {
			t.Errorf("carousel contains non-featured article %d", a.ID)
		}
	}
	// The 5 most recent featured: 6,5,4,3,2.
	if page.Carousel[0].ID != 6 {
		t.Errorf("carousel[0] = article %d, want 6", page.Carousel[0].ID)
	}
}

func TestHomePageLatestAndRecent(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	for i := 1; i <= 7; i++ {
		store.articles = append(store.articles, testArticle(i, 0, false))
	}

	page, err := NewFeedService(store).HomePage(context.Background())
	if err != nil {
		t.Fatalf("HomePage error: %v", err)
	}

	if page.Latest == nil || page.Latest.ID != 7 {
		t.Fatalf("latest should be the most recent article, got %+v", page.Latest)
	}
	if len(page.Recent) != 4 {
		t.Fatalf("expected 4 recent articles, got %d", len(page.Recent))
	}
	// Recent skips the latest article.
	for i, want := range []int{6, 5, 4, 3} {
		if page.Recent[i].ID != want {
			t.Errorf("recent[%d] = article %d, want %d", i, page.Recent[i].ID, want)
		}
	}
}

func TestHomePageOmitsEmptyCategories(t *testing.T) {
	t.Parallel()

	store := &fakeStore{
		categories: []*database.Category{
			{ID: 1, Name: "BBC Sports"},
			{ID: 2, Name: "Empty Corner"},
		},
	}
	for i := 1; i <= 6; i++ {
		store.articles = append(store.articles, testArticle(i, 1, false))
	}

	page, err := NewFeedService(store).HomePage(context.Background())
	if err != nil {
		t.Fatalf("HomePage error: %v", err)
	}

	if len(page.Sections) != 1 {
		t.Fatalf("expected 1 category section, got %d", len(page.Sections))
	}
	section := page.Sections[0]
	if section.Category.Name != "BBC Sports" {
		t.Errorf("unexpected section category: %s", section.Category.Name)
	}
	if len(section.Articles) != 4 {
		t.Errorf("expected 4 grid articles, got %d", len(section.Articles))
	}
	if len(section.LatestPosts) != 5 {
		t.Errorf("expected 5 latest posts, got %d", len(section.LatestPosts))
	}
}

func TestCategoryPagePagination(t *testing.T) {
	t.Parallel()

	store := &fakeStore{
		categories: []*database.Category{{ID: 1, Name: "BBC Sports"}},
	}
	for i := 1; i <= 12; i++ {
		store.articles = append(store.articles, testArticle(i, 1, false))
	}

	svc := NewFeedService(store)

	page1, err := svc.CategoryPage(context.Background(), "BBC Sports", 1)
	if err != nil {
		t.Fatalf("CategoryPage error: %v", err)
	}
	if len(page1.Articles) != 5 {
		t.Errorf("page 1: expected 5 articles, got %d", len(page1.Articles))
	}
	if !page1.HasNext || page1.NextPage == nil || *page1.NextPage != 2 {
		t.Errorf("page 1: expected has_next with next_page=2, got %+v", page1)
	}
	if page1.TotalPages != 3 {
		t.Errorf("page 1: expected 3 total pages, got %d", page1.TotalPages)
	}

	page3, err := svc.CategoryPage(context.Background(), "BBC Sports", 3)
	if err != nil {
		t.Fatalf("CategoryPage error: %v", err)
	}
	if len(page3.Articles) != 2 {
		t.Errorf("page 3: expected 2 articles, got %d", len(page3.Articles))
	}
	if page3.HasNext || page3.NextPage != nil {
		t.Errorf("page 3: expected no next page, got %+v", page3)
	}
}

func TestCategoryPageSlugTolerance(t *testing.T) {
	t.Parallel()

	store := &fakeStore{
		categories: []*database.Category{{ID: 1, Name: "BBC Sports"}},
		articles:   []*database.Article{testArticle(1, 1, false)},
	}
	svc := NewFeedService(store)

	for _, name := range []string{"BBC Sports", "bbc-sports", "Bbc-Sports"} {
		page, err := svc.CategoryPage(context.Background(), name, 1)
		if err != nil {
			t.Fatalf("CategoryPage(%q) error: %v", name, err)
		}
		if page.Category.Name != "BBC Sports" {
			t.Errorf("CategoryPage(%q) resolved to %q", name, page.Category.Name)
		}
	}
}

func TestCategoryPageUnknownCategory(t *testing.T) {
	t.Parallel()

	svc := NewFeedService(&fakeStore{})

	_, err := svc.CategoryPage(context.Background(), "no-such-category", 1)
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCategoryPageRejectsBadPageNumber(t *testing.T) {
	t.Parallel()

	store := &fakeStore{
		categories: []*database.Category{{ID: 1, Name: "BBC Sports"}},
	}
	svc := NewFeedService(store)

	if _, err := svc.CategoryPage(context.Background(), "BBC Sports", 0); err == nil {
		t.Fatal("expected error for page 0")
	}
}
