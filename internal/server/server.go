package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"newsdesk/internal/config"
	"newsdesk/internal/scraper"
)

// Pipeline triggers a scrape run; satisfied by *scraper.Scraper
type Pipeline interface {
	Run(ctx context.Context) scraper.Stats
}

// Server represents the HTTP server
type Server struct {
	router   *chi.Mux
	store    Store
	feed     *FeedService
	pipeline Pipeline
	config   *config.Config
}

// New creates a new server instance
func New(store Store, pipeline Pipeline, cfg *config.Config) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		store:    store,
		feed:     NewFeedService(store),
		pipeline: pipeline,
		config:   cfg,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Middleware
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Timeout(60 * time.Second))

	// Routes
	s.router.Get("/", s.handleIndex)
	s.router.Get("/articles/{id}", s.handleArticleDetail)
	s.router.Get("/most-viewed/", s.handleMostViewed)
	s.router.Get("/category/{name}/", s.handleCategoryList)
	// All methods on purpose: errors, including wrong method, are reported
	// in the JSON body with HTTP 200.
	s.router.HandleFunc("/load-more-articles/", s.handleLoadMore)
	s.router.Post("/scrape", s.handleScrape)
	s.router.Get("/rss.xml", s.handleRSS)

	// Health check
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

// Router returns the Chi router
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	log.Printf("Starting server on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

// handleIndex renders the home page
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := s.feed.HomePage(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to build home page: %v", err), http.StatusInternalServerError)
		return
	}

	renderPage(w, "index.html", page)
}

// handleArticleDetail renders a single article
func (s *Server) handleArticleDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid article ID", http.StatusBadRequest)
		return
	}

	article, err := s.store.GetArticleByID(r.Context(), id)
	if err != nil {
		http.Error(w, fmt.Sprintf("Article not found: %v", err), http.StatusNotFound)
		return
	}

	renderPage(w, "article.html", article)
}

// handleMostViewed is a placeholder; view counting is not implemented
func (s *Server) handleMostViewed(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("This is the list of most viewed articles."))
}

// handleCategoryList is a placeholder; real pagination is served by the
// load-more endpoint
func (s *Server) handleCategoryList(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	fmt.Fprintf(w, "This is the list of articles for the %s category.", name)
}

// loadMoreResponse is the JSON envelope of the load-more endpoint. Failure
// is signaled in the body; the HTTP status is always 200.
type loadMoreResponse struct {
	Success     bool   `json:"success"`
	HTML        string `json:"html"`
	HasNext     bool   `json:"has_next"`
	NextPage    *int   `json:"next_page"`
	TotalPages  int    `json:"total_pages"`
	CurrentPage int    `json:"current_page"`
}

type loadMoreError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// handleLoadMore serves one page of a category's articles as a rendered
// HTML fragment wrapped in JSON
func (s *Server) handleLoadMore(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		writeLoadMoreError(w, "only GET is supported")
		return
	}

	name := r.URL.Query().Get("category")
	if name == "" {
		writeLoadMoreError(w, "category parameter is required")
		return
	}

	page := 1
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		p, err := strconv.Atoi(pageStr)
		if err != nil || p < 1 {
			writeLoadMoreError(w, fmt.Sprintf("invalid page number %q", pageStr))
			return
		}
		page = p
	}

	result, err := s.feed.CategoryPage(r.Context(), name, page)
	if err != nil {
		writeLoadMoreError(w, err.Error())
		return
	}

	html, err := renderArticleCards(result.Articles)
	if err != nil {
		writeLoadMoreError(w, err.Error())
		return
	}

	json.NewEncoder(w).Encode(loadMoreResponse{
		Success:     true,
		HTML:        html,
		HasNext:     result.HasNext,
		NextPage:    result.NextPage,
		TotalPages:  result.TotalPages,
		CurrentPage: result.CurrentPage,
	})
}

func writeLoadMoreError(w http.ResponseWriter, message string) {
	json.NewEncoder(w).Encode(loadMoreError{Success: false, Error: message})
}

// handleScrape triggers a manual scrape run
func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	if s.pipeline == nil {
		http.Error(w, "Scraper is not configured", http.StatusServiceUnavailable)
		return
	}

	log.Println("Starting manual scrape...")
	stats := s.pipeline.Run(r.Context())

	w.Header().Set("Content-Type", "text/html")
	fmt.Fprintf(w, `<div class="scrape-result">Scraped %d new articles (%d skipped).</div>`, stats.New, stats.Skipped)
}

// handleRSS generates and serves the RSS feed
func (s *Server) handleRSS(w http.ResponseWriter, r *http.Request) {
	articles, err := s.store.GetRecentArticles(r.Context(), 50, 0)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to fetch articles: %v", err), http.StatusInternalServerError)
		return
	}

	feed, err := GenerateRSSFeed(articles, s.config)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to generate feed: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Write([]byte(feed))
}
