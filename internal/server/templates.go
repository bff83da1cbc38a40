package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"newsdesk/internal/database"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

func renderPage(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		http.Error(w, fmt.Sprintf("Failed to render page: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// renderArticleCards renders the article-card fragment served to the
// load-more endpoint
func renderArticleCards(articles []*database.Article) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "cards.html", articles); err != nil {
		return "", fmt.Errorf("render article cards: %w", err)
	}
	return buf.String(), nil
}
