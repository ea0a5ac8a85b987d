package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"dash0times/internal/inject"
	"dash0times/internal/model"

	"github.com/gin-gonic/gin"
)

const (
	searchFailureRate    = 0.2
	recommendationCount  = 3
	searchUnavailableMsg = "Search service temporarily unavailable"
)

type ArticleHandler struct {
	articles ArticleSource
	inject   *inject.Injector
}

func NewArticleHandler(articles ArticleSource, inj *inject.Injector) *ArticleHandler {
	if inj == nil {
		inj = inject.New(nil)
	}
	return &ArticleHandler{articles: articles, inject: inj}
}

func (h *ArticleHandler) GetArticles(c *gin.Context) {
	viewer := parseViewer(c.GetHeader(ViewerHeader))

	if !pause(c, h.inject, 50, 150) {
		return
	}

	c.JSON(http.StatusOK, ArticlesResponse{
		Articles: toSummaries(h.articles.All()),
		Viewer:   viewer,
	})
}

func (h *ArticleHandler) GetArticle(c *gin.Context) {
	id := c.Param("id")
	viewer := parseViewer(c.GetHeader(ViewerHeader))

	if !pause(c, h.inject, 800, 1200) {
		return
	}

	article, ok := h.articles.ByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	c.JSON(http.StatusOK, ArticleResponse{
		Article: toDetail(article),
		Viewer:  viewer,
	})
}

func (h *ArticleHandler) Search(c *gin.Context) {
	query := c.Query("q")

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		c.JSON(http.StatusOK, SearchResponse{Results: []ArticleSummary{}, Query: query})
		return
	}

	if h.inject.ShouldFail(searchFailureRate) {
		slog.Warn("induced search failure", "query", query)
		c.JSON(http.StatusInternalServerError, gin.H{"error": searchUnavailableMsg})
		return
	}

	if !pause(c, h.inject, 100, 400) {
		return
	}

	var matches []model.Article
	for _, a := range h.articles.All() {
		if matchesQuery(a, needle) {
			matches = append(matches, a)
		}
	}

	c.JSON(http.StatusOK, SearchResponse{Results: toSummaries(matches), Query: query})
}

// matchesQuery expects needle to be trimmed and lower-cased already.
func matchesQuery(a model.Article, needle string) bool {
	if strings.Contains(strings.ToLower(a.Title), needle) ||
		strings.Contains(strings.ToLower(a.Excerpt), needle) {
		return true
	}
	for _, tag := range a.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

func (h *ArticleHandler) GetRecommendations(c *gin.Context) {
	// scoring, then ranking
	if !pause(c, h.inject, 200, 900) {
		return
	}
	if !pause(c, h.inject, 100, 300) {
		return
	}

	all := h.articles.All()
	picked := make([]model.Article, 0, recommendationCount)
	for _, idx := range h.inject.Pick(len(all), recommendationCount) {
		picked = append(picked, all[idx])
	}

	c.JSON(http.StatusOK, RecommendationResponse{Recommendations: toSummaries(picked)})
}

func (h *ArticleHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
