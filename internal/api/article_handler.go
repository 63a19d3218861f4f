package api

import (
	"net/http"

	"github.com/content-publisher/internal/models"
	"github.com/content-publisher/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const maxListLimit = 500

// ArticleHandler serves stored articles the way the site would see them
type ArticleHandler struct {
	repo repository.ArticleRepository
	log  zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(repo repository.ArticleRepository, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		repo: repo,
		log:  log.With().Str("handler", "article").Logger(),
	}
}

type listArticlesQuery struct {
	Language string `form:"language"`
	Category string `form:"category"`
	Format   string `form:"format" binding:"omitempty,oneof=post article"`
	Featured bool   `form:"featured"`
	Drafts   bool   `form:"drafts"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=500"`
}

// ListArticles handles GET /v1/articles
func (h *ArticleHandler) ListArticles(c *gin.Context) {
	var q listArticlesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	if q.Category != "" && !models.IsValidCategory(q.Category) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "unknown category",
			"categories": models.CategoryNames(),
		})
		return
	}
	if q.Limit == 0 {
		q.Limit = maxListLimit
	}

	articles, err := h.repo.List(c.Request.Context(), models.ArticleFilter{
		Language:      q.Language,
		Category:      q.Category,
		Format:        q.Format,
		FeaturedOnly:  q.Featured,
		IncludeDrafts: q.Drafts,
		Limit:         q.Limit,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list articles")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list articles"})
		return
	}
	if articles == nil {
		articles = []*models.Article{}
	}

	c.JSON(http.StatusOK, gin.H{
		"articles": articles,
		"count":    len(articles),
	})
}

// GetArticle handles GET /v1/articles/:slug
func (h *ArticleHandler) GetArticle(c *gin.Context) {
	slug := c.Param("slug")

	article, err := h.repo.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		h.log.Error().Err(err).Str("slug", slug).Msg("Failed to get article")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get article"})
		return
	}
	if article == nil || (article.Draft && c.Query("drafts") != "true") {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}

	c.JSON(http.StatusOK, article)
}
