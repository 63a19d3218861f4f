package api

import (
	"net/http"
	"time"

	"github.com/content-publisher/internal/repository"
	"github.com/content-publisher/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const snapshotTimeout = 30 * time.Second

// ExportHandler handles export endpoints
type ExportHandler struct {
	repo     repository.ArticleRepository
	exporter *service.Exporter
	log      zerolog.Logger
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(repo repository.ArticleRepository, exporter *service.Exporter, log zerolog.Logger) *ExportHandler {
	return &ExportHandler{
		repo:     repo,
		exporter: exporter,
		log:      log.With().Str("handler", "export").Logger(),
	}
}

// StreamSnapshot handles GET /v1/exports/articles
// Renders the same document the publisher writes to disk, drafts included
func (h *ExportHandler) StreamSnapshot(c *gin.Context) {
	ctx, cancel := contextWithTimeout(c, snapshotTimeout)
	defer cancel()

	c.Header("Content-Type", "application/json; charset=utf-8")

	n, err := h.exporter.WriteSnapshot(ctx, c.Writer, h.repo)
	if err != nil {
		h.log.Error().Err(err).Msg("Snapshot export failed")
		// Can't return error JSON after streaming has started
		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export articles"})
		}
		return
	}

	h.log.Debug().Int("count", n).Msg("Snapshot served")
}
