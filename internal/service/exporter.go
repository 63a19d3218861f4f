package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/content-publisher/internal/models"
	"github.com/content-publisher/internal/repository"
	"github.com/rs/zerolog"
)

// Exporter renders the store as the ordered JSON snapshot the site reads
type Exporter struct {
	indent int
	log    zerolog.Logger
}

// NewExporter creates an Exporter; indent is the number of spaces per level, 0 for compact output
func NewExporter(indent int, log zerolog.Logger) *Exporter {
	return &Exporter{
		indent: indent,
		log:    log.With().Str("component", "exporter").Logger(),
	}
}

// Collect reads every stored article, newest first
func (e *Exporter) Collect(ctx context.Context, repo repository.ArticleRepository) ([]*models.Article, error) {
	articles := make([]*models.Article, 0)
	err := repo.StreamAll(ctx, func(article *models.Article) error {
		articles = append(articles, article)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read articles: %w", err)
	}
	return articles, nil
}

// Encode renders articles as a single JSON array document
func (e *Exporter) Encode(articles []*models.Article) ([]byte, error) {
	if articles == nil {
		articles = []*models.Article{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if e.indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", e.indent))
	}
	if err := enc.Encode(articles); err != nil {
		return nil, fmt.Errorf("failed to encode articles: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteSnapshot writes the snapshot document for repo to w
func (e *Exporter) WriteSnapshot(ctx context.Context, w io.Writer, repo repository.ArticleRepository) (int, error) {
	articles, err := e.Collect(ctx, repo)
	if err != nil {
		return 0, err
	}

	data, err := e.Encode(articles)
	if err != nil {
		return 0, err
	}

	if _, err := w.Write(data); err != nil {
		return 0, fmt.Errorf("failed to write snapshot: %w", err)
	}
	return len(articles), nil
}

// WriteFile replaces the file at path with the snapshot for repo. The document
// is written to a temporary file in the same directory and renamed into place,
// so readers see either the previous snapshot or the new one in full.
func (e *Exporter) WriteFile(ctx context.Context, path string, repo repository.ArticleRepository) (int, error) {
	articles, err := e.Collect(ctx, repo)
	if err != nil {
		return 0, err
	}

	data, err := e.Encode(articles)
	if err != nil {
		return 0, err
	}

	if err := writeFileAtomic(path, data); err != nil {
		return 0, err
	}

	e.log.Info().Str("path", path).Int("count", len(articles)).Msg("Snapshot written")
	return len(articles), nil
}

func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary export file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync export file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close export file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to set export file mode: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace export file: %w", err)
	}
	return nil
}
