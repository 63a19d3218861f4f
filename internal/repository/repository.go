package repository

import (
	"context"

	"github.com/content-publisher/internal/models"
	"github.com/jmoiron/sqlx"
)

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	// UpsertBatch writes every article in one transaction, replacing whole rows
	// on slug conflict. Either all articles are committed or none are.
	UpsertBatch(ctx context.Context, articles []*models.Article) (int, error)
	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Count(ctx context.Context) (int, error)
	// List returns articles matching filter, newest first
	List(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, error)
	// StreamAll visits every stored article, newest first
	StreamAll(ctx context.Context, callback func(*models.Article) error) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	Article ArticleRepository
}

// New creates all repositories with the given database connection
func New(db *sqlx.DB) *Repositories {
	return &Repositories{
		Article: NewArticleRepo(db),
	}
}
