package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/content-publisher/internal/models"
	"github.com/jmoiron/sqlx"
)

const articleColumns = `slug, title, excerpt, content, category, category_label, language, format,
		published_date, reading_time, image, youtube_url, pdf_url, featured, draft`

// Ordering of every read path; slug breaks ties between equal dates
const articleOrder = `ORDER BY published_date DESC, slug ASC`

const upsertArticleQuery = `
		INSERT INTO articles (` + articleColumns + `)
		VALUES (:slug, :title, :excerpt, :content, :category, :category_label, :language, :format,
			:published_date, :reading_time, :image, :youtube_url, :pdf_url, :featured, :draft)
		ON CONFLICT (slug) DO UPDATE SET
			title = excluded.title,
			excerpt = excluded.excerpt,
			content = excluded.content,
			category = excluded.category,
			category_label = excluded.category_label,
			language = excluded.language,
			format = excluded.format,
			published_date = excluded.published_date,
			reading_time = excluded.reading_time,
			image = excluded.image,
			youtube_url = excluded.youtube_url,
			pdf_url = excluded.pdf_url,
			featured = excluded.featured,
			draft = excluded.draft
	`

// articleRow is the storage form of an article: nullable optionals, 0/1 flags
type articleRow struct {
	Slug          string         `db:"slug"`
	Title         string         `db:"title"`
	Excerpt       string         `db:"excerpt"`
	Content       string         `db:"content"`
	Category      string         `db:"category"`
	CategoryLabel string         `db:"category_label"`
	Language      string         `db:"language"`
	Format        string         `db:"format"`
	PublishedDate string         `db:"published_date"`
	ReadingTime   int            `db:"reading_time"`
	Image         sql.NullString `db:"image"`
	YoutubeURL    sql.NullString `db:"youtube_url"`
	PdfURL        sql.NullString `db:"pdf_url"`
	Featured      int            `db:"featured"`
	Draft         int            `db:"draft"`
}

func toRow(a *models.Article) articleRow {
	return articleRow{
		Slug:          a.Slug,
		Title:         a.Title,
		Excerpt:       a.Excerpt,
		Content:       a.Content,
		Category:      a.Category,
		CategoryLabel: a.CategoryLabel,
		Language:      a.Language,
		Format:        a.Format,
		PublishedDate: a.PublishedDate,
		ReadingTime:   a.ReadingTime,
		Image:         nullString(a.Image),
		YoutubeURL:    nullString(a.YoutubeURL),
		PdfURL:        nullString(a.PdfURL),
		Featured:      boolToInt(a.Featured),
		Draft:         boolToInt(a.Draft),
	}
}

func (r articleRow) toArticle() *models.Article {
	return &models.Article{
		Slug:          r.Slug,
		Title:         r.Title,
		Excerpt:       r.Excerpt,
		Content:       r.Content,
		Category:      r.Category,
		CategoryLabel: r.CategoryLabel,
		Language:      r.Language,
		Format:        r.Format,
		PublishedDate: r.PublishedDate,
		ReadingTime:   r.ReadingTime,
		Image:         stringPtr(r.Image),
		YoutubeURL:    stringPtr(r.YoutubeURL),
		PdfURL:        stringPtr(r.PdfURL),
		Featured:      r.Featured != 0,
		Draft:         r.Draft != 0,
	}
}

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *sqlx.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *sqlx.DB) ArticleRepository {
	return &articleRepo{db: db}
}

// UpsertBatch inserts or fully replaces every article inside one transaction
func (r *articleRepo) UpsertBatch(ctx context.Context, articles []*models.Article) (int, error) {
	if len(articles) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareNamedContext(ctx, upsertArticleQuery)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, article := range articles {
		if _, err := stmt.ExecContext(ctx, toRow(article)); err != nil {
			return 0, fmt.Errorf("upsert article slug=%s: %w", article.Slug, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return len(articles), nil
}

// GetBySlug retrieves an article by slug, or nil when it does not exist
func (r *articleRepo) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	query := r.db.Rebind(`SELECT ` + articleColumns + ` FROM articles WHERE slug = ?`)

	var row articleRow
	err := r.db.GetContext(ctx, &row, query, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return row.toArticle(), nil
}

// SlugExists checks if an article with the given slug exists
func (r *articleRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		r.db.Rebind("SELECT EXISTS(SELECT 1 FROM articles WHERE slug = ?)"), slug).Scan(&exists)
	return exists, err
}

// Count returns the total number of articles
func (r *articleRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles").Scan(&count)
	return count, err
}

// List returns articles matching filter, newest first
func (r *articleRepo) List(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.Language != "" {
		where = append(where, "language = ?")
		args = append(args, filter.Language)
	}
	if filter.Category != "" {
		where = append(where, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.Format != "" {
		where = append(where, "format = ?")
		args = append(args, filter.Format)
	}
	if filter.FeaturedOnly {
		where = append(where, "featured = 1")
	}
	if !filter.IncludeDrafts {
		where = append(where, "draft = 0")
	}

	query := `SELECT ` + articleColumns + ` FROM articles`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ` + articleOrder
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	var rows []articleRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}

	articles := make([]*models.Article, 0, len(rows))
	for _, row := range rows {
		articles = append(articles, row.toArticle())
	}
	return articles, nil
}

// StreamAll streams all articles for export, newest first
func (r *articleRepo) StreamAll(ctx context.Context, callback func(*models.Article) error) error {
	rows, err := r.db.QueryxContext(ctx, `SELECT `+articleColumns+` FROM articles `+articleOrder)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var row articleRow
		if err := rows.StructScan(&row); err != nil {
			return err
		}
		if err := callback(row.toArticle()); err != nil {
			return err
		}
	}

	return rows.Err()
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
