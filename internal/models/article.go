package models

import (
	"strings"
	"time"
)

// Article formats
const (
	FormatPost    = "post"
	FormatArticle = "article"
)

// Defaults applied to records that leave a field unset
const (
	DefaultLanguage    = "en"
	DefaultFormat      = FormatPost
	DefaultReadingTime = 3
)

// ValidFormats defines allowed article formats
var ValidFormats = map[string]bool{
	FormatPost:    true,
	FormatArticle: true,
}

// Article is a single content record, keyed by slug.
// Its JSON form is the public shape written to the export snapshot.
type Article struct {
	Slug          string  `json:"slug" yaml:"slug" validate:"required,slug"`
	Title         string  `json:"title" yaml:"title" validate:"required"`
	Excerpt       string  `json:"excerpt" yaml:"excerpt" validate:"required"`
	Content       string  `json:"content" yaml:"content" validate:"required"`
	Category      string  `json:"category" yaml:"category" validate:"required,category"`
	CategoryLabel string  `json:"categoryLabel" yaml:"categoryLabel" validate:"required"`
	Language      string  `json:"language" yaml:"language" validate:"required,langcode"`
	Format        string  `json:"format" yaml:"format" validate:"required,oneof=post article"`
	PublishedDate string  `json:"publishedDate" yaml:"publishedDate" validate:"required,datetime=2006-01-02"`
	ReadingTime   int     `json:"readingTime" yaml:"readingTime" validate:"gt=0"`
	Image         *string `json:"image,omitempty" yaml:"image,omitempty"`
	YoutubeURL    *string `json:"youtubeUrl,omitempty" yaml:"youtubeUrl,omitempty" validate:"omitempty,url"`
	PdfURL        *string `json:"pdfUrl,omitempty" yaml:"pdfUrl,omitempty"`
	Featured      bool    `json:"featured" yaml:"featured"`
	Draft         bool    `json:"draft" yaml:"draft"`
}

// ApplyDefaults returns a copy of the article with defaults filled in
// and blank optional fields normalised to absent.
func (a Article) ApplyDefaults() *Article {
	if a.Language == "" {
		a.Language = DefaultLanguage
	}
	if a.Format == "" {
		a.Format = DefaultFormat
	}
	if a.ReadingTime == 0 {
		a.ReadingTime = DefaultReadingTime
	}
	if a.CategoryLabel == "" {
		a.CategoryLabel = CategoryLabel(a.Category)
	}
	a.Image = normalizeOptional(a.Image)
	a.YoutubeURL = normalizeOptional(a.YoutubeURL)
	a.PdfURL = normalizeOptional(a.PdfURL)
	return &a
}

func normalizeOptional(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := *s
	return &v
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}

// ArticleFilter narrows read queries against the store
type ArticleFilter struct {
	Language      string
	Category      string
	Format        string
	FeaturedOnly  bool
	IncludeDrafts bool
	Limit         int
}

// PublishResult reports the outcome of a publish run
type PublishResult struct {
	RunID      string        `json:"run_id"`
	Processed  int           `json:"processed"`
	TotalRows  int           `json:"total_rows"`
	Exported   int           `json:"exported"`
	ExportPath string        `json:"export_path"`
	Duration   time.Duration `json:"duration"`
}

// ExportResult reports the outcome of an export-only run
type ExportResult struct {
	RunID    string        `json:"run_id"`
	Exported int           `json:"exported"`
	Path     string        `json:"path"`
	Duration time.Duration `json:"duration"`
}
