package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/content-publisher/internal/models"
)

func validArticle() *models.Article {
	return &models.Article{
		Slug:          "reduce-changeover-time",
		Title:         "Reduce changeover time",
		Excerpt:       "Five ways to shorten changeovers",
		Content:       "## Changeovers\n\nSMED in practice.",
		Category:      "shop-floor",
		CategoryLabel: "Shop Floor",
		Language:      "en",
		Format:        models.FormatPost,
		PublishedDate: "2025-03-14",
		ReadingTime:   5,
	}
}

func TestValidateArticle(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name       string
		mutate     func(a *models.Article)
		wantErrors int
		wantFields []string
	}{
		{
			name:       "valid article with required fields",
			mutate:     func(a *models.Article) {},
			wantErrors: 0,
		},
		{
			name: "valid article with optional fields",
			mutate: func(a *models.Article) {
				a.Image = models.StringPtr("/images/changeover.jpg")
				a.YoutubeURL = models.StringPtr("https://www.youtube.com/watch?v=xyz")
				a.PdfURL = models.StringPtr("/files/changeover.pdf")
				a.Language = "nl-BE"
				a.Format = models.FormatArticle
				a.Featured = true
				a.Draft = true
			},
			wantErrors: 0,
		},
		{
			name:       "missing title - required field",
			mutate:     func(a *models.Article) { a.Title = "" },
			wantErrors: 1,
			wantFields: []string{"title"},
		},
		{
			name:       "missing slug",
			mutate:     func(a *models.Article) { a.Slug = "" },
			wantErrors: 1,
			wantFields: []string{"slug"},
		},
		{
			name:       "slug not kebab-case",
			mutate:     func(a *models.Article) { a.Slug = "Reduce Changeover" },
			wantErrors: 1,
			wantFields: []string{"slug"},
		},
		{
			name:       "category outside closed set",
			mutate:     func(a *models.Article) { a.Category = "gardening" },
			wantErrors: 1,
			wantFields: []string{"category"},
		},
		{
			name:       "invalid format",
			mutate:     func(a *models.Article) { a.Format = "video" },
			wantErrors: 1,
			wantFields: []string{"format"},
		},
		{
			name:       "invalid published date",
			mutate:     func(a *models.Article) { a.PublishedDate = "14/03/2025" },
			wantErrors: 1,
			wantFields: []string{"publishedDate"},
		},
		{
			name:       "non-positive reading time",
			mutate:     func(a *models.Article) { a.ReadingTime = -2 },
			wantErrors: 1,
			wantFields: []string{"readingTime"},
		},
		{
			name:       "invalid language code",
			mutate:     func(a *models.Article) { a.Language = "english" },
			wantErrors: 1,
			wantFields: []string{"language"},
		},
		{
			name:       "invalid youtube url",
			mutate:     func(a *models.Article) { a.YoutubeURL = models.StringPtr("not a url") },
			wantErrors: 1,
			wantFields: []string{"youtubeUrl"},
		},
		{
			name: "multiple validation errors",
			mutate: func(a *models.Article) {
				a.Title = ""
				a.Excerpt = ""
				a.Content = ""
				a.CategoryLabel = ""
				a.PublishedDate = ""
			},
			wantErrors: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			article := validArticle()
			tt.mutate(article)

			errors := validator.ValidateArticle(article)
			if len(errors) != tt.wantErrors {
				t.Errorf("ValidateArticle() got %d errors, want %d. Errors: %v", len(errors), tt.wantErrors, errors)
			}

			for _, wantField := range tt.wantFields {
				found := false
				for _, err := range errors {
					if err.Field == wantField {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("Expected error for field '%s' but not found", wantField)
				}
			}
		})
	}
}

func TestValidateArticle_RequiredMessage(t *testing.T) {
	article := validArticle()
	article.Title = ""

	errors := NewValidator().ValidateArticle(article)
	if len(errors) != 1 {
		t.Fatalf("Expected 1 error, got %v", errors)
	}
	if errors[0].Message != "title is required" {
		t.Errorf("Unexpected message %q", errors[0].Message)
	}
	if errors[0].Value != nil {
		t.Errorf("Required errors should not carry a value, got %v", errors[0].Value)
	}
}

func TestValidateBatch(t *testing.T) {
	validator := NewValidator()

	t.Run("valid batch", func(t *testing.T) {
		a := validArticle()
		b := validArticle()
		b.Slug = "plan-capacity"

		if err := validator.ValidateBatch([]*models.Article{a, b}); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("empty batch", func(t *testing.T) {
		if err := validator.ValidateBatch(nil); err != nil {
			t.Errorf("Expected no error for empty batch, got %v", err)
		}
	})

	t.Run("reports index and slug of invalid record", func(t *testing.T) {
		batch := make([]*models.Article, 0, 6)
		for _, slug := range []string{"a", "b", "c", "d", "e"} {
			a := validArticle()
			a.Slug = slug
			batch = append(batch, a)
		}
		bad := validArticle()
		bad.Slug = "f"
		bad.Title = ""
		batch = append(batch, bad)

		err := validator.ValidateBatch(batch)

		var batchErr *BatchError
		if !errors.As(err, &batchErr) {
			t.Fatalf("Expected *BatchError, got %T: %v", err, err)
		}
		if len(batchErr.Records) != 1 {
			t.Fatalf("Expected 1 invalid record, got %d", len(batchErr.Records))
		}
		rec := batchErr.Records[0]
		if rec.Index != 5 || rec.Slug != "f" || rec.Errors[0].Field != "title" {
			t.Errorf("Unexpected record error %+v", rec)
		}
		if !strings.Contains(err.Error(), `record 5 (slug "f"): title: title is required`) {
			t.Errorf("Unexpected error message %q", err.Error())
		}
	})

	t.Run("duplicate slug in one batch", func(t *testing.T) {
		a := validArticle()
		b := validArticle()

		err := validator.ValidateBatch([]*models.Article{a, b})

		var batchErr *BatchError
		if !errors.As(err, &batchErr) {
			t.Fatalf("Expected *BatchError, got %v", err)
		}
		if batchErr.Records[0].Index != 1 || batchErr.Records[0].Errors[0].Field != "slug" {
			t.Errorf("Expected duplicate reported on second record, got %+v", batchErr.Records[0])
		}
	})

	t.Run("nil record", func(t *testing.T) {
		err := validator.ValidateBatch([]*models.Article{validArticle(), nil})

		var batchErr *BatchError
		if !errors.As(err, &batchErr) {
			t.Fatalf("Expected *BatchError, got %v", err)
		}
		if batchErr.Records[0].Index != 1 {
			t.Errorf("Expected nil record at index 1, got %+v", batchErr.Records[0])
		}
	})

	t.Run("message counts further invalid records", func(t *testing.T) {
		a := validArticle()
		a.Title = ""
		b := validArticle()
		b.Slug = "other"
		b.Excerpt = ""

		err := validator.ValidateBatch([]*models.Article{a, b})
		if err == nil || !strings.Contains(err.Error(), "and 1 more invalid records") {
			t.Errorf("Unexpected error %v", err)
		}
	})
}
