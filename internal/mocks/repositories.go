package mocks

import (
	"context"
	"sort"

	"github.com/content-publisher/internal/models"
)

// MockArticleRepository is an in-memory implementation of ArticleRepository
type MockArticleRepository struct {
	Articles        map[string]*models.Article
	UpsertError     error
	CountError      error
	StreamError     error
	UpsertFunc      func(ctx context.Context, articles []*models.Article) (int, error)
	UpsertCalls     int
}

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{
		Articles: make(map[string]*models.Article),
	}
}

// UpsertBatch stores copies of every article, or none when UpsertError is set
func (m *MockArticleRepository) UpsertBatch(ctx context.Context, articles []*models.Article) (int, error) {
	m.UpsertCalls++
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, articles)
	}
	if m.UpsertError != nil {
		return 0, m.UpsertError
	}
	for _, a := range articles {
		stored := *a
		m.Articles[a.Slug] = &stored
	}
	return len(articles), nil
}

func (m *MockArticleRepository) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	a, ok := m.Articles[slug]
	if !ok {
		return nil, nil
	}
	stored := *a
	return &stored, nil
}

func (m *MockArticleRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	_, ok := m.Articles[slug]
	return ok, nil
}

func (m *MockArticleRepository) Count(ctx context.Context) (int, error) {
	if m.CountError != nil {
		return 0, m.CountError
	}
	return len(m.Articles), nil
}

func (m *MockArticleRepository) List(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, error) {
	var result []*models.Article
	for _, a := range m.sorted() {
		if filter.Language != "" && a.Language != filter.Language {
			continue
		}
		if filter.Category != "" && a.Category != filter.Category {
			continue
		}
		if filter.Format != "" && a.Format != filter.Format {
			continue
		}
		if filter.FeaturedOnly && !a.Featured {
			continue
		}
		if !filter.IncludeDrafts && a.Draft {
			continue
		}
		result = append(result, a)
		if filter.Limit > 0 && len(result) == filter.Limit {
			break
		}
	}
	return result, nil
}

func (m *MockArticleRepository) StreamAll(ctx context.Context, callback func(*models.Article) error) error {
	if m.StreamError != nil {
		return m.StreamError
	}
	for _, a := range m.sorted() {
		if err := callback(a); err != nil {
			return err
		}
	}
	return nil
}

// sorted returns copies ordered by published date descending, then slug
func (m *MockArticleRepository) sorted() []*models.Article {
	list := make([]*models.Article, 0, len(m.Articles))
	for _, a := range m.Articles {
		stored := *a
		list = append(list, &stored)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].PublishedDate != list[j].PublishedDate {
			return list[i].PublishedDate > list[j].PublishedDate
		}
		return list[i].Slug < list[j].Slug
	})
	return list
}
