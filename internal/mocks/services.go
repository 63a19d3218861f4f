package mocks

import (
	"context"

	"github.com/content-publisher/internal/repository"
	"github.com/content-publisher/internal/service"
)

// MockStore is an in-memory service.Store
type MockStore struct {
	Repo       *MockArticleRepository
	CloseError error
	Closed     int
}

func NewMockStore() *MockStore {
	return &MockStore{Repo: NewMockArticleRepository()}
}

func (m *MockStore) Articles() repository.ArticleRepository {
	return m.Repo
}

func (m *MockStore) Close() error {
	m.Closed++
	return m.CloseError
}

// Opener returns a StoreOpener that hands out this store, or fails with err
func (m *MockStore) Opener(err error) service.StoreOpener {
	return func(ctx context.Context) (service.Store, error) {
		if err != nil {
			return nil, err
		}
		return m, nil
	}
}
