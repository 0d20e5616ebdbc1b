package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/vegist/backend/internal/domain"
)

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	mu       sync.Mutex
	data     map[string][]byte
	getError error
	setError error
	gets     int
	sets     int
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{data: make(map[string][]byte)}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	if m.getError != nil {
		return nil, m.getError
	}
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	if m.setError != nil {
		return m.setError
	}
	m.data[key] = value
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok, nil
}

// countingCatalog wraps a catalog repository and counts List calls
type countingCatalog struct {
	domain.CatalogRepository
	mu    sync.Mutex
	lists int
}

func (c *countingCatalog) List(ctx context.Context) ([]domain.Product, error) {
	c.mu.Lock()
	c.lists++
	c.mu.Unlock()
	return c.CatalogRepository.List(ctx)
}

// staticCatalog serves a fixed product slice
type staticCatalog []domain.Product

func (s staticCatalog) List(ctx context.Context) ([]domain.Product, error) {
	return append([]domain.Product(nil), s...), nil
}

func (s staticCatalog) Get(ctx context.Context, id string) (*domain.Product, error) {
	for _, p := range s {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, domain.ErrProductNotFound
}
