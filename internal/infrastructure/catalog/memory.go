package catalog

import (
	"context"
	"fmt"
	"slices"

	"github.com/vegist/backend/internal/domain"
)

// MemoryRepository serves a fixed, validated product list
type MemoryRepository struct {
	products []domain.Product
	byID     map[string]int
}

// NewMemoryRepository validates products and indexes them by id
func NewMemoryRepository(products []domain.Product) (*MemoryRepository, error) {
	if err := ValidateProducts(products); err != nil {
		return nil, err
	}
	byID := make(map[string]int, len(products))
	for i, p := range products {
		byID[p.ID] = i
	}
	return &MemoryRepository{products: slices.Clone(products), byID: byID}, nil
}

// List returns a copy of every product in catalog order
func (r *MemoryRepository) List(ctx context.Context) ([]domain.Product, error) {
	return slices.Clone(r.products), nil
}

// Get returns the product with id
func (r *MemoryRepository) Get(ctx context.Context, id string) (*domain.Product, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
	}
	p := r.products[i]
	return &p, nil
}
