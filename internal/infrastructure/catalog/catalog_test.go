package catalog

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegist/backend/internal/domain"
)

func TestSeedProductsAreValid(t *testing.T) {
	require.NoError(t, ValidateProducts(SeedProducts()))
}

func TestValidateProducts(t *testing.T) {
	base := domain.Product{ID: "x", Name: "Rice", Category: "grains", Price: "₹100", Rating: 4}

	tests := []struct {
		name    string
		mutate  func(p *domain.Product)
		wantErr string
	}{
		{name: "valid", mutate: func(p *domain.Product) {}},
		{name: "missing id", mutate: func(p *domain.Product) { p.ID = "" }, wantErr: "id failed required"},
		{name: "rating above five", mutate: func(p *domain.Product) { p.Rating = 5.1 }, wantErr: "rating failed lte"},
		{name: "unparseable price", mutate: func(p *domain.Product) { p.Price = "ask us" }, wantErr: "price failed money"},
		{name: "unparseable original price", mutate: func(p *domain.Product) { p.OriginalPrice = "n/a" }, wantErr: "originalPrice failed money"},
		{name: "exponent price", mutate: func(p *domain.Product) { p.Price = "₹1e3" }, wantErr: "price failed money"},
		{name: "cents price below original price", mutate: func(p *domain.Product) { p.Price = "€.99"; p.OriginalPrice = "€1" }},
		{name: "price above original price", mutate: func(p *domain.Product) { p.OriginalPrice = "₹99.99" }, wantErr: "price failed ltefield"},
		{name: "price equal to original price", mutate: func(p *domain.Product) { p.OriginalPrice = "₹100" }},
		{name: "bad currency code", mutate: func(p *domain.Product) { p.Currency = "RUPEE" }, wantErr: "currency failed len"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			tt.mutate(&p)
			err := ValidateProducts([]domain.Product{p})
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidCatalog)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateProductsRejectsDuplicateIDs(t *testing.T) {
	p := domain.Product{ID: "x", Name: "Rice", Category: "grains", Price: "₹100"}
	err := ValidateProducts([]domain.Product{p, p})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate product id x")
}

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo, err := NewMemoryRepository(SeedProducts())
	require.NoError(t, err)

	products, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, products, len(SeedProducts()))

	products[0].Name = "mutated"
	again, _ := repo.List(ctx)
	assert.NotEqual(t, "mutated", again[0].Name)

	p, err := repo.Get(ctx, "p-101")
	require.NoError(t, err)
	assert.Equal(t, "Premium Basmati Rice 5 kg", p.Name)
	require.NotNil(t, p.Variants)
	assert.Len(t, p.Variants.WeightTiers, 4)

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestNewMemoryRepositoryRejectsInvalidCatalog(t *testing.T) {
	_, err := NewMemoryRepository([]domain.Product{{ID: "x"}})
	assert.ErrorIs(t, err, domain.ErrInvalidCatalog)
}

func openTestSQLite(t *testing.T) *SQLiteRepository {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	repo, err := OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := openTestSQLite(t)

	seed := SeedProducts()
	n, err := repo.Seed(ctx, seed)
	require.NoError(t, err)
	assert.Equal(t, len(seed), n)

	n, err = repo.Seed(ctx, seed)
	require.NoError(t, err)
	assert.Zero(t, n, "seeding a populated table is a no-op")

	products, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, len(seed))
	for i := range seed {
		assert.Equal(t, seed[i].ID, products[i].ID, "catalog order is preserved")
	}

	rice, err := repo.Get(ctx, "p-101")
	require.NoError(t, err)
	assert.Equal(t, []string{"andheri", "bandra", "powai"}, rice.Stores)
	require.NotNil(t, rice.Variants)
	assert.True(t, rice.Variants.WeightTiers[2].Price.Equal(seed[0].Variants.WeightTiers[2].Price))
	require.NotNil(t, rice.Variants.Grains[0].Multiplier)
	assert.Equal(t, "1.2", rice.Variants.Grains[0].Multiplier.String())

	apples, err := repo.Get(ctx, "p-202")
	require.NoError(t, err)
	assert.Nil(t, apples.Variants)

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestSQLiteRepositorySeedValidates(t *testing.T) {
	repo := openTestSQLite(t)
	_, err := repo.Seed(context.Background(), []domain.Product{{ID: "bad", Name: "x", Category: "c", Price: "₹10", OriginalPrice: "₹5"}})
	assert.ErrorIs(t, err, domain.ErrInvalidCatalog)
}
