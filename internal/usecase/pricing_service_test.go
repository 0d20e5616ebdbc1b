package usecase

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegist/backend/internal/domain"
	"github.com/vegist/backend/internal/infrastructure/catalog"
	"github.com/vegist/backend/internal/infrastructure/metrics"
)

func newSeedCatalog(t *testing.T) *catalog.MemoryRepository {
	t.Helper()
	repo, err := catalog.NewMemoryRepository(catalog.SeedProducts())
	require.NoError(t, err)
	return repo
}

func newTestPricingService(t *testing.T) *PricingService {
	t.Helper()
	return NewPricingService(newSeedCatalog(t), "en", metrics.New(prometheus.NewRegistry()))
}

func TestPricingService_Quote(t *testing.T) {
	ctx := context.Background()
	svc := newTestPricingService(t)

	t.Run("full selection", func(t *testing.T) {
		quote, err := svc.Quote(ctx, "p-101", domain.VariantSelection{
			Grain: "basmati", Polish: "double", Brand: "india-gate", WeightTier: "10kg",
		})
		require.NoError(t, err)
		assert.Equal(t, "1862", quote.Price.String())
		assert.Equal(t, "₹1,862", quote.Display)
		assert.Equal(t, "INR", quote.Currency)
		assert.True(t, quote.Available)
		assert.Equal(t, "Basmati / Double Polished / India Gate / 10 kg", quote.Variant)
		assert.Nil(t, quote.CustomKg)
	})

	t.Run("empty selection resolves first options", func(t *testing.T) {
		quote, err := svc.Quote(ctx, "p-101", domain.VariantSelection{})
		require.NoError(t, err)
		assert.Equal(t, "179", quote.Price.String())
		assert.Equal(t, domain.VariantSelection{Grain: "basmati", Polish: "single", Brand: "vegist", WeightTier: "1kg"}, quote.Selection)
		assert.True(t, quote.Available)
	})

	t.Run("unavailable tier is priced but not purchasable", func(t *testing.T) {
		quote, err := svc.Quote(ctx, "p-101", domain.VariantSelection{Grain: "sona-masoori", WeightTier: "25kg"})
		require.NoError(t, err)
		assert.Equal(t, "3499", quote.Price.String())
		assert.False(t, quote.Available)
	})

	t.Run("unavailable grain", func(t *testing.T) {
		quote, err := svc.Quote(ctx, "p-102", domain.VariantSelection{Grain: "jeera-samba"})
		require.NoError(t, err)
		assert.False(t, quote.Available)
	})

	t.Run("unavailable polish", func(t *testing.T) {
		quote, err := svc.Quote(ctx, "p-102", domain.VariantSelection{Polish: "unpolished"})
		require.NoError(t, err)
		assert.False(t, quote.Available)
	})

	t.Run("custom weight", func(t *testing.T) {
		quote, err := svc.Quote(ctx, "p-101", domain.VariantSelection{CustomWeightKg: "2.5", WeightTier: "25kg"})
		require.NoError(t, err)
		assert.Equal(t, "420", quote.Price.String())
		require.NotNil(t, quote.CustomKg)
		assert.Equal(t, "2.5", quote.CustomKg.String())
		assert.Equal(t, "2.5", quote.Selection.CustomWeightKg)
		assert.Empty(t, quote.Selection.WeightTier)
		assert.True(t, quote.Available, "tier availability is not consulted for custom weights")
		assert.Equal(t, "Basmati / Single Polished / Vegist Select / 2.5 kg", quote.Variant)
	})

	t.Run("invalid custom weight", func(t *testing.T) {
		_, err := svc.Quote(ctx, "p-101", domain.VariantSelection{CustomWeightKg: "0"})
		assert.ErrorIs(t, err, domain.ErrInvalidCustomWeight)
	})

	t.Run("unknown option ids", func(t *testing.T) {
		for _, sel := range []domain.VariantSelection{
			{Grain: "arborio"},
			{Polish: "triple"},
			{Brand: "kohinoor"},
			{WeightTier: "50kg"},
		} {
			_, err := svc.Quote(ctx, "p-101", sel)
			assert.ErrorIs(t, err, domain.ErrInvalidRequest, "%+v", sel)
		}
	})

	t.Run("product without variants", func(t *testing.T) {
		_, err := svc.Quote(ctx, "p-202", domain.VariantSelection{})
		assert.ErrorIs(t, err, domain.ErrNoVariants)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := svc.Quote(ctx, "p-999", domain.VariantSelection{})
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})
}

func TestPricingService_QuoteRespectsStockFlag(t *testing.T) {
	rice := catalog.SeedProducts()[0]
	rice.InStock = false
	svc := NewPricingService(staticCatalog{rice}, "", nil)

	quote, err := svc.Quote(context.Background(), rice.ID, domain.VariantSelection{WeightTier: "5kg"})
	require.NoError(t, err)
	assert.False(t, quote.Available)
	assert.Equal(t, "839", quote.Price.String())
}

func TestPricingService_OptionlessVariants(t *testing.T) {
	product := domain.Product{
		ID: "ghee", Name: "Desi Ghee", Category: "dairy", Price: "₹550", InStock: true,
		Variants: &domain.VariantConfig{
			WeightTiers: []domain.WeightTier{
				{ID: "500ml", Label: "500 ml", Price: *dec("550"), Available: true},
			},
		},
	}
	svc := NewPricingService(staticCatalog{product}, "en", nil)

	quote, err := svc.Quote(context.Background(), "ghee", domain.VariantSelection{})
	require.NoError(t, err)
	assert.Equal(t, "550", quote.Price.String())
	assert.True(t, quote.Available)
	assert.Equal(t, "500 ml", quote.Variant)
}

func TestUnitPrice(t *testing.T) {
	price, err := UnitPrice(domain.Product{Price: "₹1,199"})
	require.NoError(t, err)
	assert.Equal(t, "1199", price.String())

	_, err = UnitPrice(domain.Product{Price: "free"})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
}
