package usecase

import (
	"hash/fnv"
	"math"
	"math/rand/v2"

	"github.com/shopspring/decimal"

	"github.com/vegist/backend/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// enrichProduct fills the minor-unit price and the sort fields a catalog record leaves empty.
// Discount comes from OriginalPrice when both prices parse. With a non-zero seed,
// popularity and any still-missing discount are drawn from an RNG keyed by seed and
// product id, so the same seed always yields the same values.
func enrichProduct(p domain.Product, seed int64) domain.Product {
	if price, ok := domain.MoneyOrZero(p.Price); ok {
		p.PriceMinor = domain.MinorUnits(price)
	}
	if p.Discount == 0 {
		p.Discount = derivedDiscount(p)
	}

	if seed == 0 {
		return p
	}

	rng := rand.New(rand.NewPCG(uint64(seed), productHash(p.ID)))
	if p.Popularity == 0 {
		p.Popularity = math.Round(rng.Float64()*1000) / 10
	}
	if p.Discount == 0 {
		p.Discount = float64(rng.IntN(41))
	}
	return p
}

// derivedDiscount is the whole-percent markdown from OriginalPrice to Price
func derivedDiscount(p domain.Product) float64 {
	if p.OriginalPrice == "" {
		return 0
	}
	price, err := domain.ParseMoney(p.Price)
	if err != nil {
		return 0
	}
	original, err := domain.ParseMoney(p.OriginalPrice)
	if err != nil || !original.IsPositive() || !price.LessThan(original) {
		return 0
	}
	pct := original.Sub(price).Mul(hundred).Div(original).Round(0)
	return pct.InexactFloat64()
}

func productHash(id string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(id))
	return h.Sum64()
}

func enrichCatalog(products []domain.Product, seed int64) []domain.Product {
	enriched := make([]domain.Product, len(products))
	for i, p := range products {
		enriched[i] = enrichProduct(p, seed)
	}
	return enriched
}
