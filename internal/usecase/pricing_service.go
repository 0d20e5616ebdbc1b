package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/vegist/backend/internal/domain"
	"github.com/vegist/backend/internal/infrastructure/metrics"
)

// PricingService prices variant selections on the product detail page
type PricingService struct {
	repo    domain.CatalogRepository
	locale  language.Tag
	metrics *metrics.Metrics
}

// NewPricingService creates a pricing service. locale drives price display and
// defaults to English; m may be nil.
func NewPricingService(repo domain.CatalogRepository, locale string, m *metrics.Metrics) *PricingService {
	tag := language.English
	if locale != "" {
		if parsed, err := language.Parse(locale); err == nil {
			tag = parsed
		}
	}
	return &PricingService{repo: repo, locale: tag, metrics: m}
}

// Quote prices a selection for a product and reports whether it can be bought.
// Empty option ids resolve to the first option of each list. A non-empty
// CustomWeightKg prices that weight at the product's per-kg rate instead of a tier,
// and the tier's availability flag is then not consulted.
func (s *PricingService) Quote(ctx context.Context, productID string, selection domain.VariantSelection) (*domain.PriceQuote, error) {
	quote, err := s.quote(ctx, productID, selection)
	switch {
	case err == nil && quote.Available:
		s.metrics.IncQuote("ok")
	case err == nil:
		s.metrics.IncQuote("unavailable")
	case errors.Is(err, domain.ErrInvalidCustomWeight):
		s.metrics.IncQuote("invalid_weight")
	default:
		s.metrics.IncQuote("error")
	}
	return quote, err
}

func (s *PricingService) quote(ctx context.Context, productID string, selection domain.VariantSelection) (*domain.PriceQuote, error) {
	product, err := s.repo.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	variants := product.Variants
	if variants == nil || len(variants.WeightTiers) == 0 {
		return nil, domain.ErrNoVariants
	}

	grain, err := resolveOption(variants.Grains, selection.Grain, "grain")
	if err != nil {
		return nil, err
	}
	polish, err := resolveOption(variants.Polishes, selection.Polish, "polish")
	if err != nil {
		return nil, err
	}
	brand, err := resolveBrand(variants.Brands, selection.Brand)
	if err != nil {
		return nil, err
	}

	currency := product.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	quote := &domain.PriceQuote{
		ProductID: product.ID,
		Currency:  currency,
		Selection: domain.VariantSelection{
			Grain:  grain.ID,
			Polish: polish.ID,
			Brand:  brand.ID,
		},
	}

	var sizeLabel string
	if strings.TrimSpace(selection.CustomWeightKg) != "" {
		price, err := ComputeCustomWeightPrice(selection.CustomWeightKg, variants.CustomRatePerKg, grain.Multiplier, polish.Multiplier, brand.Premium)
		if err != nil {
			return nil, err
		}
		weight, _ := ParseCustomWeight(selection.CustomWeightKg)
		quote.Price = price
		quote.CustomKg = &weight
		quote.Selection.CustomWeightKg = weight.String()
		quote.Available = IsAvailable(domain.WeightTier{Available: true}, grain, polish)
		sizeLabel = weight.String() + " kg"
	} else {
		tier, err := resolveTier(variants.WeightTiers, selection.WeightTier)
		if err != nil {
			return nil, err
		}
		quote.Price = ComputePrice(tier.Price, grain.Multiplier, polish.Multiplier, brand.Premium)
		quote.Selection.WeightTier = tier.ID
		quote.Available = IsAvailable(tier, grain, polish)
		sizeLabel = tier.Label
	}

	quote.Available = quote.Available && product.InStock
	quote.Display = FormatPrice(quote.Price, currency, s.locale)
	quote.Variant = joinLabels(grain.Label, polish.Label, brand.Label, sizeLabel)

	return quote, nil
}

// resolveOption picks the option with id, or the first option for an empty id.
// A product without options of this kind resolves to an available no-op option.
func resolveOption(options []domain.VariantOption, id, kind string) (domain.VariantOption, error) {
	if len(options) == 0 {
		return domain.VariantOption{Available: true}, nil
	}
	if id == "" {
		return options[0], nil
	}
	for _, opt := range options {
		if opt.ID == id {
			return opt, nil
		}
	}
	return domain.VariantOption{}, fmt.Errorf("%w: unknown %s %q", domain.ErrInvalidRequest, kind, id)
}

func resolveBrand(brands []domain.BrandOption, id string) (domain.BrandOption, error) {
	if len(brands) == 0 {
		return domain.BrandOption{}, nil
	}
	if id == "" {
		return brands[0], nil
	}
	for _, b := range brands {
		if b.ID == id {
			return b, nil
		}
	}
	return domain.BrandOption{}, fmt.Errorf("%w: unknown brand %q", domain.ErrInvalidRequest, id)
}

func resolveTier(tiers []domain.WeightTier, id string) (domain.WeightTier, error) {
	if id == "" {
		return tiers[0], nil
	}
	for _, t := range tiers {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.WeightTier{}, fmt.Errorf("%w: unknown weight tier %q", domain.ErrInvalidRequest, id)
}

func joinLabels(labels ...string) string {
	kept := labels[:0:0]
	for _, l := range labels {
		if l != "" {
			kept = append(kept, l)
		}
	}
	return strings.Join(kept, " / ")
}

// UnitPrice returns the price a product sells for without a variant selection
func UnitPrice(p domain.Product) (decimal.Decimal, error) {
	return domain.ParseMoney(p.Price)
}
