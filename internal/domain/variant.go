package domain

import "github.com/shopspring/decimal"

// VariantOption is a selectable grain or polish type
type VariantOption struct {
	ID         string           `json:"id"`
	Label      string           `json:"label"`
	Multiplier *decimal.Decimal `json:"multiplier,omitempty"`
	Available  bool             `json:"available"`
}

// BrandOption is a selectable brand; premium brands carry a surcharge
type BrandOption struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Premium bool   `json:"premium"`
}

// WeightTier is a fixed pack size with its own price
type WeightTier struct {
	ID        string          `json:"id"`
	Label     string          `json:"label"`
	Price     decimal.Decimal `json:"price"`
	Available bool            `json:"available"`
}

// VariantConfig lists the options a product detail page offers
type VariantConfig struct {
	Grains          []VariantOption `json:"grains,omitempty"`
	Polishes        []VariantOption `json:"polishes,omitempty"`
	Brands          []BrandOption   `json:"brands,omitempty"`
	WeightTiers     []WeightTier    `json:"weightTiers"`
	CustomRatePerKg decimal.Decimal `json:"customRatePerKg"`
}

// VariantSelection holds the chosen option ids.
// An empty id selects the first option of its list.
// CustomWeightKg, when non-empty, prices a custom weight instead of a tier.
type VariantSelection struct {
	Grain          string `json:"grain,omitempty"`
	Polish         string `json:"polish,omitempty"`
	Brand          string `json:"brand,omitempty"`
	WeightTier     string `json:"weightTier,omitempty"`
	CustomWeightKg string `json:"customWeightKg,omitempty"`
}

// PriceQuote is the priced, availability-checked result of a variant selection
type PriceQuote struct {
	ProductID string           `json:"productId"`
	Selection VariantSelection `json:"selection"`
	Price     decimal.Decimal  `json:"price"`
	Currency  string           `json:"currency"`
	Display   string           `json:"display"`
	Available bool             `json:"available"`
	Variant   string           `json:"variant"`
	CustomKg  *decimal.Decimal `json:"customKg,omitempty"`
}
