package domain

import "github.com/shopspring/decimal"

// CategoryAll is the category sentinel that disables category filtering
const CategoryAll = "all"

// Availability restricts a listing by stock flag
type Availability string

const (
	AvailabilityAll        Availability = "all"
	AvailabilityInStock    Availability = "in-stock"
	AvailabilityOutOfStock Availability = "out-of-stock"
)

// SortKey selects the listing order
type SortKey string

const (
	SortByName       SortKey = "name"
	SortByPriceLow   SortKey = "price-low"
	SortByPriceHigh  SortKey = "price-high"
	SortByRating     SortKey = "rating"
	SortByPopularity SortKey = "popularity"
	SortByDiscount   SortKey = "discount"
)

// Valid reports whether k is a known sort key. The empty key is valid and means name.
func (k SortKey) Valid() bool {
	switch k {
	case "", SortByName, SortByPriceLow, SortByPriceHigh, SortByRating, SortByPopularity, SortByDiscount:
		return true
	}
	return false
}

// PriceRange is an inclusive price window. A nil bound is open.
type PriceRange struct {
	Min *decimal.Decimal `json:"min,omitempty"`
	Max *decimal.Decimal `json:"max,omitempty"`
}

// IsSet reports whether either bound is present
func (r PriceRange) IsSet() bool {
	return r.Min != nil || r.Max != nil
}

// Contains reports whether amount lies within the range, bounds included
func (r PriceRange) Contains(amount decimal.Decimal) bool {
	if r.Min != nil && amount.LessThan(*r.Min) {
		return false
	}
	if r.Max != nil && amount.GreaterThan(*r.Max) {
		return false
	}
	return true
}

// FilterCriteria is the full set of listing constraints.
// Criteria are ANDed; values inside a multi-select criterion are ORed.
// The zero value restricts nothing.
type FilterCriteria struct {
	Search       string       `json:"search,omitempty"`
	Category     string       `json:"category,omitempty"`
	Sizes        []string     `json:"sizes,omitempty"`
	Stores       []string     `json:"stores,omitempty"`
	Brands       []string     `json:"brands,omitempty"`
	Ratings      []int        `json:"ratings,omitempty"`
	Availability Availability `json:"availability,omitempty"`
	PriceRange   PriceRange   `json:"priceRange"`
}

// UnparseablePricePolicy decides what happens to products whose price string
// does not parse
type UnparseablePricePolicy string

const (
	// UnparseableAsZero treats the price as 0
	UnparseableAsZero UnparseablePricePolicy = "zero"
	// UnparseableExcluded drops the product whenever a price range or price sort is active
	UnparseableExcluded UnparseablePricePolicy = "exclude"
)
