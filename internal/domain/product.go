package domain

// Product is a read-only catalog record.
// Price and OriginalPrice keep the currency-tagged display strings the storefront
// renders (e.g. "₹1,499"); use ParseMoney to get the numeric amount.
// PriceMinor is filled when the catalog is served and is 0 for an unparseable price.
type Product struct {
	ID            string   `json:"id" validate:"required"`
	Name          string   `json:"name" validate:"required"`
	Category      string   `json:"category" validate:"required"`
	Brand         string   `json:"brand"`
	Price         string   `json:"price" validate:"required"`
	PriceMinor    int64    `json:"priceMinor"`
	OriginalPrice string   `json:"originalPrice,omitempty"`
	Currency      string   `json:"currency" validate:"omitempty,len=3"`
	Rating        float64  `json:"rating" validate:"gte=0,lte=5"`
	ReviewCount   int      `json:"reviewCount" validate:"gte=0"`
	InStock       bool     `json:"inStock"`
	Description   string   `json:"description"`
	Weight        string   `json:"weight,omitempty"`
	Images        []string `json:"images,omitempty"`
	Stores        []string `json:"stores,omitempty"`
	Popularity    float64  `json:"popularity,omitempty" validate:"gte=0"`
	Discount      float64  `json:"discount,omitempty" validate:"gte=0,lte=100"`

	Variants *VariantConfig `json:"variants,omitempty"`
}

// ProductPage is one page of a filtered, sorted listing
type ProductPage struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"pageSize"`
}

// Facets describes the values a listing can currently be filtered by
type Facets struct {
	Categories   []string         `json:"categories"`
	Brands       []string         `json:"brands"`
	Stores       []string         `json:"stores"`
	Sizes        []string         `json:"sizes"`
	Ratings      map[int]int      `json:"ratings"`
	Availability AvailabilityData `json:"availability"`
	PriceRange   PriceRangeData   `json:"priceRange"`
}

// AvailabilityData counts products by stock flag
type AvailabilityData struct {
	InStock    int `json:"inStock"`
	OutOfStock int `json:"outOfStock"`
}

// PriceRangeData is the lowest and highest parseable price in the catalog
type PriceRangeData struct {
	Min string `json:"min"`
	Max string `json:"max"`
}
