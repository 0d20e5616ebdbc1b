package usecase

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/vegist/backend/internal/domain"
)

// FilterConfig holds configuration for the catalog filter
type FilterConfig struct {
	// Locale drives name collation, e.g. "en" or "hi". Defaults to English.
	Locale string
	// UnparseablePrice decides how products with a malformed price string are treated.
	// Defaults to domain.UnparseableAsZero.
	UnparseablePrice domain.UnparseablePricePolicy
}

// CatalogFilter narrows and orders a catalog. It holds no mutable state and
// every call to Apply is independent.
type CatalogFilter struct {
	locale language.Tag
	policy domain.UnparseablePricePolicy
}

// NewCatalogFilter creates a catalog filter
func NewCatalogFilter(config FilterConfig) *CatalogFilter {
	tag := language.English
	if config.Locale != "" {
		if parsed, err := language.Parse(config.Locale); err == nil {
			tag = parsed
		}
	}

	policy := config.UnparseablePrice
	if policy != domain.UnparseableExcluded {
		policy = domain.UnparseableAsZero
	}

	return &CatalogFilter{locale: tag, policy: policy}
}

// candidate pairs a product with its price parsed once per Apply call
type candidate struct {
	product domain.Product
	price   decimal.Decimal
	priced  bool
}

// matcher is FilterCriteria normalized for matching
type matcher struct {
	search       string
	category     string
	sizes        []string
	stores       map[string]struct{}
	brands       map[string]struct{}
	ratings      map[int]struct{}
	availability domain.Availability
	priceRange   domain.PriceRange
}

func newMatcher(criteria domain.FilterCriteria) matcher {
	m := matcher{
		search:       strings.ToLower(strings.TrimSpace(criteria.Search)),
		availability: criteria.Availability,
		priceRange:   criteria.PriceRange,
	}

	if !strings.EqualFold(criteria.Category, domain.CategoryAll) {
		m.category = criteria.Category
	}

	for _, size := range criteria.Sizes {
		if token := strings.ToLower(strings.TrimSpace(size)); token != "" {
			m.sizes = append(m.sizes, token)
		}
	}

	m.stores = toSet(criteria.Stores)
	m.brands = toSet(criteria.Brands)

	if len(criteria.Ratings) > 0 {
		m.ratings = make(map[int]struct{}, len(criteria.Ratings))
		for _, r := range criteria.Ratings {
			m.ratings[r] = struct{}{}
		}
	}

	return m
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// Apply returns the products of catalog that satisfy criteria, ordered by sortKey.
// The input slice is never modified. An unknown sort key orders by name.
//
// Ratings match on the floor of the product rating only: selecting 4 matches 4.0-4.9
// but not 5.0, even though storefront labels read "4 and above".
//
// Under the zero policy a price string that does not parse counts as 0, so it passes
// any range containing 0, sorts first on price-low and last on price-high. Under the
// exclude policy such products are dropped whenever a price range or price sort is active.
func (f *CatalogFilter) Apply(catalog []domain.Product, criteria domain.FilterCriteria, sortKey domain.SortKey) []domain.Product {
	m := newMatcher(criteria)
	needsPrice := criteria.PriceRange.IsSet() || sortKey == domain.SortByPriceLow || sortKey == domain.SortByPriceHigh

	matched := make([]candidate, 0, len(catalog))
	for _, p := range catalog {
		price, ok := domain.MoneyOrZero(p.Price)
		if !ok && needsPrice && f.policy == domain.UnparseableExcluded {
			continue
		}
		c := candidate{product: p, price: price, priced: ok}
		if !m.matches(c) {
			continue
		}
		matched = append(matched, c)
	}

	f.sort(matched, sortKey)

	result := make([]domain.Product, len(matched))
	for i, c := range matched {
		result[i] = c.product
	}
	return result
}

func (m matcher) matches(c candidate) bool {
	p := c.product

	if m.search != "" &&
		!strings.Contains(strings.ToLower(p.Name), m.search) &&
		!strings.Contains(strings.ToLower(p.Description), m.search) &&
		!strings.Contains(strings.ToLower(p.Brand), m.search) {
		return false
	}

	if m.category != "" && p.Category != m.category {
		return false
	}

	if len(m.sizes) > 0 {
		name := strings.ToLower(p.Name)
		found := false
		for _, token := range m.sizes {
			if strings.Contains(name, token) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if m.stores != nil {
		found := false
		for _, store := range p.Stores {
			if _, ok := m.stores[store]; ok {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if m.brands != nil {
		if _, ok := m.brands[p.Brand]; !ok {
			return false
		}
	}

	if m.ratings != nil {
		if _, ok := m.ratings[int(math.Floor(p.Rating))]; !ok {
			return false
		}
	}

	switch m.availability {
	case domain.AvailabilityInStock:
		if !p.InStock {
			return false
		}
	case domain.AvailabilityOutOfStock:
		if p.InStock {
			return false
		}
	}

	if m.priceRange.IsSet() && !m.priceRange.Contains(c.price) {
		return false
	}

	return true
}

// sort orders candidates in place, keeping the relative order of equal elements
func (f *CatalogFilter) sort(items []candidate, sortKey domain.SortKey) {
	var compare func(a, b candidate) int

	switch sortKey {
	case domain.SortByPriceLow:
		compare = func(a, b candidate) int { return a.price.Cmp(b.price) }
	case domain.SortByPriceHigh:
		compare = func(a, b candidate) int { return b.price.Cmp(a.price) }
	case domain.SortByRating:
		compare = func(a, b candidate) int { return cmp.Compare(b.product.Rating, a.product.Rating) }
	case domain.SortByPopularity:
		compare = func(a, b candidate) int { return cmp.Compare(b.product.Popularity, a.product.Popularity) }
	case domain.SortByDiscount:
		compare = func(a, b candidate) int { return cmp.Compare(b.product.Discount, a.product.Discount) }
	default:
		// Collator is not safe for concurrent use; one per call
		collator := collate.New(f.locale)
		compare = func(a, b candidate) int { return collator.CompareString(a.product.Name, b.product.Name) }
	}

	slices.SortStableFunc(items, compare)
}
