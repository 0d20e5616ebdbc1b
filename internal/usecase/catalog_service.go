package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vegist/backend/internal/domain"
	"github.com/vegist/backend/internal/infrastructure/logger"
	"github.com/vegist/backend/internal/infrastructure/metrics"
)

// CatalogServiceConfig holds configuration for the catalog service
type CatalogServiceConfig struct {
	CacheTTL      time.Duration
	Filter        FilterConfig
	SyntheticSeed int64
}

// ListQuery is a listing request: criteria, order and an optional page window.
// Page is 1-based; a zero PageSize returns every match.
type ListQuery struct {
	Criteria domain.FilterCriteria
	Sort     domain.SortKey
	Page     int
	PageSize int
}

// CatalogService serves filtered listings, product details and facets
type CatalogService struct {
	repo     domain.CatalogRepository
	cache    domain.CacheRepository
	filter   *CatalogFilter
	cacheTTL time.Duration
	seed     int64
	metrics  *metrics.Metrics
	logger   *logger.Logger
}

// NewCatalogService creates a catalog service. cache, m and logg may be nil.
func NewCatalogService(
	repo domain.CatalogRepository,
	cache domain.CacheRepository,
	config CatalogServiceConfig,
	m *metrics.Metrics,
	logg *logger.Logger,
) *CatalogService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 5 * time.Minute
	}

	return &CatalogService{
		repo:     repo,
		cache:    cache,
		filter:   NewCatalogFilter(config.Filter),
		cacheTTL: cacheTTL,
		seed:     config.SyntheticSeed,
		metrics:  m,
		logger:   logg,
	}
}

// ListProducts returns one page of the catalog filtered by query.Criteria and
// ordered by query.Sort.
// Flow: validate -> check cache -> load catalog -> filter/sort -> paginate -> cache
func (s *CatalogService) ListProducts(ctx context.Context, query ListQuery) (*domain.ProductPage, error) {
	if err := validateListQuery(query); err != nil {
		return nil, err
	}

	cacheKey := listCacheKey(query)
	if page, ok := s.getFromCache(ctx, cacheKey); ok {
		s.metrics.CacheHit()
		return page, nil
	}
	s.metrics.CacheMiss()

	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	start := time.Now()
	matched := s.filter.Apply(enrichCatalog(products, s.seed), query.Criteria, query.Sort)
	s.metrics.ObserveListing(string(query.Sort), len(matched), time.Since(start))

	page := paginate(matched, query.Page, query.PageSize)

	s.setInCache(ctx, cacheKey, page)

	s.logger.Debug(ctx, "catalog.list", map[string]any{
		"sort":    string(query.Sort),
		"matched": len(matched),
		"page":    page.Page,
	})

	return page, nil
}

// GetProduct returns a single catalog record
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrInvalidRequest
	}
	product, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	enriched := enrichProduct(*product, s.seed)
	return &enriched, nil
}

// Facets summarizes the values the catalog can be filtered by
func (s *CatalogService) Facets(ctx context.Context) (*domain.Facets, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return buildFacets(products), nil
}

func buildFacets(products []domain.Product) *domain.Facets {
	facets := &domain.Facets{
		Categories: []string{},
		Brands:     []string{},
		Stores:     []string{},
		Ratings:    map[int]int{},
	}

	categories := map[string]struct{}{}
	brands := map[string]struct{}{}
	stores := map[string]struct{}{}
	names := make([]string, 0, len(products))

	var lo, hi *decimal.Decimal
	for _, p := range products {
		names = append(names, p.Name)
		addUnique(categories, &facets.Categories, p.Category)
		addUnique(brands, &facets.Brands, p.Brand)
		for _, store := range p.Stores {
			addUnique(stores, &facets.Stores, store)
		}

		facets.Ratings[int(math.Floor(p.Rating))]++

		if p.InStock {
			facets.Availability.InStock++
		} else {
			facets.Availability.OutOfStock++
		}

		price, err := domain.ParseMoney(p.Price)
		if err != nil {
			continue
		}
		if lo == nil || price.LessThan(*lo) {
			lo = &price
		}
		if hi == nil || price.GreaterThan(*hi) {
			hi = &price
		}
	}

	slices.Sort(facets.Categories)
	slices.Sort(facets.Brands)
	slices.Sort(facets.Stores)
	facets.Sizes = ExtractSizeTokens(names)

	if lo != nil {
		facets.PriceRange = domain.PriceRangeData{Min: lo.String(), Max: hi.String()}
	}

	return facets
}

func addUnique(seen map[string]struct{}, list *[]string, value string) {
	if value == "" {
		return
	}
	if _, ok := seen[value]; ok {
		return
	}
	seen[value] = struct{}{}
	*list = append(*list, value)
}

func validateListQuery(query ListQuery) error {
	if !query.Sort.Valid() {
		return fmt.Errorf("%w: unknown sort %q", domain.ErrInvalidRequest, query.Sort)
	}

	switch query.Criteria.Availability {
	case "", domain.AvailabilityAll, domain.AvailabilityInStock, domain.AvailabilityOutOfStock:
	default:
		return fmt.Errorf("%w: unknown availability %q", domain.ErrInvalidRequest, query.Criteria.Availability)
	}

	for _, r := range query.Criteria.Ratings {
		if r < 0 || r > 5 {
			return fmt.Errorf("%w: rating %d out of range", domain.ErrInvalidRequest, r)
		}
	}

	pr := query.Criteria.PriceRange
	if pr.Min != nil && pr.Max != nil && pr.Min.GreaterThan(*pr.Max) {
		return fmt.Errorf("%w: min price above max price", domain.ErrInvalidRequest)
	}

	if query.Page < 0 || query.PageSize < 0 {
		return fmt.Errorf("%w: negative page", domain.ErrInvalidRequest)
	}

	return nil
}

func paginate(products []domain.Product, page, pageSize int) *domain.ProductPage {
	total := len(products)
	if pageSize == 0 {
		return &domain.ProductPage{Products: products, Total: total, Page: 1, PageSize: total}
	}
	if page == 0 {
		page = 1
	}

	// compare before multiplying so huge page numbers cannot overflow
	start := total
	if page-1 <= total/pageSize {
		start = min((page-1)*pageSize, total)
	}
	end := start + min(pageSize, total-start)

	return &domain.ProductPage{
		Products: products[start:end],
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
}

// listCacheKey hashes the normalized query. Multi-select values are sorted so that
// the same selection in a different order shares an entry.
// Format: "catalog:list:{sha256}"
func listCacheKey(query ListQuery) string {
	c := query.Criteria
	normalized := struct {
		Search   string   `json:"q"`
		Category string   `json:"c"`
		Sizes    []string `json:"sz"`
		Stores   []string `json:"st"`
		Brands   []string `json:"b"`
		Ratings  []int    `json:"r"`
		Avail    string   `json:"a"`
		Min      string   `json:"min"`
		Max      string   `json:"max"`
		Sort     string   `json:"s"`
		Page     int      `json:"p"`
		PageSize int      `json:"ps"`
	}{
		Search:   strings.ToLower(strings.TrimSpace(c.Search)),
		Category: c.Category,
		Sizes:    sortedLower(c.Sizes),
		Stores:   sortedCopy(c.Stores),
		Brands:   sortedCopy(c.Brands),
		Ratings:  slices.Sorted(slices.Values(c.Ratings)),
		Avail:    string(c.Availability),
		Sort:     string(query.Sort),
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	if c.PriceRange.Min != nil {
		normalized.Min = c.PriceRange.Min.String()
	}
	if c.PriceRange.Max != nil {
		normalized.Max = c.PriceRange.Max.String()
	}

	raw, _ := json.Marshal(normalized)
	sum := sha256.Sum256(raw)
	return "catalog:list:" + hex.EncodeToString(sum[:])
}

func sortedCopy(values []string) []string {
	out := slices.Clone(values)
	slices.Sort(out)
	return out
}

func sortedLower(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.ToLower(strings.TrimSpace(v)))
	}
	slices.Sort(out)
	return out
}

func (s *CatalogService) getFromCache(ctx context.Context, key string) (*domain.ProductPage, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			s.logger.Warn(ctx, "catalog.cache_get_failed", map[string]any{"error": err.Error()})
		}
		return nil, false
	}
	var page domain.ProductPage
	if err := json.Unmarshal(raw, &page); err != nil {
		s.logger.Warn(ctx, "catalog.cache_decode_failed", map[string]any{"error": err.Error()})
		return nil, false
	}
	return &page, true
}

// setInCache stores a page; failures are logged, never returned
func (s *CatalogService) setInCache(ctx context.Context, key string, page *domain.ProductPage) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(page)
	if err != nil {
		s.logger.Warn(ctx, "catalog.cache_encode_failed", map[string]any{"error": err.Error()})
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cacheTTL); err != nil {
		s.logger.Warn(ctx, "catalog.cache_set_failed", map[string]any{"error": err.Error()})
	}
}
