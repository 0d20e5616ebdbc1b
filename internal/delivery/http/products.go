package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/vegist/backend/internal/domain"
	"github.com/vegist/backend/internal/usecase"
)

// listProductsQuery is the query string of GET /products.
// Multi-value parameters accept repetition (?brand=a&brand=b) or comma lists (?brand=a,b).
type listProductsQuery struct {
	Search       string   `form:"search"`
	Category     string   `form:"category"`
	Sizes        []string `form:"size"`
	Stores       []string `form:"store"`
	Brands       []string `form:"brand"`
	Ratings      []string `form:"rating"`
	Availability string   `form:"availability" binding:"omitempty,oneof=all in-stock out-of-stock"`
	MinPrice     string   `form:"min_price"`
	MaxPrice     string   `form:"max_price"`
	Sort         string   `form:"sort" binding:"omitempty,oneof=name price-low price-high rating popularity discount"`
	Page         int      `form:"page" binding:"omitempty,min=0,max=10000"`
	PageSize     int      `form:"page_size" binding:"omitempty,min=0,max=100"`
}

func (q listProductsQuery) toListQuery() (usecase.ListQuery, error) {
	criteria := domain.FilterCriteria{
		Search:       q.Search,
		Category:     q.Category,
		Sizes:        splitValues(q.Sizes),
		Stores:       splitValues(q.Stores),
		Brands:       splitValues(q.Brands),
		Availability: domain.Availability(q.Availability),
	}

	for _, raw := range splitValues(q.Ratings) {
		rating, err := strconv.Atoi(raw)
		if err != nil {
			return usecase.ListQuery{}, fmt.Errorf("%w: rating %q is not a number", domain.ErrInvalidRequest, raw)
		}
		criteria.Ratings = append(criteria.Ratings, rating)
	}

	var err error
	if criteria.PriceRange.Min, err = parseBound(q.MinPrice, "min_price"); err != nil {
		return usecase.ListQuery{}, err
	}
	if criteria.PriceRange.Max, err = parseBound(q.MaxPrice, "max_price"); err != nil {
		return usecase.ListQuery{}, err
	}

	return usecase.ListQuery{
		Criteria: criteria,
		Sort:     domain.SortKey(q.Sort),
		Page:     q.Page,
		PageSize: q.PageSize,
	}, nil
}

func parseBound(raw, name string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil || amount.IsNegative() {
		return nil, fmt.Errorf("%w: %s must be a non-negative number", domain.ErrInvalidRequest, name)
	}
	return &amount, nil
}

// splitValues flattens repeated and comma separated parameter values, dropping blanks
func splitValues(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// ListProducts handles GET /api/v1/products
func (h *Handler) ListProducts(c *gin.Context) {
	var q listProductsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	query, err := q.toListQuery()
	if err != nil {
		h.writeError(c, err)
		return
	}

	page, err := h.catalog.ListProducts(c.Request.Context(), query)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetProduct handles GET /api/v1/products/:id
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// Facets handles GET /api/v1/products/facets
func (h *Handler) Facets(c *gin.Context) {
	facets, err := h.catalog.Facets(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, facets)
}

// QuotePrice handles POST /api/v1/products/:id/quote.
// An empty body quotes the default selection.
func (h *Handler) QuotePrice(c *gin.Context) {
	var selection domain.VariantSelection
	if err := c.ShouldBindJSON(&selection); err != nil && !errors.Is(err, io.EOF) {
		abortWithError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	quote, err := h.pricing.Quote(c.Request.Context(), c.Param("id"), selection)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}
