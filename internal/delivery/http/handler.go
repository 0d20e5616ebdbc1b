package http

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vegist/backend/internal/infrastructure/logger"
	"github.com/vegist/backend/internal/usecase"
)

const healthCheckTimeout = 2 * time.Second

// HealthChecker is a backing service checked by /health, such as the cache
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	catalog *usecase.CatalogService
	pricing *usecase.PricingService
	carts   *usecase.CartService
	logger  *logger.Logger
	checks  map[string]HealthChecker
}

// NewHandler creates a new HTTP handler
func NewHandler(
	catalog *usecase.CatalogService,
	pricing *usecase.PricingService,
	carts *usecase.CartService,
	logg *logger.Logger,
) *Handler {
	return &Handler{
		catalog: catalog,
		pricing: pricing,
		carts:   carts,
		logger:  logg,
		checks:  map[string]HealthChecker{},
	}
}

// AddHealthCheck registers a dependency reported by /health under name
func (h *Handler) AddHealthCheck(name string, check HealthChecker) {
	h.checks[name] = check
}

// HealthCheck returns the health status of the API and its registered dependencies.
// Any failing dependency turns the response into a 503 "degraded".
func (h *Handler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	status, code := "healthy", http.StatusOK
	results := make(map[string]string, len(h.checks))
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		if err := h.checks[name].Ping(ctx); err != nil {
			results[name] = err.Error()
			status, code = "degraded", http.StatusServiceUnavailable
			h.logger.Warn(ctx, "health.check_failed", map[string]any{"check": name, "error": err.Error()})
			continue
		}
		results[name] = "ok"
	}

	c.JSON(code, gin.H{
		"status":  status,
		"service": "vegist-backend",
		"version": "1.0.0",
		"checks":  results,
	})
}
