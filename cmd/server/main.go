package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/vegist/backend/config"
	httpDelivery "github.com/vegist/backend/internal/delivery/http"
	"github.com/vegist/backend/internal/domain"
	"github.com/vegist/backend/internal/infrastructure/cache"
	"github.com/vegist/backend/internal/infrastructure/cartstore"
	"github.com/vegist/backend/internal/infrastructure/catalog"
	"github.com/vegist/backend/internal/infrastructure/logger"
	"github.com/vegist/backend/internal/infrastructure/metrics"
	"github.com/vegist/backend/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "vegist: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := config.Flags()
	if err := flags.Parse(os.Args[1:]); err != nil {
		return err
	}

	// Load configuration
	cfg, err := config.Load(flags)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logg := logger.New(logger.Options{
		ServiceName: "vegist-backend",
		Level:       logger.ParseLevel(cfg.Log.Level),
		Format:      cfg.Log.Format,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logg.Info(ctx, "server.starting", map[string]any{
		"environment":    cfg.Server.Environment,
		"port":           cfg.Server.Port,
		"catalog_driver": cfg.Catalog.Driver,
		"cache_type":     cfg.Cache.Type,
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	// Initialize infrastructure dependencies
	products, catalogCloser, err := openCatalog(ctx, cfg.Catalog, logg)
	if err != nil {
		return err
	}
	defer catalogCloser.Close()

	store, cacheCloser, err := openCache(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	defer cacheCloser.Close()

	// Initialize usecase layer
	catalogService := usecase.NewCatalogService(products, store, usecase.CatalogServiceConfig{
		CacheTTL: cfg.Cache.TTL,
		Filter: usecase.FilterConfig{
			Locale:           cfg.Catalog.Locale,
			UnparseablePrice: domain.UnparseablePricePolicy(cfg.Catalog.UnparseablePrice),
		},
		SyntheticSeed: cfg.Catalog.SyntheticSeed,
	}, m, logg)
	pricingService := usecase.NewPricingService(products, cfg.Catalog.Locale, m)
	cartService := usecase.NewCartService(
		cartstore.NewSnapshotRepository(store, cfg.Cart.TTL),
		products,
		pricingService,
		m,
		logg,
	)

	handler := httpDelivery.NewHandler(catalogService, pricingService, cartService, logg)
	if pinger, ok := store.(httpDelivery.HealthChecker); ok {
		handler.AddHealthCheck("cache", pinger)
	}
	if sized, ok := store.(interface{ Size() int }); ok {
		m.TrackCacheEntries(sized.Size)
	}
	router := httpDelivery.SetupRouter(cfg, handler, logg, registry)

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info(ctx, "server.listening", map[string]any{"addr": server.Addr})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	logg.Info(context.Background(), "server.shutting_down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

// openCatalog builds the configured catalog repository. The SQLite catalog is seeded
// with the built-in products on first start.
func openCatalog(ctx context.Context, cfg config.CatalogConfig, logg *logger.Logger) (domain.CatalogRepository, io.Closer, error) {
	switch cfg.Driver {
	case "sqlite":
		repo, err := catalog.OpenSQLite(cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("opening catalog: %w", err)
		}
		seeded, err := repo.Seed(ctx, catalog.SeedProducts())
		if err != nil {
			repo.Close()
			return nil, nil, fmt.Errorf("seeding catalog: %w", err)
		}
		logg.Info(ctx, "catalog.opened", map[string]any{"driver": "sqlite", "seeded": seeded})
		return repo, repo, nil
	default:
		repo, err := catalog.NewMemoryRepository(catalog.SeedProducts())
		if err != nil {
			return nil, nil, fmt.Errorf("loading catalog: %w", err)
		}
		logg.Info(ctx, "catalog.opened", map[string]any{"driver": "memory"})
		return repo, closerFunc(func() error { return nil }), nil
	}
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func openCache(ctx context.Context, cfg config.CacheConfig) (domain.CacheRepository, io.Closer, error) {
	switch cfg.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to redis: %w", err)
		}
		return redisCache, redisCache, nil
	default:
		memoryCache := cache.NewMemoryCache(time.Minute)
		return memoryCache, memoryCache, nil
	}
}
