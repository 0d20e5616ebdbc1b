package domain

import "errors"

var (
	// ErrProductNotFound is returned when a product id is not in the catalog
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrInvalidPrice is returned when a price string cannot be parsed
	ErrInvalidPrice = errors.New("invalid price")

	// ErrInvalidCustomWeight is returned when a custom weight is not a positive number
	ErrInvalidCustomWeight = errors.New("custom weight must be a positive number")

	// ErrVariantUnavailable is returned when a selected configuration cannot be purchased
	ErrVariantUnavailable = errors.New("selected variant is unavailable")

	// ErrNoVariants is returned when a product offers no weight tiers to price
	ErrNoVariants = errors.New("product has no variant pricing")

	// ErrCartItemNotFound is returned when a cart line id does not exist
	ErrCartItemNotFound = errors.New("cart item not found")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")

	// ErrInvalidCatalog is returned when catalog records fail validation
	ErrInvalidCatalog = errors.New("invalid catalog")
)
