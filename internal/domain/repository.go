package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations.
// Values are opaque byte payloads; callers own the encoding.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// CatalogRepository defines read access to the product catalog
type CatalogRepository interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id string) (*Product, error)
}

// CartRepository persists cart and wishlist state per shopping session
type CartRepository interface {
	GetCart(ctx context.Context, sessionID string) (*Cart, error)
	SaveCart(ctx context.Context, cart *Cart) error
	DeleteCart(ctx context.Context, sessionID string) error
	GetWishlist(ctx context.Context, sessionID string) (*Wishlist, error)
	SaveWishlist(ctx context.Context, wishlist *Wishlist) error
	DeleteWishlist(ctx context.Context, sessionID string) error
}
