package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/vegist/backend/internal/domain"
)

// SnapshotRepository keeps each session's cart and wishlist as a JSON snapshot in a
// cache backend (memory or Redis). Snapshots expire ttl after their last write.
type SnapshotRepository struct {
	cache domain.CacheRepository
	ttl   time.Duration
}

// NewSnapshotRepository creates a snapshot repository on cache
func NewSnapshotRepository(cache domain.CacheRepository, ttl time.Duration) *SnapshotRepository {
	return &SnapshotRepository{cache: cache, ttl: ttl}
}

func cartKey(sessionID string) string     { return "cart:" + sessionID }
func wishlistKey(sessionID string) string { return "wishlist:" + sessionID }

// GetCart returns the stored cart or an empty one
func (r *SnapshotRepository) GetCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	cart := &domain.Cart{SessionID: sessionID, Items: []domain.CartItem{}}
	found, err := r.load(ctx, cartKey(sessionID), cart)
	if err != nil || !found {
		return cart, err
	}
	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}
	return cart, nil
}

// SaveCart writes the cart snapshot
func (r *SnapshotRepository) SaveCart(ctx context.Context, cart *domain.Cart) error {
	return r.store(ctx, cartKey(cart.SessionID), cart)
}

// DeleteCart drops the cart snapshot
func (r *SnapshotRepository) DeleteCart(ctx context.Context, sessionID string) error {
	return r.cache.Delete(ctx, cartKey(sessionID))
}

// GetWishlist returns the stored wishlist or an empty one
func (r *SnapshotRepository) GetWishlist(ctx context.Context, sessionID string) (*domain.Wishlist, error) {
	wishlist := &domain.Wishlist{SessionID: sessionID, ProductIDs: []string{}}
	found, err := r.load(ctx, wishlistKey(sessionID), wishlist)
	if err != nil || !found {
		return wishlist, err
	}
	if wishlist.ProductIDs == nil {
		wishlist.ProductIDs = []string{}
	}
	return wishlist, nil
}

// SaveWishlist writes the wishlist snapshot
func (r *SnapshotRepository) SaveWishlist(ctx context.Context, wishlist *domain.Wishlist) error {
	return r.store(ctx, wishlistKey(wishlist.SessionID), wishlist)
}

// DeleteWishlist drops the wishlist snapshot
func (r *SnapshotRepository) DeleteWishlist(ctx context.Context, sessionID string) error {
	return r.cache.Delete(ctx, wishlistKey(sessionID))
}

func (r *SnapshotRepository) load(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := r.cache.Get(ctx, key)
	if errors.Is(err, domain.ErrCacheMiss) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decoding %s: %w", key, err)
	}
	return true, nil
}

func (r *SnapshotRepository) store(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return r.cache.Set(ctx, key, raw, r.ttl)
}
