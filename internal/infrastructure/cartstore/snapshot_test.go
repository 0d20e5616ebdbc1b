package cartstore

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegist/backend/internal/domain"
	"github.com/vegist/backend/internal/infrastructure/cache"
)

func newTestRepository(t *testing.T) (*SnapshotRepository, *cache.MemoryCache) {
	t.Helper()
	mem := cache.NewMemoryCache(time.Minute)
	t.Cleanup(func() { mem.Close() })
	return NewSnapshotRepository(mem, time.Hour), mem
}

func TestSnapshotRepositoryCart(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)

	empty, err := repo.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", empty.SessionID)
	assert.NotNil(t, empty.Items)
	assert.Empty(t, empty.Items)

	cart := &domain.Cart{SessionID: "s1", Items: []domain.CartItem{{
		ID:        "line-1",
		ProductID: "p-101",
		UnitPrice: decimal.NewFromInt(1862),
		Quantity:  2,
		Delivery:  domain.DeliveryHome,
	}}}
	require.NoError(t, repo.SaveCart(ctx, cart))

	loaded, err := repo.GetCart(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.True(t, loaded.Items[0].UnitPrice.Equal(decimal.NewFromInt(1862)))
	assert.Equal(t, 2, loaded.Items[0].Quantity)

	other, err := repo.GetCart(ctx, "s2")
	require.NoError(t, err)
	assert.Empty(t, other.Items, "sessions are isolated")

	require.NoError(t, repo.DeleteCart(ctx, "s1"))
	cleared, err := repo.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, cleared.Items)
}

func TestSnapshotRepositoryWishlist(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)

	require.NoError(t, repo.SaveWishlist(ctx, &domain.Wishlist{SessionID: "s1", ProductIDs: []string{"p-201", "p-101"}}))

	loaded, err := repo.GetWishlist(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p-201", "p-101"}, loaded.ProductIDs)

	require.NoError(t, repo.DeleteWishlist(ctx, "s1"))
	cleared, err := repo.GetWishlist(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{}, cleared.ProductIDs)
}

func TestSnapshotRepositoryCorruptSnapshot(t *testing.T) {
	ctx := context.Background()
	repo, mem := newTestRepository(t)

	require.NoError(t, mem.Set(ctx, "cart:s1", []byte("{not json"), time.Hour))
	_, err := repo.GetCart(ctx, "s1")
	assert.Error(t, err)
}
