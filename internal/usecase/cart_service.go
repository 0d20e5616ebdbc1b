package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vegist/backend/internal/domain"
	"github.com/vegist/backend/internal/infrastructure/logger"
	"github.com/vegist/backend/internal/infrastructure/metrics"
)

// AddItemRequest describes a product added to a cart
type AddItemRequest struct {
	ProductID string
	Quantity  int
	Delivery  domain.DeliveryOption
	StoreID   string
	Selection *domain.VariantSelection
}

// CartService owns cart and wishlist state for every shopping session.
// All state lives in the injected CartRepository; the service serializes
// read-modify-write cycles so concurrent requests for a session do not lose updates.
type CartService struct {
	repo    domain.CartRepository
	catalog domain.CatalogRepository
	pricing *PricingService
	metrics *metrics.Metrics
	logger  *logger.Logger

	mu    sync.Mutex
	now   func() time.Time
	newID func() string
}

// NewCartService creates a cart service. m and logg may be nil.
func NewCartService(
	repo domain.CartRepository,
	catalog domain.CatalogRepository,
	pricing *PricingService,
	m *metrics.Metrics,
	logg *logger.Logger,
) *CartService {
	return &CartService{
		repo:    repo,
		catalog: catalog,
		pricing: pricing,
		metrics: m,
		logger:  logg,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// GetCart returns the session's cart; a session without one gets an empty cart
func (s *CartService) GetCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	if err := validateSession(sessionID); err != nil {
		return nil, err
	}
	return s.repo.GetCart(ctx, sessionID)
}

// AddItem prices the product (through its variant selection when it has variants)
// and adds it to the cart. A line with the same product, variant, delivery option
// and store absorbs the quantity instead of creating a new line.
func (s *CartService) AddItem(ctx context.Context, sessionID string, req AddItemRequest) (*domain.Cart, error) {
	if err := validateSession(sessionID); err != nil {
		return nil, err
	}
	if req.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", domain.ErrInvalidRequest)
	}

	product, err := s.catalog.Get(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	delivery, err := validateDelivery(product, req.Delivery, req.StoreID)
	if err != nil {
		return nil, err
	}
	if !product.InStock {
		return nil, fmt.Errorf("%w: %s is out of stock", domain.ErrVariantUnavailable, product.ID)
	}

	item := domain.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Currency:  product.Currency,
		Quantity:  req.Quantity,
		Delivery:  delivery,
	}
	if delivery == domain.DeliveryStore {
		item.StoreID = req.StoreID
	}
	if item.Currency == "" {
		item.Currency = domain.DefaultCurrency
	}

	if product.Variants != nil && len(product.Variants.WeightTiers) > 0 {
		selection := domain.VariantSelection{}
		if req.Selection != nil {
			selection = *req.Selection
		}
		quote, err := s.pricing.Quote(ctx, product.ID, selection)
		if err != nil {
			return nil, err
		}
		if !quote.Available {
			return nil, fmt.Errorf("%w: %s", domain.ErrVariantUnavailable, quote.Variant)
		}
		item.UnitPrice = quote.Price
		item.Variant = quote.Variant
		item.Selection = quote.Selection
	} else {
		price, err := UnitPrice(*product)
		if err != nil {
			return nil, err
		}
		item.UnitPrice = price
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.repo.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range cart.Items {
		line := &cart.Items[i]
		if line.ProductID == item.ProductID && line.Variant == item.Variant &&
			line.Delivery == item.Delivery && line.StoreID == item.StoreID {
			line.Quantity += item.Quantity
			line.UnitPrice = item.UnitPrice
			merged = true
			break
		}
	}
	if !merged {
		item.ID = s.newID()
		cart.Items = append(cart.Items, item)
	}

	if err := s.saveCart(ctx, cart); err != nil {
		return nil, err
	}
	s.metrics.IncCartMutation("add")
	s.logger.Info(ctx, "cart.item_added", map[string]any{
		"session_id": sessionID,
		"product_id": item.ProductID,
		"quantity":   item.Quantity,
	})
	return cart, nil
}

// UpdateQuantity sets a line's quantity; zero or less removes the line
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID, itemID string, quantity int) (*domain.Cart, error) {
	if err := validateSession(sessionID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.repo.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	idx := slices.IndexFunc(cart.Items, func(item domain.CartItem) bool { return item.ID == itemID })
	if idx < 0 {
		return nil, domain.ErrCartItemNotFound
	}

	if quantity <= 0 {
		cart.Items = slices.Delete(cart.Items, idx, idx+1)
	} else {
		cart.Items[idx].Quantity = quantity
	}

	if err := s.saveCart(ctx, cart); err != nil {
		return nil, err
	}
	s.metrics.IncCartMutation("update")
	return cart, nil
}

// RemoveItem deletes one cart line
func (s *CartService) RemoveItem(ctx context.Context, sessionID, itemID string) (*domain.Cart, error) {
	return s.UpdateQuantity(ctx, sessionID, itemID, 0)
}

// ClearCart empties the session's cart
func (s *CartService) ClearCart(ctx context.Context, sessionID string) error {
	if err := validateSession(sessionID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.DeleteCart(ctx, sessionID); err != nil {
		return err
	}
	s.metrics.IncCartMutation("clear")
	return nil
}

// GetWishlist returns the session's wishlist; a session without one gets an empty list
func (s *CartService) GetWishlist(ctx context.Context, sessionID string) (*domain.Wishlist, error) {
	if err := validateSession(sessionID); err != nil {
		return nil, err
	}
	return s.repo.GetWishlist(ctx, sessionID)
}

// AddToWishlist saves a product. Saving a product twice is a no-op.
func (s *CartService) AddToWishlist(ctx context.Context, sessionID, productID string) (*domain.Wishlist, error) {
	if err := validateSession(sessionID); err != nil {
		return nil, err
	}
	if _, err := s.catalog.Get(ctx, productID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	wishlist, err := s.repo.GetWishlist(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if wishlist.Contains(productID) {
		return wishlist, nil
	}

	wishlist.ProductIDs = append(wishlist.ProductIDs, productID)
	wishlist.UpdatedAt = s.now()
	if err := s.repo.SaveWishlist(ctx, wishlist); err != nil {
		return nil, err
	}
	s.metrics.IncCartMutation("wishlist_add")
	return wishlist, nil
}

// RemoveFromWishlist drops a product; removing an unsaved product is a no-op
func (s *CartService) RemoveFromWishlist(ctx context.Context, sessionID, productID string) (*domain.Wishlist, error) {
	if err := validateSession(sessionID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	wishlist, err := s.repo.GetWishlist(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	idx := slices.Index(wishlist.ProductIDs, productID)
	if idx < 0 {
		return wishlist, nil
	}

	wishlist.ProductIDs = slices.Delete(wishlist.ProductIDs, idx, idx+1)
	wishlist.UpdatedAt = s.now()
	if err := s.repo.SaveWishlist(ctx, wishlist); err != nil {
		return nil, err
	}
	s.metrics.IncCartMutation("wishlist_remove")
	return wishlist, nil
}

// ClearWishlist empties the session's wishlist
func (s *CartService) ClearWishlist(ctx context.Context, sessionID string) error {
	if err := validateSession(sessionID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.DeleteWishlist(ctx, sessionID); err != nil {
		return err
	}
	s.metrics.IncCartMutation("wishlist_clear")
	return nil
}

func (s *CartService) saveCart(ctx context.Context, cart *domain.Cart) error {
	cart.UpdatedAt = s.now()
	return s.repo.SaveCart(ctx, cart)
}

func validateSession(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return fmt.Errorf("%w: session id is required", domain.ErrInvalidRequest)
	}
	return nil
}

// validateDelivery defaults the option to home delivery and checks that store
// pickup names a store the product is stocked in
func validateDelivery(product *domain.Product, delivery domain.DeliveryOption, storeID string) (domain.DeliveryOption, error) {
	switch delivery {
	case "", domain.DeliveryHome:
		return domain.DeliveryHome, nil
	case domain.DeliveryStore:
		if storeID == "" {
			return "", fmt.Errorf("%w: store pickup requires a store id", domain.ErrInvalidRequest)
		}
		if len(product.Stores) > 0 && !slices.Contains(product.Stores, storeID) {
			return "", fmt.Errorf("%w: %s is not stocked at store %s", domain.ErrVariantUnavailable, product.ID, storeID)
		}
		return domain.DeliveryStore, nil
	default:
		return "", fmt.Errorf("%w: unknown delivery option %q", domain.ErrInvalidRequest, delivery)
	}
}
