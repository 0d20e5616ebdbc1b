package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryOption is how a cart line is fulfilled
type DeliveryOption string

const (
	DeliveryHome  DeliveryOption = "home"
	DeliveryStore DeliveryOption = "store"
)

// CartItem is one line of a cart
type CartItem struct {
	ID        string           `json:"id"`
	ProductID string           `json:"productId"`
	Name      string           `json:"name"`
	Variant   string           `json:"variant,omitempty"`
	UnitPrice decimal.Decimal  `json:"unitPrice"`
	Currency  string           `json:"currency"`
	Quantity  int              `json:"quantity"`
	Delivery  DeliveryOption   `json:"delivery"`
	StoreID   string           `json:"storeId,omitempty"`
	Selection VariantSelection `json:"selection"`
}

// LineTotal is unit price times quantity
func (i CartItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is the cart of one shopping session
type Cart struct {
	SessionID string     `json:"sessionId"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Subtotal sums every line total
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// ItemCount sums every line quantity
func (c *Cart) ItemCount() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// Wishlist is the ordered set of product ids saved by one session
type Wishlist struct {
	SessionID  string    `json:"sessionId"`
	ProductIDs []string  `json:"productIds"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Contains reports whether productID is already saved
func (w *Wishlist) Contains(productID string) bool {
	for _, id := range w.ProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}
