package cart

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fooddash/fooddash-go/models"
	"github.com/fooddash/fooddash-go/utils"
)

// Cart is the in-memory, restaurant-scoped cart. At most one cart is
// active per process and every line shares the same restaurant. Identical
// items are kept as separate lines, never merged.
type Cart struct {
	mu           sync.Mutex
	restaurantID uint
	items        []models.CartItem
}

func New() *Cart {
	return &Cart{}
}

// AddItem appends a line to the cart. Quantity defaults to 1 when absent.
// The restaurant-scope guard lives here and nowhere else: adding an item
// from a different restaurant clears the cart and adopts the new scope.
func (c *Cart) AddItem(item models.CartItem) models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.restaurantID != 0 && item.RestaurantID != c.restaurantID {
		utils.InfoLogger.Infof("cart: switching restaurant %d -> %d, clearing %d lines",
			c.restaurantID, item.RestaurantID, len(c.items))
		c.items = nil
	}
	c.restaurantID = item.RestaurantID

	if item.Quantity == 0 {
		item.Quantity = 1
	}
	if item.LineID == "" {
		item.LineID = uuid.NewString()
	}
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now()
	}

	c.items = append(c.items, item)
	return item
}

// RemoveItem removes every line holding the given menu item.
func (c *Cart) RemoveItem(menuItemID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.items[:0]
	for _, it := range c.items {
		if it.MenuItemID != menuItemID {
			kept = append(kept, it)
		}
	}
	c.items = kept
}

// RemoveLine removes a single line by its line id.
func (c *Cart) RemoveLine(lineID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.items[:0]
	for _, it := range c.items {
		if it.LineID != lineID {
			kept = append(kept, it)
		}
	}
	c.items = kept
}

// SetQuantity sets the quantity of every line holding the menu item. The
// value is stored verbatim; callers clamp to a minimum of 1 before calling.
func (c *Cart) SetQuantity(menuItemID uint, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].MenuItemID == menuItemID {
			c.items[i].Quantity = quantity
		}
	}
}

// Clear empties the cart and resets the restaurant scope.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.restaurantID = 0
}

// RestaurantID returns the current scope, 0 when the cart is empty.
func (c *Cart) RestaurantID() uint {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.restaurantID
}

// Items returns a copy of the cart lines in insertion order.
func (c *Cart) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of lines.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Total sums unit price times quantity over all lines. Unit prices already
// include modifier surcharges.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total float64
	for _, it := range c.items {
		total += it.Subtotal()
	}
	return total
}

// TotalFormatted renders the total for display, e.g. "13.000,00".
func (c *Cart) TotalFormatted() string {
	return utils.FormatPrice(c.Total())
}
