package models

import "time"

// CartItem is one line of the in-memory cart. UnitPrice already includes
// the surcharges of the selected modifiers. Identical items added twice
// stay as separate lines.
type CartItem struct {
	LineID       string              `json:"line_id"`
	MenuItemID   uint                `json:"menu_item_id"`
	RestaurantID uint                `json:"restaurant_id"`
	Name         string              `json:"name"`
	UnitPrice    float64             `json:"unit_price"`
	Quantity     int                 `json:"quantity"`
	Modifiers    []ModifierSelection `json:"modifiers,omitempty"`
	Notes        string              `json:"notes,omitempty"`
	AddedAt      time.Time           `json:"added_at"`
}

// Subtotal is unit price times quantity for this line.
func (ci CartItem) Subtotal() float64 {
	return ci.UnitPrice * float64(ci.Quantity)
}
