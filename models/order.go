package models

import (
	"fmt"
	"time"
)

type OrderStatus string

const (
	StatusPendingApproval OrderStatus = "pending_approval"
	StatusApproved        OrderStatus = "approved"
	StatusAssigned        OrderStatus = "assigned"
	StatusPickedUp        OrderStatus = "picked_up"
	StatusDelivered       OrderStatus = "delivered"
	StatusCanceled        OrderStatus = "canceled"
)

type DeliveryType string

const (
	DeliveryTypeDelivery DeliveryType = "delivery"
	DeliveryTypePickup   DeliveryType = "pickup"
)

// orderTransitions is the backend's order lifecycle. The client never
// computes a transition on its own; the table is used to validate statuses
// arriving from the backend, and by the dev server to reject illegal updates.
var orderTransitions = map[OrderStatus][]OrderStatus{
	StatusPendingApproval: {StatusApproved, StatusCanceled},
	StatusApproved:        {StatusAssigned, StatusPickedUp, StatusCanceled},
	StatusAssigned:        {StatusPickedUp, StatusCanceled},
	StatusPickedUp:        {StatusDelivered},
}

// ParseOrderStatus validates a status string coming off the wire.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case StatusPendingApproval, StatusApproved, StatusAssigned,
		StatusPickedUp, StatusDelivered, StatusCanceled:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

// IsTerminal reports whether no further transition is possible.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCanceled
}

// CanTransitionTo reports whether next is a legal successor of s.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Order struct {
	ID              uint         `gorm:"primaryKey" json:"id"`
	CustomerID      uint         `gorm:"not null;index" json:"customer_id"`
	RestaurantID    uint         `gorm:"not null;index" json:"restaurant_id"`
	PartnerID       *uint        `gorm:"index" json:"partner_id,omitempty"`
	Status          OrderStatus  `gorm:"type:varchar(20);not null;default:'pending_approval'" json:"status"`
	Items           []OrderItem  `gorm:"foreignKey:OrderID" json:"items"`
	TotalPrice      float64      `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_price"`
	DeliveryType    DeliveryType `gorm:"type:varchar(10);not null;default:'delivery'" json:"delivery_type"`
	AddressID       *uint        `json:"address_id,omitempty"`
	DeliveryAddress *Address     `gorm:"foreignKey:AddressID" json:"delivery_address,omitempty"`
	IdempotencyKey  string       `gorm:"type:varchar(64);index" json:"idempotency_key,omitempty"`
	CreatedAt       time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time    `gorm:"not null" json:"updated_at"`
}

type OrderItem struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	OrderID    uint `gorm:"not null;index" json:"order_id"`
	MenuItemID uint `gorm:"not null" json:"menu_item_id"`
	// Name and Price are snapshots taken at order time; the menu may change
	// afterwards.
	Name      string              `gorm:"type:varchar(255)" json:"name"`
	Quantity  int                 `gorm:"not null" json:"quantity"`
	Price     float64             `gorm:"type:decimal(10,2);not null" json:"price"`
	Notes     string              `gorm:"type:text" json:"notes"`
	Modifiers []ModifierSelection `gorm:"foreignKey:OrderItemID" json:"modifiers,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// ModifierSelection is one chosen customization option on an order line.
type ModifierSelection struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OrderItemID uint    `gorm:"index" json:"order_item_id"`
	OptionID    uint    `gorm:"not null" json:"option_id"`
	Name        string  `gorm:"type:varchar(255)" json:"name"`
	Count       int     `gorm:"not null;default:1" json:"count"`
	Surcharge   float64 `gorm:"type:decimal(10,2);default:0.00" json:"surcharge"`
}
