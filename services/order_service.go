package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fooddash/fooddash-go/apiclient"
	"github.com/fooddash/fooddash-go/models"
)

// RoleFunc yields the current session role. Services gate endpoints the
// backend would reject anyway: instead of a guaranteed 403 the caller gets
// an empty result.
type RoleFunc func() models.Role

type OrderService struct {
	api  *apiclient.Client
	role RoleFunc
}

func NewOrderService(api *apiclient.Client, role RoleFunc) *OrderService {
	if role == nil {
		role = func() models.Role { return models.RoleGuest }
	}
	return &OrderService{api: api, role: role}
}

// List fetches the caller's orders. Guests own no orders; skip the call.
func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	if s.role() == models.RoleGuest {
		return nil, nil
	}
	var orders []models.Order
	err := s.api.Get(ctx, "orders", &orders)
	return orders, err
}

// PartnerPendingOrders fetches orders waiting for a delivery partner.
// Only partners are entitled.
func (s *OrderService) PartnerPendingOrders(ctx context.Context) ([]models.Order, error) {
	if s.role() != models.RolePartner {
		return nil, nil
	}
	var orders []models.Order
	err := s.api.Get(ctx, "orders/partner_pending_orders", &orders)
	return orders, err
}

// NewRestaurantOrders fetches incoming orders for the owner's restaurant.
func (s *OrderService) NewRestaurantOrders(ctx context.Context) ([]models.Order, error) {
	if s.role() != models.RoleRestaurantOwner && s.role() != models.RoleAdmin {
		return nil, nil
	}
	var orders []models.Order
	err := s.api.Get(ctx, "orders/new_restaurant_orders", &orders)
	return orders, err
}

type CreateOrderItem struct {
	MenuItemID uint                       `json:"menu_item_id"`
	Quantity   int                        `json:"quantity"`
	Notes      string                     `json:"notes,omitempty"`
	Modifiers  []models.ModifierSelection `json:"modifiers,omitempty"`
}

type CreateOrderRequest struct {
	RestaurantID   uint                `json:"restaurant_id"`
	Items          []CreateOrderItem   `json:"items"`
	DeliveryType   models.DeliveryType `json:"delivery_type"`
	AddressID      *uint               `json:"address_id,omitempty"`
	IdempotencyKey string              `json:"idempotency_key"`
}

// CreateOrderFromCart builds the checkout payload for the current cart
// contents. The idempotency key protects against double submission when
// the first response is lost.
func CreateOrderFromCart(items []models.CartItem, deliveryType models.DeliveryType, addressID *uint) (CreateOrderRequest, error) {
	if len(items) == 0 {
		return CreateOrderRequest{}, fmt.Errorf("cart is empty")
	}
	req := CreateOrderRequest{
		RestaurantID:   items[0].RestaurantID,
		DeliveryType:   deliveryType,
		AddressID:      addressID,
		IdempotencyKey: uuid.NewString(),
	}
	for _, it := range items {
		req.Items = append(req.Items, CreateOrderItem{
			MenuItemID: it.MenuItemID,
			Quantity:   it.Quantity,
			Notes:      it.Notes,
			Modifiers:  it.Modifiers,
		})
	}
	return req, nil
}

// Create submits a checkout. The backend assigns the order id and the
// initial pending_approval status.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (models.Order, error) {
	var order models.Order
	if s.role() != models.RoleCustomer {
		return order, &apiclient.HTTPError{StatusCode: 403, Message: "only customers can place orders"}
	}
	err := s.api.Post(ctx, "orders/create_order", req, &order)
	return order, err
}

// UpdateStatus asks the backend to apply a status transition. Only the
// backend's answer is authoritative; the returned order carries the status
// that actually stuck.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint, status models.OrderStatus) (models.Order, error) {
	var order models.Order
	body := map[string]string{"status": string(status)}
	err := s.api.Patch(ctx, fmt.Sprintf("orders/%d/update_status", orderID), body, &order)
	return order, err
}
