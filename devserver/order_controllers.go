package devserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fooddash/fooddash-go/hub"
	"github.com/fooddash/fooddash-go/models"
	"github.com/fooddash/fooddash-go/utils"
)

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

func currentUser(c *gin.Context) (uint, models.Role) {
	id, _ := c.Get("userID")
	role, _ := c.Get("role")
	userID, _ := id.(uint)
	userRole, _ := role.(models.Role)
	return userID, userRole
}

// ListOrders answers GET orders with the caller's own view: customers see
// their orders, partners the ones assigned to them, owners their
// restaurant's, admins everything.
func (oc *OrderController) ListOrders(c *gin.Context) {
	userID, role := currentUser(c)

	query := oc.DB.Preload("Items").Preload("Items.Modifiers").Order("created_at DESC")
	switch role {
	case models.RoleCustomer:
		query = query.Where("customer_id = ?", userID)
	case models.RolePartner:
		query = query.Where("partner_id = ?", userID)
	case models.RoleRestaurantOwner:
		restaurantID, err := oc.ownedRestaurantID(userID)
		if err != nil {
			utils.RespondJSON(c, http.StatusOK, "List of orders", []models.Order{})
			return
		}
		query = query.Where("restaurant_id = ?", restaurantID)
	case models.RoleAdmin:
		// unrestricted
	default:
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// PartnerPendingOrders lists approved delivery orders still waiting for a
// partner to claim them.
func (oc *OrderController) PartnerPendingOrders(c *gin.Context) {
	_, role := currentUser(c)
	if role != models.RolePartner && role != models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var orders []models.Order
	err := oc.DB.Preload("Items").Preload("Items.Modifiers").
		Where("status = ? AND delivery_type = ? AND partner_id IS NULL",
			models.StatusApproved, models.DeliveryTypeDelivery).
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Pending orders", orders)
}

// NewRestaurantOrders lists orders awaiting this owner's approval.
func (oc *OrderController) NewRestaurantOrders(c *gin.Context) {
	userID, role := currentUser(c)
	if role != models.RoleRestaurantOwner && role != models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	restaurantID, err := oc.ownedRestaurantID(userID)
	if err != nil && role != models.RoleAdmin {
		utils.RespondJSON(c, http.StatusOK, "New orders", []models.Order{})
		return
	}

	query := oc.DB.Preload("Items").Preload("Items.Modifiers").
		Where("status = ?", models.StatusPendingApproval).
		Order("created_at ASC")
	if role == models.RoleRestaurantOwner {
		query = query.Where("restaurant_id = ?", restaurantID)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "New orders", orders)
}

type createOrderItemReq struct {
	MenuItemID uint                       `json:"menu_item_id"`
	Quantity   int                        `json:"quantity"`
	Notes      string                     `json:"notes"`
	Modifiers  []models.ModifierSelection `json:"modifiers"`
}

type createOrderReq struct {
	RestaurantID   uint                 `json:"restaurant_id"`
	Items          []createOrderItemReq `json:"items" binding:"required"`
	DeliveryType   models.DeliveryType  `json:"delivery_type"`
	AddressID      *uint                `json:"address_id"`
	IdempotencyKey string               `json:"idempotency_key"`
}

// CreateOrder accepts a checkout and creates the order in
// pending_approval. Totals are computed server side from the menu; the
// idempotency key makes resubmission after a lost response harmless.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	userID, role := currentUser(c)
	if role != models.RoleCustomer {
		utils.RespondError(c, http.StatusForbidden, errors.New("only customers can place orders"))
		return
	}

	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if len(req.Items) == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("order has no items"))
		return
	}
	if req.DeliveryType == "" {
		req.DeliveryType = models.DeliveryTypeDelivery
	}
	if req.DeliveryType == models.DeliveryTypeDelivery && req.AddressID == nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("delivery orders need an address"))
		return
	}

	// Replay of an already accepted checkout returns the stored order.
	if req.IdempotencyKey != "" {
		var existing models.Order
		err := oc.DB.Preload("Items").Preload("Items.Modifiers").
			Where("idempotency_key = ?", req.IdempotencyKey).First(&existing).Error
		if err == nil {
			utils.RespondJSON(c, http.StatusOK, "Order already created", existing)
			return
		}
	}

	order := models.Order{
		CustomerID:     userID,
		RestaurantID:   req.RestaurantID,
		Status:         models.StatusPendingApproval,
		DeliveryType:   req.DeliveryType,
		AddressID:      req.AddressID,
		IdempotencyKey: req.IdempotencyKey,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if err := oc.DB.Create(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var total float64
	for _, item := range req.Items {
		var menuItem models.MenuItem
		if err := oc.DB.First(&menuItem, item.MenuItemID).Error; err != nil {
			continue
		}
		if menuItem.RestaurantID != req.RestaurantID {
			continue
		}
		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
		}

		unitPrice := menuItem.Price
		for _, mod := range item.Modifiers {
			count := mod.Count
			if count < 1 {
				count = 1
			}
			unitPrice += mod.Surcharge * float64(count)
		}
		total += unitPrice * float64(quantity)

		orderItem := models.OrderItem{
			OrderID:    order.ID,
			MenuItemID: menuItem.ID,
			Name:       menuItem.Name,
			Quantity:   quantity,
			Price:      unitPrice,
			Notes:      item.Notes,
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		}
		if err := oc.DB.Create(&orderItem).Error; err != nil {
			continue
		}
		for _, mod := range item.Modifiers {
			mod.ID = 0
			mod.OrderItemID = orderItem.ID
			oc.DB.Create(&mod)
		}
	}

	order.TotalPrice = total
	oc.DB.Save(&order)
	oc.DB.Preload("Items").Preload("Items.Modifiers").First(&order, order.ID)

	hub.BroadcastNewOrder(order)

	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

type updateStatusReq struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus applies one lifecycle transition. Each role may only drive
// its own part of the lifecycle, and illegal transitions are rejected; the
// order returned carries the status that actually stuck.
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	userID, role := currentUser(c)

	orderID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	next, err := models.ParseOrderStatus(req.Status)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var order models.Order
	if err := oc.DB.Preload("Items").Preload("Items.Modifiers").First(&order, orderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrNotFound)
		return
	}

	if !order.Status.CanTransitionTo(next) {
		utils.RespondError(c, http.StatusConflict,
			fmt.Errorf("cannot move order from %s to %s", order.Status, next))
		return
	}
	if !oc.transitionAllowed(order, next, userID, role) {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	// A partner moving an order to assigned is claiming it.
	if next == models.StatusAssigned && role == models.RolePartner {
		order.PartnerID = &userID
	}
	order.Status = next
	order.UpdatedAt = time.Now()
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if next == models.StatusAssigned && order.PartnerID != nil {
		oc.ensureConversation(order)
		hub.BroadcastOrderToPartner(order)
	}
	hub.BroadcastStatusUpdate(order)

	utils.RespondJSON(c, http.StatusOK, "Order updated", order)
}

// transitionAllowed maps each role to the part of the lifecycle it owns.
func (oc *OrderController) transitionAllowed(order models.Order, next models.OrderStatus, userID uint, role models.Role) bool {
	switch role {
	case models.RoleAdmin:
		return true
	case models.RoleCustomer:
		// Customers may only cancel while the restaurant has not approved.
		return order.CustomerID == userID &&
			next == models.StatusCanceled && order.Status == models.StatusPendingApproval
	case models.RoleRestaurantOwner:
		restaurantID, err := oc.ownedRestaurantID(userID)
		if err != nil || restaurantID != order.RestaurantID {
			return false
		}
		switch next {
		case models.StatusApproved, models.StatusCanceled:
			return true
		case models.StatusPickedUp:
			// Pickup orders are handed to the customer by the restaurant.
			return order.DeliveryType == models.DeliveryTypePickup
		}
		return false
	case models.RolePartner:
		switch next {
		case models.StatusAssigned:
			return order.PartnerID == nil && order.DeliveryType == models.DeliveryTypeDelivery
		case models.StatusPickedUp, models.StatusDelivered, models.StatusCanceled:
			return order.PartnerID != nil && *order.PartnerID == userID
		}
		return false
	}
	return false
}

func (oc *OrderController) ownedRestaurantID(ownerID uint) (uint, error) {
	var restaurant models.Restaurant
	if err := oc.DB.Where("owner_id = ?", ownerID).First(&restaurant).Error; err != nil {
		return 0, err
	}
	return restaurant.ID, nil
}

// ensureConversation opens the customer-partner chat for an assigned order.
func (oc *OrderController) ensureConversation(order models.Order) {
	var existing models.Conversation
	if err := oc.DB.Where("order_id = ?", order.ID).First(&existing).Error; err == nil {
		return
	}
	conversation := models.Conversation{
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		PartnerID:  *order.PartnerID,
		CreatedAt:  time.Now(),
	}
	if err := oc.DB.Create(&conversation).Error; err != nil {
		utils.ErrorLogger.Errorf("create conversation for order %d: %v", order.ID, err)
	}
}
