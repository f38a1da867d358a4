package devserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fooddash/fooddash-go/models"
	"github.com/fooddash/fooddash-go/services"
	"github.com/fooddash/fooddash-go/utils"
)

// PaymentController is a stub of the platform's payment gateway: it issues
// intents with a fake redirect URL and flips them to success immediately.
// Good enough for the client flows; no provider SDK involved.
type PaymentController struct {
	DB *gorm.DB
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{DB: db}
}

func (pc *PaymentController) CreateIntent(c *gin.Context) {
	userID, role := currentUser(c)
	if role != models.RoleCustomer && role != models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var req services.CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var order models.Order
	if err := pc.DB.First(&order, req.OrderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrNotFound)
		return
	}
	if role == models.RoleCustomer && order.CustomerID != userID {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	reference := uuid.NewString()
	expiry := time.Now().Add(15 * time.Minute)
	intent := models.PaymentIntent{
		OrderID:     order.ID,
		Amount:      order.TotalPrice,
		Status:      models.PaymentStatusPending,
		Method:      req.Method,
		ReferenceID: reference,
		PaymentURL:  fmt.Sprintf("https://pay.fooddash.dev/intent/%s", reference),
		ExpiredAt:   &expiry,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := pc.DB.Create(&intent).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Payment intent created", intent)
}

func (pc *PaymentController) GetPayment(c *gin.Context) {
	paymentID, err := strconv.Atoi(c.Param("payment_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid payment id"))
		return
	}

	var intent models.PaymentIntent
	if err := pc.DB.First(&intent, paymentID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrNotFound)
		return
	}

	// The stub gateway settles pending intents on first poll.
	if intent.Status == models.PaymentStatusPending {
		intent.Status = models.PaymentStatusSuccess
		intent.UpdatedAt = time.Now()
		pc.DB.Save(&intent)
	}

	utils.RespondJSON(c, http.StatusOK, "Payment detail", intent)
}
