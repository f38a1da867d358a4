package devserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fooddash/fooddash-go/services"
	"github.com/fooddash/fooddash-go/utils"
)

// deviceRegistration persists a device push token. Only the dev server
// needs the table; the real backend owns this resource in production.
type deviceRegistration struct {
	ID          string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	DeviceToken string    `gorm:"type:varchar(255)" json:"device_token"`
	Platform    string    `gorm:"type:varchar(20)" json:"platform"`
	CreatedAt   time.Time `json:"created_at"`
}

type SubscriptionController struct {
	DB *gorm.DB
}

func NewSubscriptionController(db *gorm.DB) *SubscriptionController {
	return &SubscriptionController{DB: db}
}

func (sc *SubscriptionController) Register(c *gin.Context) {
	userID, _ := currentUser(c)

	var req services.DeviceRegistration
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	registration := deviceRegistration{
		ID:          req.ID,
		UserID:      userID,
		DeviceToken: req.DeviceToken,
		Platform:    req.Platform,
		CreatedAt:   time.Now(),
	}
	if err := sc.DB.Save(&registration).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Device registered", req)
}

func (sc *SubscriptionController) Unregister(c *gin.Context) {
	userID, _ := currentUser(c)

	err := sc.DB.Where("id = ? AND user_id = ?", c.Param("subscription_id"), userID).
		Delete(&deviceRegistration{}).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Device unregistered", nil)
}
