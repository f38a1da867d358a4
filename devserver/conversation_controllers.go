package devserver

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fooddash/fooddash-go/hub"
	"github.com/fooddash/fooddash-go/models"
	"github.com/fooddash/fooddash-go/utils"
)

type ConversationController struct {
	DB *gorm.DB
}

func NewConversationController(db *gorm.DB) *ConversationController {
	return &ConversationController{DB: db}
}

func (cc *ConversationController) loadConversation(c *gin.Context) (models.Conversation, bool) {
	conversationID, err := strconv.Atoi(c.Param("conversation_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid conversation id"))
		return models.Conversation{}, false
	}

	var conversation models.Conversation
	if err := cc.DB.First(&conversation, conversationID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrNotFound)
		return models.Conversation{}, false
	}

	userID, role := currentUser(c)
	if role != models.RoleAdmin && conversation.CustomerID != userID && conversation.PartnerID != userID {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return models.Conversation{}, false
	}
	return conversation, true
}

func (cc *ConversationController) Messages(c *gin.Context) {
	conversation, ok := cc.loadConversation(c)
	if !ok {
		return
	}

	var messages []models.ChatMessage
	err := cc.DB.Where("conversation_id = ?", conversation.ID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Messages", messages)
}

func (cc *ConversationController) Send(c *gin.Context) {
	conversation, ok := cc.loadConversation(c)
	if !ok {
		return
	}

	var req struct {
		Body string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	userID, role := currentUser(c)
	message := models.ChatMessage{
		ConversationID: conversation.ID,
		SenderID:       userID,
		SenderRole:     role,
		Body:           req.Body,
		CreatedAt:      time.Now(),
	}
	if err := cc.DB.Create(&message).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	hub.BroadcastChatMessage(message)

	utils.RespondJSON(c, http.StatusCreated, "Message sent", message)
}
