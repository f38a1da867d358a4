package services

import (
	"context"
	"fmt"

	"github.com/fooddash/fooddash-go/apiclient"
	"github.com/fooddash/fooddash-go/models"
)

type ConversationService struct {
	api  *apiclient.Client
	role RoleFunc
}

func NewConversationService(api *apiclient.Client, role RoleFunc) *ConversationService {
	if role == nil {
		role = func() models.Role { return models.RoleGuest }
	}
	return &ConversationService{api: api, role: role}
}

// Messages lists the message history of a conversation, oldest first.
func (s *ConversationService) Messages(ctx context.Context, conversationID uint) ([]models.ChatMessage, error) {
	if s.role() == models.RoleGuest {
		return nil, nil
	}
	var messages []models.ChatMessage
	err := s.api.Get(ctx, fmt.Sprintf("conversations/%d/messages", conversationID), &messages)
	return messages, err
}

// Send posts a message; delivery to the other side happens through the
// ChatChannel push.
func (s *ConversationService) Send(ctx context.Context, conversationID uint, body string) (models.ChatMessage, error) {
	var message models.ChatMessage
	if s.role() == models.RoleGuest {
		return message, &apiclient.HTTPError{StatusCode: 401, Message: "login required"}
	}
	payload := map[string]string{"body": body}
	err := s.api.Post(ctx, fmt.Sprintf("conversations/%d/messages", conversationID), payload, &message)
	return message, err
}
