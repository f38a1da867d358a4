package models

import "time"

type Conversation struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OrderID    uint      `gorm:"not null;index" json:"order_id"`
	CustomerID uint      `gorm:"not null" json:"customer_id"`
	PartnerID  uint      `gorm:"not null" json:"partner_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type ChatMessage struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ConversationID uint      `gorm:"not null;index" json:"conversation_id"`
	SenderID       uint      `gorm:"not null" json:"sender_id"`
	SenderRole     Role      `gorm:"type:varchar(20)" json:"sender_role"`
	Body           string    `gorm:"type:text;not null" json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}
