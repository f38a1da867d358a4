package models

import "time"

// PaymentIntent mirrors the payment record the backend returns when a
// checkout is submitted. The client only displays it; no provider SDK is
// involved on this side.
type PaymentIntent struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	OrderID     uint       `gorm:"not null;index" json:"order_id"`
	Amount      float64    `gorm:"type:decimal(10,2);not null" json:"amount"`
	Status      string     `gorm:"type:varchar(20);default:'pending'" json:"status"`
	Method      string     `gorm:"type:varchar(30)" json:"method"`
	ReferenceID string     `gorm:"type:varchar(100)" json:"reference_id"`
	PaymentURL  string     `gorm:"type:varchar(255)" json:"payment_url"`
	ExpiredAt   *time.Time `json:"expired_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

const (
	PaymentStatusPending = "pending"
	PaymentStatusSuccess = "success"
	PaymentStatusFailed  = "failed"
	PaymentStatusExpired = "expired"
)
