package services

import (
	"context"
	"fmt"

	"github.com/fooddash/fooddash-go/apiclient"
	"github.com/fooddash/fooddash-go/models"
)

type PaymentService struct {
	api  *apiclient.Client
	role RoleFunc
}

func NewPaymentService(api *apiclient.Client, role RoleFunc) *PaymentService {
	if role == nil {
		role = func() models.Role { return models.RoleGuest }
	}
	return &PaymentService{api: api, role: role}
}

type CreateIntentRequest struct {
	OrderID uint   `json:"order_id"`
	Method  string `json:"method"`
}

// CreateIntent opens a payment for an order. The provider flow itself
// happens in a webview against the returned payment URL.
func (s *PaymentService) CreateIntent(ctx context.Context, req CreateIntentRequest) (models.PaymentIntent, error) {
	var intent models.PaymentIntent
	if s.role() != models.RoleCustomer {
		return intent, &apiclient.HTTPError{StatusCode: 403, Message: "only customers can pay"}
	}
	err := s.api.Post(ctx, "payments/create_intent", req, &intent)
	return intent, err
}

// Get fetches the current state of a payment.
func (s *PaymentService) Get(ctx context.Context, paymentID uint) (models.PaymentIntent, error) {
	var intent models.PaymentIntent
	err := s.api.Get(ctx, fmt.Sprintf("payments/%d", paymentID), &intent)
	return intent, err
}
