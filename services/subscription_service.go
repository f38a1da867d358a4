package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fooddash/fooddash-go/apiclient"
	"github.com/fooddash/fooddash-go/models"
)

// SubscriptionService registers the device for push notifications so the
// backend can reach the app while no realtime socket is open.
type SubscriptionService struct {
	api  *apiclient.Client
	role RoleFunc
}

func NewSubscriptionService(api *apiclient.Client, role RoleFunc) *SubscriptionService {
	if role == nil {
		role = func() models.Role { return models.RoleGuest }
	}
	return &SubscriptionService{api: api, role: role}
}

type DeviceRegistration struct {
	ID          string `json:"id"`
	DeviceToken string `json:"device_token"`
	Platform    string `json:"platform"`
}

// Register stores the device push token under a client-generated id.
func (s *SubscriptionService) Register(ctx context.Context, deviceToken, platform string) (DeviceRegistration, error) {
	reg := DeviceRegistration{
		ID:          uuid.NewString(),
		DeviceToken: deviceToken,
		Platform:    platform,
	}
	if s.role() == models.RoleGuest {
		return reg, &apiclient.HTTPError{StatusCode: 401, Message: "login required"}
	}
	err := s.api.Post(ctx, "subscriptions", reg, &reg)
	return reg, err
}

// Unregister removes a device registration, typically at logout.
func (s *SubscriptionService) Unregister(ctx context.Context, id string) error {
	if s.role() == models.RoleGuest {
		return nil
	}
	return s.api.Delete(ctx, fmt.Sprintf("subscriptions/%s", id))
}
