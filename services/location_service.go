package services

import (
	"context"

	"github.com/fooddash/fooddash-go/apiclient"
	"github.com/fooddash/fooddash-go/models"
)

type LocationService struct {
	api  *apiclient.Client
	role RoleFunc
}

func NewLocationService(api *apiclient.Client, role RoleFunc) *LocationService {
	if role == nil {
		role = func() models.Role { return models.RoleGuest }
	}
	return &LocationService{api: api, role: role}
}

// Addresses lists the saved delivery addresses of the current user.
func (s *LocationService) Addresses(ctx context.Context) ([]models.Address, error) {
	if s.role() == models.RoleGuest {
		return nil, nil
	}
	var addresses []models.Address
	err := s.api.Get(ctx, "addresses", &addresses)
	return addresses, err
}

type CreateAddressRequest struct {
	Label     string  `json:"label"`
	Street    string  `json:"street"`
	City      string  `json:"city"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Notes     string  `json:"notes,omitempty"`
}

// CreateAddress saves a new delivery address.
func (s *LocationService) CreateAddress(ctx context.Context, req CreateAddressRequest) (models.Address, error) {
	var address models.Address
	if s.role() == models.RoleGuest {
		return address, &apiclient.HTTPError{StatusCode: 401, Message: "login required"}
	}
	err := s.api.Post(ctx, "addresses", req, &address)
	return address, err
}
