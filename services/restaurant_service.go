package services

import (
	"context"
	"fmt"

	"github.com/fooddash/fooddash-go/apiclient"
	"github.com/fooddash/fooddash-go/models"
)

type RestaurantService struct {
	api *apiclient.Client
}

func NewRestaurantService(api *apiclient.Client) *RestaurantService {
	return &RestaurantService{api: api}
}

// List fetches the restaurant catalog. Open to every role including guests.
func (s *RestaurantService) List(ctx context.Context) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	err := s.api.Get(ctx, "restaurants", &restaurants)
	return restaurants, err
}

// MenuItems fetches the menu of one restaurant.
func (s *RestaurantService) MenuItems(ctx context.Context, restaurantID uint) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := s.api.Get(ctx, fmt.Sprintf("restaurants/%d/menu_items", restaurantID), &items)
	return items, err
}
