package devserver

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/fooddash/fooddash-go/models"
	"github.com/fooddash/fooddash-go/utils"
)

// AutoMigrate creates every table the dev server needs.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.MenuItem{},
		&models.ModifierOption{},
		&models.Address{},
		&models.Order{},
		&models.OrderItem{},
		&models.ModifierSelection{},
		&models.PaymentIntent{},
		&models.Conversation{},
		&models.ChatMessage{},
		&deviceRegistration{},
	)
}

// SeedDemoData creates one restaurant with a small menu and one account per
// role so the client can be exercised right after `go run .`. Passwords are
// all "password". Idempotent: an already seeded database is left alone.
func SeedDemoData(db *gorm.DB) error {
	var count int64
	db.Model(&models.User{}).Count(&count)
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []models.User{
		{Name: "Demo Customer", Email: "customer@fooddash.dev", Password: string(hashed), Role: models.RoleCustomer},
		{Name: "Demo Partner", Email: "partner@fooddash.dev", Password: string(hashed), Role: models.RolePartner, PartnerActive: true},
		{Name: "Demo Owner", Email: "owner@fooddash.dev", Password: string(hashed), Role: models.RoleRestaurantOwner},
		{Name: "Demo Admin", Email: "admin@fooddash.dev", Password: string(hashed), Role: models.RoleAdmin},
	}
	for i := range users {
		users[i].Email = strings.ToLower(users[i].Email)
		if err := db.Create(&users[i]).Error; err != nil {
			return err
		}
	}

	restaurant := models.Restaurant{
		OwnerID:     users[2].ID,
		Name:        "Warung Nusantara",
		Description: "Homestyle rice bowls and satay",
		Latitude:    -6.2,
		Longitude:   106.8,
		Open:        true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := db.Create(&restaurant).Error; err != nil {
		return err
	}

	menu := []models.MenuItem{
		{RestaurantID: restaurant.ID, Name: "Nasi Goreng", Price: 5.0, Available: true},
		{RestaurantID: restaurant.ID, Name: "Chicken Satay", Price: 3.0, Available: true},
		{RestaurantID: restaurant.ID, Name: "Es Teh", Price: 1.5, Available: true},
	}
	for i := range menu {
		if err := db.Create(&menu[i]).Error; err != nil {
			return err
		}
	}

	options := []models.ModifierOption{
		{MenuItemID: menu[0].ID, Name: "Extra Egg", Surcharge: 0.5},
		{MenuItemID: menu[0].ID, Name: "Spicy", Surcharge: 0},
		{MenuItemID: menu[1].ID, Name: "Peanut Sauce", Surcharge: 0.25},
	}
	for i := range options {
		if err := db.Create(&options[i]).Error; err != nil {
			return err
		}
	}

	address := models.Address{
		UserID:    users[0].ID,
		Label:     "Home",
		Street:    "Jl. Sudirman 1",
		City:      "Jakarta",
		Latitude:  -6.21,
		Longitude: 106.82,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := db.Create(&address).Error; err != nil {
		return err
	}

	utils.InfoLogger.Info("seeded demo data: 4 accounts, 1 restaurant, 3 menu items")
	return nil
}
