package models

import "time"

type Restaurant struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	OwnerID     uint       `gorm:"not null;index" json:"owner_id"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	ImageURL    *string    `gorm:"type:varchar(255)" json:"image_url,omitempty"`
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	Open        bool       `gorm:"default:true" json:"open"`
	MenuItems   []MenuItem `gorm:"foreignKey:RestaurantID" json:"menu_items,omitempty"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}

type MenuItem struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	RestaurantID uint             `gorm:"not null;index" json:"restaurant_id"`
	Name         string           `gorm:"type:varchar(255);not null" json:"name"`
	Description  string           `gorm:"type:text" json:"description"`
	Price        float64          `gorm:"type:decimal(10,2);not null" json:"price"`
	ImageURL     *string          `gorm:"type:varchar(255)" json:"image_url,omitempty"`
	Available    bool             `gorm:"default:true" json:"available"`
	Modifiers    []ModifierOption `gorm:"foreignKey:MenuItemID" json:"modifiers,omitempty"`
	CreatedAt    time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time        `gorm:"not null" json:"updated_at"`
}

// ModifierOption is a customization a restaurant offers on a menu item,
// with an optional price surcharge.
type ModifierOption struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	MenuItemID uint    `gorm:"not null;index" json:"menu_item_id"`
	Name       string  `gorm:"type:varchar(255);not null" json:"name"`
	Surcharge  float64 `gorm:"type:decimal(10,2);default:0.00" json:"surcharge"`
}
