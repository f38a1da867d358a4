package models

import "time"

type Role string

const (
	RoleGuest           Role = "guest"
	RoleCustomer        Role = "customer"
	RolePartner         Role = "partner"
	RoleRestaurantOwner Role = "restaurant_owner"
	RoleAdmin           Role = "admin"
)

// ParseRole maps a stored role string to a known Role, defaulting to guest.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleCustomer, RolePartner, RoleRestaurantOwner, RoleAdmin:
		return Role(s)
	}
	return RoleGuest
}

type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	Email         string    `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password      string    `gorm:"type:varchar(255);not null" json:"-"`
	Role          Role      `gorm:"type:varchar(20);not null" json:"role"`
	PartnerActive bool      `gorm:"default:false" json:"partner_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
