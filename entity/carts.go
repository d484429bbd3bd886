package entity

import (
	"gorm.io/gorm"
)

// Cart is the customer's single-restaurant working set. It is deactivated
// (never deleted) once converted into an order; a customer has at most one
// active cart at a time.
type Cart struct {
	gorm.Model
	UserID uint `gorm:"index" json:"userId"`
	User   User `json:"-"`

	RestaurantID uint       `json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	IsActive bool `gorm:"not null;default:true;index" json:"isActive"`

	Items []CartItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}
