package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Menu struct {
	gorm.Model
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`

	// IsAvailable marks the item orderable right now; cart lines referencing
	// an unavailable item fail checkout validation.
	IsAvailable bool `gorm:"not null;default:true" json:"isAvailable"`

	RestaurantID uint       `gorm:"index" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`
}
