package entity

import (
	"gorm.io/gorm"
)

type Review struct {
	gorm.Model
	Rating  int    `json:"rating"` // 1..5
	Comment string `json:"comment"`

	// one review per order
	OrderID uint  `gorm:"uniqueIndex" json:"orderId"`
	Order   Order `json:"-"`

	UserID uint `json:"userId"`
	User   User `json:"-"`

	RestaurantID uint       `gorm:"index" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`
}
