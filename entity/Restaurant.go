package entity

import (
	"gorm.io/gorm"
)

type Restaurant struct {
	gorm.Model
	Name        string `json:"name"`
	Address     string `json:"address"`
	Description string `json:"description"`
	Phone       string `json:"phone"`

	// IsOpen gates checkout: a closed restaurant accepts no new orders.
	IsOpen bool `gorm:"not null;default:true" json:"isOpen"`

	UserID uint `json:"userId"` // owner (users.id)
	User   User `json:"-"`

	Menus   []Menu   `json:"-"`
	Orders  []Order  `json:"-"`
	Reviews []Review `json:"-"`
}
