package entity

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

type Address struct {
	gorm.Model
	UserID uint `gorm:"index" json:"userId"`
	User   User `json:"-"`

	Label string `json:"label"` // "Home", "Office", ...
	Line1 string `json:"line1"`
	City  string `json:"city"`
	Phone string `json:"phone"`
}

// Snapshot flattens the address into the denormalized string stored on an
// order, so later edits to the address book never corrupt order history.
func (a *Address) Snapshot() string {
	parts := []string{a.Line1, a.City}
	s := strings.Join(parts, ", ")
	if a.Phone != "" {
		s = fmt.Sprintf("%s (%s)", s, a.Phone)
	}
	return s
}
