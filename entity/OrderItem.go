package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItem is an immutable snapshot of a cart line taken at order creation.
type OrderItem struct {
	gorm.Model
	Qty       int             `json:"qty"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2)" json:"unitPrice"`
	Total     decimal.Decimal `gorm:"type:decimal(10,2)" json:"total"`
	Note      string          `json:"note"`

	OrderID uint  `gorm:"index" json:"orderId"`
	Order   Order `json:"-"`

	MenuID uint `json:"menuId"`
	Menu   Menu `json:"-"` // preload only when the menu name is needed
}
