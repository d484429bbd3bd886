package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartItem struct {
	gorm.Model
	CartID uint `gorm:"index" json:"cartId"`
	Cart   Cart `json:"-"`

	MenuID uint `json:"menuId"`
	Menu   Menu `json:"-"`

	Qty int `json:"qty"`
	// UnitPrice is frozen at add time; later menu price changes do not
	// reprice existing lines.
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2)" json:"unitPrice"`
	Total     decimal.Decimal `gorm:"type:decimal(10,2)" json:"total"`
	Note      string          `json:"note"`
}
