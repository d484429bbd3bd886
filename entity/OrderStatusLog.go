package entity

import (
	"time"
)

// OrderStatusLog is the append-only status history of an order. One row is
// written at creation ("initiated") and one per transition after that.
// Rows are never updated or deleted.
type OrderStatusLog struct {
	ID        uint        `gorm:"primarykey" json:"id"`
	OrderID   uint        `gorm:"index;not null" json:"orderId"`
	Status    OrderStatus `gorm:"size:20;not null" json:"status"`
	ChangedBy Actor       `gorm:"size:20;not null" json:"changedBy"`
	CreatedAt time.Time   `json:"createdAt"`
}
