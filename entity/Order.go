package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order is the transactional unit of sale. It is created only by the
// checkout pipeline; after creation its Status field changes only through
// guarded lifecycle transitions, never by direct writes.
type Order struct {
	gorm.Model
	UserID uint `gorm:"index" json:"userId"`
	User   User `json:"-"`

	RestaurantID uint       `gorm:"index" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	// DeliveryAddress is a denormalized snapshot taken at checkout, not a
	// live reference into the customer's address book.
	DeliveryAddress string `json:"deliveryAddress"`
	PaymentMethod   string `json:"paymentMethod"`

	Subtotal    decimal.Decimal `gorm:"type:decimal(10,2)" json:"subtotal"`
	ServiceFee  decimal.Decimal `gorm:"type:decimal(10,2)" json:"serviceFee"`
	DeliveryFee decimal.Decimal `gorm:"type:decimal(10,2)" json:"deliveryFee"`
	Total       decimal.Decimal `gorm:"type:decimal(10,2)" json:"total"`

	// Status is materialized from the newest order_status_logs row; both are
	// written in the same transaction.
	Status OrderStatus `gorm:"size:20;index;not null" json:"status"`

	PlacedAt    time.Time  `json:"placedAt"`
	DeliveredAt *time.Time `json:"deliveredAt,omitempty"`

	CancelledBy  *Actor     `gorm:"size:20" json:"cancelledBy,omitempty"`
	CancelReason string     `json:"cancelReason,omitempty"`
	CancelledAt  *time.Time `json:"cancelledAt,omitempty"`

	// preload only on detail endpoints
	OrderItems   []OrderItem      `json:"-"`
	StatusLogs   []OrderStatusLog `json:"-"`
	Transactions []Transaction    `json:"-"`
	Reviews      []Review         `json:"-"`
}
