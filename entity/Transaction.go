package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is a single payment attempt. It is modeled apart from the
// order it pays for so a failed attempt can be retried with a fresh row.
// The INITIATED row is committed before the external gateway is called,
// leaving a reconcilable record if the process dies mid-call.
type Transaction struct {
	gorm.Model
	OrderID uint  `gorm:"index" json:"orderId"`
	Order   Order `json:"-"`

	Amount        decimal.Decimal `gorm:"type:decimal(10,2)" json:"amount"`
	PaymentMethod string          `json:"paymentMethod"`

	// Reference is generated by us; GatewayRef is handed back by the
	// provider and is how webhook events find their transaction.
	Reference  string `gorm:"uniqueIndex;not null" json:"reference"`
	GatewayRef string `gorm:"index" json:"gatewayRef,omitempty"`

	Status TxStatus `gorm:"size:20;index;not null" json:"status"`

	StatusLogs []TransactionStatusLog `json:"-"`
}
