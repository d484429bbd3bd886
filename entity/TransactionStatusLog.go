package entity

import (
	"time"
)

// TransactionStatusLog mirrors OrderStatusLog for payment attempts; it is
// the audit trail webhook handling leans on for idempotency checks.
type TransactionStatusLog struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	TransactionID uint      `gorm:"index;not null" json:"transactionId"`
	Status        TxStatus  `gorm:"size:20;not null" json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}
