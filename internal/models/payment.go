package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment is the latest gateway transaction state for an order. Webhook
// replays overwrite the same row instead of stacking duplicates.
type Payment struct {
	ID                uint           `gorm:"primarykey" json:"id"`                           // primary key
	OrderID           uint           `gorm:"uniqueIndex;not null" json:"order_id"`           // order FK, one row per order
	TransactionID     string         `gorm:"index" json:"transaction_id"`                    // gateway transaction id
	TransactionStatus string         `gorm:"index;not null" json:"transaction_status"`       // gateway status word
	FraudStatus       string         `gorm:"type:varchar(32)" json:"fraud_status"`           // accept / challenge
	PaymentType       string         `gorm:"type:varchar(64)" json:"payment_type"`           // gateway payment method
	GrossAmount       int64          `gorm:"not null;default:0" json:"gross_amount"`         // amount in rupiah
	GatewayPayload    JSON           `gorm:"type:json" json:"gateway_payload"`               // raw notification body
	NotifiedAt        *time.Time     `gorm:"index" json:"notified_at"`                       // last webhook time
	SettledAt         *time.Time     `gorm:"index" json:"settled_at"`                        // settlement time
	CreatedAt         time.Time      `gorm:"index" json:"created_at"`                        // created time
	UpdatedAt         time.Time      `gorm:"index" json:"updated_at"`                        // updated time
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`                                 // soft delete
}

// TableName sets the table name.
func (Payment) TableName() string {
	return "payments"
}
