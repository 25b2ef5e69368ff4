package models

import (
	"time"

	"gorm.io/gorm"
)

// Order is one checkout. TotalAmount is always the item subtotal plus the
// shipping cost captured on the shipment row.
type Order struct {
	ID           uint           `gorm:"primarykey" json:"id"`                   // primary key
	OrderNo      string         `gorm:"uniqueIndex;not null" json:"order_no"`   // invoice number, sent to the gateway as order_id
	UserID       uint           `gorm:"index;not null" json:"user_id"`          // owner FK
	Status       string         `gorm:"index;not null" json:"status"`           // PENDING / DIKEMAS / DIKIRIM / SELESAI / DIBATALKAN
	ItemsAmount  int64          `gorm:"not null;default:0" json:"items_amount"` // item subtotal in rupiah
	ShippingCost int64          `gorm:"not null;default:0" json:"shipping_cost"` // courier cost in rupiah
	TotalAmount  int64          `gorm:"not null;default:0" json:"total_amount"` // items + shipping
	SnapToken    string         `gorm:"type:varchar(200)" json:"-"`             // cached gateway payment token
	PaidAt       *time.Time     `gorm:"index" json:"paid_at"`                   // settlement time
	CanceledAt   *time.Time     `gorm:"index" json:"canceled_at"`               // cancel time
	CompletedAt  *time.Time     `gorm:"index" json:"completed_at"`              // delivery confirmation time
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                // created time
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`                // updated time
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                         // soft delete

	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`    // order lines
	Shipment *Shipment   `gorm:"foreignKey:OrderID" json:"shipment,omitempty"` // shipment record
	Payment  *Payment    `gorm:"foreignKey:OrderID" json:"payment,omitempty"`  // gateway transaction record
	User     *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`      // buyer, loaded for the back office
}

// TableName sets the table name.
func (Order) TableName() string {
	return "orders"
}
