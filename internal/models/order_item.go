package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem is a priced snapshot of one product line at checkout time.
// Later catalog edits never change what the buyer agreed to pay.
type OrderItem struct {
	ID          uint           `gorm:"primarykey" json:"id"`                  // primary key
	OrderID     uint           `gorm:"index;not null" json:"order_id"`        // order FK
	ProductID   uint           `gorm:"index;not null" json:"product_id"`      // product FK
	ProductName string         `gorm:"not null" json:"product_name"`          // name snapshot
	UnitPrice   int64          `gorm:"not null;default:0" json:"unit_price"`  // price snapshot in rupiah
	Quantity    int            `gorm:"not null" json:"quantity"`              // quantity
	TotalPrice  int64          `gorm:"not null;default:0" json:"total_price"` // unit price times quantity
	WeightGrams int            `gorm:"not null;default:0" json:"weight_grams"` // weight snapshot
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`               // created time
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`               // updated time
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                        // soft delete
}

// TableName sets the table name.
func (OrderItem) TableName() string {
	return "order_items"
}
