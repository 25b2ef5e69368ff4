package models

import (
	"time"

	"gorm.io/gorm"
)

// Cart is the single open cart per customer. Items survive logout and are
// cleared when the customer checks out.
type Cart struct {
	ID        uint           `gorm:"primarykey" json:"id"`            // primary key
	UserID    uint           `gorm:"uniqueIndex;not null" json:"user_id"` // owner FK, one cart per user
	CreatedAt time.Time      `gorm:"index" json:"created_at"`         // created time
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`         // updated time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                  // soft delete

	Items []CartItem `gorm:"foreignKey:CartID" json:"items,omitempty"` // cart lines
}

// TableName sets the table name.
func (Cart) TableName() string {
	return "carts"
}

// CartItem is one product line inside a cart.
type CartItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                         // primary key
	CartID    uint           `gorm:"not null;uniqueIndex:idx_cart_item_product" json:"cart_id"`    // cart FK
	ProductID uint           `gorm:"not null;uniqueIndex:idx_cart_item_product" json:"product_id"` // product FK
	Quantity  int            `gorm:"not null" json:"quantity"`                                     // quantity
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                                      // created time
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`                                      // updated time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                               // soft delete

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // product info
}

// TableName sets the table name.
func (CartItem) TableName() string {
	return "cart_items"
}
