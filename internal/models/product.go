package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is a physical catalog item. Price is rupiah, weight is grams and
// feeds the courier rate lookup.
type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`                         // primary key
	CategoryID  uint           `gorm:"not null;index" json:"category_id"`            // category FK
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`             // URL identifier
	Name        string         `gorm:"not null" json:"name"`                         // display name
	Description string         `gorm:"type:text" json:"description"`                 // long description
	PriceAmount int64          `gorm:"not null;default:0" json:"price_amount"`       // unit price in rupiah
	Stock       int            `gorm:"not null;default:0" json:"stock"`              // sellable stock
	WeightGrams int            `gorm:"not null;default:0" json:"weight_grams"`       // unit weight for shipping quotes
	Images      StringArray    `gorm:"type:json" json:"images"`                      // image gallery paths
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`          // listed on storefront
	SortOrder   int            `gorm:"default:0;index" json:"sort_order"`            // ordering weight
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                      // created time
	UpdatedAt   time.Time      `json:"updated_at"`                                   // updated time
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                               // soft delete

	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // category info
}

// TableName sets the table name.
func (Product) TableName() string {
	return "products"
}
