package models

import (
	"time"

	"gorm.io/gorm"
)

// Shipment is the destination and courier record for one order. Resi (the
// waybill number) stays empty until the warehouse issues a label.
type Shipment struct {
	ID                uint           `gorm:"primarykey" json:"id"`                          // primary key
	OrderID           uint           `gorm:"uniqueIndex;not null" json:"order_id"`          // order FK, one shipment per order
	RecipientName     string         `gorm:"not null" json:"recipient_name"`                // receiver name
	RecipientPhone    string         `gorm:"type:varchar(32);not null" json:"recipient_phone"` // receiver phone
	Address           string         `gorm:"type:text;not null" json:"address"`             // street address
	AreaID            string         `gorm:"type:varchar(64)" json:"area_id"`               // courier aggregator destination area id
	PostalCode        string         `gorm:"type:varchar(16)" json:"postal_code"`           // postal code
	CourierCode       string         `gorm:"type:varchar(32);not null" json:"courier_code"` // courier company code
	CourierService    string         `gorm:"type:varchar(64);not null" json:"courier_service"` // courier service level
	ShippingCost      int64          `gorm:"not null;default:0" json:"shipping_cost"`       // quoted cost in rupiah
	TotalWeightGrams  int            `gorm:"not null;default:0" json:"total_weight_grams"`  // package weight
	Status            string         `gorm:"index;not null;default:'PENDING'" json:"status"` // PENDING / CONFIRMED
	Resi              string         `gorm:"type:varchar(64);index" json:"resi"`            // waybill number, set on label issuance
	CarrierOrderID    string         `gorm:"type:varchar(64)" json:"carrier_order_id"`      // aggregator order reference
	LabelIssuedAt     *time.Time     `json:"label_issued_at"`                               // label issuance time
	CreatedAt         time.Time      `gorm:"index" json:"created_at"`                       // created time
	UpdatedAt         time.Time      `gorm:"index" json:"updated_at"`                       // updated time
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`                                // soft delete
}

// TableName sets the table name.
func (Shipment) TableName() string {
	return "shipments"
}
