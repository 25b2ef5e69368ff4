package repository

import (
	"errors"

	"github.com/tokogitar/tokogitar/internal/models"

	"gorm.io/gorm"
)

// ShipmentRepository is the shipment data access interface.
type ShipmentRepository interface {
	Create(shipment *models.Shipment) error
	Update(shipment *models.Shipment) error
	GetByOrderID(orderID uint) (*models.Shipment, error)
	WithTx(tx *gorm.DB) *GormShipmentRepository
}

// GormShipmentRepository is the GORM implementation.
type GormShipmentRepository struct {
	db *gorm.DB
}

// NewShipmentRepository creates a shipment repository.
func NewShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// WithTx binds a transaction.
func (r *GormShipmentRepository) WithTx(tx *gorm.DB) *GormShipmentRepository {
	if tx == nil {
		return r
	}
	return &GormShipmentRepository{db: tx}
}

// Create inserts a shipment record.
func (r *GormShipmentRepository) Create(shipment *models.Shipment) error {
	return r.db.Create(shipment).Error
}

// Update saves a shipment record.
func (r *GormShipmentRepository) Update(shipment *models.Shipment) error {
	return r.db.Save(shipment).Error
}

// GetByOrderID fetches the shipment for an order, nil when absent.
func (r *GormShipmentRepository) GetByOrderID(orderID uint) (*models.Shipment, error) {
	var shipment models.Shipment
	err := r.db.Where("order_id = ?", orderID).First(&shipment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &shipment, nil
}
