package repository

import (
	"errors"

	"github.com/tokogitar/tokogitar/internal/models"

	"gorm.io/gorm"
)

// PaymentRepository is the payment data access interface.
type PaymentRepository interface {
	Create(payment *models.Payment) error
	Update(payment *models.Payment) error
	GetByOrderID(orderID uint) (*models.Payment, error)
	WithTx(tx *gorm.DB) *GormPaymentRepository
}

// GormPaymentRepository is the GORM implementation.
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a payment repository.
func NewPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// WithTx binds a transaction.
func (r *GormPaymentRepository) WithTx(tx *gorm.DB) *GormPaymentRepository {
	if tx == nil {
		return r
	}
	return &GormPaymentRepository{db: tx}
}

// Create inserts a payment record.
func (r *GormPaymentRepository) Create(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

// Update saves a payment record.
func (r *GormPaymentRepository) Update(payment *models.Payment) error {
	return r.db.Save(payment).Error
}

// GetByOrderID fetches the payment row for an order, nil when absent.
func (r *GormPaymentRepository) GetByOrderID(orderID uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.Where("order_id = ?", orderID).First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}
