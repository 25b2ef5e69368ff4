package repository

import (
	"errors"
	"strings"

	"github.com/tokogitar/tokogitar/internal/models"

	"gorm.io/gorm"
)

// OrderRepository is the order data access interface.
type OrderRepository interface {
	Create(order *models.Order, items []models.OrderItem) error
	GetByID(id uint) (*models.Order, error)
	GetByIDAndUser(id uint, userID uint) (*models.Order, error)
	GetByOrderNo(orderNo string) (*models.Order, error)
	ListByUser(filter OrderListFilter) ([]models.Order, int64, error)
	ListAdmin(filter OrderListFilter) ([]models.Order, int64, error)
	UpdateStatus(id uint, status string, updates map[string]interface{}) error
	ResolveReceiverEmailByOrderID(orderID uint) (string, error)
	WithTx(tx *gorm.DB) *GormOrderRepository
}

// GormOrderRepository is the GORM implementation.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates an order repository.
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx binds a transaction.
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

func (r *GormOrderRepository) withDetails(query *gorm.DB) *gorm.DB {
	return query.Preload("Items").Preload("Shipment").Preload("Payment")
}

// Create inserts an order with its lines.
func (r *GormOrderRepository) Create(order *models.Order, items []models.OrderItem) error {
	if err := r.db.Create(order).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	if len(items) > 0 {
		if err := r.db.Create(&items).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetByID fetches an order with lines, shipment and payment.
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.withDetails(r.db).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByIDAndUser fetches an order owned by the given user.
func (r *GormOrderRepository) GetByIDAndUser(id uint, userID uint) (*models.Order, error) {
	var order models.Order
	result := r.withDetails(r.db).Where("id = ? AND user_id = ?", id, userID).Limit(1).Find(&order)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &order, nil
}

// GetByOrderNo fetches an order by invoice number.
func (r *GormOrderRepository) GetByOrderNo(orderNo string) (*models.Order, error) {
	orderNo = strings.TrimSpace(orderNo)
	if orderNo == "" {
		return nil, nil
	}
	var order models.Order
	result := r.withDetails(r.db).Where("order_no = ?", orderNo).Limit(1).Find(&order)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &order, nil
}

// ListByUser returns the user's orders newest first.
func (r *GormOrderRepository) ListByUser(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{}).Where("user_id = ?", filter.UserID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	if err := applyPagination(r.withDetails(query).Order("id desc"), filter.Page, filter.PageSize).Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ListAdmin returns orders for the back office.
func (r *GormOrderRepository) ListAdmin(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if orderNo := strings.TrimSpace(filter.OrderNo); orderNo != "" {
		query = query.Where("order_no = ?", orderNo)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	if err := applyPagination(r.withDetails(query).Preload("User").Order("id desc"), filter.Page, filter.PageSize).Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateStatus transitions an order and applies extra column updates.
func (r *GormOrderRepository) UpdateStatus(id uint, status string, updates map[string]interface{}) error {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = status
	return r.db.Model(&models.Order{}).Where("id = ?", id).Updates(updates).Error
}

// ResolveReceiverEmailByOrderID resolves the buyer email for status mail.
func (r *GormOrderRepository) ResolveReceiverEmailByOrderID(orderID uint) (string, error) {
	if orderID == 0 {
		return "", nil
	}
	var row struct {
		Email string
	}
	err := r.db.Model(&models.Order{}).
		Select("users.email").
		Joins("JOIN users ON users.id = orders.user_id").
		Where("orders.id = ?", orderID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(row.Email), nil
}
