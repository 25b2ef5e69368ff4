package repository

import (
	"errors"

	"github.com/tokogitar/tokogitar/internal/models"

	"gorm.io/gorm"
)

// CartRepository is the cart data access interface.
type CartRepository interface {
	GetOrCreateByUser(userID uint) (*models.Cart, error)
	ListItems(cartID uint) ([]models.CartItem, error)
	UpsertItem(item *models.CartItem) error
	DeleteItem(cartID, productID uint) error
	ClearItems(cartID uint) error
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository is the GORM implementation.
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a cart repository.
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx binds a transaction.
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// GetOrCreateByUser returns the user's cart, creating it on first touch.
func (r *GormCartRepository) GetOrCreateByUser(userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		if err := r.db.Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// ListItems returns cart lines with product info.
func (r *GormCartRepository) ListItems(cartID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Preload("Product").Where("cart_id = ?", cartID).Order("updated_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpsertItem adds or replaces a cart line for a product.
func (r *GormCartRepository) UpsertItem(item *models.CartItem) error {
	if item == nil {
		return nil
	}
	var existing models.CartItem
	err := r.db.Where("cart_id = ? AND product_id = ?", item.CartID, item.ProductID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(item).Error
	}
	if err != nil {
		return err
	}
	updates := map[string]interface{}{
		"quantity":   item.Quantity,
		"updated_at": item.UpdatedAt,
	}
	return r.db.Model(&existing).Updates(updates).Error
}

// DeleteItem removes one product line from a cart.
func (r *GormCartRepository) DeleteItem(cartID, productID uint) error {
	return r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).Delete(&models.CartItem{}).Error
}

// ClearItems empties a cart.
func (r *GormCartRepository) ClearItems(cartID uint) error {
	return r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}
