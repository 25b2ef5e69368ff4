package repository

import (
	"errors"
	"strings"

	"github.com/tokogitar/tokogitar/internal/models"

	"gorm.io/gorm"
)

// ProductRepository is the product data access interface.
type ProductRepository interface {
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
	GetByID(id uint) (*models.Product, error)
	GetBySlug(slug string) (*models.Product, error)
	GetByIDs(ids []uint) ([]models.Product, error)
	List(filter ProductListFilter) ([]models.Product, int64, error)
	DecrementStock(id uint, quantity int) (int64, error)
	WithTx(tx *gorm.DB) *GormProductRepository
}

// GormProductRepository is the GORM implementation.
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a product repository.
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx binds a transaction.
func (r *GormProductRepository) WithTx(tx *gorm.DB) *GormProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// Create inserts a product.
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update saves a product.
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// Delete soft deletes a product.
func (r *GormProductRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}

// GetByID fetches a product with its category.
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Category").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetBySlug fetches a product by slug.
func (r *GormProductRepository) GetBySlug(slug string) (*models.Product, error) {
	var product models.Product
	result := r.db.Preload("Category").Where("slug = ?", slug).Limit(1).Find(&product)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &product, nil
}

// GetByIDs fetches products by id list.
func (r *GormProductRepository) GetByIDs(ids []uint) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	var products []models.Product
	if err := r.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// List returns products matching the filter.
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	query := r.db.Model(&models.Product{})
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("lower(name) LIKE ?", like)
	}
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.WithCategory {
		query = query.Preload("Category")
	}
	var products []models.Product
	if err := applyPagination(query.Order("sort_order asc, id desc"), filter.Page, filter.PageSize).Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// DecrementStock conditionally deducts stock and reports affected rows.
// Zero rows means the remaining stock was not enough.
func (r *GormProductRepository) DecrementStock(id uint, quantity int) (int64, error) {
	result := r.db.Model(&models.Product{}).
		Where("id = ? AND stock >= ?", id, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	return result.RowsAffected, result.Error
}
