package repository

import (
	"errors"

	"github.com/tokogitar/tokogitar/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository is the category data access interface.
type CategoryRepository interface {
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(id uint) error
	GetByID(id uint) (*models.Category, error)
	GetBySlug(slug string) (*models.Category, error)
	List() ([]models.Category, error)
	CountProducts(categoryID uint) (int64, error)
	WithTx(tx *gorm.DB) *GormCategoryRepository
}

// GormCategoryRepository is the GORM implementation.
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a category repository.
func NewCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// WithTx binds a transaction.
func (r *GormCategoryRepository) WithTx(tx *gorm.DB) *GormCategoryRepository {
	if tx == nil {
		return r
	}
	return &GormCategoryRepository{db: tx}
}

// Create inserts a category.
func (r *GormCategoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

// Update saves a category.
func (r *GormCategoryRepository) Update(category *models.Category) error {
	return r.db.Save(category).Error
}

// Delete soft deletes a category.
func (r *GormCategoryRepository) Delete(id uint) error {
	return r.db.Delete(&models.Category{}, id).Error
}

// GetByID fetches a category by id.
func (r *GormCategoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// GetBySlug fetches a category by slug.
func (r *GormCategoryRepository) GetBySlug(slug string) (*models.Category, error) {
	var category models.Category
	result := r.db.Where("slug = ?", slug).Limit(1).Find(&category)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &category, nil
}

// List returns all categories ordered for display.
func (r *GormCategoryRepository) List() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Order("sort_order asc, id asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// CountProducts counts live products attached to a category.
func (r *GormCategoryRepository) CountProducts(categoryID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
