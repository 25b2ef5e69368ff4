package repository

import (
	"errors"
	"strings"

	"github.com/tokogitar/tokogitar/internal/models"

	"gorm.io/gorm"
)

// UserRepository is the user data access interface.
type UserRepository interface {
	Create(user *models.User) error
	Update(user *models.User) error
	Delete(id uint) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	UpdatePasswordHash(id uint, hash string) error
	List(filter UserListFilter) ([]models.User, int64, error)
	WithTx(tx *gorm.DB) *GormUserRepository
}

// GormUserRepository is the GORM implementation.
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a user repository.
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// WithTx binds a transaction.
func (r *GormUserRepository) WithTx(tx *gorm.DB) *GormUserRepository {
	if tx == nil {
		return r
	}
	return &GormUserRepository{db: tx}
}

// Create inserts a user.
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// Update saves a user.
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Delete soft deletes a user.
func (r *GormUserRepository) Delete(id uint) error {
	return r.db.Delete(&models.User{}, id).Error
}

// GetByID fetches a user by id.
func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail fetches a user by email, case insensitive.
func (r *GormUserRepository) GetByEmail(email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, nil
	}
	var user models.User
	result := r.db.Where("lower(email) = ?", email).Limit(1).Find(&user)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &user, nil
}

// UpdatePasswordHash replaces the stored password hash.
func (r *GormUserRepository) UpdatePasswordHash(id uint, hash string) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("password_hash", hash).Error
}

// List returns users for the back office.
func (r *GormUserRepository) List(filter UserListFilter) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{})
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		like := "%" + strings.ToLower(keyword) + "%"
		query = query.Where("lower(email) LIKE ? OR lower(name) LIKE ?", like, like)
	}
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	if err := applyPagination(query.Order("id desc"), filter.Page, filter.PageSize).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
