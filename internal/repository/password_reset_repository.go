package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/tokogitar/tokogitar/internal/models"

	"gorm.io/gorm"
)

// PasswordResetRepository is the OTP code data access interface.
type PasswordResetRepository interface {
	Create(reset *models.PasswordReset) error
	GetLatestActive(email, purpose string, now time.Time) (*models.PasswordReset, error)
	CountSentSince(email, purpose string, since time.Time) (int64, error)
	OldestSentSince(email, purpose string, since time.Time) (*time.Time, error)
	MarkUsed(id uint, usedAt time.Time) error
	IncrementAttempts(id uint) error
	WithTx(tx *gorm.DB) *GormPasswordResetRepository
}

// GormPasswordResetRepository is the GORM implementation.
type GormPasswordResetRepository struct {
	db *gorm.DB
}

// NewPasswordResetRepository creates a password reset repository.
func NewPasswordResetRepository(db *gorm.DB) *GormPasswordResetRepository {
	return &GormPasswordResetRepository{db: db}
}

// WithTx binds a transaction.
func (r *GormPasswordResetRepository) WithTx(tx *gorm.DB) *GormPasswordResetRepository {
	if tx == nil {
		return r
	}
	return &GormPasswordResetRepository{db: tx}
}

// Create inserts an OTP record.
func (r *GormPasswordResetRepository) Create(reset *models.PasswordReset) error {
	return r.db.Create(reset).Error
}

// GetLatestActive returns the newest unused, unexpired code for an email.
func (r *GormPasswordResetRepository) GetLatestActive(email, purpose string, now time.Time) (*models.PasswordReset, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, nil
	}
	var reset models.PasswordReset
	err := r.db.Where("lower(email) = ? AND purpose = ? AND used_at IS NULL AND expires_at > ?", email, purpose, now).
		Order("id desc").
		First(&reset).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reset, nil
}

// CountSentSince counts codes sent to an email within the window.
func (r *GormPasswordResetRepository) CountSentSince(email, purpose string, since time.Time) (int64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var count int64
	err := r.db.Model(&models.PasswordReset{}).
		Where("lower(email) = ? AND purpose = ? AND sent_at >= ?", email, purpose, since).
		Count(&count).Error
	return count, err
}

// OldestSentSince returns the sent time of the oldest code in the window,
// which decides when the rolling rate limit frees up again.
func (r *GormPasswordResetRepository) OldestSentSince(email, purpose string, since time.Time) (*time.Time, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var reset models.PasswordReset
	err := r.db.Where("lower(email) = ? AND purpose = ? AND sent_at >= ?", email, purpose, since).
		Order("sent_at asc").
		First(&reset).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reset.SentAt, nil
}

// MarkUsed consumes a code.
func (r *GormPasswordResetRepository) MarkUsed(id uint, usedAt time.Time) error {
	return r.db.Model(&models.PasswordReset{}).Where("id = ?", id).Update("used_at", usedAt).Error
}

// IncrementAttempts records a failed verify attempt.
func (r *GormPasswordResetRepository) IncrementAttempts(id uint) error {
	return r.db.Model(&models.PasswordReset{}).Where("id = ?", id).
		Update("attempt_count", gorm.Expr("attempt_count + 1")).Error
}
