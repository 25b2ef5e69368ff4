package models

import (
	"github.com/tokogitar/tokogitar/internal/constants"
	"github.com/tokogitar/tokogitar/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultAdmin seeds a back-office admin account when none exists.
func InitDefaultAdmin(email, password string) error {
	var count int64
	DB.Model(&User{}).Where("role = ?", constants.RoleAdmin).Count(&count)
	if count > 0 {
		return nil
	}

	if email == "" {
		email = "admin@tokogitar.local"
	}
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := User{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: string(hash),
		Role:         constants.RoleAdmin,
	}

	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	if password == "admin123" {
		logger.Warnw("default_admin_created_with_default_password", "email", email)
		logger.Warnw("default_admin_password_change_required", "email", email)
	} else {
		logger.Warnw("default_admin_created", "email", email, "password_hidden", true)
	}

	return nil
}
