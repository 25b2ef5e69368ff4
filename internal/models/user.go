package models

import (
	"time"

	"gorm.io/gorm"
)

// User is the single account table. Role decides which surface the account
// can reach: CUSTOMER for the storefront, GUDANG and ADMIN for the back office.
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`                 // primary key
	Name         string         `gorm:"not null" json:"name"`                 // display name
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`    // login email
	PasswordHash string         `gorm:"not null" json:"-"`                    // bcrypt hash, never serialized
	Phone        string         `gorm:"type:varchar(32)" json:"phone"`        // contact phone
	Role         string         `gorm:"index;not null;default:'CUSTOMER'" json:"role"` // CUSTOMER / GUDANG / ADMIN
	LastLoginAt  *time.Time     `json:"last_login_at"`                        // last successful login
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`              // created time
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`              // updated time
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                       // soft delete
}

// TableName sets the table name.
func (User) TableName() string {
	return "users"
}
