package models

import (
	"time"

	"gorm.io/gorm"
)

// PasswordReset is one emailed OTP code. A code is single use and expires a
// few minutes after it is sent.
type PasswordReset struct {
	ID           uint           `gorm:"primarykey" json:"id"`           // primary key
	Email        string         `gorm:"index;not null" json:"email"`    // target email
	UserID       uint           `gorm:"index;not null" json:"user_id"`  // user FK
	Purpose      string         `gorm:"index;not null" json:"purpose"`  // code purpose
	Code         string         `gorm:"not null" json:"-"`              // OTP digits, never serialized
	ExpiresAt    time.Time      `gorm:"index" json:"expires_at"`        // expiry time
	UsedAt       *time.Time     `gorm:"index" json:"used_at"`           // consumption time
	AttemptCount int            `gorm:"default:0" json:"attempt_count"` // failed verify attempts
	SentAt       time.Time      `gorm:"index" json:"sent_at"`           // send time
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`        // created time
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                 // soft delete
}

// TableName sets the table name.
func (PasswordReset) TableName() string {
	return "password_resets"
}
