package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// JSON stores loosely structured payloads such as gateway notification bodies.
type JSON map[string]interface{}

// Value implements driver.Valuer.
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner.
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSON)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, j)
}

// StringArray stores string lists such as product image galleries.
type StringArray []string

// Value implements driver.Valuer.
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner.
func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = StringArray{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, s)
}

// Category groups products for storefront browsing.
type Category struct {
	ID        uint           `gorm:"primarykey" json:"id"`              // primary key
	Slug      string         `gorm:"uniqueIndex;not null" json:"slug"`  // URL identifier
	Name      string         `gorm:"not null" json:"name"`              // display name
	SortOrder int            `gorm:"default:0;index" json:"sort_order"` // ordering weight
	CreatedAt time.Time      `gorm:"index" json:"created_at"`           // created time
	UpdatedAt time.Time      `json:"updated_at"`                        // updated time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                    // soft delete
}

// TableName sets the table name.
func (Category) TableName() string {
	return "categories"
}
