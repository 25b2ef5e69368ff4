package repository

import "gorm.io/gorm"

// applyPagination applies page parameters, normalizing bad pages.
func applyPagination(db *gorm.DB, page, pageSize int) *gorm.DB {
	if db == nil || pageSize <= 0 {
		return db
	}
	if page < 1 {
		page = 1
	}
	return db.Limit(pageSize).Offset((page - 1) * pageSize)
}
