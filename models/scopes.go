package models

import "gorm.io/gorm"

// Active filters any of the three tables down to status = 'active'.
// Usage: db.Scopes(models.Active).Where(...)
func Active(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", StatusActive)
}
