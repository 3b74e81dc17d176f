// FILE: internal/repository/scope/common_scopes.go
package scope

import "gorm.io/gorm"

func OrderByCreatedDesc(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}

func OrderBySortOrder(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC")
}

func ActiveOnly(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}
