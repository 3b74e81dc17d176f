package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BySlug struct {
	Slug string
}

func (s BySlug) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("slug = ?", s.Slug)
}

type ByCode struct {
	Code string
}

func (s ByCode) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("code = ?", s.Code)
}

type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

type ByPackageID struct {
	PackageID uuid.UUID
}

func (s ByPackageID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("package_id = ?", s.PackageID)
}

// UnexpiredAt keeps tokens whose expiry is strictly in the future.
type UnexpiredAt struct {
	Now time.Time
}

func (s UnexpiredAt) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("expired_at > ?", s.Now)
}
