package model

import (
	"time"

	"github.com/google/uuid"
)

// PackageToken rows carry a user's entitlement window. The unique partial
// index on (user_id) WHERE is_active is created by cmd/migrate, not by tags.
type PackageToken struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID `gorm:"type:uuid;not null;index"`
	PackageId   uuid.UUID `gorm:"type:uuid;not null;index"`
	Package     *Package  `gorm:"foreignKey:PackageId"`
	ActivatedAt time.Time `gorm:"not null"`
	ExpiredAt   time.Time `gorm:"not null;index"`
	IsActive    bool      `gorm:"default:true;index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (PackageToken) TableName() string {
	return "package_tokens"
}
