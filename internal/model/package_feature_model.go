package model

import (
	"time"

	"github.com/google/uuid"
)

type PackageFeature struct {
	PackageId uuid.UUID `gorm:"type:uuid;primaryKey"`
	FeatureId uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"default:now()"`
}

func (PackageFeature) TableName() string {
	return "package_features"
}
