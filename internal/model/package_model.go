package model

import (
	"time"

	"github.com/google/uuid"
)

type Package struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"type:varchar(255);not null"`
	Slug          string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Description   string    `gorm:"type:text"`
	Tagline       string    `gorm:"type:text"`
	Price         float64   `gorm:"type:decimal(12,2);not null"`
	DurationDays  int       `gorm:"not null;default:30"`
	IsMostPopular bool      `gorm:"default:false"`
	IsActive      bool      `gorm:"default:true"`
	SortOrder     int       `gorm:"default:0"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`

	// Relations
	Features []*Feature `gorm:"many2many:package_features;joinForeignKey:package_id;joinReferences:feature_id"`
}

func (Package) TableName() string {
	return "packages"
}
