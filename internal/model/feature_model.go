// FILE: internal/model/feature_model.go
// GORM model for the features (master catalog) table
package model

import (
	"time"

	"github.com/google/uuid"
)

// Feature represents a tool in the master catalog
type Feature struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code        string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	Status      string    `gorm:"type:varchar(20);not null;default:'premium'"` // free, premium
	Category    string    `gorm:"type:varchar(50)"`                            // generator, converter, calculator
	ToolURL     string    `gorm:"type:text"`
	IsActive    bool      `gorm:"default:true"`
	SortOrder   int       `gorm:"default:0"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Feature) TableName() string {
	return "features"
}
