// FILE: internal/entity/feature_entity.go
// Domain entity for the tool catalog
package entity

import (
	"time"

	"github.com/google/uuid"
)

type FeatureStatus string

const (
	FeatureStatusFree    FeatureStatus = "free"
	FeatureStatusPremium FeatureStatus = "premium"
)

// Feature represents one tool/document generator in the master catalog.
// The Code is the stable key the client uses to build tool URLs
// (e.g. "generator-surat-kuasa").
type Feature struct {
	Id          uuid.UUID
	Code        string
	Name        string
	Description string
	Status      FeatureStatus // catalog-level flag: free features bypass entitlement checks
	Category    string        // generator, converter, calculator
	ToolURL     string
	IsActive    bool
	SortOrder   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
