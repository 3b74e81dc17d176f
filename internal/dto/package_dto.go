// FILE: internal/dto/package_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Package Catalog DTOs ---

type PackageResponse struct {
	Id            uuid.UUID         `json:"id"`
	Name          string            `json:"name"`
	Slug          string            `json:"slug"`
	Description   string            `json:"description"`
	Tagline       string            `json:"tagline"`
	Price         float64           `json:"price"`
	DurationDays  int               `json:"duration_days"`
	IsMostPopular bool              `json:"is_most_popular"`
	SortOrder     int               `json:"sort_order"`
	Features      []FeatureResponse `json:"features"`
}

type CreatePackageRequest struct {
	Name          string  `json:"name" validate:"required"`
	Slug          string  `json:"slug" validate:"required"`
	Description   string  `json:"description"`
	Tagline       string  `json:"tagline"`
	Price         float64 `json:"price" validate:"required,gt=0"`
	DurationDays  int     `json:"duration_days" validate:"required,gt=0"`
	IsMostPopular bool    `json:"is_most_popular"`
	SortOrder     int     `json:"sort_order"`
}

type UpdatePackageRequest struct {
	Name          *string  `json:"name,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Tagline       *string  `json:"tagline,omitempty"`
	Price         *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	DurationDays  *int     `json:"duration_days,omitempty" validate:"omitempty,gt=0"`
	IsMostPopular *bool    `json:"is_most_popular,omitempty"`
	IsActive      *bool    `json:"is_active,omitempty"`
	SortOrder     *int     `json:"sort_order,omitempty"`
}

type AssignPackageFeatureRequest struct {
	FeatureId uuid.UUID `json:"feature_id" validate:"required"`
}

// --- Package Token DTOs ---

// ActivePackageResponse is the subscription currently held by a user
type ActivePackageResponse struct {
	TokenId     uuid.UUID `json:"token_id"`
	PackageId   uuid.UUID `json:"package_id"`
	PackageName string    `json:"package_name"`
	ActivatedAt time.Time `json:"activated_at"`
	ExpiredAt   time.Time `json:"expired_at"`
}

type CheckActivePackageResponse struct {
	HasActive     bool                   `json:"hasActive"`
	ActivePackage *ActivePackageResponse `json:"activePackage,omitempty"`
}

type PackageTokenResponse struct {
	Id          uuid.UUID `json:"id"`
	PackageId   uuid.UUID `json:"package_id"`
	PackageName string    `json:"package_name"`
	ActivatedAt time.Time `json:"activated_at"`
	ExpiredAt   time.Time `json:"expired_at"`
	IsActive    bool      `json:"is_active"`
}
