// FILE: internal/dto/feature_dto.go
// DTOs for the feature catalog and access resolution
package dto

import "github.com/google/uuid"

// --- Feature Catalog DTOs ---

// CreateFeatureRequest is used to add a new feature to the catalog
type CreateFeatureRequest struct {
	Code        string `json:"code" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status" validate:"required,oneof=free premium"`
	Category    string `json:"category,omitempty"`
	ToolURL     string `json:"tool_url,omitempty"`
	IsActive    bool   `json:"is_active"`
	SortOrder   int    `json:"sort_order"`
}

// UpdateFeatureRequest is used to update a feature in the catalog
type UpdateFeatureRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=free premium"`
	Category    *string `json:"category,omitempty"`
	ToolURL     *string `json:"tool_url,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
	SortOrder   *int    `json:"sort_order,omitempty"`
}

// FeatureResponse is returned when getting feature(s) from the catalog
type FeatureResponse struct {
	Id          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Category    string    `json:"category"`
	ToolURL     string    `json:"tool_url"`
	IsActive    bool      `json:"is_active"`
	SortOrder   int       `json:"sort_order"`
}

// --- Access Resolution DTOs ---

// FeatureAccessStatusResponse answers "can this user open premium tools"
type FeatureAccessStatusResponse struct {
	HasAccess bool `json:"has_access"`
}

// FeatureAccessDetail carries the resolved access state of one feature
type FeatureAccessDetail struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	Access    string `json:"access"` // free, premium, locked
	ToolURL   string `json:"tool_url,omitempty"`
	Category  string `json:"category,omitempty"`
	SortOrder int    `json:"sort_order"`
}

type FeatureAccessDetailsResponse struct {
	Subscribed bool                  `json:"subscribed"`
	Features   []FeatureAccessDetail `json:"features"`
}
