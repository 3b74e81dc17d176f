// FILE: internal/entity/package_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Package is a purchasable bundle of features with a fixed duration.
type Package struct {
	Id            uuid.UUID
	Name          string
	Slug          string
	Description   string
	Tagline       string
	Price         float64 // IDR
	DurationDays  int
	IsMostPopular bool
	IsActive      bool
	SortOrder     int
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Relations
	Features []Feature
}

// PackageToken is a user's activated package. At most one token per user
// is active and unexpired at any time; a forced upgrade deactivates the
// old token instead of merging durations.
type PackageToken struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	PackageId   uuid.UUID
	PackageName string
	ActivatedAt time.Time
	ExpiredAt   time.Time
	IsActive    bool
	CreatedAt   time.Time
}

// Expired reports whether the token has lapsed at the given instant.
// Active means expired_at strictly after now.
func (t *PackageToken) Expired(now time.Time) bool {
	return !t.ExpiredAt.After(now)
}
