// FILE: internal/entity/user_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string
type UserStatus string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"

	UserStatusPending UserStatus = "pending"
	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"
)

type User struct {
	Id            uuid.UUID
	Email         string
	Phone         string // WhatsApp number in international format (628xxx)
	PasswordHash  *string
	FullName      string
	Role          UserRole
	Status        UserStatus
	PhoneVerified bool
	VerifiedAt    *time.Time
	AvatarURL     *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type PasswordResetToken struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Token     string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

type UserProvider struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	ProviderName   string
	ProviderUserId string
	AvatarURL      string
	CreatedAt      time.Time
}

// OtpToken is the WhatsApp verification code sent on registration
// and password reset.
type OtpToken struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Code      string
	Purpose   string // "register" or "reset_password"
	ExpiresAt time.Time
	CreatedAt time.Time
}

type UserRefreshToken struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
	IpAddress string
	UserAgent string
}
