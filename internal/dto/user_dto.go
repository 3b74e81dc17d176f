// FILE: internal/dto/user_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserProfileResponse struct {
	Id            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	FullName      string    `json:"full_name"`
	Role          string    `json:"role"`
	Status        string    `json:"status"`
	PhoneVerified bool      `json:"phone_verified"`
	AvatarURL     *string   `json:"avatar_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Email and phone are identity fields; changing them would bypass the
// OTP verification flow, so only display fields are updatable here.
type UpdateProfileRequest struct {
	FullName  *string `json:"full_name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}
