// FILE: internal/dto/notification_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type NotificationResponse struct {
	Id         uuid.UUID  `json:"id"`
	TypeCode   string     `json:"type_code"`
	Title      string     `json:"title"`
	Message    string     `json:"message"`
	EntityType string     `json:"entity_type,omitempty"`
	EntityId   *uuid.UUID `json:"entity_id,omitempty"`
	IsRead     bool       `json:"is_read"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

type NotificationListQuery struct {
	UnreadOnly bool `query:"unread_only"`
	Page       int  `query:"page"`
	Limit      int  `query:"limit"`
}

type MarkReadRequest struct {
	Ids []uuid.UUID `json:"ids" validate:"required,min=1"`
}
