// FILE: internal/dto/admin_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type AdminDashboardStats struct {
	TotalRevenue      float64 `json:"total_revenue"`
	ActiveSubscribers int     `json:"active_subscribers"`
	PendingPayments   int64   `json:"pending_payments"`
	ConfirmedPayments int64   `json:"confirmed_payments"`
	TotalUsers        int64   `json:"total_users"`
}

type TransactionListResponse struct {
	Id           uuid.UUID  `json:"id"`
	UserId       uuid.UUID  `json:"user_id"`
	UserEmail    string     `json:"user_email,omitempty"`
	PackageName  string     `json:"package_name,omitempty"`
	Method       string     `json:"method"`
	Amount       float64    `json:"amount"`
	Status       string     `json:"status"`
	ForceUpgrade bool       `json:"force_upgrade"`
	ProofPath    string     `json:"proof_path,omitempty"`
	ConfirmedAt  *time.Time `json:"confirmed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
