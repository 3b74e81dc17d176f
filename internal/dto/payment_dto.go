// FILE: internal/dto/payment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Payment DTOs ---

type CreatePaymentRequest struct {
	PackageId    uuid.UUID `json:"package_id" validate:"required"`
	Method       string    `json:"method" validate:"required,oneof=BCA QRIS"`
	ForceUpgrade bool      `json:"forceUpgrade"`
}

// CreatePaymentResponse is returned by POST /payment/create. When an
// active subscription blocks a non-forced request, HasActive is set and
// PaymentId is empty.
type CreatePaymentResponse struct {
	PaymentId     uuid.UUID              `json:"payment_id,omitempty"`
	HasActive     bool                   `json:"hasActive,omitempty"`
	ActivePackage *ActivePackageResponse `json:"activePackage,omitempty"`
	Instructions  *PaymentInstructions   `json:"instructions,omitempty"`
}

// PaymentInstructions tells the client how to settle the payment
type PaymentInstructions struct {
	Method        string  `json:"method"`
	Amount        float64 `json:"amount"`
	BankName      string  `json:"bank_name,omitempty"`
	AccountNumber string  `json:"account_number,omitempty"`
	AccountHolder string  `json:"account_holder,omitempty"`
	QrisImageURL  string  `json:"qris_image_url,omitempty"`
	QrString      string  `json:"qr_string,omitempty"`
}

// ConfirmPaymentRequest is bound from multipart form fields; the proof
// file itself is read from the form separately.
type ConfirmPaymentRequest struct {
	PaymentId uuid.UUID `form:"payment_id" validate:"required"`
	Email     string    `form:"email" validate:"required,email"`
	Phone     string    `form:"phone" validate:"required"`
}

type ConfirmPaymentResponse struct {
	PaymentId uuid.UUID `json:"payment_id"`
	Status    string    `json:"status"`
}

type PaymentResponse struct {
	Id           uuid.UUID  `json:"id"`
	PackageId    uuid.UUID  `json:"package_id"`
	PackageName  string     `json:"package_name,omitempty"`
	Method       string     `json:"method"`
	Amount       float64    `json:"amount"`
	ForceUpgrade bool       `json:"force_upgrade"`
	Status       string     `json:"status"`
	ConfirmedAt  *time.Time `json:"confirmed_at,omitempty"`
	VerifiedAt   *time.Time `json:"verified_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// --- Admin verification DTOs ---

type VerifyPaymentRequest struct {
	Approve bool   `json:"approve"`
	Reason  string `json:"reason,omitempty"`
}

type AdminPaymentListQuery struct {
	Status    string `query:"status" validate:"omitempty,oneof=pending confirmed verified rejected"`
	Method    string `query:"method" validate:"omitempty,oneof=BCA QRIS"`
	PackageId string `query:"package_id" validate:"omitempty,uuid"`
	Page      int    `query:"page"`
	Limit     int    `query:"limit"`
}
