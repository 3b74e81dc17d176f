// FILE: internal/entity/payment_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string
type PaymentMethod string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusConfirmed PaymentStatus = "confirmed" // proof uploaded, awaiting admin verification
	PaymentStatusVerified  PaymentStatus = "verified"  // admin approved, token issued
	PaymentStatusRejected  PaymentStatus = "rejected"

	PaymentMethodBCA  PaymentMethod = "BCA"
	PaymentMethodQRIS PaymentMethod = "QRIS"
)

// Payment is one checkout attempt. Created by /payment/create, completed by
// the proof upload in /payment/confirm, and activated by admin verification.
type Payment struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	PackageId    uuid.UUID
	Method       PaymentMethod
	Amount       float64
	ForceUpgrade bool
	Status       PaymentStatus
	Email        string
	Phone        string
	ProofPath    *string
	// QrisReference holds the Midtrans transaction id when a dynamic QRIS
	// charge was generated for this payment.
	QrisReference *string
	ConfirmedAt   *time.Time
	VerifiedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PaymentTransaction is a denormalized admin view of a payment.
type PaymentTransaction struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	UserEmail   string
	PackageName string
	Method      PaymentMethod
	Amount      float64
	Status      PaymentStatus
	CreatedAt   time.Time
}
