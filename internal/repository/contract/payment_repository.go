package contract

import (
	"context"

	"apto-gateway-be/internal/entity"
	"apto-gateway-be/internal/repository/specification"

	"github.com/google/uuid"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	Update(ctx context.Context, payment *entity.Payment) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Payment, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Payment, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Status transitions enforce the expected current status so two
	// admins verifying concurrently cannot both win.
	MarkConfirmed(ctx context.Context, id uuid.UUID, email, phone, proofPath string) error
	MarkVerified(ctx context.Context, id uuid.UUID) error
	MarkRejected(ctx context.Context, id uuid.UUID) error

	// Dashboard / Admin Stats
	GetTotalRevenue(ctx context.Context) (float64, error)
}
