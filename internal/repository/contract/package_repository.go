package contract

import (
	"context"
	"time"

	"apto-gateway-be/internal/entity"
	"apto-gateway-be/internal/repository/specification"

	"github.com/google/uuid"
)

type PackageRepository interface {
	// Packages
	Create(ctx context.Context, pkg *entity.Package) error
	Update(ctx context.Context, pkg *entity.Package) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Package, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Package, error)

	// Feature assignment
	AddFeature(ctx context.Context, packageId uuid.UUID, featureId uuid.UUID) error
	RemoveFeature(ctx context.Context, packageId uuid.UUID, featureId uuid.UUID) error

	// Tokens (user subscriptions)
	CreateToken(ctx context.Context, token *entity.PackageToken) error
	UpdateToken(ctx context.Context, token *entity.PackageToken) error
	FindActiveToken(ctx context.Context, userId uuid.UUID, now time.Time) (*entity.PackageToken, error)
	FindTokens(ctx context.Context, specs ...specification.Specification) ([]*entity.PackageToken, error)
	DeactivateTokens(ctx context.Context, userId uuid.UUID) error

	// Dashboard / Admin Stats
	CountActiveSubscribers(ctx context.Context, now time.Time) (int, error)
}
