// FILE: internal/repository/contract/feature_repository.go
// Repository interface for Feature (master catalog)
package contract

import (
	"context"

	"apto-gateway-be/internal/entity"
	"apto-gateway-be/internal/repository/specification"

	"github.com/google/uuid"
)

type FeatureRepository interface {
	Create(ctx context.Context, feature *entity.Feature) error
	Update(ctx context.Context, feature *entity.Feature) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Feature, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Feature, error)
	FindByCode(ctx context.Context, code string) (*entity.Feature, error)
}
