package implementation

import (
	"context"
	"errors"
	"time"

	"apto-gateway-be/internal/entity"
	"apto-gateway-be/internal/mapper"
	"apto-gateway-be/internal/model"
	"apto-gateway-be/internal/repository/contract"
	"apto-gateway-be/internal/repository/scope"
	"apto-gateway-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PackageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PackageMapper
}

func NewPackageRepository(db *gorm.DB) contract.PackageRepository {
	return &PackageRepositoryImpl{
		db:     db,
		mapper: mapper.NewPackageMapper(),
	}
}

func (r *PackageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PackageRepositoryImpl) Create(ctx context.Context, pkg *entity.Package) error {
	m := r.mapper.ToModel(pkg)
	if err := r.db.WithContext(ctx).Omit("Features").Create(m).Error; err != nil {
		return err
	}
	*pkg = *r.mapper.ToEntity(m)
	return nil
}

func (r *PackageRepositoryImpl) Update(ctx context.Context, pkg *entity.Package) error {
	m := r.mapper.ToModel(pkg)
	if err := r.db.WithContext(ctx).Omit("Features").Save(m).Error; err != nil {
		return err
	}
	*pkg = *r.mapper.ToEntity(m)
	return nil
}

func (r *PackageRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Package{}, id).Error
}

func (r *PackageRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Package, error) {
	var m model.Package
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Features"), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PackageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Package, error) {
	var models []*model.Package
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Features").Scopes(scope.OrderBySortOrder), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Package, 0, len(models))
	for _, m := range models {
		entities = append(entities, r.mapper.ToEntity(m))
	}
	return entities, nil
}

// Feature assignment

func (r *PackageRepositoryImpl) AddFeature(ctx context.Context, packageId uuid.UUID, featureId uuid.UUID) error {
	pf := model.PackageFeature{PackageId: packageId, FeatureId: featureId}
	return r.db.WithContext(ctx).
		Where("package_id = ? AND feature_id = ?", packageId, featureId).
		FirstOrCreate(&pf).Error
}

func (r *PackageRepositoryImpl) RemoveFeature(ctx context.Context, packageId uuid.UUID, featureId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("package_id = ? AND feature_id = ?", packageId, featureId).
		Delete(&model.PackageFeature{}).Error
}

// Tokens

func (r *PackageRepositoryImpl) CreateToken(ctx context.Context, token *entity.PackageToken) error {
	m := r.mapper.TokenToModel(token)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	token.Id = m.Id
	token.CreatedAt = m.CreatedAt
	return nil
}

func (r *PackageRepositoryImpl) UpdateToken(ctx context.Context, token *entity.PackageToken) error {
	m := r.mapper.TokenToModel(token)
	return r.db.WithContext(ctx).Save(m).Error
}

// FindActiveToken returns the unexpired active token for a user, or nil.
// A token counts as active only while expired_at is strictly in the future.
func (r *PackageRepositoryImpl) FindActiveToken(ctx context.Context, userId uuid.UUID, now time.Time) (*entity.PackageToken, error) {
	var m model.PackageToken
	query := r.applySpecifications(
		r.db.WithContext(ctx).
			Preload("Package").
			Where("user_id = ? AND is_active = ?", userId, true),
		specification.UnexpiredAt{Now: now},
	)
	err := query.Order("expired_at DESC").First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.TokenToEntity(&m), nil
}

func (r *PackageRepositoryImpl) FindTokens(ctx context.Context, specs ...specification.Specification) ([]*entity.PackageToken, error) {
	var models []*model.PackageToken
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Package").Scopes(scope.OrderByCreatedDesc), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.TokensToEntities(models), nil
}

func (r *PackageRepositoryImpl) DeactivateTokens(ctx context.Context, userId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.PackageToken{}).
		Where("user_id = ? AND is_active = ?", userId, true).
		Update("is_active", false).Error
}

func (r *PackageRepositoryImpl) CountActiveSubscribers(ctx context.Context, now time.Time) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.PackageToken{}).
		Where("is_active = ? AND expired_at > ?", true, now).
		Distinct("user_id").
		Count(&count).Error
	return int(count), err
}
