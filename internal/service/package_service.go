// FILE: internal/service/package_service.go
package service

import (
	"context"
	"errors"
	"time"

	"apto-gateway-be/internal/dto"
	"apto-gateway-be/internal/entity"
	"apto-gateway-be/internal/repository/specification"
	"apto-gateway-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IPackageService interface {
	GetPackages(ctx context.Context) ([]*dto.PackageResponse, error)
	GetPackage(ctx context.Context, id uuid.UUID) (*dto.PackageResponse, error)
	GetUserTokens(ctx context.Context, userId uuid.UUID) ([]*dto.PackageTokenResponse, error)

	// Admin catalog management
	CreatePackage(ctx context.Context, req *dto.CreatePackageRequest) (*dto.PackageResponse, error)
	UpdatePackage(ctx context.Context, id uuid.UUID, req *dto.UpdatePackageRequest) (*dto.PackageResponse, error)
	AssignFeature(ctx context.Context, packageId uuid.UUID, featureId uuid.UUID) error
	RemoveFeature(ctx context.Context, packageId uuid.UUID, featureId uuid.UUID) error
}

type packageService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewPackageService(uowFactory unitofwork.RepositoryFactory) IPackageService {
	return &packageService{uowFactory: uowFactory}
}

func packageToResponse(pkg *entity.Package) *dto.PackageResponse {
	features := make([]dto.FeatureResponse, 0, len(pkg.Features))
	for _, f := range pkg.Features {
		features = append(features, dto.FeatureResponse{
			Id:          f.Id,
			Code:        f.Code,
			Name:        f.Name,
			Description: f.Description,
			Status:      string(f.Status),
			Category:    f.Category,
			ToolURL:     f.ToolURL,
			IsActive:    f.IsActive,
			SortOrder:   f.SortOrder,
		})
	}
	return &dto.PackageResponse{
		Id:            pkg.Id,
		Name:          pkg.Name,
		Slug:          pkg.Slug,
		Description:   pkg.Description,
		Tagline:       pkg.Tagline,
		Price:         pkg.Price,
		DurationDays:  pkg.DurationDays,
		IsMostPopular: pkg.IsMostPopular,
		SortOrder:     pkg.SortOrder,
		Features:      features,
	}
}

func (s *packageService) GetPackages(ctx context.Context) ([]*dto.PackageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	packages, err := uow.PackageRepository().FindAll(ctx, specification.ActiveOnly{})
	if err != nil {
		return nil, err
	}

	res := make([]*dto.PackageResponse, 0, len(packages))
	for _, p := range packages {
		res = append(res, packageToResponse(p))
	}
	return res, nil
}

func (s *packageService) GetPackage(ctx context.Context, id uuid.UUID) (*dto.PackageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	pkg, err := uow.PackageRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, ErrPackageNotFound
	}
	return packageToResponse(pkg), nil
}

func (s *packageService) GetUserTokens(ctx context.Context, userId uuid.UUID) ([]*dto.PackageTokenResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tokens, err := uow.PackageRepository().FindTokens(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	res := make([]*dto.PackageTokenResponse, 0, len(tokens))
	for _, t := range tokens {
		res = append(res, &dto.PackageTokenResponse{
			Id:          t.Id,
			PackageId:   t.PackageId,
			PackageName: t.PackageName,
			ActivatedAt: t.ActivatedAt,
			ExpiredAt:   t.ExpiredAt,
			IsActive:    t.IsActive && !t.Expired(now),
		})
	}
	return res, nil
}

func (s *packageService) CreatePackage(ctx context.Context, req *dto.CreatePackageRequest) (*dto.PackageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.PackageRepository().FindOne(ctx, specification.BySlug{Slug: req.Slug})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("a package with this slug already exists")
	}

	pkg := &entity.Package{
		Id:            uuid.New(),
		Name:          req.Name,
		Slug:          req.Slug,
		Description:   req.Description,
		Tagline:       req.Tagline,
		Price:         req.Price,
		DurationDays:  req.DurationDays,
		IsMostPopular: req.IsMostPopular,
		IsActive:      true,
		SortOrder:     req.SortOrder,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := uow.PackageRepository().Create(ctx, pkg); err != nil {
		return nil, err
	}
	return packageToResponse(pkg), nil
}

func (s *packageService) UpdatePackage(ctx context.Context, id uuid.UUID, req *dto.UpdatePackageRequest) (*dto.PackageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	pkg, err := uow.PackageRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, ErrPackageNotFound
	}

	if req.Name != nil {
		pkg.Name = *req.Name
	}
	if req.Description != nil {
		pkg.Description = *req.Description
	}
	if req.Tagline != nil {
		pkg.Tagline = *req.Tagline
	}
	if req.Price != nil {
		pkg.Price = *req.Price
	}
	if req.DurationDays != nil {
		pkg.DurationDays = *req.DurationDays
	}
	if req.IsMostPopular != nil {
		pkg.IsMostPopular = *req.IsMostPopular
	}
	if req.IsActive != nil {
		pkg.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		pkg.SortOrder = *req.SortOrder
	}
	pkg.UpdatedAt = time.Now()

	if err := uow.PackageRepository().Update(ctx, pkg); err != nil {
		return nil, err
	}
	return packageToResponse(pkg), nil
}

func (s *packageService) AssignFeature(ctx context.Context, packageId uuid.UUID, featureId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	pkg, err := uow.PackageRepository().FindOne(ctx, specification.ByID{ID: packageId})
	if err != nil {
		return err
	}
	if pkg == nil {
		return ErrPackageNotFound
	}

	feature, err := uow.FeatureRepository().FindOne(ctx, specification.ByID{ID: featureId})
	if err != nil {
		return err
	}
	if feature == nil {
		return errors.New("feature not found")
	}

	return uow.PackageRepository().AddFeature(ctx, packageId, featureId)
}

func (s *packageService) RemoveFeature(ctx context.Context, packageId uuid.UUID, featureId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.PackageRepository().RemoveFeature(ctx, packageId, featureId)
}
