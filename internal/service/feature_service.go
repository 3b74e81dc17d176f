// FILE: internal/service/feature_service.go
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

type IFeatureService interface {
	CreateFeature(ctx context.Context, req *dto.CreateFeatureRequest) (*dto.FeatureResponse, error)
	UpdateFeature(ctx context.Context, id uuid.UUID, req *dto.UpdateFeatureRequest) (*dto.FeatureResponse, error)
	DeleteFeature(ctx context.Context, id uuid.UUID) error
}

type featureService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewFeatureService(uowFactory unitofwork.RepositoryFactory) IFeatureService {
	return &featureService{uowFactory: uowFactory}
}

func featureToResponse(f *entity.Feature) *dto.FeatureResponse {
	return &dto.FeatureResponse{
		Id:          f.Id,
		Code:        f.Code,
		Name:        f.Name,
		Description: f.Description,
		Status:      string(f.Status),
		Category:    f.Category,
		ToolURL:     f.ToolURL,
		IsActive:    f.IsActive,
		SortOrder:   f.SortOrder,
	}
}

func (s *featureService) CreateFeature(ctx context.Context, req *dto.CreateFeatureRequest) (*dto.FeatureResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.FeatureRepository().FindByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("a feature with this code already exists")
	}

	feature := &entity.Feature{
		Id:          uuid.New(),
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Status:      entity.FeatureStatus(req.Status),
		Category:    req.Category,
		ToolURL:     req.ToolURL,
		IsActive:    req.IsActive,
		SortOrder:   req.SortOrder,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := uow.FeatureRepository().Create(ctx, feature); err != nil {
		return nil, err
	}
	return featureToResponse(feature), nil
}

func (s *featureService) UpdateFeature(ctx context.Context, id uuid.UUID, req *dto.UpdateFeatureRequest) (*dto.FeatureResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	feature, err := uow.FeatureRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if feature == nil {
		return nil, errors.New("feature not found")
	}

	if req.Name != nil {
		feature.Name = *req.Name
	}
	if req.Description != nil {
		feature.Description = *req.Description
	}
	if req.Status != nil {
		feature.Status = entity.FeatureStatus(*req.Status)
	}
	if req.Category != nil {
		feature.Category = *req.Category
	}
	if req.ToolURL != nil {
		feature.ToolURL = *req.ToolURL
	}
	if req.IsActive != nil {
		feature.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		feature.SortOrder = *req.SortOrder
	}
	feature.UpdatedAt = time.Now()

	if err := uow.FeatureRepository().Update(ctx, feature); err != nil {
		return nil, err
	}
	return featureToResponse(feature), nil
}

func (s *featureService) DeleteFeature(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.FeatureRepository().Delete(ctx, id)
}
