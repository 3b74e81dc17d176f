// FILE: internal/service/entitlement_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"apto-gateway-be/internal/dto"
	"apto-gateway-be/internal/entity"
	"apto-gateway-be/internal/repository/memory"
	"apto-gateway-be/internal/repository/specification"
	"apto-gateway-be/internal/repository/unitofwork"

	"apto-gateway-be/pkg/entitlement"

	"github.com/google/uuid"
)

type IEntitlementService interface {
	GetCatalog(ctx context.Context) ([]*dto.FeatureResponse, error)
	GetAccessStatus(ctx context.Context, userId uuid.UUID) (map[string]string, error)
	GetAccessDetails(ctx context.Context, userId uuid.UUID) (*dto.FeatureAccessDetailsResponse, error)
	InvalidateAccess(userId uuid.UUID)
}

type entitlementService struct {
	uowFactory  unitofwork.RepositoryFactory
	accessCache *memory.AccessCache
	toolBaseURL string
}

func NewEntitlementService(uowFactory unitofwork.RepositoryFactory, accessCache *memory.AccessCache, toolBaseURL string) IEntitlementService {
	return &entitlementService{
		uowFactory:  uowFactory,
		accessCache: accessCache,
		toolBaseURL: toolBaseURL,
	}
}

func (s *entitlementService) GetCatalog(ctx context.Context) ([]*dto.FeatureResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	features, err := uow.FeatureRepository().FindAll(ctx, specification.ActiveOnly{})
	if err != nil {
		return nil, err
	}

	res := make([]*dto.FeatureResponse, 0, len(features))
	for _, f := range features {
		res = append(res, &dto.FeatureResponse{
			Id:          f.Id,
			Code:        f.Code,
			Name:        f.Name,
			Description: f.Description,
			Status:      string(f.Status),
			Category:    f.Category,
			ToolURL:     s.toolURL(f),
			IsActive:    f.IsActive,
			SortOrder:   f.SortOrder,
		})
	}
	return res, nil
}

func (s *entitlementService) toolURL(f *entity.Feature) string {
	if f.ToolURL != "" {
		return f.ToolURL
	}
	return fmt.Sprintf("%s/%s", s.toolBaseURL, f.Code)
}

// resolveAccessMap builds the per-user code -> status map from the
// catalog and the user's active token, caching the result briefly.
func (s *entitlementService) resolveAccessMap(ctx context.Context, userId uuid.UUID) (entitlement.AccessMap, error) {
	if cached, ok := s.accessCache.Get(userId); ok {
		m := make(entitlement.AccessMap, len(cached))
		for code, status := range cached {
			m[code] = entitlement.AccessStatus(status)
		}
		return m, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	features, err := uow.FeatureRepository().FindAll(ctx, specification.ActiveOnly{})
	if err != nil {
		return nil, err
	}

	catalog := make([]entitlement.Feature, 0, len(features))
	for _, f := range features {
		catalog = append(catalog, entitlement.Feature{Code: f.Code, Status: string(f.Status)})
	}

	var subscribedCodes map[string]struct{}
	token, err := uow.PackageRepository().FindActiveToken(ctx, userId, time.Now())
	if err != nil {
		return nil, err
	}
	if token != nil {
		pkg, err := uow.PackageRepository().FindOne(ctx, specification.ByID{ID: token.PackageId})
		if err != nil {
			return nil, err
		}
		if pkg != nil {
			subscribedCodes = make(map[string]struct{}, len(pkg.Features))
			for _, f := range pkg.Features {
				subscribedCodes[f.Code] = struct{}{}
			}
		}
	}

	accessMap := entitlement.BuildAccessMap(catalog, subscribedCodes)

	cacheable := make(map[string]string, len(accessMap))
	for code, status := range accessMap {
		cacheable[code] = string(status)
	}
	s.accessCache.Save(userId, cacheable)

	return accessMap, nil
}

func (s *entitlementService) GetAccessStatus(ctx context.Context, userId uuid.UUID) (map[string]string, error) {
	accessMap, err := s.resolveAccessMap(ctx, userId)
	if err != nil {
		return nil, err
	}

	res := make(map[string]string, len(accessMap))
	for code, status := range accessMap {
		res[code] = string(status)
	}
	return res, nil
}

func (s *entitlementService) GetAccessDetails(ctx context.Context, userId uuid.UUID) (*dto.FeatureAccessDetailsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	features, err := uow.FeatureRepository().FindAll(ctx, specification.ActiveOnly{})
	if err != nil {
		return nil, err
	}

	accessMap, err := s.resolveAccessMap(ctx, userId)
	if err != nil {
		return nil, err
	}

	subscribed := false
	details := make([]dto.FeatureAccessDetail, 0, len(features))
	for _, f := range features {
		resolved := entitlement.ResolveStatus(
			entitlement.Feature{Code: f.Code, Status: string(f.Status)},
			accessMap,
			true,  // this endpoint sits behind auth middleware
			false, // the map was fully resolved above
		)
		if resolved == entitlement.StatusSubscribed {
			subscribed = true
		}
		detail := dto.FeatureAccessDetail{
			Code:      f.Code,
			Name:      f.Name,
			Status:    string(f.Status),
			Access:    string(resolved),
			Category:  f.Category,
			SortOrder: f.SortOrder,
		}
		if resolved == entitlement.StatusFree || resolved == entitlement.StatusSubscribed {
			detail.ToolURL = s.toolURL(f)
		}
		details = append(details, detail)
	}

	return &dto.FeatureAccessDetailsResponse{
		Subscribed: subscribed,
		Features:   details,
	}, nil
}

func (s *entitlementService) InvalidateAccess(userId uuid.UUID) {
	s.accessCache.Invalidate(userId)
}
