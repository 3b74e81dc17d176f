// FILE: internal/mapper/package_mapper.go
package mapper

import (
	"apto-gateway-be/internal/entity"
	"apto-gateway-be/internal/model"
)

type PackageMapper struct {
	featureMapper *FeatureMapper
}

func NewPackageMapper() *PackageMapper {
	return &PackageMapper{featureMapper: NewFeatureMapper()}
}

func (m *PackageMapper) ToEntity(mdl *model.Package) *entity.Package {
	if mdl == nil {
		return nil
	}
	features := make([]entity.Feature, 0, len(mdl.Features))
	for _, f := range mdl.Features {
		if fe := m.featureMapper.ToEntity(f); fe != nil {
			features = append(features, *fe)
		}
	}
	return &entity.Package{
		Id:            mdl.Id,
		Name:          mdl.Name,
		Slug:          mdl.Slug,
		Description:   mdl.Description,
		Tagline:       mdl.Tagline,
		Price:         mdl.Price,
		DurationDays:  mdl.DurationDays,
		IsMostPopular: mdl.IsMostPopular,
		IsActive:      mdl.IsActive,
		SortOrder:     mdl.SortOrder,
		CreatedAt:     mdl.CreatedAt,
		UpdatedAt:     mdl.UpdatedAt,
		Features:      features,
	}
}

func (m *PackageMapper) ToModel(ent *entity.Package) *model.Package {
	if ent == nil {
		return nil
	}
	features := make([]*model.Feature, 0, len(ent.Features))
	for i := range ent.Features {
		features = append(features, m.featureMapper.ToModel(&ent.Features[i]))
	}
	return &model.Package{
		Id:            ent.Id,
		Name:          ent.Name,
		Slug:          ent.Slug,
		Description:   ent.Description,
		Tagline:       ent.Tagline,
		Price:         ent.Price,
		DurationDays:  ent.DurationDays,
		IsMostPopular: ent.IsMostPopular,
		IsActive:      ent.IsActive,
		SortOrder:     ent.SortOrder,
		CreatedAt:     ent.CreatedAt,
		UpdatedAt:     ent.UpdatedAt,
		Features:      features,
	}
}

func (m *PackageMapper) TokenToEntity(mdl *model.PackageToken) *entity.PackageToken {
	if mdl == nil {
		return nil
	}
	ent := &entity.PackageToken{
		Id:          mdl.Id,
		UserId:      mdl.UserId,
		PackageId:   mdl.PackageId,
		ActivatedAt: mdl.ActivatedAt,
		ExpiredAt:   mdl.ExpiredAt,
		IsActive:    mdl.IsActive,
		CreatedAt:   mdl.CreatedAt,
	}
	if mdl.Package != nil {
		ent.PackageName = mdl.Package.Name
	}
	return ent
}

func (m *PackageMapper) TokenToModel(ent *entity.PackageToken) *model.PackageToken {
	if ent == nil {
		return nil
	}
	return &model.PackageToken{
		Id:          ent.Id,
		UserId:      ent.UserId,
		PackageId:   ent.PackageId,
		ActivatedAt: ent.ActivatedAt,
		ExpiredAt:   ent.ExpiredAt,
		IsActive:    ent.IsActive,
		CreatedAt:   ent.CreatedAt,
	}
}

func (m *PackageMapper) TokensToEntities(models []*model.PackageToken) []*entity.PackageToken {
	entities := make([]*entity.PackageToken, 0, len(models))
	for _, mdl := range models {
		entities = append(entities, m.TokenToEntity(mdl))
	}
	return entities
}
