// FILE: internal/mapper/feature_mapper.go
// Mapper for Feature entity <-> model conversion
package mapper

import (
	"apto-gateway-be/internal/entity"
	"apto-gateway-be/internal/model"
)

type FeatureMapper struct{}

func NewFeatureMapper() *FeatureMapper {
	return &FeatureMapper{}
}

func (m *FeatureMapper) ToEntity(model *model.Feature) *entity.Feature {
	if model == nil {
		return nil
	}
	return &entity.Feature{
		Id:          model.Id,
		Code:        model.Code,
		Name:        model.Name,
		Description: model.Description,
		Status:      entity.FeatureStatus(model.Status),
		Category:    model.Category,
		ToolURL:     model.ToolURL,
		IsActive:    model.IsActive,
		SortOrder:   model.SortOrder,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func (m *FeatureMapper) ToModel(entity *entity.Feature) *model.Feature {
	if entity == nil {
		return nil
	}
	return &model.Feature{
		Id:          entity.Id,
		Code:        entity.Code,
		Name:        entity.Name,
		Description: entity.Description,
		Status:      string(entity.Status),
		Category:    entity.Category,
		ToolURL:     entity.ToolURL,
		IsActive:    entity.IsActive,
		SortOrder:   entity.SortOrder,
		CreatedAt:   entity.CreatedAt,
		UpdatedAt:   entity.UpdatedAt,
	}
}

func (m *FeatureMapper) ToEntities(models []*model.Feature) []*entity.Feature {
	entities := make([]*entity.Feature, 0, len(models))
	for _, mdl := range models {
		entities = append(entities, m.ToEntity(mdl))
	}
	return entities
}
