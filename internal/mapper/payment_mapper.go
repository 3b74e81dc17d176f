// FILE: internal/mapper/payment_mapper.go
package mapper

import (
	"apto-gateway-be/internal/entity"
	"apto-gateway-be/internal/model"
)

type PaymentMapper struct{}

func NewPaymentMapper() *PaymentMapper {
	return &PaymentMapper{}
}

func (m *PaymentMapper) ToEntity(mdl *model.Payment) *entity.Payment {
	if mdl == nil {
		return nil
	}
	return &entity.Payment{
		Id:            mdl.Id,
		UserId:        mdl.UserId,
		PackageId:     mdl.PackageId,
		Method:        entity.PaymentMethod(mdl.Method),
		Amount:        mdl.Amount,
		ForceUpgrade:  mdl.ForceUpgrade,
		Status:        entity.PaymentStatus(mdl.Status),
		Email:         mdl.Email,
		Phone:         mdl.Phone,
		ProofPath:     mdl.ProofPath,
		QrisReference: mdl.QrisReference,
		ConfirmedAt:   mdl.ConfirmedAt,
		VerifiedAt:    mdl.VerifiedAt,
		CreatedAt:     mdl.CreatedAt,
		UpdatedAt:     mdl.UpdatedAt,
	}
}

func (m *PaymentMapper) ToModel(ent *entity.Payment) *model.Payment {
	if ent == nil {
		return nil
	}
	return &model.Payment{
		Id:            ent.Id,
		UserId:        ent.UserId,
		PackageId:     ent.PackageId,
		Method:        string(ent.Method),
		Amount:        ent.Amount,
		ForceUpgrade:  ent.ForceUpgrade,
		Status:        string(ent.Status),
		Email:         ent.Email,
		Phone:         ent.Phone,
		ProofPath:     ent.ProofPath,
		QrisReference: ent.QrisReference,
		ConfirmedAt:   ent.ConfirmedAt,
		VerifiedAt:    ent.VerifiedAt,
		CreatedAt:     ent.CreatedAt,
		UpdatedAt:     ent.UpdatedAt,
	}
}

func (m *PaymentMapper) ToEntities(models []*model.Payment) []*entity.Payment {
	entities := make([]*entity.Payment, 0, len(models))
	for _, mdl := range models {
		entities = append(entities, m.ToEntity(mdl))
	}
	return entities
}
