// FILE: internal/mapper/user_mapper.go
package mapper

import (
	"apto-gateway-be/internal/entity"
	"apto-gateway-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(mdl *model.User) *entity.User {
	if mdl == nil {
		return nil
	}
	return &entity.User{
		Id:            mdl.Id,
		Email:         mdl.Email,
		Phone:         mdl.Phone,
		PasswordHash:  mdl.PasswordHash,
		FullName:      mdl.FullName,
		Role:          entity.UserRole(mdl.Role),
		Status:        entity.UserStatus(mdl.Status),
		PhoneVerified: mdl.PhoneVerified,
		VerifiedAt:    mdl.VerifiedAt,
		AvatarURL:     mdl.AvatarURL,
		CreatedAt:     mdl.CreatedAt,
		UpdatedAt:     mdl.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(ent *entity.User) *model.User {
	if ent == nil {
		return nil
	}
	return &model.User{
		Id:            ent.Id,
		Email:         ent.Email,
		Phone:         ent.Phone,
		PasswordHash:  ent.PasswordHash,
		FullName:      ent.FullName,
		Role:          string(ent.Role),
		Status:        string(ent.Status),
		PhoneVerified: ent.PhoneVerified,
		VerifiedAt:    ent.VerifiedAt,
		AvatarURL:     ent.AvatarURL,
		CreatedAt:     ent.CreatedAt,
		UpdatedAt:     ent.UpdatedAt,
	}
}

func (m *UserMapper) ToEntities(models []*model.User) []*entity.User {
	entities := make([]*entity.User, 0, len(models))
	for _, mdl := range models {
		entities = append(entities, m.ToEntity(mdl))
	}
	return entities
}

// Token conversions

func (m *UserMapper) OtpTokenToEntity(mdl *model.OtpToken) *entity.OtpToken {
	if mdl == nil {
		return nil
	}
	return &entity.OtpToken{
		Id:        mdl.Id,
		UserId:    mdl.UserId,
		Code:      mdl.Code,
		Purpose:   mdl.Purpose,
		ExpiresAt: mdl.ExpiresAt,
		CreatedAt: mdl.CreatedAt,
	}
}

func (m *UserMapper) OtpTokenToModel(ent *entity.OtpToken) *model.OtpToken {
	if ent == nil {
		return nil
	}
	return &model.OtpToken{
		Id:        ent.Id,
		UserId:    ent.UserId,
		Code:      ent.Code,
		Purpose:   ent.Purpose,
		ExpiresAt: ent.ExpiresAt,
		CreatedAt: ent.CreatedAt,
	}
}

func (m *UserMapper) ResetTokenToEntity(mdl *model.PasswordResetToken) *entity.PasswordResetToken {
	if mdl == nil {
		return nil
	}
	return &entity.PasswordResetToken{
		Id:        mdl.Id,
		UserId:    mdl.UserId,
		Token:     mdl.Token,
		ExpiresAt: mdl.ExpiresAt,
		Used:      mdl.Used,
		CreatedAt: mdl.CreatedAt,
	}
}

func (m *UserMapper) ResetTokenToModel(ent *entity.PasswordResetToken) *model.PasswordResetToken {
	if ent == nil {
		return nil
	}
	return &model.PasswordResetToken{
		Id:        ent.Id,
		UserId:    ent.UserId,
		Token:     ent.Token,
		ExpiresAt: ent.ExpiresAt,
		Used:      ent.Used,
		CreatedAt: ent.CreatedAt,
	}
}

func (m *UserMapper) RefreshTokenToModel(ent *entity.UserRefreshToken) *model.UserRefreshToken {
	if ent == nil {
		return nil
	}
	return &model.UserRefreshToken{
		Id:        ent.Id,
		UserId:    ent.UserId,
		TokenHash: ent.TokenHash,
		ExpiresAt: ent.ExpiresAt,
		Revoked:   ent.Revoked,
		IpAddress: ent.IpAddress,
		UserAgent: ent.UserAgent,
		CreatedAt: ent.CreatedAt,
	}
}

func (m *UserMapper) ProviderToModel(ent *entity.UserProvider) *model.UserProvider {
	if ent == nil {
		return nil
	}
	return &model.UserProvider{
		Id:             ent.Id,
		UserId:         ent.UserId,
		ProviderName:   ent.ProviderName,
		ProviderUserId: ent.ProviderUserId,
		AvatarURL:      ent.AvatarURL,
		CreatedAt:      ent.CreatedAt,
	}
}
