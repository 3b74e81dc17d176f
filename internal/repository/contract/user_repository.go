package contract

import (
	"context"

	"apto-gateway-be/internal/entity"
	"apto-gateway-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Token Management
	CreatePasswordResetToken(ctx context.Context, token *entity.PasswordResetToken) error
	FindPasswordResetToken(ctx context.Context, specs ...specification.Specification) (*entity.PasswordResetToken, error)
	MarkResetTokenUsed(ctx context.Context, id uuid.UUID) error

	CreateOtpToken(ctx context.Context, token *entity.OtpToken) error
	FindLatestOtpToken(ctx context.Context, userId uuid.UUID, purpose string) (*entity.OtpToken, error)
	DeleteOtpTokens(ctx context.Context, userId uuid.UUID, purpose string) error

	CreateRefreshToken(ctx context.Context, token *entity.UserRefreshToken) error
	RevokeRefreshToken(ctx context.Context, tokenHash string) error

	// Business Specific
	ActivateUser(ctx context.Context, userId uuid.UUID) error
	MarkPhoneVerified(ctx context.Context, userId uuid.UUID) error
	UpdatePassword(ctx context.Context, userId uuid.UUID, hash string) error

	// Provider
	SaveUserProvider(ctx context.Context, provider *entity.UserProvider) error
}
