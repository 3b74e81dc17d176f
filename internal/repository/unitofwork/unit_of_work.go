package unitofwork

import (
	"context"

	"apto-gateway-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	FeatureRepository() contract.FeatureRepository
	PackageRepository() contract.PackageRepository
	PaymentRepository() contract.PaymentRepository
}
