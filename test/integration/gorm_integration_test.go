package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"apto-gateway-be/internal/entity"
	"apto-gateway-be/internal/repository/unitofwork"
	"apto-gateway-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.FeatureRepository())
	assert.NotNil(t, uow.PackageRepository())
	assert.NotNil(t, uow.PaymentRepository())

	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Check Payment Repository", func(t *testing.T) {
		count, err := uow.PaymentRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Payment count: %d", count)
	})

	t.Run("Transactional Payment With Token", func(t *testing.T) {
		ctx := context.Background()

		userId := uuid.New()
		user := &entity.User{
			Id:            userId,
			Email:         "test-integration-" + uuid.New().String() + "@example.com",
			Phone:         "62811" + uuid.New().String()[:8],
			FullName:      "Integration Test User",
			Role:          entity.UserRoleUser,
			Status:        entity.UserStatusActive,
			PhoneVerified: true,
		}

		pkg := &entity.Package{
			Id:           uuid.New(),
			Name:         "Integration Package",
			Slug:         "integration-package-" + uuid.New().String(),
			Price:        49000,
			DurationDays: 30,
			IsActive:     true,
		}

		err := uow.UserRepository().Create(ctx, user)
		assert.NoError(t, err)
		err = uow.PackageRepository().Create(ctx, pkg)
		assert.NoError(t, err)

		err = uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		payment := &entity.Payment{
			Id:        uuid.New(),
			UserId:    userId,
			PackageId: pkg.Id,
			Method:    entity.PaymentMethodBCA,
			Amount:    pkg.Price,
			Status:    entity.PaymentStatusPending,
		}
		err = uow.PaymentRepository().Create(ctx, payment)
		assert.NoError(t, err)

		now := time.Now()
		token := &entity.PackageToken{
			Id:          uuid.New(),
			UserId:      userId,
			PackageId:   pkg.Id,
			ActivatedAt: now,
			ExpiredAt:   now.AddDate(0, 0, pkg.DurationDays),
			IsActive:    true,
		}
		err = uow.PackageRepository().CreateToken(ctx, token)
		assert.NoError(t, err)

		err = uow.Commit()
		assert.NoError(t, err)

		t.Log("Successfully created Payment with PackageToken in Transaction")
	})
}
