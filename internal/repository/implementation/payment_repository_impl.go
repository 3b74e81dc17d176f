package implementation

import (
	"context"
	"errors"
	"time"

	"apto-gateway-be/internal/entity"
	"apto-gateway-be/internal/mapper"
	"apto-gateway-be/internal/model"
	"apto-gateway-be/internal/repository/contract"
	"apto-gateway-be/internal/repository/scope"
	"apto-gateway-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrPaymentStateConflict = errors.New("payment is not in the expected status")

type PaymentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PaymentMapper
}

func NewPaymentRepository(db *gorm.DB) contract.PaymentRepository {
	return &PaymentRepositoryImpl{
		db:     db,
		mapper: mapper.NewPaymentMapper(),
	}
}

func (r *PaymentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PaymentRepositoryImpl) Create(ctx context.Context, payment *entity.Payment) error {
	m := r.mapper.ToModel(payment)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*payment = *r.mapper.ToEntity(m)
	return nil
}

func (r *PaymentRepositoryImpl) Update(ctx context.Context, payment *entity.Payment) error {
	m := r.mapper.ToModel(payment)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*payment = *r.mapper.ToEntity(m)
	return nil
}

func (r *PaymentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Payment, error) {
	var m model.Payment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PaymentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Payment, error) {
	var models []*model.Payment
	query := r.applySpecifications(r.db.WithContext(ctx).Scopes(scope.OrderByCreatedDesc), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *PaymentRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Payment{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Status transitions. Each guards on the current status in the WHERE
// clause so a lost race surfaces as ErrPaymentStateConflict instead of
// silently overwriting another actor's transition.

func (r *PaymentRepositoryImpl) MarkConfirmed(ctx context.Context, id uuid.UUID, email, phone, proofPath string) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&model.Payment{}).
		Where("id = ? AND status = ?", id, "pending").
		Updates(map[string]interface{}{
			"status":       "confirmed",
			"email":        email,
			"phone":        phone,
			"proof_path":   proofPath,
			"confirmed_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPaymentStateConflict
	}
	return nil
}

func (r *PaymentRepositoryImpl) MarkVerified(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&model.Payment{}).
		Where("id = ? AND status = ?", id, "confirmed").
		Updates(map[string]interface{}{
			"status":      "verified",
			"verified_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPaymentStateConflict
	}
	return nil
}

func (r *PaymentRepositoryImpl) MarkRejected(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&model.Payment{}).
		Where("id = ? AND status = ?", id, "confirmed").
		Update("status", "rejected")
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPaymentStateConflict
	}
	return nil
}

func (r *PaymentRepositoryImpl) GetTotalRevenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&model.Payment{}).
		Where("status = ?", "verified").
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
