// FILE: internal/service/admin_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"apto-gateway-be/internal/dto"
	"apto-gateway-be/internal/entity"
	"apto-gateway-be/internal/pkg/mailer"
	"apto-gateway-be/internal/repository/specification"
	"apto-gateway-be/internal/repository/unitofwork"

	"apto-gateway-be/pkg/events"
	pktNats "apto-gateway-be/pkg/nats"

	"github.com/google/uuid"
)

type IAdminService interface {
	GetDashboardStats(ctx context.Context) (*dto.AdminDashboardStats, error)
	GetTransactions(ctx context.Context, page, limit int, status, method string, packageId uuid.UUID) ([]*dto.TransactionListResponse, error)
	VerifyPayment(ctx context.Context, paymentId uuid.UUID, req *dto.VerifyPaymentRequest) error
}

type adminService struct {
	uowFactory         unitofwork.RepositoryFactory
	entitlementService IEntitlementService
	emailService       mailer.IEmailService
	eventPublisher     *pktNats.Publisher
}

func NewAdminService(uowFactory unitofwork.RepositoryFactory, entitlementService IEntitlementService, emailService mailer.IEmailService, eventPublisher *pktNats.Publisher) IAdminService {
	return &adminService{
		uowFactory:         uowFactory,
		entitlementService: entitlementService,
		emailService:       emailService,
		eventPublisher:     eventPublisher,
	}
}

func (s *adminService) GetDashboardStats(ctx context.Context) (*dto.AdminDashboardStats, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	revenue, err := uow.PaymentRepository().GetTotalRevenue(ctx)
	if err != nil {
		return nil, err
	}
	subscribers, err := uow.PackageRepository().CountActiveSubscribers(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	pending, err := uow.PaymentRepository().Count(ctx, specification.ByStatus{Status: "pending"})
	if err != nil {
		return nil, err
	}
	confirmed, err := uow.PaymentRepository().Count(ctx, specification.ByStatus{Status: "confirmed"})
	if err != nil {
		return nil, err
	}
	users, err := uow.UserRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.AdminDashboardStats{
		TotalRevenue:      revenue,
		ActiveSubscribers: subscribers,
		PendingPayments:   pending,
		ConfirmedPayments: confirmed,
		TotalUsers:        users,
	}, nil
}

func (s *adminService) GetTransactions(ctx context.Context, page, limit int, status, method string, packageId uuid.UUID) ([]*dto.TransactionListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	specs := []specification.Specification{
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	}
	if status != "" {
		specs = append(specs, specification.ByStatus{Status: status})
	}
	if method != "" {
		specs = append(specs, specification.ByMethod{Method: method})
	}
	if packageId != uuid.Nil {
		specs = append(specs, specification.ByPackageID{PackageID: packageId})
	}

	payments, err := uow.PaymentRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.TransactionListResponse, 0, len(payments))
	for _, p := range payments {
		tx := &dto.TransactionListResponse{
			Id:           p.Id,
			UserId:       p.UserId,
			Method:       string(p.Method),
			Amount:       p.Amount,
			Status:       string(p.Status),
			ForceUpgrade: p.ForceUpgrade,
			ConfirmedAt:  p.ConfirmedAt,
			CreatedAt:    p.CreatedAt,
		}
		if p.ProofPath != nil {
			tx.ProofPath = *p.ProofPath
		}
		if user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: p.UserId}); err == nil && user != nil {
			tx.UserEmail = user.Email
		}
		if pkg, err := uow.PackageRepository().FindOne(ctx, specification.ByID{ID: p.PackageId}); err == nil && pkg != nil {
			tx.PackageName = pkg.Name
		}
		res = append(res, tx)
	}
	return res, nil
}

// VerifyPayment approves or rejects a confirmed payment. Approval
// activates the package token; a forced upgrade deactivates the user's
// previous tokens in the same transaction so there is never more than
// one active token.
func (s *adminService) VerifyPayment(ctx context.Context, paymentId uuid.UUID, req *dto.VerifyPaymentRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	payment, err := uow.PaymentRepository().FindOne(ctx, specification.ByID{ID: paymentId})
	if err != nil {
		return err
	}
	if payment == nil {
		return ErrPaymentNotFound
	}
	if payment.Status != entity.PaymentStatusConfirmed {
		return errors.New("only confirmed payments can be verified")
	}

	if !req.Approve {
		if err := uow.PaymentRepository().MarkRejected(ctx, paymentId); err != nil {
			return err
		}
		if s.eventPublisher != nil {
			evt := events.NewPaymentRejected(payment.Id.String(), payment.UserId.String(), req.Reason)
			if err := s.eventPublisher.Publish(ctx, evt); err != nil {
				fmt.Printf("[WARN] Failed to publish PAYMENT_REJECTED event: %v\n", err)
			}
		}
		return nil
	}

	pkg, err := uow.PackageRepository().FindOne(ctx, specification.ByID{ID: payment.PackageId})
	if err != nil {
		return err
	}
	if pkg == nil {
		return ErrPackageNotFound
	}

	now := time.Now()
	token := &entity.PackageToken{
		Id:          uuid.New(),
		UserId:      payment.UserId,
		PackageId:   pkg.Id,
		PackageName: pkg.Name,
		ActivatedAt: now,
		ExpiredAt:   now.AddDate(0, 0, pkg.DurationDays),
		IsActive:    true,
		CreatedAt:   now,
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.PaymentRepository().MarkVerified(ctx, paymentId); err != nil {
		return err
	}

	// Old entitlements are forfeited on replacement; remaining days do
	// not carry over.
	if err := uow.PackageRepository().DeactivateTokens(ctx, payment.UserId); err != nil {
		return err
	}
	if err := uow.PackageRepository().CreateToken(ctx, token); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.entitlementService.InvalidateAccess(payment.UserId)

	if s.eventPublisher != nil {
		verified := events.NewPaymentVerified(payment.Id.String(), payment.UserId.String(), pkg.Id.String())
		if err := s.eventPublisher.Publish(ctx, verified); err != nil {
			fmt.Printf("[WARN] Failed to publish PAYMENT_VERIFIED event: %v\n", err)
		}
		activated := events.NewPackageActivated(token.Id.String(), payment.UserId.String(), pkg.Id.String(), pkg.Name, token.ExpiredAt)
		if err := s.eventPublisher.Publish(ctx, activated); err != nil {
			fmt.Printf("[WARN] Failed to publish PACKAGE_ACTIVATED event: %v\n", err)
		}
	}

	if payment.Email != "" {
		go func() {
			if mailErr := s.emailService.SendPaymentReceipt(payment.Email, pkg.Name, payment.Amount, token.ExpiredAt.Format("2 January 2006")); mailErr != nil {
				fmt.Printf("Error sending payment receipt: %v\n", mailErr)
			}
		}()
	}

	return nil
}
