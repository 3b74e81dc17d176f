// FILE: internal/service/payment_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"apto-gateway-be/internal/constant"
	"apto-gateway-be/internal/dto"
	"apto-gateway-be/internal/entity"
	"apto-gateway-be/internal/repository/specification"
	"apto-gateway-be/internal/repository/unitofwork"

	"apto-gateway-be/pkg/checkout"
	"apto-gateway-be/pkg/events"
	pktNats "apto-gateway-be/pkg/nats"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
)

var (
	ErrPackageNotFound   = errors.New("package not found")
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrProofTooLarge     = errors.New("proof file exceeds the 5MB limit")
	ErrProofInvalidType  = errors.New("proof must be a PNG, JPEG, or PDF file")
	ErrNotPaymentOwner   = errors.New("payment does not belong to this user")
	ErrPaymentNotPending = errors.New("payment is not awaiting confirmation")
	ErrHasActivePackage  = errors.New("an active package exists; confirm the upgrade to proceed")
)

type IPaymentService interface {
	CheckActivePackage(ctx context.Context, userId uuid.UUID) (*dto.CheckActivePackageResponse, error)
	CreatePayment(ctx context.Context, userId uuid.UUID, req *dto.CreatePaymentRequest) (*dto.CreatePaymentResponse, error)
	ConfirmPayment(ctx context.Context, userId uuid.UUID, req *dto.ConfirmPaymentRequest, proof checkout.ProofFile) (*dto.ConfirmPaymentResponse, error)
	GetPayment(ctx context.Context, userId uuid.UUID, paymentId uuid.UUID) (*dto.PaymentResponse, error)
	GetUserPayments(ctx context.Context, userId uuid.UUID) ([]*dto.PaymentResponse, error)
}

type paymentService struct {
	uowFactory        unitofwork.RepositoryFactory
	eventPublisher    *pktNats.Publisher
	proofDir          string
	midtransServerKey string
	proofSaver        func(path string, data []byte) error
}

func NewPaymentService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher, proofDir, midtransServerKey string) IPaymentService {
	return &paymentService{
		uowFactory:        uowFactory,
		eventPublisher:    eventPublisher,
		proofDir:          proofDir,
		midtransServerKey: midtransServerKey,
		proofSaver:        writeProofFile,
	}
}

func writeProofFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func toActivePackageResponse(token *entity.PackageToken) *dto.ActivePackageResponse {
	if token == nil {
		return nil
	}
	return &dto.ActivePackageResponse{
		TokenId:     token.Id,
		PackageId:   token.PackageId,
		PackageName: token.PackageName,
		ActivatedAt: token.ActivatedAt,
		ExpiredAt:   token.ExpiredAt,
	}
}

func (s *paymentService) CheckActivePackage(ctx context.Context, userId uuid.UUID) (*dto.CheckActivePackageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	token, err := uow.PackageRepository().FindActiveToken(ctx, userId, time.Now())
	if err != nil {
		return nil, err
	}
	if token == nil {
		return &dto.CheckActivePackageResponse{HasActive: false}, nil
	}

	return &dto.CheckActivePackageResponse{
		HasActive:     true,
		ActivePackage: toActivePackageResponse(token),
	}, nil
}

func (s *paymentService) CreatePayment(ctx context.Context, userId uuid.UUID, req *dto.CreatePaymentRequest) (*dto.CreatePaymentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	pkg, err := uow.PackageRepository().FindOne(ctx, specification.ByID{ID: req.PackageId}, specification.ActiveOnly{})
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, ErrPackageNotFound
	}

	// The server re-checks for an active package regardless of what the
	// client believed. A non-forced request against an active package is
	// answered with the conflict payload, never a silent replacement.
	if !req.ForceUpgrade {
		token, err := uow.PackageRepository().FindActiveToken(ctx, userId, time.Now())
		if err != nil {
			return nil, err
		}
		if token != nil {
			return &dto.CreatePaymentResponse{
				HasActive:     true,
				ActivePackage: toActivePackageResponse(token),
			}, ErrHasActivePackage
		}
	}

	payment := &entity.Payment{
		Id:           uuid.New(),
		UserId:       userId,
		PackageId:    pkg.Id,
		Method:       entity.PaymentMethod(req.Method),
		Amount:       pkg.Price,
		ForceUpgrade: req.ForceUpgrade,
		Status:       entity.PaymentStatusPending,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	instructions := &dto.PaymentInstructions{
		Method: req.Method,
		Amount: pkg.Price,
	}

	switch req.Method {
	case constant.PaymentMethodBCA:
		instructions.BankName = constant.BcaBankName
		instructions.AccountNumber = constant.BcaAccountNumber
		instructions.AccountHolder = constant.BcaAccountHolder
	case constant.PaymentMethodQRIS:
		qr, err := s.chargeQris(payment, pkg)
		if err != nil {
			return nil, err
		}
		instructions.QrString = qr.qrString
		instructions.QrisImageURL = qr.imageURL
		if qr.reference != "" {
			payment.QrisReference = &qr.reference
		}
	}

	if err := uow.PaymentRepository().Create(ctx, payment); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		evt := events.NewPaymentCreated(payment.Id.String(), userId.String(), pkg.Id.String(), req.Method, pkg.Price, req.ForceUpgrade)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish PAYMENT_CREATED event: %v\n", err)
		}
	}

	return &dto.CreatePaymentResponse{
		PaymentId:    payment.Id,
		Instructions: instructions,
	}, nil
}

type qrisCharge struct {
	qrString  string
	imageURL  string
	reference string
}

// chargeQris asks Midtrans for a dynamic QRIS code for this payment.
// Settlement still goes through manual proof confirmation; the QR is a
// convenience for the payer. Without a server key the static merchant
// QR image is served instead and no charge is attempted.
func (s *paymentService) chargeQris(payment *entity.Payment, pkg *entity.Package) (*qrisCharge, error) {
	if s.midtransServerKey == "" {
		return &qrisCharge{imageURL: constant.QrisStaticImageURL}, nil
	}

	var client coreapi.Client
	env := midtrans.Sandbox
	if os.Getenv("MIDTRANS_IS_PRODUCTION") == "true" {
		env = midtrans.Production
	}
	client.New(s.midtransServerKey, env)

	chargeReq := &coreapi.ChargeReq{
		PaymentType: coreapi.PaymentTypeQris,
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  payment.Id.String(),
			GrossAmt: int64(pkg.Price),
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    pkg.Id.String(),
				Price: int64(pkg.Price),
				Qty:   1,
				Name:  pkg.Name,
			},
		},
	}

	resp, midErr := client.ChargeTransaction(chargeReq)
	if midErr != nil {
		return nil, fmt.Errorf("midtrans error: %v", midErr.GetMessage())
	}

	charge := &qrisCharge{reference: resp.TransactionID}
	if resp.QRString != "" {
		charge.qrString = resp.QRString
	}
	for _, action := range resp.Actions {
		if action.Name == "generate-qr-code" {
			charge.imageURL = action.URL
			break
		}
	}
	return charge, nil
}

func validateProof(proof checkout.ProofFile) error {
	if proof.Size > constant.ProofMaxSizeBytes || int64(len(proof.Data)) > constant.ProofMaxSizeBytes {
		return ErrProofTooLarge
	}
	if _, ok := constant.ProofAllowedMimeTypes[proof.ContentType]; !ok {
		return ErrProofInvalidType
	}
	return nil
}

func (s *paymentService) ConfirmPayment(ctx context.Context, userId uuid.UUID, req *dto.ConfirmPaymentRequest, proof checkout.ProofFile) (*dto.ConfirmPaymentResponse, error) {
	// Validation happens before any write or network call
	if err := validateProof(proof); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	payment, err := uow.PaymentRepository().FindOne(ctx, specification.ByID{ID: req.PaymentId})
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	if payment.UserId != userId {
		return nil, ErrNotPaymentOwner
	}
	if payment.Status != entity.PaymentStatusPending {
		return nil, ErrPaymentNotPending
	}

	ext := filepath.Ext(proof.Name)
	proofPath := filepath.Join(s.proofDir, fmt.Sprintf("%s%s", payment.Id, ext))
	if err := s.proofSaver(proofPath, proof.Data); err != nil {
		return nil, fmt.Errorf("failed to store proof file: %w", err)
	}

	if err := uow.PaymentRepository().MarkConfirmed(ctx, payment.Id, req.Email, req.Phone, proofPath); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		evt := events.NewPaymentConfirmed(payment.Id.String(), userId.String())
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish PAYMENT_CONFIRMED event: %v\n", err)
		}
	}

	return &dto.ConfirmPaymentResponse{
		PaymentId: payment.Id,
		Status:    constant.PaymentStatusConfirmed,
	}, nil
}

func (s *paymentService) paymentToResponse(ctx context.Context, uow unitofwork.UnitOfWork, payment *entity.Payment) *dto.PaymentResponse {
	res := &dto.PaymentResponse{
		Id:           payment.Id,
		PackageId:    payment.PackageId,
		Method:       string(payment.Method),
		Amount:       payment.Amount,
		ForceUpgrade: payment.ForceUpgrade,
		Status:       string(payment.Status),
		ConfirmedAt:  payment.ConfirmedAt,
		VerifiedAt:   payment.VerifiedAt,
		CreatedAt:    payment.CreatedAt,
	}
	if pkg, err := uow.PackageRepository().FindOne(ctx, specification.ByID{ID: payment.PackageId}); err == nil && pkg != nil {
		res.PackageName = pkg.Name
	}
	return res
}

func (s *paymentService) GetPayment(ctx context.Context, userId uuid.UUID, paymentId uuid.UUID) (*dto.PaymentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	payment, err := uow.PaymentRepository().FindOne(ctx, specification.ByID{ID: paymentId})
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	if payment.UserId != userId {
		return nil, ErrNotPaymentOwner
	}

	return s.paymentToResponse(ctx, uow, payment), nil
}

func (s *paymentService) GetUserPayments(ctx context.Context, userId uuid.UUID) ([]*dto.PaymentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	payments, err := uow.PaymentRepository().FindAll(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	res := make([]*dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		res = append(res, s.paymentToResponse(ctx, uow, p))
	}
	return res, nil
}
