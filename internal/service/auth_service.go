// FILE: internal/service/auth_service.go
package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"
	"time"

	"apto-gateway-be/internal/constant"
	"apto-gateway-be/internal/dto"
	"apto-gateway-be/internal/entity"
	"apto-gateway-be/internal/pkg/mailer"
	"apto-gateway-be/internal/repository/specification"
	"apto-gateway-be/internal/repository/unitofwork"

	"apto-gateway-be/pkg/events"
	pktNats "apto-gateway-be/pkg/nats"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	VerifyOtp(ctx context.Context, req *dto.VerifyOtpRequest) error
	ResendOtp(ctx context.Context, req *dto.ResendOtpRequest) error
	Login(ctx context.Context, req *dto.LoginRequest, ipAddress, userAgent string) (*dto.LoginResponse, error)
	LoginAdmin(ctx context.Context, req *dto.LoginRequest, ipAddress, userAgent string) (*dto.LoginResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
}

type authService struct {
	uowFactory       unitofwork.RepositoryFactory
	emailService     mailer.IEmailService
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, emailService mailer.IEmailService, publisherService IPublisherService, eventPublisher *pktNats.Publisher) IAuthService {
	return &authService{
		uowFactory:       uowFactory,
		emailService:     emailService,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
	}
}

// enqueueOtp hands the code to the dispatch queue; the consumer worker
// delivers it over WhatsApp and retries on failure.
func (s *authService) enqueueOtp(ctx context.Context, userId uuid.UUID, phone, code, purpose string) {
	payload, err := json.Marshal(dto.PublishOtpMessage{
		UserId:  userId,
		Phone:   phone,
		Code:    code,
		Purpose: purpose,
	})
	if err != nil {
		fmt.Printf("[WARN] Failed to marshal OTP dispatch message: %v\n", err)
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		fmt.Printf("[WARN] Failed to enqueue OTP dispatch: %v\n", err)
	}
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n), nil
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, _ := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if existing != nil {
		return nil, errors.New("email already registered")
	}
	existingPhone, _ := uow.UserRepository().FindOne(ctx, specification.ByPhone{Phone: req.Phone})
	if existingPhone != nil {
		return nil, errors.New("phone number already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	user := &entity.User{
		Id:           uuid.New(),
		Email:        req.Email,
		Phone:        req.Phone,
		FullName:     req.FullName,
		PasswordHash: &hashStr,
		Role:         entity.UserRoleUser,
		Status:       entity.UserStatusPending,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	// User + OTP created atomically so a failed OTP insert does not
	// leave an unverifiable account behind.
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	otpCode, err := generateOTP()
	if err != nil {
		return nil, err
	}

	otpToken := &entity.OtpToken{
		Id:        uuid.New(),
		UserId:    user.Id,
		Code:      otpCode,
		Purpose:   constant.OtpPurposeRegister,
		ExpiresAt: time.Now().Add(constant.OtpTTL),
		CreatedAt: time.Now(),
	}

	if err := uow.UserRepository().CreateOtpToken(ctx, otpToken); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.enqueueOtp(ctx, user.Id, user.Phone, otpCode, constant.OtpPurposeRegister)

	if s.eventPublisher != nil {
		evt := events.NewUserRegistered(user.Id.String(), user.Email, user.Phone)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish USER_REGISTERED event: %v\n", err)
		}
	}

	return &dto.RegisterResponse{Id: user.Id, Email: user.Email, Phone: user.Phone}, nil
}

func (s *authService) VerifyOtp(ctx context.Context, req *dto.VerifyOtpRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByPhone{Phone: req.Phone})
	if err != nil || user == nil {
		return errors.New("user not found")
	}

	if user.PhoneVerified {
		return nil
	}

	token, err := uow.UserRepository().FindLatestOtpToken(ctx, user.Id, constant.OtpPurposeRegister)
	if err != nil {
		return errors.New("invalid otp code")
	}
	if token == nil || token.Code != req.Code {
		return errors.New("invalid otp code")
	}
	if time.Now().After(token.ExpiresAt) {
		return errors.New("otp code expired")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.UserRepository().MarkPhoneVerified(ctx, user.Id); err != nil {
		return err
	}
	if err := uow.UserRepository().DeleteOtpTokens(ctx, user.Id, constant.OtpPurposeRegister); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	if s.eventPublisher != nil {
		evt := events.NewPhoneVerified(user.Id.String(), user.Phone)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish PHONE_VERIFIED event: %v\n", err)
		}
	}

	return nil
}

func (s *authService) ResendOtp(ctx context.Context, req *dto.ResendOtpRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByPhone{Phone: req.Phone})
	if err != nil || user == nil {
		// Don't leak whether a phone exists
		return nil
	}
	if user.PhoneVerified {
		return errors.New("phone already verified")
	}

	last, err := uow.UserRepository().FindLatestOtpToken(ctx, user.Id, constant.OtpPurposeRegister)
	if err != nil {
		return err
	}
	if last != nil && time.Since(last.CreatedAt) < constant.OtpResendCooldown {
		return errors.New("please wait before requesting another code")
	}

	otpCode, err := generateOTP()
	if err != nil {
		return err
	}

	token := &entity.OtpToken{
		Id:        uuid.New(),
		UserId:    user.Id,
		Code:      otpCode,
		Purpose:   constant.OtpPurposeRegister,
		ExpiresAt: time.Now().Add(constant.OtpTTL),
		CreatedAt: time.Now(),
	}
	if err := uow.UserRepository().CreateOtpToken(ctx, token); err != nil {
		return err
	}

	s.enqueueOtp(ctx, user.Id, user.Phone, otpCode, constant.OtpPurposeRegister)

	if s.eventPublisher != nil {
		evt := events.NewOtpRequested(user.Id.String(), user.Phone, constant.OtpPurposeRegister)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish OTP_REQUESTED event: %v\n", err)
		}
	}

	return nil
}

func signAccessToken(user *entity.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default_secret"
	}
	return token.SignedString([]byte(secret))
}

func (s *authService) issueRefreshToken(ctx context.Context, uow unitofwork.UnitOfWork, user *entity.User, ipAddress, userAgent string) (string, error) {
	raw := uuid.New().String()

	hasher := sha256.New()
	hasher.Write([]byte(raw))
	tokenHash := hex.EncodeToString(hasher.Sum(nil))

	refreshToken := &entity.UserRefreshToken{
		Id:        uuid.New(),
		UserId:    user.Id,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().Add(30 * 24 * time.Hour),
		Revoked:   false,
		CreatedAt: time.Now(),
		IpAddress: ipAddress,
		UserAgent: userAgent,
	}

	if err := uow.UserRepository().CreateRefreshToken(ctx, refreshToken); err != nil {
		return "", fmt.Errorf("failed to create session: %v", err)
	}
	return raw, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest, ipAddress, userAgent string) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil || user == nil {
		return nil, errors.New("invalid credentials")
	}

	if user.PasswordHash == nil {
		return nil, errors.New("user registered via OAuth")
	}

	if user.Status == entity.UserStatusPending || !user.PhoneVerified {
		return nil, errors.New("phone not verified. please enter the code sent to your WhatsApp")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	if user.Status == entity.UserStatusBlocked {
		return nil, errors.New("user account is blocked")
	}

	signedToken, err := signAccessToken(user)
	if err != nil {
		return nil, err
	}

	var rawRefreshToken string
	if req.RememberMe {
		rawRefreshToken, err = s.issueRefreshToken(ctx, uow, user, ipAddress, userAgent)
		if err != nil {
			return nil, err
		}
	}

	return &dto.LoginResponse{
		AccessToken:  signedToken,
		RefreshToken: rawRefreshToken,
		User: dto.UserDTO{
			Id:       user.Id,
			Email:    user.Email,
			Phone:    user.Phone,
			FullName: user.FullName,
			Role:     string(user.Role),
		},
	}, nil
}

func (s *authService) LoginAdmin(ctx context.Context, req *dto.LoginRequest, ipAddress, userAgent string) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil || user == nil {
		return nil, errors.New("invalid credentials")
	}

	if user.Role != entity.UserRoleAdmin {
		return nil, errors.New("access denied: admins only")
	}

	if user.PasswordHash == nil {
		return nil, errors.New("user registered via OAuth")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	if user.Status == entity.UserStatusBlocked {
		return nil, errors.New("admin account is blocked")
	}

	signedToken, err := signAccessToken(user)
	if err != nil {
		return nil, err
	}

	var rawRefreshToken string
	if req.RememberMe {
		rawRefreshToken, err = s.issueRefreshToken(ctx, uow, user, ipAddress, userAgent)
		if err != nil {
			return nil, err
		}
	}

	return &dto.LoginResponse{
		AccessToken:  signedToken,
		RefreshToken: rawRefreshToken,
		User: dto.UserDTO{
			Id:       user.Id,
			Email:    user.Email,
			Phone:    user.Phone,
			FullName: user.FullName,
			Role:     string(user.Role),
		},
	}, nil
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)

	hasher := sha256.New()
	hasher.Write([]byte(refreshToken))
	tokenHash := hex.EncodeToString(hasher.Sum(nil))

	return uow.UserRepository().RevokeRefreshToken(ctx, tokenHash)
}

func (s *authService) ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil || user == nil {
		// Don't leak whether an email exists
		return nil
	}

	token := uuid.New().String()
	resetToken := &entity.PasswordResetToken{
		Id:        uuid.New(),
		UserId:    user.Id,
		Token:     token,
		ExpiresAt: time.Now().Add(1 * time.Hour),
		CreatedAt: time.Now(),
		Used:      false,
	}

	if err := uow.UserRepository().CreatePasswordResetToken(ctx, resetToken); err != nil {
		return err
	}

	go func() {
		if emailErr := s.emailService.SendResetToken(user.Email, token); emailErr != nil {
			fmt.Printf("Error sending reset password email: %v\n", emailErr)
		}
	}()

	return nil
}

func (s *authService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	tokenEntity, err := uow.UserRepository().FindPasswordResetToken(ctx, specification.ByToken{Token: req.Token})
	if err != nil || tokenEntity == nil {
		return errors.New("invalid or expired token")
	}

	if tokenEntity.Used {
		return errors.New("this password reset link has already been used")
	}
	if time.Now().After(tokenEntity.ExpiresAt) {
		return errors.New("this password reset link has expired")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.UserRepository().UpdatePassword(ctx, tokenEntity.UserId, string(hash)); err != nil {
		return err
	}
	if err := uow.UserRepository().MarkResetTokenUsed(ctx, tokenEntity.Id); err != nil {
		return err
	}

	return uow.Commit()
}
