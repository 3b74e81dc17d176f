package integration

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"apto-gateway-be/internal/bootstrap"
	"apto-gateway-be/internal/config"
	"apto-gateway-be/internal/dto"
	"apto-gateway-be/internal/model"
	"apto-gateway-be/internal/pkg/serverutils"
	"apto-gateway-be/internal/server"
	"apto-gateway-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

// Exercises the full verification path: a confirmed payment approved by an
// admin must flip to verified and leave exactly one active package token.
func TestAdminVerifyPayment(t *testing.T) {
	if err := godotenv.Load("../../.env"); err != nil {
		t.Logf("Warning: Could not load ../../.env: %v", err)
	}
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	container := bootstrap.NewContainer(db, cfg)
	srv := server.New(cfg, container)
	app := srv.GetApp()

	// Seed admin for auth
	password := "admin123"
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	hashStr := string(hash)

	adminId := uuid.New()
	admin := model.User{
		Id:            adminId,
		Email:         "verifyadmin@example.com",
		Phone:         "6283333333333",
		FullName:      "Verify Admin",
		PasswordHash:  &hashStr,
		Role:          "admin",
		Status:        "active",
		PhoneVerified: true,
	}
	db.Create(&admin)
	defer db.Unscoped().Delete(&model.User{}, adminId)

	// Seed buyer, package and a confirmed payment awaiting verification
	buyerId := uuid.New()
	buyer := model.User{
		Id:            buyerId,
		Email:         "buyer@example.com",
		Phone:         "6284444444444",
		FullName:      "Buyer",
		PasswordHash:  &hashStr,
		Role:          "user",
		Status:        "active",
		PhoneVerified: true,
	}
	db.Create(&buyer)
	defer db.Unscoped().Delete(&model.User{}, buyerId)

	pkgId := uuid.New()
	pkg := model.Package{
		Id:           pkgId,
		Name:         "Verify Test Package",
		Slug:         "verify-test-" + uuid.New().String(),
		Price:        99000,
		DurationDays: 30,
		IsActive:     true,
	}
	db.Create(&pkg)
	defer db.Unscoped().Delete(&model.Package{}, pkgId)

	now := time.Now()
	proofPath := "uploads/proofs/test-proof.png"
	paymentId := uuid.New()
	payment := model.Payment{
		Id:          paymentId,
		UserId:      buyerId,
		PackageId:   pkgId,
		Method:      "BCA",
		Amount:      99000,
		Status:      "confirmed",
		Email:       "buyer@example.com",
		Phone:       "6284444444444",
		ProofPath:   &proofPath,
		ConfirmedAt: &now,
	}
	db.Create(&payment)
	defer func() {
		db.Where("user_id = ?", buyerId).Delete(&model.PackageToken{})
		db.Delete(&model.Payment{}, paymentId)
	}()

	// Login as admin to get a token
	loginBody, _ := json.Marshal(dto.LoginRequest{
		Email:    "verifyadmin@example.com",
		Password: password,
	})
	req := httptest.NewRequest("POST", "/api/admin/login", strings.NewReader(string(loginBody)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)

	var loginRes serverutils.Response[dto.LoginResponse]
	json.NewDecoder(resp.Body).Decode(&loginRes)
	token := loginRes.Data.AccessToken
	assert.NotEmpty(t, token, "Admin token should not be empty")

	t.Run("Approve confirmed payment", func(t *testing.T) {
		body, _ := json.Marshal(dto.VerifyPaymentRequest{Approve: true})

		req := httptest.NewRequest("POST", "/api/admin/payments/"+paymentId.String()+"/verify", strings.NewReader(string(body)))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		resp, _ := app.Test(req, -1)
		assert.Equal(t, 200, resp.StatusCode)

		var dbPayment model.Payment
		db.First(&dbPayment, paymentId)
		assert.Equal(t, "verified", dbPayment.Status)
		assert.NotNil(t, dbPayment.VerifiedAt)

		var tokens []model.PackageToken
		db.Where("user_id = ? AND is_active = ?", buyerId, true).Find(&tokens)
		assert.Len(t, tokens, 1)
		if len(tokens) == 1 {
			assert.Equal(t, pkgId, tokens[0].PackageId)
			assert.True(t, tokens[0].ExpiredAt.After(time.Now()))
		}
	})

	t.Run("Transactions filter by method and package", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/admin/transactions?method=BCA&package_id="+pkgId.String(), nil)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, _ := app.Test(req, -1)
		assert.Equal(t, 200, resp.StatusCode)

		var bcaRes serverutils.Response[[]dto.TransactionListResponse]
		json.NewDecoder(resp.Body).Decode(&bcaRes)
		found := false
		for _, tx := range bcaRes.Data {
			assert.Equal(t, "BCA", tx.Method)
			if tx.Id == paymentId {
				found = true
			}
		}
		assert.True(t, found, "BCA filter should include the seeded payment")

		req = httptest.NewRequest("GET", "/api/admin/transactions?method=QRIS&package_id="+pkgId.String(), nil)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, _ = app.Test(req, -1)
		assert.Equal(t, 200, resp.StatusCode)

		var qrisRes serverutils.Response[[]dto.TransactionListResponse]
		json.NewDecoder(resp.Body).Decode(&qrisRes)
		for _, tx := range qrisRes.Data {
			assert.NotEqual(t, paymentId, tx.Id, "QRIS filter must exclude the BCA payment")
		}
	})

	t.Run("Verify twice fails", func(t *testing.T) {
		body, _ := json.Marshal(dto.VerifyPaymentRequest{Approve: true})

		req := httptest.NewRequest("POST", "/api/admin/payments/"+paymentId.String()+"/verify", strings.NewReader(string(body)))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		resp, _ := app.Test(req, -1)
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("Reject confirmed payment", func(t *testing.T) {
		rejectedId := uuid.New()
		rejected := model.Payment{
			Id:          rejectedId,
			UserId:      buyerId,
			PackageId:   pkgId,
			Method:      "BCA",
			Amount:      99000,
			Status:      "confirmed",
			ConfirmedAt: &now,
		}
		db.Create(&rejected)
		defer db.Delete(&model.Payment{}, rejectedId)

		body, _ := json.Marshal(dto.VerifyPaymentRequest{Approve: false, Reason: "Proof unreadable"})

		req := httptest.NewRequest("POST", "/api/admin/payments/"+rejectedId.String()+"/verify", strings.NewReader(string(body)))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		resp, _ := app.Test(req, -1)
		assert.Equal(t, 200, resp.StatusCode)

		var dbPayment model.Payment
		db.First(&dbPayment, rejectedId)
		assert.Equal(t, "rejected", dbPayment.Status)
	})

	t.Run("Requires admin token", func(t *testing.T) {
		body, _ := json.Marshal(dto.VerifyPaymentRequest{Approve: true})

		req := httptest.NewRequest("POST", "/api/admin/payments/"+paymentId.String()+"/verify", strings.NewReader(string(body)))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := app.Test(req, -1)
		assert.Equal(t, 401, resp.StatusCode)
	})
}
