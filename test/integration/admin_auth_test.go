package integration

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

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

func TestAdminAuth(t *testing.T) {
	// Load .env from root (2 levels up) because tests run in package dir
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

	// Seed one admin and one regular user
	password := "admin123"
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	hashStr := string(hash)

	adminId := uuid.New()
	admin := model.User{
		Id:            adminId,
		Email:         "testadmin@example.com",
		Phone:         "6281111111111",
		FullName:      "Test Admin",
		PasswordHash:  &hashStr,
		Role:          "admin",
		Status:        "active",
		PhoneVerified: true,
	}

	userId := uuid.New()
	user := model.User{
		Id:            userId,
		Email:         "testuser@example.com",
		Phone:         "6282222222222",
		FullName:      "Test User",
		PasswordHash:  &hashStr,
		Role:          "user",
		Status:        "active",
		PhoneVerified: true,
	}

	db.Create(&admin)
	db.Create(&user)

	defer func() {
		db.Unscoped().Delete(&model.User{}, adminId)
		db.Unscoped().Delete(&model.User{}, userId)
	}()

	t.Run("Login as Admin success", func(t *testing.T) {
		reqBody := dto.LoginRequest{
			Email:    "testadmin@example.com",
			Password: password,
		}
		body, _ := json.Marshal(reqBody)

		req := httptest.NewRequest("POST", "/api/admin/login", strings.NewReader(string(body)))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := app.Test(req, -1)

		assert.Equal(t, 200, resp.StatusCode)

		var result serverutils.Response[dto.LoginResponse]
		json.NewDecoder(resp.Body).Decode(&result)

		assert.True(t, result.Success)
		assert.NotEmpty(t, result.Data.AccessToken)
		assert.Equal(t, "admin", result.Data.User.Role)
	})

	t.Run("Login as Regular User denied", func(t *testing.T) {
		reqBody := dto.LoginRequest{
			Email:    "testuser@example.com",
			Password: password,
		}
		body, _ := json.Marshal(reqBody)

		req := httptest.NewRequest("POST", "/api/admin/login", strings.NewReader(string(body)))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := app.Test(req, -1)

		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("Invalid Password", func(t *testing.T) {
		reqBody := dto.LoginRequest{
			Email:    "testadmin@example.com",
			Password: "wrongpassword",
		}
		body, _ := json.Marshal(reqBody)

		req := httptest.NewRequest("POST", "/api/admin/login", strings.NewReader(string(body)))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := app.Test(req, -1)

		assert.Equal(t, 401, resp.StatusCode)
	})
}
