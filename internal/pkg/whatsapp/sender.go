// FILE: internal/pkg/whatsapp/sender.go
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ISender delivers OTP codes over WhatsApp through an HTTP gateway.
type ISender interface {
	SendOTP(ctx context.Context, phone, code string) error
}

type sender struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewSender(baseURL, apiKey string) ISender {
	return &sender{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type sendMessageRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

type sendMessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (s *sender) SendOTP(ctx context.Context, phone, code string) error {
	payload := sendMessageRequest{
		Phone:   phone,
		Message: fmt.Sprintf("Kode verifikasi Anda: %s. Berlaku 5 menit. Jangan bagikan kode ini.", code),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal whatsapp payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/send-message", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build whatsapp request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("whatsapp gateway returned status %d", resp.StatusCode)
	}

	var result sendMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode whatsapp response: %w", err)
	}
	if !result.Success {
		return fmt.Errorf("whatsapp gateway rejected message: %s", result.Message)
	}

	return nil
}
