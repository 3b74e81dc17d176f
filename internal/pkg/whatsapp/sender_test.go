package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSendOTP(t *testing.T) {
	var gotAuth string
	var gotReq sendMessageRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(sendMessageResponse{Success: true})
	}))
	defer srv.Close()

	s := NewSender(srv.URL, "test-key")
	if err := s.SendOTP(context.Background(), "+628123456789", "123456"); err != nil {
		t.Fatalf("SendOTP() error: %v", err)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if gotReq.Phone != "+628123456789" {
		t.Errorf("phone = %q", gotReq.Phone)
	}
	if gotReq.Message == "" {
		t.Error("message is empty")
	}
}

func TestSendOTPGatewayRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(sendMessageResponse{Success: false, Message: "invalid number"})
	}))
	defer srv.Close()

	s := NewSender(srv.URL, "test-key")
	if err := s.SendOTP(context.Background(), "+628123456789", "123456"); err == nil {
		t.Fatal("SendOTP() should fail when gateway rejects")
	}
}

func TestSendOTPGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	s := NewSender(srv.URL, "test-key")
	if err := s.SendOTP(context.Background(), "+628123456789", "123456"); err == nil {
		t.Fatal("SendOTP() should fail on non-200 status")
	}
}
