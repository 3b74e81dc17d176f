// Checkout simulation client. Drives the upgrade flow state machine
// against a running gateway instance over HTTP.
//
// Usage:
//
//	SIM_ACCESS_TOKEN=<jwt> SIM_PACKAGE_ID=<uuid> go run ./cmd/simulate_checkout
//
// Set SIM_PAYMENT_ID to skip creation and only upload the proof for an
// existing payment.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"time"

	"apto-gateway-be/pkg/checkout"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

var baseURL = envOr("SIM_BASE_URL", "http://localhost:3000/api")

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Code    int             `json:"code"`
	Data    json.RawMessage `json:"data"`
}

type activePackagePayload struct {
	TokenId     uuid.UUID `json:"token_id"`
	PackageId   uuid.UUID `json:"package_id"`
	PackageName string    `json:"package_name"`
	ActivatedAt time.Time `json:"activated_at"`
	ExpiredAt   time.Time `json:"expired_at"`
}

func (p *activePackagePayload) toDomain() *checkout.ActivePackage {
	if p == nil {
		return nil
	}
	return &checkout.ActivePackage{
		TokenID:     p.TokenId,
		PackageID:   p.PackageId,
		PackageName: p.PackageName,
		ActivatedAt: p.ActivatedAt,
		ExpiredAt:   p.ExpiredAt,
	}
}

// httpGateway implements checkout.PaymentGateway over the REST API.
type httpGateway struct {
	client *http.Client
	token  string
}

func (g *httpGateway) doJSON(ctx context.Context, method, url string, body interface{}) (*envelope, int, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, 0, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, baseURL+url, reader)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.token)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("unexpected response: %s", string(raw))
	}
	return &env, resp.StatusCode, nil
}

func (g *httpGateway) CheckActivePackage(ctx context.Context, userID uuid.UUID) (*checkout.ActivePackage, error) {
	env, status, err := g.doJSON(ctx, http.MethodGet, "/payment/check-active-package", nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, errors.New(env.Message)
	}

	var data struct {
		HasActive     bool                  `json:"hasActive"`
		ActivePackage *activePackagePayload `json:"activePackage"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, err
	}
	if !data.HasActive {
		return nil, nil
	}
	return data.ActivePackage.toDomain(), nil
}

func (g *httpGateway) CreatePayment(ctx context.Context, userID uuid.UUID, packageID uuid.UUID, method string, forceUpgrade bool) (*checkout.CreateResult, error) {
	body := map[string]interface{}{
		"package_id":   packageID,
		"method":       method,
		"forceUpgrade": forceUpgrade,
	}
	env, status, err := g.doJSON(ctx, http.MethodPost, "/payment/create", body)
	if err != nil {
		return nil, err
	}

	var data struct {
		PaymentId     uuid.UUID             `json:"payment_id"`
		HasActive     bool                  `json:"hasActive"`
		ActivePackage *activePackagePayload `json:"activePackage"`
	}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, err
		}
	}

	// 409 carries the conflict payload, not an error: the flow parks at
	// the confirmation gate.
	if status == http.StatusConflict && data.HasActive {
		return &checkout.CreateResult{
			HasActive:     true,
			ActivePackage: data.ActivePackage.toDomain(),
			Message:       env.Message,
		}, nil
	}
	if status != http.StatusOK {
		return nil, errors.New(env.Message)
	}

	return &checkout.CreateResult{
		PaymentID:     data.PaymentId,
		HasActive:     data.HasActive,
		ActivePackage: data.ActivePackage.toDomain(),
		Message:       env.Message,
	}, nil
}

func (g *httpGateway) ConfirmPayment(ctx context.Context, paymentID uuid.UUID, contact checkout.ContactInfo, proof checkout.ProofFile) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	writer.WriteField("payment_id", paymentID.String())
	writer.WriteField("email", contact.Email)
	writer.WriteField("phone", contact.Phone)

	part, err := writer.CreateFormFile("proof_image", proof.Name)
	if err != nil {
		return err
	}
	if _, err := part.Write(proof.Data); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/payment/confirm", &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+g.token)

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		var env envelope
		if err := json.Unmarshal(raw, &env); err == nil && env.Message != "" {
			return errors.New(env.Message)
		}
		return fmt.Errorf("confirm failed with status %d", resp.StatusCode)
	}
	return nil
}

func main() {
	token := os.Getenv("SIM_ACCESS_TOKEN")
	if token == "" {
		log.Fatal("SIM_ACCESS_TOKEN is required (login first and paste the JWT)")
	}

	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	bold.Println("=== Checkout Flow Simulation ===")

	gateway := &httpGateway{client: &http.Client{Timeout: 30 * time.Second}, token: token}
	flow := checkout.NewFlow(gateway)
	ctx := context.Background()

	contact := checkout.ContactInfo{Email: "simulation@example.com", Phone: "+6281200000000"}
	proof := checkout.ProofFile{
		Name:        "proof.png",
		ContentType: "image/png",
		Size:        int64(len(pngStub)),
		Data:        pngStub,
	}

	// Resume mode: the payment was created in an earlier run, only the
	// proof upload is left.
	if resumeStr := os.Getenv("SIM_PAYMENT_ID"); resumeStr != "" {
		paymentID, err := uuid.Parse(resumeStr)
		if err != nil {
			log.Fatal("SIM_PAYMENT_ID must be a valid payment UUID")
		}
		fmt.Printf("Resuming payment %s (proof upload only)...\n", paymentID)
		if err := flow.ConfirmStandalone(ctx, paymentID, contact, proof); err != nil {
			red.Printf("Confirm failed: %v (state=%s, message=%q)\n", err, flow.State(), flow.FailureMessage())
			return
		}
		green.Printf("Proof submitted. State=%s PaymentID=%s\n", flow.State(), flow.PaymentID())
		return
	}

	packageIDStr := os.Getenv("SIM_PACKAGE_ID")
	packageID, err := uuid.Parse(packageIDStr)
	if err != nil {
		log.Fatal("SIM_PACKAGE_ID must be a valid package UUID")
	}
	target := checkout.Target{PackageID: packageID, PackageName: "Premium", DurationDays: 30, Price: 99000}

	fmt.Println("Starting checkout (method BCA, no force)...")
	err = flow.Start(ctx, uuid.Nil, target, "BCA", contact, proof)

	switch {
	case err == nil:
		green.Printf("Checkout complete. State=%s PaymentID=%s\n", flow.State(), flow.PaymentID())
		return

	case errors.Is(err, checkout.ErrActivePackageConflict):
		yellow.Println("Active package detected, confirmation gate reached.")
		if cmp := flow.Comparison(); cmp != nil {
			fmt.Printf("  Current: %s, %d day(s) left (expires %s)\n", cmp.CurrentName, cmp.CurrentDaysLeft, cmp.CurrentExpires.Format("2006-01-02"))
			fmt.Printf("  New:     %s, %d days, Rp %.0f\n", cmp.NewName, cmp.NewDurationDays, cmp.NewPrice)
		}

		if os.Getenv("SIM_CONFIRM_UPGRADE") != "true" {
			yellow.Println("SIM_CONFIRM_UPGRADE not set, cancelling.")
			if err := flow.Cancel(); err != nil {
				red.Printf("Cancel failed: %v\n", err)
				return
			}
			fmt.Printf("Cancelled. State=%s\n", flow.State())
			return
		}

		fmt.Println("Confirming upgrade (forfeits remaining days)...")
		if err := flow.Confirm(ctx); err != nil {
			red.Printf("Upgrade failed: %v (state=%s, message=%q)\n", err, flow.State(), flow.FailureMessage())
			return
		}
		green.Printf("Upgrade complete. State=%s PaymentID=%s\n", flow.State(), flow.PaymentID())

	default:
		red.Printf("Checkout failed: %v (state=%s, message=%q)\n", err, flow.State(), flow.FailureMessage())
	}
}

// Minimal 1x1 PNG so the proof upload passes MIME validation.
var pngStub = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0a, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}
