package service

import (
	"context"
	"errors"
	"testing"

	"apto-gateway-be/internal/constant"
	"apto-gateway-be/internal/dto"
	"apto-gateway-be/internal/entity"
	"apto-gateway-be/internal/repository/unitofwork"
	"apto-gateway-be/pkg/checkout"

	"github.com/google/uuid"
)

// countingFactory records how many units of work were requested. A
// rejected proof must never reach the repository layer, so any call on
// these tests is a defect.
type countingFactory struct {
	calls int
}

func (f *countingFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	f.calls++
	return nil
}

func proofOf(name, contentType string, size int64) checkout.ProofFile {
	return checkout.ProofFile{
		Name:        name,
		ContentType: contentType,
		Size:        size,
		Data:        make([]byte, size),
	}
}

func TestValidateProof(t *testing.T) {
	tests := []struct {
		name  string
		proof checkout.ProofFile
		want  error
	}{
		{name: "png accepted", proof: proofOf("proof.png", "image/png", 1024), want: nil},
		{name: "jpeg accepted", proof: proofOf("proof.jpg", "image/jpeg", 2048), want: nil},
		{name: "pdf accepted", proof: proofOf("receipt.pdf", "application/pdf", 4096), want: nil},
		{name: "exactly at the limit accepted", proof: proofOf("proof.png", "image/png", constant.ProofMaxSizeBytes), want: nil},
		{name: "one byte over the limit", proof: proofOf("proof.png", "image/png", constant.ProofMaxSizeBytes+1), want: ErrProofTooLarge},
		{
			name: "declared size over the limit",
			proof: checkout.ProofFile{
				Name:        "proof.png",
				ContentType: "image/png",
				Size:        constant.ProofMaxSizeBytes + 1,
				Data:        []byte("tiny"),
			},
			want: ErrProofTooLarge,
		},
		{
			name: "actual bytes over the declared size",
			proof: checkout.ProofFile{
				Name:        "proof.png",
				ContentType: "image/png",
				Size:        16,
				Data:        make([]byte, constant.ProofMaxSizeBytes+1),
			},
			want: ErrProofTooLarge,
		},
		{name: "gif rejected", proof: proofOf("proof.gif", "image/gif", 1024), want: ErrProofInvalidType},
		{name: "plain text rejected", proof: proofOf("proof.txt", "text/plain", 64), want: ErrProofInvalidType},
		{name: "missing content type rejected", proof: proofOf("proof", "", 64), want: ErrProofInvalidType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validateProof(tt.proof); !errors.Is(got, tt.want) {
				t.Errorf("validateProof() = %v, want %v", got, tt.want)
			}
		})
	}
}

// A bad proof is rejected before ConfirmPayment opens a unit of work:
// no repository read, no file write, no event.
func TestConfirmPaymentRejectsProofBeforeRepository(t *testing.T) {
	factory := &countingFactory{}
	svc := NewPaymentService(factory, nil, t.TempDir(), "")

	req := &dto.ConfirmPaymentRequest{
		PaymentId: uuid.New(),
		Email:     "payer@example.com",
		Phone:     "+6281200000000",
	}

	tests := []struct {
		name  string
		proof checkout.ProofFile
		want  error
	}{
		{name: "oversize", proof: proofOf("proof.png", "image/png", constant.ProofMaxSizeBytes+1), want: ErrProofTooLarge},
		{name: "wrong type", proof: proofOf("proof.gif", "image/gif", 1024), want: ErrProofInvalidType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.ConfirmPayment(context.Background(), uuid.New(), req, tt.proof)
			if !errors.Is(err, tt.want) {
				t.Fatalf("ConfirmPayment() error = %v, want %v", err, tt.want)
			}
			if res != nil {
				t.Errorf("ConfirmPayment() = %+v, want nil on rejected proof", res)
			}
		})
	}

	if factory.calls != 0 {
		t.Errorf("repository factory called %d time(s) for rejected proofs, want 0", factory.calls)
	}
}

// Without a Midtrans server key the QRIS method serves the static
// merchant QR and performs no charge.
func TestChargeQrisWithoutServerKeyServesStaticQr(t *testing.T) {
	svc := &paymentService{}

	payment := &entity.Payment{Id: uuid.New()}
	pkg := &entity.Package{Id: uuid.New(), Name: "Premium", Price: 99000}

	qr, err := svc.chargeQris(payment, pkg)
	if err != nil {
		t.Fatalf("chargeQris() error: %v", err)
	}
	if qr.imageURL != constant.QrisStaticImageURL {
		t.Errorf("image url = %q, want %q", qr.imageURL, constant.QrisStaticImageURL)
	}
	if qr.qrString != "" || qr.reference != "" {
		t.Errorf("static fallback must carry no charge data, got %+v", qr)
	}
}
