package constant

const (
	PaymentMethodBCA  = "BCA"
	PaymentMethodQRIS = "QRIS"

	PaymentStatusPending   = "pending"
	PaymentStatusConfirmed = "confirmed"
	PaymentStatusVerified  = "verified"
	PaymentStatusRejected  = "rejected"

	// Manual transfer destination shown to the user after checkout
	BcaAccountNumber = "7000944844"
	BcaAccountHolder = "PT Nuansa Berkah Sejahtera"
	BcaBankName      = "BCA"

	// Static merchant QR served when no Midtrans server key is configured.
	// The payer scans it and submits a transfer proof like the BCA flow.
	QrisStaticImageURL = "/uploads/qris/qris-static.jpeg"

	// Proof upload limits
	ProofMaxSizeBytes = 5 * 1024 * 1024
)

var ProofAllowedMimeTypes = map[string]struct{}{
	"image/png":       {},
	"image/jpeg":      {},
	"application/pdf": {},
}
