package constant

import "time"

const (
	OtpPurposeRegister      = "register"
	OtpPurposeResetPassword = "reset_password"

	OtpLength = 6
	OtpTTL    = 5 * time.Minute

	// Minimum gap between resend requests for the same phone
	OtpResendCooldown = 60 * time.Second
)
