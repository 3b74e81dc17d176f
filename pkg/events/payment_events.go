package events

import "time"

// Event type codes published on the bus. Subjects are "events.<code>".
const (
	TypeUserRegistered   = "USER_REGISTERED"
	TypePhoneVerified    = "PHONE_VERIFIED"
	TypeOtpRequested     = "OTP_REQUESTED"
	TypePaymentCreated   = "PAYMENT_CREATED"
	TypePaymentConfirmed = "PAYMENT_CONFIRMED"
	TypePaymentVerified  = "PAYMENT_VERIFIED"
	TypePaymentRejected  = "PAYMENT_REJECTED"
	TypePackageActivated = "PACKAGE_ACTIVATED"
)

func NewUserRegistered(userId, email, phone string) Event {
	return BaseEvent{
		Type: TypeUserRegistered,
		Data: map[string]interface{}{
			"user_id": userId,
			"email":   email,
			"phone":   phone,
		},
		OccurredAt: time.Now(),
	}
}

func NewOtpRequested(userId, phone, purpose string) Event {
	return BaseEvent{
		Type: TypeOtpRequested,
		Data: map[string]interface{}{
			"user_id": userId,
			"phone":   phone,
			"purpose": purpose,
		},
		OccurredAt: time.Now(),
	}
}

func NewPhoneVerified(userId, phone string) Event {
	return BaseEvent{
		Type: TypePhoneVerified,
		Data: map[string]interface{}{
			"user_id": userId,
			"phone":   phone,
		},
		OccurredAt: time.Now(),
	}
}

func NewPaymentCreated(paymentId, userId, packageId, method string, amount float64, forceUpgrade bool) Event {
	return BaseEvent{
		Type: TypePaymentCreated,
		Data: map[string]interface{}{
			"payment_id":    paymentId,
			"user_id":       userId,
			"package_id":    packageId,
			"method":        method,
			"amount":        amount,
			"force_upgrade": forceUpgrade,
		},
		OccurredAt: time.Now(),
	}
}

func NewPaymentConfirmed(paymentId, userId string) Event {
	return BaseEvent{
		Type: TypePaymentConfirmed,
		Data: map[string]interface{}{
			"payment_id": paymentId,
			"user_id":    userId,
		},
		OccurredAt: time.Now(),
	}
}

func NewPaymentVerified(paymentId, userId, packageId string) Event {
	return BaseEvent{
		Type: TypePaymentVerified,
		Data: map[string]interface{}{
			"payment_id": paymentId,
			"user_id":    userId,
			"package_id": packageId,
		},
		OccurredAt: time.Now(),
	}
}

func NewPaymentRejected(paymentId, userId, reason string) Event {
	return BaseEvent{
		Type: TypePaymentRejected,
		Data: map[string]interface{}{
			"payment_id": paymentId,
			"user_id":    userId,
			"reason":     reason,
		},
		OccurredAt: time.Now(),
	}
}

func NewPackageActivated(tokenId, userId, packageId, packageName string, expiredAt time.Time) Event {
	return BaseEvent{
		Type: TypePackageActivated,
		Data: map[string]interface{}{
			"token_id":     tokenId,
			"user_id":      userId,
			"package_id":   packageId,
			"package_name": packageName,
			"expired_at":   expiredAt.Format(time.RFC3339),
		},
		OccurredAt: time.Now(),
	}
}
