package main

import (
	"log"

	"apto-gateway-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeedNotificationTypes populates the database with default notification types.
func SeedNotificationTypes(db *gorm.DB) {
	types := []model.NotificationType{
		{
			Code:        "USER_REGISTERED",
			DisplayName: "New User Registration",
			Template:    "New user registered: {email} ({user_id})",
			TargetType:  "ADMIN",
			Priority:    "MEDIUM",
			Channels:    datatypes.JSON([]byte(`["web", "email"]`)),
			IsActive:    true,
		},
		{
			Code:        "PHONE_VERIFIED",
			DisplayName: "Phone Verified",
			Template:    "Your WhatsApp number {phone} has been verified",
			TargetType:  "SELF",
			Priority:    "LOW",
			Channels:    datatypes.JSON([]byte(`["web"]`)),
			IsActive:    true,
		},
		{
			Code:        "PAYMENT_CREATED",
			DisplayName: "Payment Started",
			Template:    "Your {method} payment of Rp {amount} was created. Complete the transfer and upload your proof.",
			TargetType:  "SELF",
			Priority:    "MEDIUM",
			Channels:    datatypes.JSON([]byte(`["web"]`)),
			IsActive:    true,
		},
		{
			Code:        "PAYMENT_CONFIRMED",
			DisplayName: "Payment Awaiting Verification",
			Template:    "Payment {payment_id} needs manual verification",
			TargetType:  "ADMIN",
			Priority:    "HIGH",
			Channels:    datatypes.JSON([]byte(`["web", "email"]`)),
			IsActive:    true,
		},
		{
			Code:        "PAYMENT_VERIFIED",
			DisplayName: "Payment Verified",
			Template:    "Your payment was verified. Your package is now active!",
			TargetType:  "SELF",
			Priority:    "HIGH",
			Channels:    datatypes.JSON([]byte(`["web", "email"]`)),
			IsActive:    true,
		},
		{
			Code:        "PAYMENT_REJECTED",
			DisplayName: "Payment Rejected",
			Template:    "Your payment was rejected: {reason}",
			TargetType:  "SELF",
			Priority:    "HIGH",
			Channels:    datatypes.JSON([]byte(`["web", "email"]`)),
			IsActive:    true,
		},
		{
			Code:        "PACKAGE_ACTIVATED",
			DisplayName: "Package Activated",
			Template:    "{package_name} is active until {expired_at}",
			TargetType:  "SELF",
			Priority:    "HIGH",
			Channels:    datatypes.JSON([]byte(`["web"]`)),
			IsActive:    true,
		},
		{
			Code:        "SOCIAL_PROOF",
			DisplayName: "New Subscriber",
			Template:    "Someone just activated the {package_name} package!",
			TargetType:  "BROADCAST",
			Priority:    "LOW",
			Channels:    datatypes.JSON([]byte(`["web"]`)),
			IsActive:    true,
		},
		{
			Code:        "SYSTEM_BROADCAST",
			DisplayName: "System Announcement",
			Template:    "{message}",
			TargetType:  "BROADCAST",
			Priority:    "MEDIUM",
			Channels:    datatypes.JSON([]byte(`["web"]`)),
			IsActive:    true,
		},
	}

	for _, t := range types {
		var existing model.NotificationType
		if err := db.Where("code = ?", t.Code).First(&existing).Error; err == nil {
			continue
		}
		if err := db.Create(&t).Error; err != nil {
			log.Printf("Error creating notification type '%s': %v", t.Code, err)
		} else {
			log.Printf("Created notification type: %s", t.Code)
		}
	}
}
