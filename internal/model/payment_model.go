package model

import (
	"time"

	"github.com/google/uuid"
)

type Payment struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId        uuid.UUID `gorm:"type:uuid;not null;index"`
	PackageId     uuid.UUID `gorm:"type:uuid;not null;index"`
	Method        string    `gorm:"type:varchar(20);not null"`
	Amount        float64   `gorm:"type:decimal(12,2);not null"`
	ForceUpgrade  bool      `gorm:"default:false"`
	Status        string    `gorm:"type:varchar(20);not null;default:'pending'"`
	Email         string    `gorm:"type:varchar(255)"`
	Phone         string    `gorm:"type:varchar(20)"`
	ProofPath     *string   `gorm:"type:text"`
	QrisReference *string   `gorm:"type:varchar(255)"`
	ConfirmedAt   *time.Time
	VerifiedAt    *time.Time
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (Payment) TableName() string {
	return "payments"
}
