package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethod is an inert card record. Only the last four digits are
// persisted; the full number never leaves the request handler.
type PaymentMethod struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID         uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	CardholderName string    `gorm:"column:cardholder_name;not null"`
	Last4          string    `gorm:"column:last4;not null"`
	ExpiryMonth    int       `gorm:"column:expiry_month;not null"`
	ExpiryYear     int       `gorm:"column:expiry_year;not null"`
	CardType       string    `gorm:"column:card_type;not null;default:'visa'"`
	IsDefault      bool      `gorm:"column:is_default;not null;default:false"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
