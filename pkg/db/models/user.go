package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// User is a marketplace account. Users and admins live in separate tables;
// a token's principal id is looked up here first, then in admins.
type User struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string          `gorm:"column:name;not null"`
	Email        string          `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string          `gorm:"column:password_hash;not null"`
	Phone        *string         `gorm:"column:phone"`
	Avatar       *string         `gorm:"column:avatar"`
	Tier         string          `gorm:"column:tier;not null;default:'Bronze'"`
	Preferences  json.RawMessage `gorm:"column:preferences;type:jsonb"`
	MemberSince  time.Time       `gorm:"column:member_since;autoCreateTime"`

	PaymentMethods []PaymentMethod `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
