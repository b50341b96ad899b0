package users

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/listygo/listygo-backend/pkg/db/models"
)

// UserDTO is the transport shape that omits credentials entirely. Field
// names are camelCase because the wire contract is frozen.
type UserDTO struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Phone       *string         `json:"phone,omitempty"`
	Avatar      *string         `json:"avatar,omitempty"`
	Tier        string          `json:"tier"`
	Preferences json.RawMessage `json:"preferences,omitempty"`
	MemberSince time.Time       `json:"memberSince"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
// The repo only ever sees the finished hash.
type CreateUserDTO struct {
	Name         string
	Email        string
	PasswordHash string
	Phone        *string
	Avatar       *string
}

// UpdateDetailsRequest is the self-service profile update payload.
type UpdateDetailsRequest struct {
	Name        *string         `json:"name,omitempty" validate:"omitempty,max=50"`
	Email       *string         `json:"email,omitempty" validate:"omitempty,email"`
	Phone       *string         `json:"phone,omitempty"`
	Avatar      *string         `json:"avatar,omitempty"`
	Preferences json.RawMessage `json:"preferences,omitempty"`
}

// UpdatePasswordRequest carries the current and replacement passwords.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// PaymentMethodDTO exposes an inert card record.
type PaymentMethodDTO struct {
	ID             uuid.UUID `json:"id"`
	CardholderName string    `json:"cardholderName"`
	Last4          string    `json:"last4"`
	ExpiryMonth    int       `json:"expiryMonth"`
	ExpiryYear     int       `json:"expiryYear"`
	CardType       string    `json:"cardType"`
	IsDefault      bool      `json:"isDefault"`
	CreatedAt      time.Time `json:"createdAt"`
}

// AddPaymentMethodRequest accepts the full card number; only the last four
// digits survive past the service boundary.
type AddPaymentMethodRequest struct {
	CardholderName string `json:"cardholderName" validate:"required"`
	CardNumber     string `json:"cardNumber" validate:"required,min=4"`
	ExpiryMonth    int    `json:"expiryMonth" validate:"required,gte=1,lte=12"`
	ExpiryYear     int    `json:"expiryYear" validate:"required,gte=2020"`
	CardType       string `json:"cardType,omitempty" validate:"omitempty,oneof=visa mastercard amex discover"`
}

// UpdatePaymentMethodRequest mutates editable card fields.
type UpdatePaymentMethodRequest struct {
	CardholderName *string `json:"cardholderName,omitempty"`
	ExpiryMonth    *int    `json:"expiryMonth,omitempty" validate:"omitempty,gte=1,lte=12"`
	ExpiryYear     *int    `json:"expiryYear,omitempty" validate:"omitempty,gte=2020"`
	CardType       *string `json:"cardType,omitempty" validate:"omitempty,oneof=visa mastercard amex discover"`
}

// ContactRequest is the public contact form payload.
type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Phone:       u.Phone,
		Avatar:      u.Avatar,
		Tier:        u.Tier,
		Preferences: u.Preferences,
		MemberSince: u.MemberSince,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	return &models.User{
		Name:         c.Name,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		Phone:        c.Phone,
		Avatar:       c.Avatar,
		Tier:         "Bronze",
	}
}

func PaymentMethodFromModel(m *models.PaymentMethod) *PaymentMethodDTO {
	if m == nil {
		return nil
	}
	return &PaymentMethodDTO{
		ID:             m.ID,
		CardholderName: m.CardholderName,
		Last4:          m.Last4,
		ExpiryMonth:    m.ExpiryMonth,
		ExpiryYear:     m.ExpiryYear,
		CardType:       m.CardType,
		IsDefault:      m.IsDefault,
		CreatedAt:      m.CreatedAt,
	}
}

func PaymentMethodsFromModels(ms []models.PaymentMethod) []PaymentMethodDTO {
	out := make([]PaymentMethodDTO, 0, len(ms))
	for i := range ms {
		out = append(out, *PaymentMethodFromModel(&ms[i]))
	}
	return out
}
