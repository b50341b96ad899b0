package auth

import (
	"github.com/listygo/listygo-backend/internal/admins"
	"github.com/listygo/listygo-backend/internal/users"
)

// RegisterUserRequest is the public signup payload. The wire contract is
// camelCase and frozen.
type RegisterUserRequest struct {
	Name     string `json:"name" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterAdminRequest additionally accepts a role; the default is admin.
type RegisterAdminRequest struct {
	Name     string `json:"name" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=admin super-admin"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserAuthResult pairs a minted token with the user profile.
type UserAuthResult struct {
	Token string
	User  *users.UserDTO
}

// AdminAuthResult pairs a minted token with the admin profile.
type AdminAuthResult struct {
	Token string
	Admin *admins.AdminDTO
}
