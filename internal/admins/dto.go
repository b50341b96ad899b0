package admins

import (
	"time"

	"github.com/google/uuid"

	"github.com/listygo/listygo-backend/pkg/db/models"
)

// AdminDTO is the transport shape that omits credentials.
type AdminDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateAdminDTO holds the data required by the repo to persist a new admin.
type CreateAdminDTO struct {
	Name         string
	Email        string
	PasswordHash string
	Role         string
}

// UpdateDetailsRequest is the admin self-service profile update payload.
type UpdateDetailsRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,max=50"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}

// UpdatePasswordRequest carries the current and replacement passwords.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// RecentUser is a trimmed user row for the dashboard.
type RecentUser struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// RecentHotel is a trimmed hotel row for the dashboard.
type RecentHotel struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"createdAt"`
}

// Dashboard aggregates the admin landing numbers. ActiveSessions is always
// zero: tokens are stateless and the server keeps no session registry.
type Dashboard struct {
	TotalUsers     int64         `json:"totalUsers"`
	TotalHotels    int64         `json:"totalHotels"`
	ActiveSessions int           `json:"activeSessions"`
	RecentUsers    []RecentUser  `json:"recentUsers"`
	RecentHotels   []RecentHotel `json:"recentHotels"`
}

func FromModel(a *models.Admin) *AdminDTO {
	if a == nil {
		return nil
	}
	return &AdminDTO{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Role:      a.Role,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func (c CreateAdminDTO) ToModel() *models.Admin {
	role := c.Role
	if role == "" {
		role = "admin"
	}
	return &models.Admin{
		Name:         c.Name,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		Role:         role,
	}
}
