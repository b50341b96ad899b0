package hotels

import (
	"context"

	"github.com/google/uuid"
	"github.com/listygo/listygo-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes hotel persistence operations.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every hotel, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Hotel, error) {
	var rows []models.Hotel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Hotel, error) {
	var row models.Hotel
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) Create(ctx context.Context, hotel *models.Hotel) error {
	return r.db.WithContext(ctx).Create(hotel).Error
}

func (r *Repository) Save(ctx context.Context, hotel *models.Hotel) error {
	return r.db.WithContext(ctx).Save(hotel).Error
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Hotel{}, "id = ?", id).Error
}

// Count returns the total hotel count for the admin dashboard.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Hotel{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// ListRecent returns the newest hotels, capped at limit.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]models.Hotel, error) {
	var rows []models.Hotel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
