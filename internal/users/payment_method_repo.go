package users

import (
	"context"

	"github.com/google/uuid"
	"github.com/listygo/listygo-backend/pkg/db/models"
	"gorm.io/gorm"
)

// PaymentMethodRepository persists the inert card records owned by a user.
type PaymentMethodRepository struct {
	db *gorm.DB
}

func NewPaymentMethodRepository(db *gorm.DB) *PaymentMethodRepository {
	return &PaymentMethodRepository{db: db}
}

// WithTx returns a repository bound to the supplied transaction.
func (r *PaymentMethodRepository) WithTx(tx *gorm.DB) *PaymentMethodRepository {
	return &PaymentMethodRepository{db: tx}
}

// ListByUser returns the user's methods, default first, then newest.
func (r *PaymentMethodRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.PaymentMethod, error) {
	var rows []models.PaymentMethod
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads a single method scoped to its owner.
func (r *PaymentMethodRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*models.PaymentMethod, error) {
	var row models.PaymentMethod
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Create inserts a new method row.
func (r *PaymentMethodRepository) Create(ctx context.Context, method *models.PaymentMethod) error {
	return r.db.WithContext(ctx).Create(method).Error
}

// UpdateFields applies a partial update to a method owned by userID.
func (r *PaymentMethodRepository) UpdateFields(ctx context.Context, userID, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.PaymentMethod{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields).Error
}

// Delete removes a method owned by userID.
func (r *PaymentMethodRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&models.PaymentMethod{}, "id = ? AND user_id = ?", id, userID).Error
}

// ClearDefault unsets the default flag across the user's methods. Used
// inside the same transaction that sets the new default.
func (r *PaymentMethodRepository) ClearDefault(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.PaymentMethod{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		UpdateColumn("is_default", false).Error
}

// SetDefault marks one method as the default.
func (r *PaymentMethodRepository) SetDefault(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.PaymentMethod{}).
		Where("id = ? AND user_id = ?", id, userID).
		UpdateColumn("is_default", true).Error
}
