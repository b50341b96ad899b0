package listings

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/listygo/listygo-backend/pkg/db/models"
	"github.com/listygo/listygo-backend/pkg/pagination"
	"gorm.io/gorm"
)

const featuredCap = 10

// Repository exposes listing persistence, including the translated browse
// query.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List runs the translated query: the count and the page slice are computed
// against the identical predicate, so count always reflects the filtered
// set even when the page itself is empty.
func (r *Repository) List(ctx context.Context, q *ListQuery) ([]models.Listing, int64, error) {
	base := r.applyPredicate(r.db.WithContext(ctx).Model(&models.Listing{}), q)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := base.Session(&gorm.Session{}).
		Preload("Category").
		Offset(pagination.Offset(q.Page, q.Limit)).
		Limit(pagination.NormalizeLimit(q.Limit))
	for _, sort := range q.Sort {
		direction := "ASC"
		if sort.Desc {
			direction = "DESC"
		}
		page = page.Order(fmt.Sprintf("%s %s", sort.Column, direction))
	}

	var rows []models.Listing
	if err := page.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *Repository) applyPredicate(tx *gorm.DB, q *ListQuery) *gorm.DB {
	for _, filter := range q.Filters {
		switch filter.Op {
		case "IN":
			tx = tx.Where(fmt.Sprintf("%s IN ?", filter.Column), filter.Value)
		default:
			tx = tx.Where(fmt.Sprintf("%s %s ?", filter.Column, filter.Op), filter.Value)
		}
	}

	if q.Search != "" {
		pattern := "%" + strings.ToLower(q.Search) + "%"
		tx = tx.Where(
			"LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(location) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	if q.Location != "" {
		tx = tx.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(q.Location)+"%")
	}

	return tx
}

// ListFeatured returns up to ten featured listings, newest first.
func (r *Repository) ListFeatured(ctx context.Context) ([]models.Listing, error) {
	var rows []models.Listing
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("is_featured = ?", true).
		Order("created_at DESC").
		Limit(featuredCap).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByCategory returns every listing in the category, newest first.
func (r *Repository) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Listing, error) {
	var rows []models.Listing
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("category_id = ?", categoryID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads a listing with its category.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	var row models.Listing
	if err := r.db.WithContext(ctx).
		Preload("Category").
		First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Create inserts the listing and reloads it with its category.
func (r *Repository) Create(ctx context.Context, listing *models.Listing) (*models.Listing, error) {
	if err := r.db.WithContext(ctx).Create(listing).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, listing.ID)
}

// Save persists the mutated listing model.
func (r *Repository) Save(ctx context.Context, listing *models.Listing) (*models.Listing, error) {
	if err := r.db.WithContext(ctx).Save(listing).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, listing.ID)
}

// Delete removes the listing row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Listing{}, "id = ?", id).Error
}
