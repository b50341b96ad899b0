package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Hotel predates the generic listing catalogue and keeps its own table.
type Hotel struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string          `gorm:"column:name;not null"`
	Location    string          `gorm:"column:location;not null"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Rating      float64         `gorm:"column:rating;type:numeric(3,2);not null"`
	Description string          `gorm:"column:description;not null"`
	Images      pq.StringArray  `gorm:"column:images;type:text[];not null;default:ARRAY[]::text[]"`
	Amenities   pq.StringArray  `gorm:"column:amenities;type:text[];not null;default:ARRAY[]::text[]"`

	Bedrooms  int  `gorm:"column:bedrooms;not null;default:1"`
	Bathrooms int  `gorm:"column:bathrooms;not null;default:1"`
	Size      *int `gorm:"column:size"`
	Parking   bool `gorm:"column:parking;not null;default:false"`
	MaxGuests int  `gorm:"column:max_guests;not null;default:2"`

	Host json.RawMessage `gorm:"column:host;type:jsonb"`

	AddedByID uuid.UUID `gorm:"column:added_by_id;type:uuid;not null;index"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
