package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Listing is the canonical marketplace entry.
type Listing struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string          `gorm:"column:name;not null"`
	CategoryID  uuid.UUID       `gorm:"column:category_id;type:uuid;not null;index"`
	Category    *Category       `gorm:"foreignKey:CategoryID"`
	Location    string          `gorm:"column:location;not null"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Rating      float64         `gorm:"column:rating;type:numeric(3,2);not null;default:4"`
	Description string          `gorm:"column:description;not null"`
	Images      pq.StringArray  `gorm:"column:images;type:text[];not null;default:ARRAY[]::text[]"`
	Amenities   pq.StringArray  `gorm:"column:amenities;type:text[];not null;default:ARRAY[]::text[]"`
	Tags        pq.StringArray  `gorm:"column:tags;type:text[];not null;default:ARRAY[]::text[]"`

	Owner      json.RawMessage `gorm:"column:owner;type:jsonb"`
	Attributes json.RawMessage `gorm:"column:attributes;type:jsonb"`
	Features   json.RawMessage `gorm:"column:features;type:jsonb"`
	Hours      json.RawMessage `gorm:"column:hours;type:jsonb"`

	Website      *string `gorm:"column:website"`
	ContactEmail *string `gorm:"column:contact_email"`
	ContactPhone *string `gorm:"column:contact_phone"`

	IsVerified bool `gorm:"column:is_verified;not null;default:false"`
	IsFeatured bool `gorm:"column:is_featured;not null;default:false"`

	AddedByID uuid.UUID `gorm:"column:added_by_id;type:uuid;not null;index"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
