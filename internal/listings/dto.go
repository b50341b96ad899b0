package listings

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/listygo/listygo-backend/pkg/db/models"
)

// CategorySummary is the embedded category view on a listing.
type CategorySummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
	Icon *string   `json:"icon,omitempty"`
}

// ListingDTO is the transport shape of a listing.
type ListingDTO struct {
	ID           uuid.UUID        `json:"id"`
	Name         string           `json:"name"`
	Category     *CategorySummary `json:"category,omitempty"`
	Location     string           `json:"location"`
	Price        decimal.Decimal  `json:"price"`
	Rating       float64          `json:"rating"`
	Description  string           `json:"description"`
	Images       []string         `json:"images"`
	Amenities    []string         `json:"amenities"`
	Tags         []string         `json:"tags"`
	Owner        json.RawMessage  `json:"owner,omitempty"`
	Attributes   json.RawMessage  `json:"attributes,omitempty"`
	Features     json.RawMessage  `json:"features,omitempty"`
	Hours        json.RawMessage  `json:"hours,omitempty"`
	Website      *string          `json:"website,omitempty"`
	ContactEmail *string          `json:"contactEmail,omitempty"`
	ContactPhone *string          `json:"contactPhone,omitempty"`
	IsVerified   bool             `json:"isVerified"`
	IsFeatured   bool             `json:"isFeatured"`
	AddedBy      uuid.UUID        `json:"addedBy"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// CreateListingRequest is the payload for creating a listing.
type CreateListingRequest struct {
	Name         string          `json:"name" validate:"required,max=100"`
	Category     uuid.UUID       `json:"category" validate:"required"`
	Location     string          `json:"location" validate:"required"`
	Price        decimal.Decimal `json:"price" validate:"required"`
	Rating       *float64        `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`
	Description  string          `json:"description" validate:"required,max=2000"`
	Images       []string        `json:"images" validate:"required,min=1"`
	Amenities    []string        `json:"amenities,omitempty"`
	Tags         []string        `json:"tags,omitempty"`
	Owner        json.RawMessage `json:"owner,omitempty"`
	Attributes   json.RawMessage `json:"attributes,omitempty"`
	Features     json.RawMessage `json:"features,omitempty"`
	Hours        json.RawMessage `json:"hours,omitempty"`
	Website      *string         `json:"website,omitempty"`
	ContactEmail *string         `json:"contactEmail,omitempty" validate:"omitempty,email"`
	ContactPhone *string         `json:"contactPhone,omitempty"`
	IsVerified   *bool           `json:"isVerified,omitempty"`
	IsFeatured   *bool           `json:"isFeatured,omitempty"`
}

// UpdateListingRequest mutates any subset of listing fields.
type UpdateListingRequest struct {
	Name         *string          `json:"name,omitempty" validate:"omitempty,max=100"`
	Category     *uuid.UUID       `json:"category,omitempty"`
	Location     *string          `json:"location,omitempty"`
	Price        *decimal.Decimal `json:"price,omitempty"`
	Rating       *float64         `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`
	Description  *string          `json:"description,omitempty" validate:"omitempty,max=2000"`
	Images       []string         `json:"images,omitempty"`
	Amenities    []string         `json:"amenities,omitempty"`
	Tags         []string         `json:"tags,omitempty"`
	Owner        json.RawMessage  `json:"owner,omitempty"`
	Attributes   json.RawMessage  `json:"attributes,omitempty"`
	Features     json.RawMessage  `json:"features,omitempty"`
	Hours        json.RawMessage  `json:"hours,omitempty"`
	Website      *string          `json:"website,omitempty"`
	ContactEmail *string          `json:"contactEmail,omitempty" validate:"omitempty,email"`
	ContactPhone *string          `json:"contactPhone,omitempty"`
	IsVerified   *bool            `json:"isVerified,omitempty"`
	IsFeatured   *bool            `json:"isFeatured,omitempty"`
}

func FromModel(l *models.Listing) *ListingDTO {
	if l == nil {
		return nil
	}

	dto := &ListingDTO{
		ID:           l.ID,
		Name:         l.Name,
		Location:     l.Location,
		Price:        l.Price,
		Rating:       l.Rating,
		Description:  l.Description,
		Images:       append([]string(nil), l.Images...),
		Amenities:    append([]string(nil), l.Amenities...),
		Tags:         append([]string(nil), l.Tags...),
		Owner:        l.Owner,
		Attributes:   l.Attributes,
		Features:     l.Features,
		Hours:        l.Hours,
		Website:      l.Website,
		ContactEmail: l.ContactEmail,
		ContactPhone: l.ContactPhone,
		IsVerified:   l.IsVerified,
		IsFeatured:   l.IsFeatured,
		AddedBy:      l.AddedByID,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
	if l.Category != nil {
		dto.Category = &CategorySummary{
			ID:   l.Category.ID,
			Name: l.Category.Name,
			Slug: l.Category.Slug,
			Icon: l.Category.Icon,
		}
	}
	return dto
}

func FromModels(ls []models.Listing) []ListingDTO {
	out := make([]ListingDTO, 0, len(ls))
	for i := range ls {
		out = append(out, *FromModel(&ls[i]))
	}
	return out
}

// Project applies a select projection at the response layer: each DTO is
// marshaled and filtered down to the requested fields. Projecting here
// rather than in SQL keeps zero values from masquerading as data.
func Project(dtos []ListingDTO, fields []string) []map[string]any {
	keep := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		keep[f] = struct{}{}
	}

	out := make([]map[string]any, 0, len(dtos))
	for i := range dtos {
		raw, err := json.Marshal(&dtos[i])
		if err != nil {
			continue
		}
		var full map[string]any
		if err := json.Unmarshal(raw, &full); err != nil {
			continue
		}
		row := make(map[string]any, len(keep))
		for key, value := range full {
			if _, ok := keep[key]; ok {
				row[key] = value
			}
		}
		out = append(out, row)
	}
	return out
}
