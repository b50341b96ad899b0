package hotels

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/listygo/listygo-backend/pkg/db/models"
)

// HotelDTO is the transport shape of a hotel.
type HotelDTO struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Location    string          `json:"location"`
	Price       decimal.Decimal `json:"price"`
	Rating      float64         `json:"rating"`
	Description string          `json:"description"`
	Images      []string        `json:"images"`
	Amenities   []string        `json:"amenities"`
	Bedrooms    int             `json:"bedrooms"`
	Bathrooms   int             `json:"bathrooms"`
	Size        *int            `json:"size,omitempty"`
	Parking     bool            `json:"parking"`
	MaxGuests   int             `json:"maxGuests"`
	Host        json.RawMessage `json:"host,omitempty"`
	AddedBy     uuid.UUID       `json:"addedBy"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// CreateHotelRequest is the payload for creating a hotel.
type CreateHotelRequest struct {
	Name        string          `json:"name" validate:"required,max=100"`
	Location    string          `json:"location" validate:"required"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Rating      *float64        `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`
	Description string          `json:"description" validate:"required,max=2000"`
	Images      []string        `json:"images" validate:"required,min=1"`
	Amenities   []string        `json:"amenities,omitempty"`
	Bedrooms    *int            `json:"bedrooms,omitempty" validate:"omitempty,gte=0"`
	Bathrooms   *int            `json:"bathrooms,omitempty" validate:"omitempty,gte=0"`
	Size        *int            `json:"size,omitempty" validate:"omitempty,gte=0"`
	Parking     *bool           `json:"parking,omitempty"`
	MaxGuests   *int            `json:"maxGuests,omitempty" validate:"omitempty,gte=1"`
	Host        json.RawMessage `json:"host,omitempty"`
}

// UpdateHotelRequest mutates any subset of hotel fields.
type UpdateHotelRequest struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,max=100"`
	Location    *string          `json:"location,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Rating      *float64         `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`
	Description *string          `json:"description,omitempty" validate:"omitempty,max=2000"`
	Images      []string         `json:"images,omitempty"`
	Amenities   []string         `json:"amenities,omitempty"`
	Bedrooms    *int             `json:"bedrooms,omitempty" validate:"omitempty,gte=0"`
	Bathrooms   *int             `json:"bathrooms,omitempty" validate:"omitempty,gte=0"`
	Size        *int             `json:"size,omitempty" validate:"omitempty,gte=0"`
	Parking     *bool            `json:"parking,omitempty"`
	MaxGuests   *int             `json:"maxGuests,omitempty" validate:"omitempty,gte=1"`
	Host        json.RawMessage  `json:"host,omitempty"`
}

func FromModel(h *models.Hotel) *HotelDTO {
	if h == nil {
		return nil
	}
	return &HotelDTO{
		ID:          h.ID,
		Name:        h.Name,
		Location:    h.Location,
		Price:       h.Price,
		Rating:      h.Rating,
		Description: h.Description,
		Images:      h.Images,
		Amenities:   h.Amenities,
		Bedrooms:    h.Bedrooms,
		Bathrooms:   h.Bathrooms,
		Size:        h.Size,
		Parking:     h.Parking,
		MaxGuests:   h.MaxGuests,
		Host:        h.Host,
		AddedBy:     h.AddedByID,
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
	}
}

func FromModels(hs []models.Hotel) []HotelDTO {
	out := make([]HotelDTO, 0, len(hs))
	for i := range hs {
		out = append(out, *FromModel(&hs[i]))
	}
	return out
}
