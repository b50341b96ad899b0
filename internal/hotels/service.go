package hotels

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/listygo/listygo-backend/internal/identity"
	"github.com/listygo/listygo-backend/pkg/db/models"
	pkgerrors "github.com/listygo/listygo-backend/pkg/errors"
	"gorm.io/gorm"
)

const hotelDefaultRating = 4

// Service is the hotel catalogue surface.
type Service interface {
	List(ctx context.Context) ([]HotelDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*HotelDTO, error)
	Create(ctx context.Context, principal *identity.Principal, req CreateHotelRequest) (*HotelDTO, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateHotelRequest) (*HotelDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo *Repository
}

func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("hotel repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]HotelDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list hotels")
	}
	return FromModels(rows), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*HotelDTO, error) {
	hotel, err := s.getHotel(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(hotel), nil
}

func (s *service) Create(ctx context.Context, principal *identity.Principal, req CreateHotelRequest) (*HotelDTO, error) {
	hotel := &models.Hotel{
		Name:        req.Name,
		Location:    req.Location,
		Price:       req.Price,
		Rating:      hotelDefaultRating,
		Description: req.Description,
		Images:      req.Images,
		Amenities:   req.Amenities,
		Bedrooms:    1,
		Bathrooms:   1,
		Size:        req.Size,
		MaxGuests:   2,
		Host:        req.Host,
		AddedByID:   principal.ID,
	}
	if req.Rating != nil {
		hotel.Rating = *req.Rating
	}
	if req.Bedrooms != nil {
		hotel.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		hotel.Bathrooms = *req.Bathrooms
	}
	if req.Parking != nil {
		hotel.Parking = *req.Parking
	}
	if req.MaxGuests != nil {
		hotel.MaxGuests = *req.MaxGuests
	}

	if err := s.repo.Create(ctx, hotel); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create hotel")
	}
	return FromModel(hotel), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateHotelRequest) (*HotelDTO, error) {
	hotel, err := s.getHotel(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		hotel.Name = *req.Name
	}
	if req.Location != nil {
		hotel.Location = *req.Location
	}
	if req.Price != nil {
		hotel.Price = *req.Price
	}
	if req.Rating != nil {
		hotel.Rating = *req.Rating
	}
	if req.Description != nil {
		hotel.Description = *req.Description
	}
	if req.Images != nil {
		hotel.Images = req.Images
	}
	if req.Amenities != nil {
		hotel.Amenities = req.Amenities
	}
	if req.Bedrooms != nil {
		hotel.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		hotel.Bathrooms = *req.Bathrooms
	}
	if req.Size != nil {
		hotel.Size = req.Size
	}
	if req.Parking != nil {
		hotel.Parking = *req.Parking
	}
	if req.MaxGuests != nil {
		hotel.MaxGuests = *req.MaxGuests
	}
	if req.Host != nil {
		hotel.Host = req.Host
	}

	if err := s.repo.Save(ctx, hotel); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update hotel")
	}
	return FromModel(hotel), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.getHotel(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete hotel")
	}
	return nil
}

func (s *service) getHotel(ctx context.Context, id uuid.UUID) (*models.Hotel, error) {
	hotel, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "hotel not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup hotel")
	}
	return hotel, nil
}
