package listings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/listygo/listygo-backend/internal/identity"
	"github.com/listygo/listygo-backend/pkg/db/models"
	pkgerrors "github.com/listygo/listygo-backend/pkg/errors"
	"github.com/listygo/listygo-backend/pkg/pagination"
	"gorm.io/gorm"
)

const defaultRating = 4

// ListResult is a translated browse response: data is either []ListingDTO
// or, when a select projection was requested, []map[string]any.
type ListResult struct {
	Count    int
	PageInfo pagination.PageInfo
	Data     any
}

// CategoryListResult pairs a category's listings with its summary.
type CategoryListResult struct {
	Category *CategorySummary
	Data     []ListingDTO
}

// Service is the listing catalogue surface.
type Service interface {
	List(ctx context.Context, q *ListQuery) (*ListResult, error)
	Featured(ctx context.Context) ([]ListingDTO, error)
	ByCategory(ctx context.Context, categoryID uuid.UUID) (*CategoryListResult, error)
	Get(ctx context.Context, id uuid.UUID) (*ListingDTO, error)
	Create(ctx context.Context, principal *identity.Principal, req CreateListingRequest) (*ListingDTO, error)
	Update(ctx context.Context, principal *identity.Principal, id uuid.UUID, req UpdateListingRequest) (*ListingDTO, error)
	Delete(ctx context.Context, principal *identity.Principal, id uuid.UUID) error
}

type categoryGetter interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
}

type service struct {
	repo       *Repository
	categories categoryGetter
}

// ServiceParams bundles the dependencies required to build a listings service.
type ServiceParams struct {
	Repo       *Repository
	Categories categoryGetter
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("listing repository is required")
	}
	if params.Categories == nil {
		return nil, fmt.Errorf("category repository is required")
	}
	return &service{repo: params.Repo, categories: params.Categories}, nil
}

func (s *service) List(ctx context.Context, q *ListQuery) (*ListResult, error) {
	rows, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list listings")
	}

	dtos := FromModels(rows)
	result := &ListResult{
		Count:    len(dtos),
		PageInfo: pagination.Paginate(q.Page, q.Limit, total),
	}
	if len(q.Select) > 0 {
		result.Data = Project(dtos, q.Select)
	} else {
		result.Data = dtos
	}
	return result, nil
}

func (s *service) Featured(ctx context.Context) ([]ListingDTO, error) {
	rows, err := s.repo.ListFeatured(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list featured listings")
	}
	return FromModels(rows), nil
}

func (s *service) ByCategory(ctx context.Context, categoryID uuid.UUID) (*CategoryListResult, error) {
	category, err := s.getCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list category listings")
	}

	return &CategoryListResult{
		Category: &CategorySummary{
			ID:   category.ID,
			Name: category.Name,
			Slug: category.Slug,
			Icon: category.Icon,
		},
		Data: FromModels(rows),
	}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ListingDTO, error) {
	listing, err := s.getListing(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(listing), nil
}

func (s *service) Create(ctx context.Context, principal *identity.Principal, req CreateListingRequest) (*ListingDTO, error) {
	if _, err := s.getCategory(ctx, req.Category); err != nil {
		return nil, err
	}

	rating := float64(defaultRating)
	if req.Rating != nil {
		rating = *req.Rating
	}

	listing := &models.Listing{
		Name:         req.Name,
		CategoryID:   req.Category,
		Location:     req.Location,
		Price:        req.Price,
		Rating:       rating,
		Description:  req.Description,
		Images:       req.Images,
		Amenities:    req.Amenities,
		Tags:         req.Tags,
		Owner:        req.Owner,
		Attributes:   req.Attributes,
		Features:     req.Features,
		Hours:        req.Hours,
		Website:      req.Website,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		AddedByID:    principal.ID,
	}
	if req.IsVerified != nil {
		listing.IsVerified = *req.IsVerified
	}
	if req.IsFeatured != nil {
		listing.IsFeatured = *req.IsFeatured
	}

	created, err := s.repo.Create(ctx, listing)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create listing")
	}
	return FromModel(created), nil
}

func (s *service) Update(ctx context.Context, principal *identity.Principal, id uuid.UUID, req UpdateListingRequest) (*ListingDTO, error) {
	listing, err := s.getListing(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeMutation(principal, listing); err != nil {
		return nil, err
	}

	if req.Category != nil {
		if _, err := s.getCategory(ctx, *req.Category); err != nil {
			return nil, err
		}
		listing.CategoryID = *req.Category
		listing.Category = nil
	}
	if req.Name != nil {
		listing.Name = *req.Name
	}
	if req.Location != nil {
		listing.Location = *req.Location
	}
	if req.Price != nil {
		listing.Price = *req.Price
	}
	if req.Rating != nil {
		listing.Rating = *req.Rating
	}
	if req.Description != nil {
		listing.Description = *req.Description
	}
	if req.Images != nil {
		listing.Images = req.Images
	}
	if req.Amenities != nil {
		listing.Amenities = req.Amenities
	}
	if req.Tags != nil {
		listing.Tags = req.Tags
	}
	if req.Owner != nil {
		listing.Owner = req.Owner
	}
	if req.Attributes != nil {
		listing.Attributes = req.Attributes
	}
	if req.Features != nil {
		listing.Features = req.Features
	}
	if req.Hours != nil {
		listing.Hours = req.Hours
	}
	if req.Website != nil {
		listing.Website = req.Website
	}
	if req.ContactEmail != nil {
		listing.ContactEmail = req.ContactEmail
	}
	if req.ContactPhone != nil {
		listing.ContactPhone = req.ContactPhone
	}
	if req.IsVerified != nil {
		listing.IsVerified = *req.IsVerified
	}
	if req.IsFeatured != nil {
		listing.IsFeatured = *req.IsFeatured
	}

	saved, err := s.repo.Save(ctx, listing)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update listing")
	}
	return FromModel(saved), nil
}

func (s *service) Delete(ctx context.Context, principal *identity.Principal, id uuid.UUID) error {
	listing, err := s.getListing(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeMutation(principal, listing); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete listing")
	}
	return nil
}

// authorizeMutation lets the creator or any privileged admin through.
// The mismatch status is 401, not 403; the contract predates the guard
// middleware and is frozen.
func (s *service) authorizeMutation(principal *identity.Principal, listing *models.Listing) error {
	if principal == nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "not authorized to modify this listing")
	}
	if principal.IsPrivileged() || listing.AddedByID == principal.ID {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeUnauthorized, "not authorized to modify this listing")
}

func (s *service) getListing(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	listing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "listing not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup listing")
	}
	return listing, nil
}

func (s *service) getCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup category")
	}
	return category, nil
}
