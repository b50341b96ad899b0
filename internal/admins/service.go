package admins

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	pkgAuth "github.com/listygo/listygo-backend/pkg/auth"
	"github.com/listygo/listygo-backend/pkg/config"
	"github.com/listygo/listygo-backend/pkg/db/models"
	pkgerrors "github.com/listygo/listygo-backend/pkg/errors"
	"github.com/listygo/listygo-backend/pkg/security"
	"gorm.io/gorm"
)

const recentRows = 5

// Service is the admin self-service and dashboard surface.
type Service interface {
	Me(ctx context.Context, id uuid.UUID) (*AdminDTO, error)
	UpdateDetails(ctx context.Context, id uuid.UUID, req UpdateDetailsRequest) (*AdminDTO, error)
	// UpdatePassword returns a fresh token; the admin client swaps its
	// credential in place instead of re-logging in.
	UpdatePassword(ctx context.Context, id uuid.UUID, req UpdatePasswordRequest) (string, error)
	Dashboard(ctx context.Context) (*Dashboard, error)
}

type userCounter interface {
	Count(ctx context.Context) (int64, error)
	ListRecent(ctx context.Context, limit int) ([]models.User, error)
}

type hotelCounter interface {
	Count(ctx context.Context) (int64, error)
	ListRecent(ctx context.Context, limit int) ([]models.Hotel, error)
}

type service struct {
	repo        *Repository
	users       userCounter
	hotels      hotelCounter
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
}

// ServiceParams bundles the dependencies required to build an admins service.
type ServiceParams struct {
	Repo           *Repository
	Users          userCounter
	Hotels         hotelCounter
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("admin repository is required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.Hotels == nil {
		return nil, fmt.Errorf("hotel repository is required")
	}
	return &service{
		repo:        params.Repo,
		users:       params.Users,
		hotels:      params.Hotels,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordConfig,
	}, nil
}

func (s *service) Me(ctx context.Context, id uuid.UUID) (*AdminDTO, error) {
	admin, err := s.getAdmin(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(admin), nil
}

func (s *service) UpdateDetails(ctx context.Context, id uuid.UUID, req UpdateDetailsRequest) (*AdminDTO, error) {
	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Email != nil {
		fields["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
	}

	if len(fields) > 0 {
		if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update admin")
		}
	}
	return s.Me(ctx, id)
}

func (s *service) UpdatePassword(ctx context.Context, id uuid.UUID, req UpdatePasswordRequest) (string, error) {
	admin, err := s.getAdmin(ctx, id)
	if err != nil {
		return "", err
	}

	valid, err := security.VerifyPassword(req.CurrentPassword, admin.PasswordHash)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "incorrect current password")
	}

	hash, err := security.HashPassword(req.NewPassword, s.passwordCfg)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	if err := s.repo.UpdatePasswordHash(ctx, id, hash); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store password")
	}

	token, err := pkgAuth.MintAccessToken(s.jwtCfg, time.Now().UTC(), admin.ID)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	return token, nil
}

func (s *service) Dashboard(ctx context.Context) (*Dashboard, error) {
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count users")
	}
	totalHotels, err := s.hotels.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count hotels")
	}

	recentUsers, err := s.users.ListRecent(ctx, recentRows)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list recent users")
	}
	recentHotels, err := s.hotels.ListRecent(ctx, recentRows)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list recent hotels")
	}

	dash := &Dashboard{
		TotalUsers:     totalUsers,
		TotalHotels:    totalHotels,
		ActiveSessions: 0,
		RecentUsers:    make([]RecentUser, 0, len(recentUsers)),
		RecentHotels:   make([]RecentHotel, 0, len(recentHotels)),
	}
	for _, u := range recentUsers {
		dash.RecentUsers = append(dash.RecentUsers, RecentUser{
			Name:      u.Name,
			Email:     u.Email,
			Role:      "user",
			CreatedAt: u.CreatedAt,
		})
	}
	for _, h := range recentHotels {
		dash.RecentHotels = append(dash.RecentHotels, RecentHotel{
			ID:        h.ID,
			Name:      h.Name,
			Location:  h.Location,
			CreatedAt: h.CreatedAt,
		})
	}
	return dash, nil
}

func (s *service) getAdmin(ctx context.Context, id uuid.UUID) (*models.Admin, error) {
	admin, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "admin not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup admin")
	}
	return admin, nil
}
