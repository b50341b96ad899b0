package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/listygo/listygo-backend/pkg/db/models"
	pkgerrors "github.com/listygo/listygo-backend/pkg/errors"
	"gorm.io/gorm"
)

type userGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type adminGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Admin, error)
}

// Resolver maps a token's principal id back to a live account. The user
// table is consulted first, then admins; the order is fixed and relied on
// by the access guard.
type Resolver struct {
	users  userGetter
	admins adminGetter
}

func NewResolver(users userGetter, admins adminGetter) *Resolver {
	return &Resolver{users: users, admins: admins}
}

// Resolve returns the principal for id, or CodeNotFound when neither table
// has a row. Deleted accounts therefore fail authentication on the next
// request even if their token is still within its lifetime.
func (r *Resolver) Resolve(ctx context.Context, id uuid.UUID) (*Principal, error) {
	user, err := r.users.GetByID(ctx, id)
	if err == nil {
		return &Principal{
			Kind:      KindUser,
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			Role:      RoleUser,
			CreatedAt: user.CreatedAt,
		}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) && pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		return nil, err
	}

	admin, err := r.admins.GetByID(ctx, id)
	if err == nil {
		return &Principal{
			Kind:      KindAdmin,
			ID:        admin.ID,
			Name:      admin.Name,
			Email:     admin.Email,
			Role:      admin.Role,
			CreatedAt: admin.CreatedAt,
		}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) && pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		return nil, err
	}

	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "principal not found")
}
