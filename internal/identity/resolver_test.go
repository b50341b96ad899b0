package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/listygo/listygo-backend/pkg/db/models"
	pkgerrors "github.com/listygo/listygo-backend/pkg/errors"
	"gorm.io/gorm"
)

type stubUserGetter struct {
	user *models.User
	err  error
}

func (s stubUserGetter) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.user, s.err
}

type stubAdminGetter struct {
	admin *models.Admin
	err   error
}

func (s stubAdminGetter) GetByID(ctx context.Context, id uuid.UUID) (*models.Admin, error) {
	return s.admin, s.err
}

func TestResolveUser(t *testing.T) {
	id := uuid.New()
	resolver := NewResolver(
		stubUserGetter{user: &models.User{ID: id, Name: "Ada", Email: "ada@example.com"}},
		stubAdminGetter{err: gorm.ErrRecordNotFound},
	)

	p, err := resolver.Resolve(context.Background(), id)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if p.Kind != KindUser {
		t.Fatalf("kind = %s", p.Kind)
	}
	if p.Role != RoleUser {
		t.Fatalf("user principal should carry the user role, got %q", p.Role)
	}
}

// A user row shadows an admin row with the same id: the user table is
// consulted first.
func TestResolveUserTakesPrecedence(t *testing.T) {
	id := uuid.New()
	resolver := NewResolver(
		stubUserGetter{user: &models.User{ID: id, Email: "both@example.com"}},
		stubAdminGetter{admin: &models.Admin{ID: id, Email: "both@example.com", Role: RoleSuperAdmin}},
	)

	p, err := resolver.Resolve(context.Background(), id)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if p.Kind != KindUser {
		t.Fatalf("expected user to win, got kind %s", p.Kind)
	}
}

func TestResolveAdmin(t *testing.T) {
	id := uuid.New()
	resolver := NewResolver(
		stubUserGetter{err: gorm.ErrRecordNotFound},
		stubAdminGetter{admin: &models.Admin{ID: id, Name: "Root", Role: RoleSuperAdmin}},
	)

	p, err := resolver.Resolve(context.Background(), id)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if p.Kind != KindAdmin {
		t.Fatalf("kind = %s", p.Kind)
	}
	if p.Role != RoleSuperAdmin {
		t.Fatalf("admin principal should carry the stored role, got %q", p.Role)
	}
}

func TestResolveNotFound(t *testing.T) {
	resolver := NewResolver(
		stubUserGetter{err: gorm.ErrRecordNotFound},
		stubAdminGetter{err: gorm.ErrRecordNotFound},
	)

	_, err := resolver.Resolve(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestResolvePropagatesInfraErrors(t *testing.T) {
	boom := errors.New("connection reset")
	resolver := NewResolver(
		stubUserGetter{err: boom},
		stubAdminGetter{admin: &models.Admin{ID: uuid.New()}},
	)

	_, err := resolver.Resolve(context.Background(), uuid.New())
	if !errors.Is(err, boom) {
		t.Fatalf("infra error should pass through, got %v", err)
	}
}

func TestIsPrivileged(t *testing.T) {
	tests := []struct {
		kind Kind
		role string
		want bool
	}{
		{KindAdmin, RoleAdmin, true},
		{KindAdmin, RoleSuperAdmin, true},
		{KindAdmin, "viewer", false},
		{KindUser, RoleAdmin, false},
		{KindUser, RoleUser, false},
	}
	for _, tt := range tests {
		p := Principal{Kind: tt.kind, Role: tt.role}
		if p.IsPrivileged() != tt.want {
			t.Fatalf("kind=%s role=%s privileged=%v want %v", tt.kind, tt.role, p.IsPrivileged(), tt.want)
		}
	}
}
