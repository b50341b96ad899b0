package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/listygo/listygo-backend/internal/identity"
	"github.com/listygo/listygo-backend/internal/listings"
	pkgAuth "github.com/listygo/listygo-backend/pkg/auth"
	"github.com/listygo/listygo-backend/pkg/config"
	"github.com/listygo/listygo-backend/pkg/db/models"
	"github.com/listygo/listygo-backend/pkg/logger"
	"github.com/listygo/listygo-backend/pkg/pagination"
	"gorm.io/gorm"
)

type stubListingsService struct {
	listings.Service
}

func (s stubListingsService) List(ctx context.Context, q *listings.ListQuery) (*listings.ListResult, error) {
	return &listings.ListResult{Count: 0, PageInfo: pagination.PageInfo{}, Data: []listings.ListingDTO{}}, nil
}

func (s stubListingsService) Featured(ctx context.Context) ([]listings.ListingDTO, error) {
	return []listings.ListingDTO{}, nil
}

type stubPinger struct{}

func (stubPinger) Ping(ctx context.Context) error { return nil }

type stubUserGetter struct {
	user *models.User
}

func (s stubUserGetter) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if s.user == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

type stubAdminGetter struct {
	admin *models.Admin
}

func (s stubAdminGetter) GetByID(ctx context.Context, id uuid.UUID) (*models.Admin, error) {
	if s.admin == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.admin, nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", Issuer: "listygo-test", ExpirationMinutes: 30},
	}
}

func newTestRouter(user *models.User) http.Handler {
	return newTestRouterWithAdmin(user, nil)
}

func newTestRouterWithAdmin(user *models.User, admin *models.Admin) http.Handler {
	return NewRouter(Deps{
		Config:   testConfig(),
		Logger:   logger.New(logger.Options{ServiceName: "router-test", Output: io.Discard}),
		DB:       stubPinger{},
		Resolver: identity.NewResolver(stubUserGetter{user: user}, stubAdminGetter{admin: admin}),
		Listings: stubListingsService{},
	})
}

func TestRouterHealthLive(t *testing.T) {
	router := newTestRouter(nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRouterPublicBrowseRoutes(t *testing.T) {
	router := newTestRouter(nil)
	for _, path := range []string{"/api/listings/", "/api/listings/featured"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s: status = %d, body %s", path, rec.Code, rec.Body.String())
		}
	}
}

func TestRouterMutationsRequireAuth(t *testing.T) {
	router := newTestRouter(nil)
	requests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/listings/"},
		{http.MethodPost, "/api/categories/"},
		{http.MethodPost, "/api/hotels/"},
		{http.MethodGet, "/api/users/me"},
		{http.MethodGet, "/api/admin/dashboard"},
	}
	for _, req := range requests {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(req.method, req.path, nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s without a token: status = %d", req.method, req.path, rec.Code)
		}
	}
}

// A user token opens the shared listing routes but never the admin surface.
func TestRouterRoleGates(t *testing.T) {
	user := &models.User{ID: uuid.New(), Name: "Ada", Email: "ada@example.com"}
	router := newTestRouter(user)

	token, err := pkgAuth.MintAccessToken(testConfig().JWT, time.Now(), user.ID)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("user on admin route: status = %d, body %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/api/categories/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("user on category mutation: status = %d", rec.Code)
	}
}

// Category mutations are an admin-only surface: the super-admin role is
// rejected there even though it clears every other admin gate.
func TestRouterCategoryMutationsRejectSuperAdmin(t *testing.T) {
	superAdmin := &models.Admin{ID: uuid.New(), Name: "Root", Email: "root@example.com", Role: identity.RoleSuperAdmin}
	router := newTestRouterWithAdmin(nil, superAdmin)

	token, err := pkgAuth.MintAccessToken(testConfig().JWT, time.Now(), superAdmin.ID)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/categories/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("super-admin on category mutation: status = %d, body %s", rec.Code, rec.Body.String())
	}

	// The same token clears the hotel gate, which allows both admin roles.
	req = httptest.NewRequest(http.MethodPost, "/api/hotels/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code == http.StatusForbidden || rec.Code == http.StatusUnauthorized {
		t.Fatalf("super-admin on hotel mutation should pass the gate, status = %d", rec.Code)
	}

	// A plain admin still passes the category gate.
	admin := &models.Admin{ID: uuid.New(), Name: "Ops", Email: "ops@example.com", Role: identity.RoleAdmin}
	router = newTestRouterWithAdmin(nil, admin)
	token, err = pkgAuth.MintAccessToken(testConfig().JWT, time.Now(), admin.ID)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	req = httptest.NewRequest(http.MethodPost, "/api/categories/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code == http.StatusForbidden || rec.Code == http.StatusUnauthorized {
		t.Fatalf("admin on category mutation should pass the gate, status = %d", rec.Code)
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	router := newTestRouter(nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nothing", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}
