package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/listygo/listygo-backend/api/controllers"
	"github.com/listygo/listygo-backend/api/middleware"
	"github.com/listygo/listygo-backend/internal/admins"
	"github.com/listygo/listygo-backend/internal/auth"
	"github.com/listygo/listygo-backend/internal/categories"
	"github.com/listygo/listygo-backend/internal/hotels"
	"github.com/listygo/listygo-backend/internal/identity"
	"github.com/listygo/listygo-backend/internal/listings"
	"github.com/listygo/listygo-backend/internal/users"
	"github.com/listygo/listygo-backend/pkg/config"
	"github.com/listygo/listygo-backend/pkg/logger"
	"github.com/listygo/listygo-backend/pkg/redis"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       controllers.Pinger
	Redis    *redis.Client
	Resolver *identity.Resolver

	Auth       auth.Service
	Users      users.Service
	Admins     admins.Service
	Listings   listings.Service
	Categories categories.Service
	Hotels     hotels.Service
}

// NewRouter assembles the HTTP surface. Browse endpoints are public; every
// mutation goes through Auth and, where the route is role-gated, RequireRole.
func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	authed := middleware.Auth(cfg.JWT, d.Resolver, logg)
	adminOnly := middleware.RequireRole(logg, identity.RoleAdmin, identity.RoleSuperAdmin)
	// Category mutations accept the admin role only; super-admins manage
	// accounts, not the catalogue taxonomy.
	categoryAdmin := middleware.RequireRole(logg, identity.RoleAdmin)
	anyRole := middleware.RequireRole(logg, identity.RoleUser, identity.RoleAdmin, identity.RoleSuperAdmin)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive())
		r.Get("/ready", controllers.HealthReady(d.DB, d.Redis, logg))
	})

	r.Route("/api/users", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, d.Redis, logg)).
			Post("/register", controllers.RegisterUser(d.Auth, cfg, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, d.Redis, logg)).
			Post("/login", controllers.LoginUser(d.Auth, cfg, logg))
		r.Post("/contact", controllers.Contact(d.Users, logg))

		r.Group(func(r chi.Router) {
			r.Use(authed)
			r.Get("/logout", controllers.Logout(cfg))
			r.Get("/me", controllers.UserMe(d.Users, logg))
			r.Put("/updatedetails", controllers.UserUpdateDetails(d.Users, logg))
			r.Put("/updatepassword", controllers.UserUpdatePassword(d.Users, logg))
			r.Delete("/deleteaccount", controllers.UserDeleteAccount(d.Users, cfg, logg))

			r.Route("/payment-methods", func(r chi.Router) {
				r.Get("/", controllers.ListPaymentMethods(d.Users, logg))
				r.Post("/", controllers.AddPaymentMethod(d.Users, logg))
				r.Put("/{id}", controllers.UpdatePaymentMethod(d.Users, logg))
				r.Delete("/{id}", controllers.DeletePaymentMethod(d.Users, logg))
				r.Put("/{id}/default", controllers.SetDefaultPaymentMethod(d.Users, logg))
			})
		})
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, d.Redis, logg)).
			Post("/register", controllers.RegisterAdmin(d.Auth, cfg, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, d.Redis, logg)).
			Post("/login", controllers.LoginAdmin(d.Auth, cfg, logg))

		r.Group(func(r chi.Router) {
			r.Use(authed, adminOnly)
			r.Get("/logout", controllers.Logout(cfg))
			r.Get("/me", controllers.AdminMe(d.Admins, logg))
			r.Put("/updatedetails", controllers.AdminUpdateDetails(d.Admins, logg))
			r.Put("/updatepassword", controllers.AdminUpdatePassword(d.Admins, cfg, logg))
			r.Get("/dashboard", controllers.AdminDashboard(d.Admins, logg))
		})
	})

	r.Route("/api/listings", func(r chi.Router) {
		r.Get("/", controllers.ListListings(d.Listings, logg))
		r.Get("/featured", controllers.FeaturedListings(d.Listings, logg))
		r.Get("/category/{categoryId}", controllers.ListingsByCategory(d.Listings, logg))
		r.Get("/{id}", controllers.GetListing(d.Listings, logg))

		r.Group(func(r chi.Router) {
			r.Use(authed, anyRole)
			r.Post("/", controllers.CreateListing(d.Listings, logg))
			r.Put("/{id}", controllers.UpdateListing(d.Listings, logg))
			r.Delete("/{id}", controllers.DeleteListing(d.Listings, logg))
		})
	})

	r.Route("/api/categories", func(r chi.Router) {
		r.Get("/", controllers.ListCategories(d.Categories, logg))
		r.Get("/{id}", controllers.GetCategory(d.Categories, logg))

		r.Group(func(r chi.Router) {
			r.Use(authed, categoryAdmin)
			r.Post("/", controllers.CreateCategory(d.Categories, logg))
			r.Put("/{id}", controllers.UpdateCategory(d.Categories, logg))
			r.Delete("/{id}", controllers.DeleteCategory(d.Categories, logg))
		})
	})

	r.Route("/api/hotels", func(r chi.Router) {
		r.Get("/", controllers.ListHotels(d.Hotels, logg))
		r.Get("/{id}", controllers.GetHotel(d.Hotels, logg))

		r.Group(func(r chi.Router) {
			r.Use(authed, adminOnly)
			r.Post("/", controllers.CreateHotel(d.Hotels, logg))
			r.Put("/{id}", controllers.UpdateHotel(d.Hotels, logg))
			r.Delete("/{id}", controllers.DeleteHotel(d.Hotels, logg))
		})
	})

	return r
}
