package controllers

import (
	"net/http"
	"time"

	"github.com/listygo/listygo-backend/api/middleware"
	"github.com/listygo/listygo-backend/api/responses"
	"github.com/listygo/listygo-backend/api/validators"
	"github.com/listygo/listygo-backend/internal/auth"
	"github.com/listygo/listygo-backend/pkg/config"
	"github.com/listygo/listygo-backend/pkg/logger"
)

// RegisterUser creates a user account and signs the new principal in.
func RegisterUser(svc auth.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req auth.RegisterUserRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.RegisterUser(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		writeTokenCookie(w, cfg, result.Token)
		responses.WriteUserToken(w, http.StatusCreated, result.Token, result.User)
	}
}

// LoginUser exchanges credentials for a token.
func LoginUser(svc auth.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.LoginUser(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		writeTokenCookie(w, cfg, result.Token)
		responses.WriteUserToken(w, http.StatusOK, result.Token, result.User)
	}
}

// RegisterAdmin creates an admin account and signs the new principal in.
func RegisterAdmin(svc auth.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req auth.RegisterAdminRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.RegisterAdmin(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		writeTokenCookie(w, cfg, result.Token)
		responses.WriteAdminToken(w, http.StatusCreated, result.Token, result.Admin)
	}
}

// LoginAdmin exchanges admin credentials for a token.
func LoginAdmin(svc auth.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.LoginAdmin(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		writeTokenCookie(w, cfg, result.Token)
		responses.WriteAdminToken(w, http.StatusOK, result.Token, result.Admin)
	}
}

// Logout clears the token cookie. Tokens themselves stay valid until they
// expire; there is no server-side revocation.
func Logout(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clearTokenCookie(w, cfg)
		responses.WriteSuccess(w, map[string]any{})
	}
}

func writeTokenCookie(w http.ResponseWriter, cfg *config.Config, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(cfg.JWT.CookieTTL()),
		MaxAge:   int(cfg.JWT.CookieTTL().Seconds()),
		HttpOnly: true,
		Secure:   cfg.App.IsProd(),
		SameSite: http.SameSiteLaxMode,
	})
}

// clearTokenCookie overwrites the cookie with the "none" sentinel the auth
// middleware ignores, expiring almost immediately.
func clearTokenCookie(w http.ResponseWriter, cfg *config.Config) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    "none",
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Second),
		MaxAge:   10,
		HttpOnly: true,
		Secure:   cfg.App.IsProd(),
		SameSite: http.SameSiteLaxMode,
	})
}
