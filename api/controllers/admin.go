package controllers

import (
	"net/http"

	"github.com/listygo/listygo-backend/api/middleware"
	"github.com/listygo/listygo-backend/api/responses"
	"github.com/listygo/listygo-backend/api/validators"
	"github.com/listygo/listygo-backend/internal/admins"
	"github.com/listygo/listygo-backend/pkg/config"
	pkgerrors "github.com/listygo/listygo-backend/pkg/errors"
	"github.com/listygo/listygo-backend/pkg/logger"
)

// AdminMe returns the authenticated admin's profile.
func AdminMe(svc admins.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		principal := middleware.PrincipalFromContext(ctx)
		if principal == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "not authorized to access this route"))
			return
		}

		admin, err := svc.Me(ctx, principal.ID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, admin)
	}
}

// AdminUpdateDetails mutates profile fields on the authenticated admin.
func AdminUpdateDetails(svc admins.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		principal := middleware.PrincipalFromContext(ctx)
		if principal == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "not authorized to access this route"))
			return
		}

		var req admins.UpdateDetailsRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		admin, err := svc.UpdateDetails(ctx, principal.ID, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, admin)
	}
}

// AdminUpdatePassword rotates the admin's password and hands back a fresh
// token so the client can swap its credential without re-logging in.
func AdminUpdatePassword(svc admins.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		principal := middleware.PrincipalFromContext(ctx)
		if principal == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "not authorized to access this route"))
			return
		}

		var req admins.UpdatePasswordRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		token, err := svc.UpdatePassword(ctx, principal.ID, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		writeTokenCookie(w, cfg, token)
		responses.WriteAdminToken(w, http.StatusOK, token, nil)
	}
}

// AdminDashboard returns platform totals and recent activity.
func AdminDashboard(svc admins.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		dash, err := svc.Dashboard(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dash)
	}
}
