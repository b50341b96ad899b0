package middleware

import (
	"net/http"

	"github.com/listygo/listygo-backend/api/responses"
	"github.com/listygo/listygo-backend/internal/identity"
	pkgerrors "github.com/listygo/listygo-backend/pkg/errors"
	"github.com/listygo/listygo-backend/pkg/logger"
)

// RequireRole gates a route on the principal's effective role. Admin
// principals match on their stored role; user principals match only the
// "user" sentinel regardless of any stored role field. Missing principal
// is a 401, role mismatch a 403.
func RequireRole(logg *logger.Logger, roles ...string) func(http.Handler) http.Handler {
	allowed := map[string]struct{}{}
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := PrincipalFromContext(r.Context())
			if principal == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, notAuthorizedMessage))
				return
			}

			effective := principal.Role
			if principal.Kind == identity.KindUser {
				effective = identity.RoleUser
			}

			if _, ok := allowed[effective]; !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "role "+effective+" is not authorized to access this route"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
