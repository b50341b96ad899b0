package middleware

import (
	"net/http"
	"strings"

	"github.com/listygo/listygo-backend/api/responses"
	"github.com/listygo/listygo-backend/internal/identity"
	pkgAuth "github.com/listygo/listygo-backend/pkg/auth"
	"github.com/listygo/listygo-backend/pkg/config"
	pkgerrors "github.com/listygo/listygo-backend/pkg/errors"
	"github.com/listygo/listygo-backend/pkg/logger"
)

// TokenCookieName is the cookie carrying the JWT when no Authorization
// header is present.
const TokenCookieName = "token"

const notAuthorizedMessage = "not authorized to access this route"

// Auth extracts a bearer token (header first, cookie fallback), validates
// it, resolves the principal against the database and seeds the request
// context. Every failure collapses to the same 401 message so the response
// never distinguishes a bad token from a deleted account.
func Auth(cfg config.JWTConfig, resolver *identity.Resolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, notAuthorizedMessage))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, notAuthorizedMessage))
				return
			}

			principal, err := resolver.Resolve(r.Context(), claims.PrincipalID)
			if err != nil {
				if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, notAuthorizedMessage))
					return
				}
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve principal"))
				return
			}

			ctx := WithPrincipal(r.Context(), principal)
			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"principal_id":   principal.ID.String(),
					"principal_role": principal.Role,
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken prefers the Authorization header; the token cookie is only
// consulted when no bearer header is sent.
func extractToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return strings.TrimSpace(raw[7:])
	}

	if cookie, err := r.Cookie(TokenCookieName); err == nil {
		value := strings.TrimSpace(cookie.Value)
		if value != "" && value != "none" {
			return value
		}
	}
	return ""
}
