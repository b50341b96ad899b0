package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenClaims is the typed JWT issued to clients. Only the principal
// id travels in the token; role and profile are resolved from the database
// on every request, so a stale token can never carry a stale role.
type AccessTokenClaims struct {
	PrincipalID uuid.UUID `json:"principal_id"`
	jwt.RegisteredClaims
}
