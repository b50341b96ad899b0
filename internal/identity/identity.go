package identity

import (
	"time"

	"github.com/google/uuid"
)

// Kind tags which table a principal came from.
type Kind string

const (
	KindUser  Kind = "user"
	KindAdmin Kind = "admin"
)

// Role values. Users always carry RoleUser; admin roles come from the row.
const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super-admin"
)

// Principal is the resolved identity behind a request. Role checks match on
// Kind and Role explicitly, never on which fields happen to be set.
type Principal struct {
	Kind      Kind
	ID        uuid.UUID
	Name      string
	Email     string
	Role      string
	CreatedAt time.Time
}

// IsPrivileged reports whether the principal may act on resources it does
// not own.
func (p Principal) IsPrivileged() bool {
	return p.Kind == KindAdmin && (p.Role == RoleAdmin || p.Role == RoleSuperAdmin)
}
