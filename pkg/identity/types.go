package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/authzkit/authzkit/pkg/roles"
	"github.com/authzkit/authzkit/pkg/scopes"
)

// Grant is a user-specific allow/deny directive on an already-concrete
// permission identifier, independent of any role. Grants are immutable
// values; revocation removes the grant rather than mutating it.
type Grant struct {
	UserID      uuid.UUID
	Type        scopes.DirectiveType
	Identifier  string
	Description string
	GrantedBy   uuid.UUID
	GrantedAt   time.Time
}

// Directive returns the grant as a scope directive for evaluation. The
// identifier is concrete and canonical by construction, so this never fails.
func (g Grant) Directive() scopes.Directive {
	return scopes.Directive{Type: g.Type, Pattern: g.Identifier}
}

// Directives converts a grant list to its directive form, preserving order.
func Directives(grants []Grant) []scopes.Directive {
	if len(grants) == 0 {
		return nil
	}
	out := make([]scopes.Directive, len(grants))
	for i, g := range grants {
		out[i] = g.Directive()
	}
	return out
}

// Snapshot is the point-in-time authorization state of one user, read from
// the store and handed to the resolver. The engine never mutates it.
type Snapshot struct {
	Assignments []roles.Assignment
	Grants      []Grant
}
