package cache

import (
	"context"

	"github.com/google/uuid"

	"github.com/authzkit/authzkit/pkg/scopes"
)

// DirectiveCache caches resolved effective-directive sets keyed by user id.
// Caching is the caller's responsibility, not the engine's: the cache sits
// between the identity store and the resolver, and must be invalidated when
// a user's grants or assignments change.
type DirectiveCache interface {
	// Get returns the cached directive set and whether the key was present.
	Get(ctx context.Context, userID uuid.UUID) ([]scopes.Directive, bool, error)

	// Set stores the directive set for the configured TTL.
	Set(ctx context.Context, userID uuid.UUID, directives []scopes.Directive) error

	// Invalidate drops the cached set for a user.
	Invalidate(ctx context.Context, userID uuid.UUID) error
}
