package authorization

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/authzkit/authzkit/pkg/authz"
	"github.com/authzkit/authzkit/pkg/cache"
	"github.com/authzkit/authzkit/pkg/identity"
	"github.com/authzkit/authzkit/pkg/logger"
	"github.com/authzkit/authzkit/pkg/permissions"
	"github.com/authzkit/authzkit/pkg/roles"
	"github.com/authzkit/authzkit/pkg/scopes"
)

// Service exposes the authorization engine over HTTP: the permission
// catalog, role definitions, direct grants, role assignments, and
// effective-permission resolution for a user.
type Service struct {
	catalog  *permissions.Catalog
	registry *roles.Registry
	identity *identity.Service
	resolver *authz.Resolver
	cache    cache.DirectiveCache
	log      *slog.Logger
}

// Option configures the service.
type Option func(*Service)

// WithCache enables read-through caching of resolved directive sets.
// Mutations on a user invalidate that user's entry.
func WithCache(c cache.DirectiveCache) Option {
	return func(s *Service) {
		if c != nil {
			s.cache = c
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// NewService wires the authorization module from its collaborators.
// The resolver is built over the same registry so role assignments and
// direct grants resolve against one catalog.
func NewService(catalog *permissions.Catalog, registry *roles.Registry, identitySvc *identity.Service, opts ...Option) *Service {
	s := &Service{
		catalog:  catalog,
		registry: registry,
		identity: identitySvc,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.resolver = authz.NewResolver(registry, authz.WithLogger(s.log))
	return s
}

// EffectiveDirectives resolves a user's effective directive set, serving
// from the cache when one is configured. Resolution itself never fails;
// the returned error covers identity store reads only.
func (s *Service) EffectiveDirectives(ctx context.Context, userID uuid.UUID) ([]scopes.Directive, error) {
	if s.cache != nil {
		if directives, ok, err := s.cache.Get(ctx, userID); err == nil && ok {
			return directives, nil
		} else if err != nil {
			s.log.WarnContext(ctx, "directive cache read failed",
				logger.Component("authorization"),
				logger.UserID(userID),
				logger.Error(err))
		}
	}

	snapshot, err := s.identity.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	directives := s.resolver.EffectivePermissions(ctx, snapshot.Assignments, identity.Directives(snapshot.Grants))

	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, directives); err != nil {
			s.log.WarnContext(ctx, "directive cache write failed",
				logger.Component("authorization"),
				logger.UserID(userID),
				logger.Error(err))
		}
	}
	return directives, nil
}

// invalidate drops a user's cached directive set after a mutation.
func (s *Service) invalidate(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.log.WarnContext(ctx, "directive cache invalidation failed",
			logger.Component("authorization"),
			logger.UserID(userID),
			logger.Error(err))
	}
}
