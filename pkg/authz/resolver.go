package authz

import (
	"context"
	"log/slog"

	"github.com/authzkit/authzkit/pkg/roles"
	"github.com/authzkit/authzkit/pkg/scopes"
)

// Resolver combines a user's role assignments and direct grants into one
// ordered list of effective scope directives. It operates on point-in-time
// snapshots supplied by the caller and never performs I/O, so it is safe for
// concurrent use.
type Resolver struct {
	registry *roles.Registry
	log      *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger routes resolution diagnostics through the given logger instead
// of slog.Default().
func WithLogger(log *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

// NewResolver creates a resolver over the given role registry.
func NewResolver(registry *roles.Registry, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		registry: registry,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// EffectivePermissions materializes every role assignment via the registry
// and appends the already-concrete direct grant directives. Role-derived
// directives come first, then direct grants; order within each group is
// preserved and duplicates are kept (the evaluator is a priority search, not
// a sequential override machine, so they are harmless).
//
// Resolution never fails: an assignment referencing an unknown role and a
// template missing a placeholder value both fail closed (grant nothing) and
// are logged at warning level.
func (r *Resolver) EffectivePermissions(ctx context.Context, assignments []roles.Assignment, direct []scopes.Directive) []scopes.Directive {
	effective := make([]scopes.Directive, 0, len(assignments)+len(direct))

	for _, assignment := range assignments {
		directives, warnings, err := r.registry.Resolve(assignment)
		if err != nil {
			r.log.WarnContext(ctx, "skipping unresolvable role assignment",
				slog.String("role", assignment.RoleCode),
				slog.Any("error", err))
			continue
		}
		for _, w := range warnings {
			r.log.WarnContext(ctx, "scope template skipped during resolution",
				slog.String("role", w.Role),
				slog.String("permission", w.Permission),
				slog.String("parameter", w.Parameter))
		}
		effective = append(effective, directives...)
	}

	effective = append(effective, direct...)
	return effective
}
