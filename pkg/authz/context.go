package authz

import (
	"context"

	"github.com/authzkit/authzkit/pkg/scopes"
)

// directivesCtxKey is the context key for the caller's effective directives.
type directivesCtxKey struct{}

// SetDirectivesToContext stores the caller's effective scope directives in
// the context. The slice is treated as a read-only snapshot.
func SetDirectivesToContext(ctx context.Context, directives []scopes.Directive) context.Context {
	return context.WithValue(ctx, directivesCtxKey{}, directives)
}

// GetDirectivesFromContext retrieves the caller's effective scope directives
// from the context.
func GetDirectivesFromContext(ctx context.Context) ([]scopes.Directive, bool) {
	directives, ok := ctx.Value(directivesCtxKey{}).([]scopes.Directive)
	return directives, ok
}
