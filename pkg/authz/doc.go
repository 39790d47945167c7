// Package authz implements the runtime half of the authorization engine:
// resolving a user's role assignments and direct grants into an effective
// directive set, and deciding whether that set grants an arbitrary
// permission path.
//
// Evaluation is deny-by-default. Every directive whose pattern matches the
// target is collected with its specificity score (literal segments matched),
// and the decision policy picks the outcome. DefaultPolicy implements
// most-specific-match-wins with deny overriding allow at the winning
// specificity:
//
//	directives := []scopes.Directive{
//	    scopes.MustParse("allow:api:iam:*"),
//	    scopes.MustParse("deny:api:iam:users"),
//	}
//	authz.HasPermission(directives, "api:iam:users") // false: deny is more specific
//
// The tie-breaking rule is injectable via the Policy interface on Evaluator
// for deployments that need different semantics.
//
// The Resolver materializes assignments through the role registry and
// appends direct grants; it never fails, logging unresolvable inputs at
// warning level and granting nothing for them. All evaluation operations
// are pure functions over read-only snapshots and safe to call from any
// number of goroutines.
//
// For HTTP enforcement, Require builds the concrete target path from
// declarative parameter bindings (route values, query, statics) and denies
// with 403 unless the directives stored in the request context (see
// SetDirectivesToContext) grant it.
package authz
