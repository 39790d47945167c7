package authz

import (
	"context"
	"errors"

	"github.com/authzkit/authzkit/pkg/scopes"
)

// Match is one directive that matched a target path, with the specificity
// score of the match (count of literal pattern segments).
type Match struct {
	Directive   scopes.Directive
	Specificity int
}

// Policy decides the outcome of an evaluation given the non-empty set of
// directives that matched the target. It exists so deployments can override
// the tie-breaking rule; most callers use DefaultPolicy.
type Policy interface {
	Decide(matches []Match) bool
}

// PolicyFunc adapts a function to the Policy interface.
type PolicyFunc func(matches []Match) bool

func (f PolicyFunc) Decide(matches []Match) bool { return f(matches) }

// DefaultPolicy implements most-specific-match-wins with deny overriding
// allow at the winning specificity: among all matches, only those with the
// highest specificity score decide the outcome, and a single Deny among them
// vetoes any Allow. Lower-specificity directives never outvote a more
// specific one, regardless of how many there are.
var DefaultPolicy Policy = PolicyFunc(func(matches []Match) bool {
	best := -1
	for _, m := range matches {
		if m.Specificity > best {
			best = m.Specificity
		}
	}

	allowed := false
	for _, m := range matches {
		if m.Specificity != best {
			continue
		}
		if m.Directive.Type == scopes.Deny {
			return false
		}
		allowed = true
	}
	return allowed
})

// Evaluator answers authorization questions over a read-only directive
// snapshot. It is pure and stateless apart from its decision policy, so a
// single instance is safe for concurrent use.
type Evaluator struct {
	policy Policy
}

// NewEvaluator creates an evaluator with the given decision policy. A nil
// policy selects DefaultPolicy.
func NewEvaluator(policy Policy) *Evaluator {
	if policy == nil {
		policy = DefaultPolicy
	}
	return &Evaluator{policy: policy}
}

// HasPermission reports whether the directive set grants the target
// permission path. The target is canonicalized before matching. When no
// directive matches, the answer is deny; an empty or nil directive list
// therefore denies every path.
func (e *Evaluator) HasPermission(directives []scopes.Directive, target string) bool {
	var matches []Match
	for _, d := range directives {
		if score, ok := d.Specificity(target); ok {
			matches = append(matches, Match{Directive: d, Specificity: score})
		}
	}
	if len(matches) == 0 {
		return false
	}
	return e.policy.Decide(matches)
}

// HasAnyPermission reports whether at least one of the target paths is
// granted. An empty target list is denied.
func (e *Evaluator) HasAnyPermission(directives []scopes.Directive, targets ...string) bool {
	for _, target := range targets {
		if e.HasPermission(directives, target) {
			return true
		}
	}
	return false
}

// HasAllPermissions reports whether every target path is granted. An empty
// target list is allowed.
func (e *Evaluator) HasAllPermissions(directives []scopes.Directive, targets ...string) bool {
	for _, target := range targets {
		if !e.HasPermission(directives, target) {
			return false
		}
	}
	return true
}

// CanFromContext checks the target path against the caller's effective
// directives stored in the context. It returns ErrNoDirectivesInContext
// joined with ErrPermissionDenied when no directive set is present, and
// ErrPermissionDenied when the evaluation comes up deny.
func (e *Evaluator) CanFromContext(ctx context.Context, target string) error {
	directives, ok := GetDirectivesFromContext(ctx)
	if !ok {
		return errors.Join(ErrNoDirectivesInContext, ErrPermissionDenied)
	}
	if !e.HasPermission(directives, target) {
		return ErrPermissionDenied
	}
	return nil
}

// defaultEvaluator backs the package-level evaluation helpers.
var defaultEvaluator = NewEvaluator(nil)

// HasPermission evaluates with the default policy. See Evaluator.HasPermission.
func HasPermission(directives []scopes.Directive, target string) bool {
	return defaultEvaluator.HasPermission(directives, target)
}

// HasAnyPermission evaluates with the default policy. See Evaluator.HasAnyPermission.
func HasAnyPermission(directives []scopes.Directive, targets ...string) bool {
	return defaultEvaluator.HasAnyPermission(directives, targets...)
}

// HasAllPermissions evaluates with the default policy. See Evaluator.HasAllPermissions.
func HasAllPermissions(directives []scopes.Directive, targets ...string) bool {
	return defaultEvaluator.HasAllPermissions(directives, targets...)
}
