package authz

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/authzkit/authzkit/pkg/permissions"
)

// ParamSource extracts one concrete parameter value from an HTTP request.
type ParamSource func(r *http.Request) string

// FromURLParam reads the value from a chi route parameter.
func FromURLParam(name string) ParamSource {
	return func(r *http.Request) string {
		return chi.URLParam(r, name)
	}
}

// FromQuery reads the value from the request query string.
func FromQuery(name string) ParamSource {
	return func(r *http.Request) string {
		return r.URL.Query().Get(name)
	}
}

// StaticValue supplies a fixed value regardless of the request.
func StaticValue(value string) ParamSource {
	return func(*http.Request) string {
		return value
	}
}

// ParamBinding maps a permission's required parameter name to a request
// value source, forming the declarative mapping an endpoint supplies to the
// enforcement layer.
type ParamBinding struct {
	Name   string
	Source ParamSource
}

// Param constructs a ParamBinding.
func Param(name string, source ParamSource) ParamBinding {
	return ParamBinding{Name: name, Source: source}
}

// Require enforces a catalog permission on the wrapped handler. Per request
// it collects the permission's parameter values from the declared bindings,
// builds the concrete target path, and evaluates it against the caller's
// effective directives from the request context (see SetDirectivesToContext
// and the token middleware).
//
// Every failure mode denies with 403: missing directives, unresolved
// parameters, and an evaluation that comes up deny are all indistinguishable
// to the caller.
func Require(e *Evaluator, node *permissions.Permission, params ...ParamBinding) func(next http.Handler) http.Handler {
	if e == nil {
		e = defaultEvaluator
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			values := make(map[string]string, len(params))
			for _, p := range params {
				values[p.Name] = p.Source(r)
			}

			target, err := node.BuildPath(values)
			if err != nil {
				deny(w)
				return
			}

			directives, ok := GetDirectivesFromContext(r.Context())
			if !ok || !e.HasPermission(directives, target) {
				deny(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequirePath enforces an already-concrete permission path on the wrapped
// handler.
func RequirePath(e *Evaluator, target string) func(next http.Handler) http.Handler {
	if e == nil {
		e = defaultEvaluator
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			directives, ok := GetDirectivesFromContext(r.Context())
			if !ok || !e.HasPermission(directives, target) {
				deny(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func deny(w http.ResponseWriter) {
	http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
}
