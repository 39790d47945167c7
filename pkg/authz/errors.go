package authz

import "errors"

var (
	// ErrPermissionDenied is returned when the caller's effective directives do not grant the target path.
	ErrPermissionDenied = errors.New("authz: permission denied")

	// ErrNoDirectivesInContext is returned when no effective directive set is found in the context.
	ErrNoDirectivesInContext = errors.New("authz: no directives in context")
)
