package roles

import "errors"

var (
	// ErrUnknownRole is returned when an assignment references a role code the registry does not hold.
	ErrUnknownRole = errors.New("roles: unknown role")

	// ErrInvalidRole is returned when a role definition is structurally invalid.
	ErrInvalidRole = errors.New("roles: invalid role definition")

	// ErrDuplicateRole is returned when two definitions share a role code.
	ErrDuplicateRole = errors.New("roles: duplicate role code")

	// ErrUndeclaredParameter is returned when a scope template references a
	// placeholder missing from the role's parameter set.
	ErrUndeclaredParameter = errors.New("roles: template references undeclared parameter")

	// ErrInvalidDefinition is returned when a declarative role source cannot be parsed.
	ErrInvalidDefinition = errors.New("roles: invalid role definition document")
)
