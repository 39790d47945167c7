package permissions

import "errors"

var (
	// ErrMalformedIdentifier is returned when a permission identifier is empty
	// or otherwise unparsable after canonicalization.
	ErrMalformedIdentifier = errors.New("permissions: malformed identifier")

	// ErrMissingParameter is returned by BuildPath when a required placeholder
	// value is absent or blank.
	ErrMissingParameter = errors.New("permissions: missing required parameter")

	// ErrDuplicatePath is returned when two catalog definitions produce the same path.
	ErrDuplicatePath = errors.New("permissions: duplicate permission path")

	// ErrDuplicateParameter is returned when a placeholder name repeats along
	// a root-to-leaf chain.
	ErrDuplicateParameter = errors.New("permissions: duplicate parameter in chain")

	// ErrPermissionNotFound is returned when a lookup path is not in the catalog.
	ErrPermissionNotFound = errors.New("permissions: permission not found")

	// ErrInvalidDefinition is returned when a declarative catalog source cannot be parsed.
	ErrInvalidDefinition = errors.New("permissions: invalid catalog definition")
)
