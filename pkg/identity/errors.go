package identity

import "errors"

var (
	// ErrGrantExists is returned when a user already holds a grant for the identifier.
	ErrGrantExists = errors.New("identity: grant already exists")

	// ErrGrantNotFound is returned when a grant to revoke does not exist.
	ErrGrantNotFound = errors.New("identity: grant not found")

	// ErrAssignmentNotFound is returned when a role assignment to remove does not exist.
	ErrAssignmentNotFound = errors.New("identity: role assignment not found")

	// ErrInvalidGrant is returned when a grant request is structurally invalid.
	ErrInvalidGrant = errors.New("identity: invalid grant request")

	// ErrNotConcrete is returned when a grant identifier still contains placeholders.
	ErrNotConcrete = errors.New("identity: identifier is not concrete")

	// ErrStoreFailure wraps unexpected storage errors.
	ErrStoreFailure = errors.New("identity: store failure")

	// ErrFailedToParseDBConfig is returned when the postgres connection string is invalid.
	ErrFailedToParseDBConfig = errors.New("identity: failed to parse database config")

	// ErrDBNotReady is returned when the database cannot be reached within the retry budget.
	ErrDBNotReady = errors.New("identity: database not ready")

	// ErrFailedToApplyMigrations is returned when schema migrations cannot be applied.
	ErrFailedToApplyMigrations = errors.New("identity: failed to apply migrations")
)
