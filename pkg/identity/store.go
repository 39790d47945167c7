package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/authzkit/authzkit/pkg/roles"
)

// Store persists the user-owned authorization state: role assignments and
// direct permission grants. Implementations must return copies; callers
// treat everything read from a Store as an immutable snapshot.
type Store interface {
	// InsertGrant stores a new grant. Returns ErrGrantExists when the user
	// already holds a grant for the same identifier.
	InsertGrant(ctx context.Context, grant Grant) error

	// DeleteGrant removes a user's grant on the given concrete identifier.
	// Returns ErrGrantNotFound when no such grant exists.
	DeleteGrant(ctx context.Context, userID uuid.UUID, identifier string) error

	// ListGrants returns all grants of a user in grant order.
	ListGrants(ctx context.Context, userID uuid.UUID) ([]Grant, error)

	// UpsertAssignment stores or replaces a user's assignment for the
	// assignment's role code.
	UpsertAssignment(ctx context.Context, userID uuid.UUID, assignment roles.Assignment) error

	// DeleteAssignment removes a user's assignment of the given role.
	// Returns ErrAssignmentNotFound when no such assignment exists.
	DeleteAssignment(ctx context.Context, userID uuid.UUID, roleCode string) error

	// ListAssignments returns all role assignments of a user.
	ListAssignments(ctx context.Context, userID uuid.UUID) ([]roles.Assignment, error)
}
