package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/authzkit/authzkit/pkg/permissions"
	"github.com/authzkit/authzkit/pkg/roles"
	"github.com/authzkit/authzkit/pkg/scopes"
)

// Service implements the authorization-management actions: granting and
// revoking direct permissions and assigning roles. It validates admin input
// at the boundary so only canonical, concrete identifiers ever reach the
// store and the evaluator.
type Service struct {
	registry *roles.Registry
	store    Store
	now      func() time.Time
}

// NewService creates a management service over the given role registry and
// store.
func NewService(registry *roles.Registry, store Store) *Service {
	return &Service{
		registry: registry,
		store:    store,
		now:      time.Now,
	}
}

// GrantRequest is the administrative payload for granting a direct
// permission. Identifier must be concrete: placeholders are rejected,
// wildcard segments are permitted.
type GrantRequest struct {
	UserID      uuid.UUID `json:"user_id"`
	Identifier  string    `json:"permission_identifier"`
	IsAllow     bool      `json:"is_allow"`
	Description string    `json:"description,omitempty"`
	GrantedBy   uuid.UUID `json:"-"`
}

// Grant validates the request and stores a new direct grant. Unlike role
// resolution, a malformed or non-concrete identifier fails hard: grants must
// always be concrete.
func (s *Service) Grant(ctx context.Context, req GrantRequest) (Grant, error) {
	if req.UserID == uuid.Nil {
		return Grant{}, errors.Join(ErrInvalidGrant, errors.New("missing user id"))
	}

	identifier, err := concreteIdentifier(req.Identifier)
	if err != nil {
		return Grant{}, err
	}

	directiveType := scopes.Deny
	if req.IsAllow {
		directiveType = scopes.Allow
	}

	grant := Grant{
		UserID:      req.UserID,
		Type:        directiveType,
		Identifier:  identifier,
		Description: strings.TrimSpace(req.Description),
		GrantedBy:   req.GrantedBy,
		GrantedAt:   s.now().UTC(),
	}

	if err := s.store.InsertGrant(ctx, grant); err != nil {
		return Grant{}, err
	}
	return grant, nil
}

// Revoke removes a user's direct grant on the given identifier.
func (s *Service) Revoke(ctx context.Context, userID uuid.UUID, identifier string) error {
	canonical, err := concreteIdentifier(identifier)
	if err != nil {
		return err
	}
	return s.store.DeleteGrant(ctx, userID, canonical)
}

// ListGrants returns a user's direct grants.
func (s *Service) ListGrants(ctx context.Context, userID uuid.UUID) ([]Grant, error) {
	return s.store.ListGrants(ctx, userID)
}

// AssignRole stores or replaces a user's role assignment after verifying the
// role exists. Parameter values are normalized; an assignment may omit
// values the role requires (the affected templates fail closed at
// resolution time).
func (s *Service) AssignRole(ctx context.Context, userID uuid.UUID, roleCode string, values map[string]string) (roles.Assignment, error) {
	assignment := roles.NewAssignment(roleCode, values)
	if _, err := s.registry.Get(assignment.RoleCode); err != nil {
		return roles.Assignment{}, err
	}

	if err := s.store.UpsertAssignment(ctx, userID, assignment); err != nil {
		return roles.Assignment{}, err
	}
	return assignment, nil
}

// UnassignRole removes a user's role assignment.
func (s *Service) UnassignRole(ctx context.Context, userID uuid.UUID, roleCode string) error {
	return s.store.DeleteAssignment(ctx, userID, strings.TrimSpace(roleCode))
}

// Snapshot reads a user's point-in-time authorization state for resolution.
func (s *Service) Snapshot(ctx context.Context, userID uuid.UUID) (Snapshot, error) {
	assignments, err := s.store.ListAssignments(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}

	grants, err := s.store.ListGrants(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{Assignments: assignments, Grants: grants}, nil
}

// concreteIdentifier canonicalizes a grant identifier and rejects
// unresolved placeholders. The identifier must also be a valid directive
// pattern ("**" only as the final segment); a grant that no target could
// ever match must not reach the store.
func concreteIdentifier(raw string) (string, error) {
	canonical, err := permissions.ParseIdentifier(raw)
	if err != nil {
		return "", err
	}
	if strings.Contains(canonical, "{") {
		return "", errors.Join(ErrNotConcrete, fmt.Errorf("identifier %q", canonical))
	}
	if _, err := scopes.CanonicalPattern(canonical); err != nil {
		return "", errors.Join(ErrInvalidGrant, err)
	}
	return canonical, nil
}
