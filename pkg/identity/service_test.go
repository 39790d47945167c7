package identity_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authzkit/authzkit/pkg/authz"
	"github.com/authzkit/authzkit/pkg/identity"
	"github.com/authzkit/authzkit/pkg/permissions"
	"github.com/authzkit/authzkit/pkg/roles"
	"github.com/authzkit/authzkit/pkg/scopes"
)

func testService(t *testing.T) (*identity.Service, *roles.Registry) {
	t.Helper()

	catalog, err := permissions.New([]permissions.Def{
		{
			Identifier: "api",
			Children: []permissions.Def{
				{
					Identifier: "iam",
					Children: []permissions.Def{
						{
							Identifier: "users",
							Children: []permissions.Def{
								{Identifier: "read", Read: true},
								{
									Identifier: "{userId}",
									Children: []permissions.Def{
										{Identifier: "write", Write: true},
									},
								},
							},
						},
					},
				},
				{
					Identifier: "auth",
					Children: []permissions.Def{
						{
							Identifier: "apikeys",
							Children: []permissions.Def{
								{Identifier: "revoke", Write: true},
							},
						},
					},
				},
			},
		},
	})
	require.NoError(t, err)

	registry, err := roles.NewRegistry(catalog, []roles.Role{
		{
			Code: "KEY_ADMIN",
			Templates: []roles.Template{
				{Type: scopes.Allow, Permission: "api:auth:apikeys:revoke"},
			},
		},
	})
	require.NoError(t, err)

	return identity.NewService(registry, identity.NewMemoryStore()), registry
}

func TestServiceGrant(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("stores canonical concrete grant", func(t *testing.T) {
		t.Parallel()
		svc, _ := testService(t)
		userID := uuid.New()
		adminID := uuid.New()

		grant, err := svc.Grant(ctx, identity.GrantRequest{
			UserID:      userID,
			Identifier:  " API:IAM:Users:42:Write ",
			IsAllow:     true,
			Description: "temporary elevated access",
			GrantedBy:   adminID,
		})
		require.NoError(t, err)
		assert.Equal(t, "api:iam:users:42:write", grant.Identifier)
		assert.Equal(t, scopes.Allow, grant.Type)
		assert.Equal(t, adminID, grant.GrantedBy)
		assert.False(t, grant.GrantedAt.IsZero())

		stored, err := svc.ListGrants(ctx, userID)
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, grant.Identifier, stored[0].Identifier)
	})

	t.Run("deny grant", func(t *testing.T) {
		t.Parallel()
		svc, _ := testService(t)

		grant, err := svc.Grant(ctx, identity.GrantRequest{
			UserID:     uuid.New(),
			Identifier: "api:auth:apikeys:revoke",
			IsAllow:    false,
			GrantedBy:  uuid.New(),
		})
		require.NoError(t, err)
		assert.Equal(t, scopes.Deny, grant.Type)
		assert.Equal(t, scopes.MustParse("deny:api:auth:apikeys:revoke"), grant.Directive())
	})

	t.Run("rejects placeholder identifier", func(t *testing.T) {
		t.Parallel()
		svc, _ := testService(t)

		_, err := svc.Grant(ctx, identity.GrantRequest{
			UserID:     uuid.New(),
			Identifier: "api:iam:users:{userId}:write",
			IsAllow:    true,
			GrantedBy:  uuid.New(),
		})
		assert.ErrorIs(t, err, identity.ErrNotConcrete)
	})

	t.Run("rejects non-final subtree wildcard", func(t *testing.T) {
		t.Parallel()
		svc, _ := testService(t)
		userID := uuid.New()

		_, err := svc.Grant(ctx, identity.GrantRequest{
			UserID:     userID,
			Identifier: "api:**:read",
			IsAllow:    true,
			GrantedBy:  uuid.New(),
		})
		assert.ErrorIs(t, err, identity.ErrInvalidGrant)
		assert.ErrorIs(t, err, scopes.ErrMisplacedWildcard)

		stored, err := svc.ListGrants(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, stored)
	})

	t.Run("accepts trailing subtree wildcard", func(t *testing.T) {
		t.Parallel()
		svc, _ := testService(t)

		grant, err := svc.Grant(ctx, identity.GrantRequest{
			UserID:     uuid.New(),
			Identifier: "api:iam:**",
			IsAllow:    true,
			GrantedBy:  uuid.New(),
		})
		require.NoError(t, err)
		assert.Equal(t, "api:iam:**", grant.Identifier)
	})

	t.Run("rejects malformed identifier", func(t *testing.T) {
		t.Parallel()
		svc, _ := testService(t)

		_, err := svc.Grant(ctx, identity.GrantRequest{
			UserID:     uuid.New(),
			Identifier: " :: ",
			IsAllow:    true,
			GrantedBy:  uuid.New(),
		})
		assert.ErrorIs(t, err, permissions.ErrMalformedIdentifier)
	})

	t.Run("rejects missing user id", func(t *testing.T) {
		t.Parallel()
		svc, _ := testService(t)

		_, err := svc.Grant(ctx, identity.GrantRequest{
			Identifier: "api:iam:users:read",
			IsAllow:    true,
		})
		assert.ErrorIs(t, err, identity.ErrInvalidGrant)
	})

	t.Run("rejects duplicate grant", func(t *testing.T) {
		t.Parallel()
		svc, _ := testService(t)
		userID := uuid.New()

		req := identity.GrantRequest{
			UserID:     userID,
			Identifier: "api:iam:users:read",
			IsAllow:    true,
			GrantedBy:  uuid.New(),
		}
		_, err := svc.Grant(ctx, req)
		require.NoError(t, err)

		_, err = svc.Grant(ctx, req)
		assert.ErrorIs(t, err, identity.ErrGrantExists)
	})
}

func TestServiceRevoke(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("removes existing grant", func(t *testing.T) {
		t.Parallel()
		svc, _ := testService(t)
		userID := uuid.New()

		_, err := svc.Grant(ctx, identity.GrantRequest{
			UserID:     userID,
			Identifier: "api:iam:users:read",
			IsAllow:    true,
			GrantedBy:  uuid.New(),
		})
		require.NoError(t, err)

		require.NoError(t, svc.Revoke(ctx, userID, "API:iam:users:READ"))

		stored, err := svc.ListGrants(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, stored)
	})

	t.Run("unknown grant", func(t *testing.T) {
		t.Parallel()
		svc, _ := testService(t)
		err := svc.Revoke(ctx, uuid.New(), "api:iam:users:read")
		assert.ErrorIs(t, err, identity.ErrGrantNotFound)
	})
}

func TestServiceAssignments(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("assigns known role", func(t *testing.T) {
		t.Parallel()
		svc, _ := testService(t)
		userID := uuid.New()

		assignment, err := svc.AssignRole(ctx, userID, " KEY_ADMIN ", nil)
		require.NoError(t, err)
		assert.Equal(t, "KEY_ADMIN", assignment.RoleCode)

		snapshot, err := svc.Snapshot(ctx, userID)
		require.NoError(t, err)
		require.Len(t, snapshot.Assignments, 1)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		t.Parallel()
		svc, _ := testService(t)
		_, err := svc.AssignRole(ctx, uuid.New(), "NOPE", nil)
		assert.ErrorIs(t, err, roles.ErrUnknownRole)
	})

	t.Run("reassignment replaces parameter values", func(t *testing.T) {
		t.Parallel()
		svc, _ := testService(t)
		userID := uuid.New()

		_, err := svc.AssignRole(ctx, userID, "KEY_ADMIN", map[string]string{"a": "1"})
		require.NoError(t, err)
		_, err = svc.AssignRole(ctx, userID, "KEY_ADMIN", map[string]string{"a": "2"})
		require.NoError(t, err)

		snapshot, err := svc.Snapshot(ctx, userID)
		require.NoError(t, err)
		require.Len(t, snapshot.Assignments, 1)
		assert.Equal(t, "2", snapshot.Assignments[0].Values["a"])
	})

	t.Run("unassign removes assignment", func(t *testing.T) {
		t.Parallel()
		svc, _ := testService(t)
		userID := uuid.New()

		_, err := svc.AssignRole(ctx, userID, "KEY_ADMIN", nil)
		require.NoError(t, err)
		require.NoError(t, svc.UnassignRole(ctx, userID, "KEY_ADMIN"))

		err = svc.UnassignRole(ctx, userID, "KEY_ADMIN")
		assert.ErrorIs(t, err, identity.ErrAssignmentNotFound)
	})
}

func TestSnapshotFeedsResolver(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, registry := testService(t)
	userID := uuid.New()

	_, err := svc.AssignRole(ctx, userID, "KEY_ADMIN", nil)
	require.NoError(t, err)

	_, err = svc.Grant(ctx, identity.GrantRequest{
		UserID:     userID,
		Identifier: "api:auth:apikeys:revoke",
		IsAllow:    false,
		GrantedBy:  uuid.New(),
	})
	require.NoError(t, err)

	snapshot, err := svc.Snapshot(ctx, userID)
	require.NoError(t, err)

	resolver := authz.NewResolver(registry)
	effective := resolver.EffectivePermissions(ctx, snapshot.Assignments, identity.Directives(snapshot.Grants))

	// Role allows revoke, but the direct deny at equal specificity wins.
	assert.False(t, authz.HasPermission(effective, "api:auth:apikeys:revoke"))
}
