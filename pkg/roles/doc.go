// Package roles implements parameterized role templates over the permission
// catalog and their per-user instantiation.
//
// A Role is a reusable bundle of scope templates. Each template names a
// catalog permission (possibly containing "{name}" placeholder segments) and
// binds the permission's required parameters to either literals or
// role-level placeholders. An Assignment supplies the concrete values for
// those placeholders for one user:
//
//	registry, _ := roles.NewRegistry(catalog, []roles.Role{{
//	    Code: "USER_MANAGER",
//	    Name: "User manager",
//	    Parameters: []string{"targetUser"},
//	    Templates: []roles.Template{{
//	        Type:       scopes.Allow,
//	        Permission: "api:iam:users:{userId}:write",
//	        Params:     map[string]string{"userId": "{targetUser}"},
//	    }},
//	}})
//
//	directives, warnings, _ := registry.Resolve(
//	    roles.NewAssignment("USER_MANAGER", map[string]string{"targetUser": "42"}),
//	)
//	// directives: [allow:api:iam:users:42:write]
//
// Resolution fails closed: a template whose placeholder has no value in the
// assignment is skipped and surfaced as a Warning rather than treated as a
// wildcard or an error, since roles may be assigned before all parameters
// are known. The registry is validated against the catalog at build time and
// immutable afterwards.
package roles
