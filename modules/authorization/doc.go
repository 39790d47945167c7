// Package authorization exposes the permission engine as a mountable HTTP
// module: catalog and role introspection, grant and assignment management,
// and effective-permission resolution per user.
//
// The module composes the engine packages rather than re-implementing any
// of their rules. Grant and assignment writes go through the identity
// service, reads resolve through the role registry, and resolved directive
// sets are optionally cached with invalidation on every mutation.
//
//	svc := authorization.NewService(catalog, registry, identitySvc,
//	    authorization.WithCache(directiveCache),
//	    authorization.WithLogger(log),
//	)
//
//	r := chi.NewRouter()
//	r.Use(token.Middleware(tokenSvc))
//	r.Mount("/authz", svc.Handle())
//
// Routes:
//
//	GET    /permissions                  permission catalog tree
//	GET    /roles                        registered role definitions
//	POST   /grants                       create a direct grant
//	DELETE /grants                       revoke a direct grant
//	POST   /assignments                  assign a role to a user
//	DELETE /assignments                  remove a role assignment
//	GET    /users/{userID}/permissions   effective directive set
//	GET    /users/{userID}/grants        direct grants of a user
package authorization
