// Package token issues and verifies scoped access tokens: HS256-signed JWTs
// that carry a subject's effective scope directives in the "scp" claim.
//
// A token is minted after permission resolution, so downstream services can
// evaluate access checks from the token alone without consulting the
// identity store:
//
//	svc, err := token.New(token.Config{SigningKey: key, Issuer: "authzkit"})
//	if err != nil {
//	    // handle error
//	}
//	tok, err := svc.Issue(userID.String(), scopes.Strings(directives))
//
// The middleware verifies the bearer token, parses the scp claim back into
// scope directives, and injects them into the request context where the
// authz package evaluators pick them up:
//
//	r.Use(token.Middleware(svc))
//	r.With(authz.RequirePath(eval, "billing:invoices:read")).Get("/invoices", h)
//
// Verification rejects expired tokens, tampered signatures, and tokens
// signed with any algorithm other than HS256.
package token
