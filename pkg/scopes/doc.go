// Package scopes implements the scope-directive model used across the
// authorization engine: colon-segmented permission paths paired with an
// allow/deny disposition, plus the wildcard matcher that decides whether a
// directive pattern covers a target path.
//
// A directive serializes to a single string token:
//
//	allow:api:iam:users:*
//	deny:api:auth:apikeys:revoke
//
// The first colon-delimited token is the case-insensitive disposition
// keyword; the remainder is the pattern. Pattern segments may be literals,
// "*" (matches exactly one segment) or a trailing "**" (matches the rest of
// the path, any depth including zero). Patterns are stored in canonical
// form: trimmed, lowercased, empty segments collapsed.
//
// Matching walks the pattern and target segment by segment. A successful
// match carries a specificity score (the count of literal segments matched)
// which the evaluator uses to rank competing directives (see pkg/authz).
//
//	scopes.Matches("api:iam:*:read", "api:iam:users:read")  // true
//	scopes.Matches("api:**", "api:iam:users:5f3:read")      // true
//	scopes.Matches("api:iam:users:5f3", "api:iam:users")    // false, length mismatch
//
// Parsing is strict: an unknown disposition keyword, an empty pattern, or a
// "**" anywhere but the final segment is rejected with a sentinel error
// matchable via errors.Is. Directives are immutable values; the package is
// pure and safe for concurrent use.
package scopes
