// Package identity persists the user-owned half of the authorization model:
// per-user role assignments and direct permission grants. The engine itself
// (pkg/authz) never touches storage; it receives read-only snapshots read
// through this package.
//
// Service implements the administrative actions. Grant identifiers are
// validated at the boundary: they must canonicalize cleanly and be fully
// concrete (no "{name}" placeholders), so a malformed identifier never
// reaches the evaluator. Revocation deletes the grant; grants are immutable
// values once created.
//
// Two Store implementations ship with the package: MemoryStore for tests
// and single-process setups, and PostgresStore over a pgx pool with its
// schema migrations embedded (run Migrate once at startup).
package identity
