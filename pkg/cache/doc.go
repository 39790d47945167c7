// Package cache provides caller-side caching of resolved effective-directive
// sets, keyed by user id. The engine itself never caches (it operates on
// point-in-time snapshots), so this layer sits with the caller: read through
// it before hitting the identity store, and invalidate on every grant,
// revoke or assignment change.
//
// Two implementations ship with the package: RedisCache for multi-instance
// deployments and MemoryCache for tests and single-process setups. Both
// store the directive set verbatim; a cached entry that fails to parse is
// treated as a miss so the caller falls back to a fresh resolution.
package cache
