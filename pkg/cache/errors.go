package cache

import "errors"

var (
	// ErrFailedToParseConnString is returned when the redis connection URL is invalid.
	ErrFailedToParseConnString = errors.New("cache: failed to parse redis connection string")

	// ErrNotReady is returned when redis cannot be reached within the retry budget.
	ErrNotReady = errors.New("cache: redis not ready")

	// ErrCacheFailure wraps unexpected cache backend errors.
	ErrCacheFailure = errors.New("cache: backend failure")
)
