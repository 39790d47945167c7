package scopes

import "errors"

var (
	// ErrUnknownDirectiveType is returned when the allow/deny keyword cannot be parsed.
	ErrUnknownDirectiveType = errors.New("scopes: unknown directive type")
	// ErrEmptyPattern is returned when a directive pattern has no segments after canonicalization.
	ErrEmptyPattern = errors.New("scopes: empty pattern")
	// ErrMisplacedWildcard is returned when "**" appears anywhere but the final pattern segment.
	ErrMisplacedWildcard = errors.New("scopes: multi-level wildcard must be the final segment")
)
