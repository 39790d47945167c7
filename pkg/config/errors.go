package config

import "errors"

var (
	// ErrParsingConfig indicates the environment could not be parsed into
	// the target struct. The underlying parser error is joined.
	ErrParsingConfig = errors.New("config: failed to parse environment variables")
	// ErrNilPointer indicates Load received a nil destination.
	ErrNilPointer = errors.New("config: nil pointer provided")
)
