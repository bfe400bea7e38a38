package config

import "errors"

var (
	// ErrInvalidConfigShape indicates that "commands" or "plugins" in the
	// configuration is not a list of JSON objects.
	ErrInvalidConfigShape = errors.New("invalid configuration shape")
	// ErrEnvParse indicates that a KEEPER_* environment variable could not be
	// converted to its target type.
	ErrEnvParse = errors.New("error parsing environment")
)
