// FILE: wordfence/config/errors.go
package config

import "errors"

// Sentinel errors returned by the configuration engine.
// Callers should match them with errors.Is; most are wrapped with context.
var (
	// ErrUnknownSubcommand is returned when the requested subcommand is not declared
	ErrUnknownSubcommand = errors.New("unknown subcommand")

	// ErrNoExtractor is returned when a source has no compatible extractor
	ErrNoExtractor = errors.New("no compatible extractor found for configuration source")

	// ErrNoSources is returned when resolution is attempted without any source
	ErrNoSources = errors.New("at least one configuration source must be provided")

	// ErrInvalidValue is returned when a source provides a value that cannot be coerced
	// or falls outside the declared valid options
	ErrInvalidValue = errors.New("invalid configuration value")

	// ErrMalformedFile is returned when a configuration file cannot be parsed
	ErrMalformedFile = errors.New("malformed configuration file")

	// ErrConfigNotFound is returned when an explicitly requested configuration file does not exist
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrInvalidDefinition is returned when an option declaration is inconsistent
	ErrInvalidDefinition = errors.New("invalid option definition")

	// ErrCLIParse is returned when command-line arguments cannot be tokenized
	ErrCLIParse = errors.New("failed to parse command-line arguments")

	// ErrUnknownProperty is returned by targets that have no field for a property
	ErrUnknownProperty = errors.New("unknown configuration property")
)
