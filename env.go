// FILE: wordfence/config/env.go
package config

import (
	"fmt"
	"maps"
	"strings"

	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/v2"
)

// EnvSource holds option values read from prefixed environment variables.
type EnvSource struct {
	prefix string
	values map[string]string
}

// Name implements Source.
func (s *EnvSource) Name() string {
	return "env"
}

// Prefix returns the variable prefix this source was loaded with.
func (s *EnvSource) Prefix() string {
	return s.prefix
}

// Lookup returns the raw value for an option name.
func (s *EnvSource) Lookup(name string) (string, bool) {
	value, ok := s.values[name]
	return value, ok
}

// EnvVarName returns the variable that supplies an option, e.g.
// WORDFENCE_CLI_ + exclude-vulnerability -> WORDFENCE_CLI_EXCLUDE_VULNERABILITY.
func EnvVarName(prefix string, def ItemDefinition) string {
	return prefix + strings.ToUpper(def.PropertyName())
}

// LoadEnv reads every environment variable carrying prefix.
// Variable names are mapped back to option names by stripping the prefix,
// lowercasing and turning underscores into dashes.
func LoadEnv(prefix string) (*EnvSource, error) {
	if prefix == "" {
		return nil, fmt.Errorf("environment prefix cannot be empty")
	}

	k := koanf.New(".")
	provider := env.Provider(".", env.Opt{
		Prefix: prefix,
		TransformFunc: func(key, value string) (string, any) {
			name := strings.TrimPrefix(key, prefix)
			name = strings.ToLower(strings.ReplaceAll(name, "_", "-"))
			return name, value
		},
	})
	if err := k.Load(provider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	values := make(map[string]string)
	for _, key := range k.Keys() {
		values[key] = k.String(key)
	}
	return &EnvSource{prefix: prefix, values: values}, nil
}

// NewEnvSource creates an environment source from explicit option values.
func NewEnvSource(prefix string, values map[string]string) *EnvSource {
	copied := maps.Clone(values)
	if copied == nil {
		copied = make(map[string]string)
	}
	return &EnvSource{prefix: prefix, values: copied}
}
