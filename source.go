// FILE: wordfence/config/source.go
package config

import (
	"maps"
	"slices"
	"strings"
)

// Source is one origin of configuration values.
// The resolver never inspects a source; only extractors understand its contents.
type Source interface {
	// Name identifies the source in provenance reports and errors
	Name() string
}

// CLISource holds command-line values that have already been tokenized and
// bound to option names.
type CLISource struct {
	values   map[string][]string
	negated  map[string]bool
	trailing []string
}

// NewCLISource creates an empty command-line source.
func NewCLISource() *CLISource {
	return &CLISource{
		values:  make(map[string][]string),
		negated: make(map[string]bool),
	}
}

// Name implements Source.
func (s *CLISource) Name() string {
	return "cli"
}

// Add records one occurrence of an option, in the order encountered.
func (s *CLISource) Add(name string, raw ...string) *CLISource {
	s.values[name] = append(s.values[name], raw...)
	return s
}

// Negate records the --no-<name> form of an optional flag.
func (s *CLISource) Negate(name string) *CLISource {
	s.negated[name] = true
	return s
}

// SetTrailing records positional tokens not bound to any option.
func (s *CLISource) SetTrailing(args []string) *CLISource {
	s.trailing = slices.Clone(args)
	return s
}

// Occurrences returns the raw values given for an option.
func (s *CLISource) Occurrences(name string) ([]string, bool) {
	raw, ok := s.values[name]
	return raw, ok
}

// Negated reports whether the negation form of an option was given.
func (s *CLISource) Negated(name string) bool {
	return s.negated[name]
}

// TrailingArguments returns the positional tokens in order.
func (s *CLISource) TrailingArguments() []string {
	return slices.Clone(s.trailing)
}

// FileSource holds the sections of a persistent configuration file.
// Section names are kept as written; keys are normalised to lowercase kebab-case.
type FileSource struct {
	path     string
	sections map[string]map[string]any
}

// NewFileSource creates a file source from parsed sections.
// A nil map yields a source with no sections (no file was found).
func NewFileSource(path string, sections map[string]map[string]any) *FileSource {
	normalised := make(map[string]map[string]any, len(sections))
	for section, values := range sections {
		keys := make(map[string]any, len(values))
		for key, value := range values {
			keys[normaliseKey(key)] = value
		}
		normalised[section] = keys
	}
	return &FileSource{path: path, sections: normalised}
}

// Name implements Source.
func (s *FileSource) Name() string {
	if s.path == "" {
		return "file"
	}
	return "file:" + s.path
}

// Path returns the file the sections were loaded from; empty when none.
func (s *FileSource) Path() string {
	return s.path
}

// HasSection reports whether the file contains the named section.
func (s *FileSource) HasSection(section string) bool {
	_, ok := s.sections[section]
	return ok
}

// SectionNames returns the section names in sorted order.
func (s *FileSource) SectionNames() []string {
	return slices.Sorted(maps.Keys(s.sections))
}

// Lookup returns the raw value of key in section.
func (s *FileSource) Lookup(section, key string) (any, bool) {
	values, ok := s.sections[section]
	if !ok {
		return nil, false
	}
	value, ok := values[normaliseKey(key)]
	return value, ok
}

// normaliseKey accepts both option names and property names as file keys.
func normaliseKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "_", "-")
}
