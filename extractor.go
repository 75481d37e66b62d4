// FILE: wordfence/config/extractor.go
package config

import "fmt"

// Extractor translates one kind of source into canonical option values.
type Extractor interface {
	// IsValidSource reports whether the extractor understands the source
	IsValidSource(src Source) bool
	// Value returns the canonical value the source provides for def, or Absent
	Value(def ItemDefinition, src Source) (Value, error)
}

// CLIExtractor reads tokenized command-line values.
type CLIExtractor struct{}

// IsValidSource implements Extractor.
func (CLIExtractor) IsValidSource(src Source) bool {
	_, ok := src.(*CLISource)
	return ok
}

// Value implements Extractor.
func (CLIExtractor) Value(def ItemDefinition, src Source) (Value, error) {
	cli, ok := src.(*CLISource)
	if !ok || !def.Context.allowsCLI() {
		return Absent(), nil
	}

	occurrences, given := cli.Occurrences(def.Name)
	negated := def.Kind == KindOptionalFlag && cli.Negated(def.Name)

	switch {
	case negated && given:
		return Absent(), fmt.Errorf("%w for option %q: both --%s and --%s were given",
			ErrInvalidValue, def.Name, def.Name, def.NegationName())
	case negated:
		return Present(False), nil
	case !given || len(occurrences) == 0:
		return Absent(), nil
	}

	var raw any
	if def.IsRepeatable() {
		raw = occurrences
	} else {
		// The last occurrence of a scalar wins
		raw = occurrences[len(occurrences)-1]
	}

	value, err := canonicalize(def, raw)
	if err != nil {
		return Absent(), err
	}
	return Present(value), nil
}

// SectionExtractor reads one section of a persistent configuration file.
type SectionExtractor struct {
	section  string
	required bool
}

// NewSubcommandExtractor reads the subcommand's own section.
// It only applies to files that actually contain that section.
func NewSubcommandExtractor(sc *Subcommand) *SectionExtractor {
	return &SectionExtractor{section: sc.SectionName(), required: true}
}

// NewDefaultExtractor reads the DEFAULT section; it applies to every file source.
func NewDefaultExtractor() *SectionExtractor {
	return &SectionExtractor{section: DefaultSection}
}

// Section returns the section this extractor reads.
func (e *SectionExtractor) Section() string {
	return e.section
}

// IsValidSource implements Extractor.
func (e *SectionExtractor) IsValidSource(src Source) bool {
	file, ok := src.(*FileSource)
	if !ok {
		return false
	}
	return !e.required || file.HasSection(e.section)
}

// Value implements Extractor.
func (e *SectionExtractor) Value(def ItemDefinition, src Source) (Value, error) {
	file, ok := src.(*FileSource)
	if !ok || !def.Context.allowsPersistent() {
		return Absent(), nil
	}

	raw, found := file.Lookup(e.section, def.Name)
	if !found {
		return Absent(), nil
	}

	value, err := canonicalize(def, raw)
	if err != nil {
		return Absent(), fmt.Errorf("section [%s]: %w", e.section, err)
	}
	return Present(value), nil
}

// EnvExtractor reads prefixed environment variables.
type EnvExtractor struct{}

// IsValidSource implements Extractor.
func (EnvExtractor) IsValidSource(src Source) bool {
	_, ok := src.(*EnvSource)
	return ok
}

// Value implements Extractor.
func (EnvExtractor) Value(def ItemDefinition, src Source) (Value, error) {
	envSrc, ok := src.(*EnvSource)
	if !ok || !def.Context.allowsPersistent() {
		return Absent(), nil
	}

	raw, found := envSrc.Lookup(def.Name)
	if !found {
		return Absent(), nil
	}

	value, err := canonicalize(def, raw)
	if err != nil {
		return Absent(), fmt.Errorf("%s: %w", EnvVarName(envSrc.Prefix(), def), err)
	}
	return Present(value), nil
}
