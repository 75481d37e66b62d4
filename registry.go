// FILE: wordfence/config/registry.go
package config

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// DefaultSection is the persistent-file section shared by every subcommand.
const DefaultSection = "DEFAULT"

// Definitions maps option names to their declarations.
type Definitions map[string]ItemDefinition

// NewDefinitions builds a Definitions map from a list of declarations.
// Later declarations with the same name replace earlier ones.
func NewDefinitions(items ...ItemDefinition) Definitions {
	defs := make(Definitions, len(items))
	for _, item := range items {
		defs[item.Name] = item
	}
	return defs
}

// Sorted returns the declarations ordered by name.
func (d Definitions) Sorted() []ItemDefinition {
	names := slices.Sorted(maps.Keys(d))
	items := make([]ItemDefinition, 0, len(names))
	for _, name := range names {
		items = append(items, d[name])
	}
	return items
}

// Overlay returns a copy of d where every definition in overlay replaces the
// same-named entry entirely. No field of the replaced entry is inherited.
func (d Definitions) Overlay(overlay Definitions) Definitions {
	merged := maps.Clone(d)
	if merged == nil {
		merged = make(Definitions, len(overlay))
	}
	maps.Copy(merged, overlay)
	return merged
}

// Validate checks every declaration and the uniqueness of property names and short aliases.
func (d Definitions) Validate() error {
	var problems []error
	properties := make(map[string]string)
	shorts := make(map[string]string)

	for _, item := range d.Sorted() {
		if err := item.Validate(); err != nil {
			problems = append(problems, err)
			continue
		}
		if owner, exists := properties[item.PropertyName()]; exists {
			problems = append(problems, fmt.Errorf("%w: options %q and %q share property %q",
				ErrInvalidDefinition, owner, item.Name, item.PropertyName()))
		}
		properties[item.PropertyName()] = item.Name

		if item.ShortName == "" {
			continue
		}
		if owner, exists := shorts[item.ShortName]; exists {
			problems = append(problems, fmt.Errorf("%w: options %q and %q share short name %q",
				ErrInvalidDefinition, owner, item.Name, item.ShortName))
		}
		shorts[item.ShortName] = item.Name
	}

	return errors.Join(problems...)
}

// Subcommand declares a subcommand and its option overlay.
type Subcommand struct {
	Name        string
	Description string
	// Section names the persistent-file section read for this subcommand.
	// Empty means the upper snake case of Name (vuln-scan -> VULN_SCAN).
	Section     string
	Definitions Definitions
}

// SectionName returns the file section holding this subcommand's settings.
func (s *Subcommand) SectionName() string {
	if s.Section != "" {
		return s.Section
	}
	return strings.ToUpper(strings.ReplaceAll(s.Name, "-", "_"))
}

// Registry holds the global option set and the known subcommands.
// It is assembled once from static declarations and never mutated afterwards.
type Registry struct {
	base        Definitions
	subcommands map[string]*Subcommand
	order       []string
}

// NewRegistry validates the declarations and returns a registry.
// Every subcommand's merged option set is validated as well, so collisions
// between global and subcommand short names surface at startup.
func NewRegistry(base Definitions, subcommands ...*Subcommand) (*Registry, error) {
	r := &Registry{
		base:        maps.Clone(base),
		subcommands: make(map[string]*Subcommand, len(subcommands)),
	}
	if r.base == nil {
		r.base = make(Definitions)
	}

	var problems []error
	if err := r.base.Validate(); err != nil {
		problems = append(problems, fmt.Errorf("global options: %w", err))
	}

	for _, sc := range subcommands {
		if sc == nil || sc.Name == "" {
			problems = append(problems, fmt.Errorf("%w: subcommand without a name", ErrInvalidDefinition))
			continue
		}
		if _, exists := r.subcommands[sc.Name]; exists {
			problems = append(problems, fmt.Errorf("%w: subcommand %q declared twice", ErrInvalidDefinition, sc.Name))
			continue
		}
		if err := r.base.Overlay(sc.Definitions).Validate(); err != nil {
			problems = append(problems, fmt.Errorf("subcommand %s: %w", sc.Name, err))
		}
		r.subcommands[sc.Name] = sc
		r.order = append(r.order, sc.Name)
	}

	if len(problems) > 0 {
		return nil, errors.Join(problems...)
	}
	return r, nil
}

// MustNewRegistry is like NewRegistry but panics on invalid declarations.
func MustNewRegistry(base Definitions, subcommands ...*Subcommand) *Registry {
	r, err := NewRegistry(base, subcommands...)
	if err != nil {
		panic(fmt.Sprintf("config registry: %v", err))
	}
	return r
}

// Global returns a copy of the global option set.
func (r *Registry) Global() Definitions {
	return maps.Clone(r.base)
}

// Subcommand looks up a declared subcommand.
func (r *Registry) Subcommand(name string) (*Subcommand, bool) {
	sc, ok := r.subcommands[name]
	return sc, ok
}

// Subcommands returns the declared subcommands in declaration order.
func (r *Registry) Subcommands() []*Subcommand {
	result := make([]*Subcommand, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.subcommands[name])
	}
	return result
}

// ForSubcommand returns the option set for the named subcommand.
// An empty name yields the global options only; an unknown name is fatal.
func (r *Registry) ForSubcommand(name string) (Definitions, *Subcommand, error) {
	if name == "" {
		return r.Global(), nil, nil
	}
	sc, ok := r.subcommands[name]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownSubcommand, name)
	}
	return r.base.Overlay(sc.Definitions), sc, nil
}
