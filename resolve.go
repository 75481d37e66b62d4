// FILE: wordfence/config/resolve.go
package config

import (
	"fmt"
	"slices"

	"github.com/wordfence/config/internal/logging"
)

// SourceDefault is the provenance recorded for options resolved from their declared default.
const SourceDefault = "default"

// Target receives resolved values, one call per option property.
type Target interface {
	Set(property string, value any) error
}

// Provenance maps each property to the name of the source that supplied its final value.
type Provenance map[string]string

// Resolver merges option values from ordered sources.
// Its extractor list is fixed at construction; the order decides which
// extractor wins when several understand the same source.
type Resolver struct {
	extractors []Extractor
	logger     logging.Logger
}

// NewResolver creates a resolver over an immutable copy of extractors.
func NewResolver(extractors ...Extractor) *Resolver {
	return &Resolver{
		extractors: slices.Clone(extractors),
		logger:     logging.Nop(),
	}
}

// WithLogger returns a copy of the resolver that logs each assignment at debug level.
func (r *Resolver) WithLogger(logger logging.Logger) *Resolver {
	clone := *r
	if logger != nil {
		clone.logger = logger
	}
	return &clone
}

// Resolve populates target from sources ordered lowest precedence first.
// A value from a later source replaces any earlier one, falsy values included.
// Options that no source provides receive their declared default after all
// sources have been processed, so every property ends up defined.
func (r *Resolver) Resolve(defs Definitions, target Target, sources ...Source) (Provenance, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}
	if target == nil {
		return nil, fmt.Errorf("resolution target cannot be nil")
	}

	items := defs.Sorted()
	provenance := make(Provenance, len(items))

	for _, source := range sources {
		if source == nil {
			return nil, fmt.Errorf("%w: nil source", ErrNoExtractor)
		}

		extractors := r.extractorsFor(source)
		if len(extractors) == 0 {
			return nil, fmt.Errorf("%w: %s (%T)", ErrNoExtractor, source.Name(), source)
		}

		for _, item := range items {
			value, err := firstPresent(extractors, item, source)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", source.Name(), err)
			}
			v, present := value.Get()
			if !present {
				continue
			}
			if err := target.Set(item.PropertyName(), v); err != nil {
				return nil, fmt.Errorf("failed to assign %q from %s: %w", item.Name, source.Name(), err)
			}
			provenance[item.PropertyName()] = source.Name()
			r.logger.Debug("resolved option", "option", item.Name, "source", source.Name(), "value", v)
		}
	}

	for _, item := range items {
		if _, set := provenance[item.PropertyName()]; set {
			continue
		}
		v, err := canonicalDefault(item)
		if err != nil {
			return nil, err
		}
		if err := target.Set(item.PropertyName(), v); err != nil {
			return nil, fmt.Errorf("failed to assign default of %q: %w", item.Name, err)
		}
		provenance[item.PropertyName()] = SourceDefault
	}

	return provenance, nil
}

// extractorsFor returns the extractors that understand source, in priority order.
func (r *Resolver) extractorsFor(source Source) []Extractor {
	var valid []Extractor
	for _, extractor := range r.extractors {
		if extractor.IsValidSource(source) {
			valid = append(valid, extractor)
		}
	}
	return valid
}

func firstPresent(extractors []Extractor, item ItemDefinition, source Source) (Value, error) {
	for _, extractor := range extractors {
		value, err := extractor.Value(item, source)
		if err != nil {
			return Absent(), err
		}
		if value.IsPresent() {
			return value, nil
		}
	}
	return Absent(), nil
}
