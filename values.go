// FILE: wordfence/config/values.go
package config

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Metadata carries the non-option results of a load.
type Metadata struct {
	Subcommand        string
	TrailingArguments []string
	// FilePath is the persistent file that was loaded, empty when none
	FilePath string
}

// MetadataReceiver is implemented by targets that record load metadata.
type MetadataReceiver interface {
	SetMetadata(Metadata)
}

// Values is a generic resolved configuration keyed by property name.
// Getters accept either the property name (exclude_vulnerability) or the
// option name (exclude-vulnerability).
type Values struct {
	values map[string]any
	meta   Metadata
}

// NewValues creates an empty resolution target.
func NewValues() *Values {
	return &Values{values: make(map[string]any)}
}

// Set implements Target.
func (v *Values) Set(property string, value any) error {
	if property == "" {
		return fmt.Errorf("%w: empty property name", ErrUnknownProperty)
	}
	v.values[property] = value
	return nil
}

// SetMetadata implements MetadataReceiver.
func (v *Values) SetMetadata(meta Metadata) {
	meta.TrailingArguments = slices.Clone(meta.TrailingArguments)
	v.meta = meta
}

// Metadata returns the subcommand, trailing arguments and file path of the load.
func (v *Values) Metadata() Metadata {
	return v.meta
}

// TrailingArguments returns positional tokens not bound to any option.
func (v *Values) TrailingArguments() []string {
	return slices.Clone(v.meta.TrailingArguments)
}

// FilePath returns the configuration file that was loaded, if any.
func (v *Values) FilePath() string {
	return v.meta.FilePath
}

// Get retrieves a resolved value; the second result reports whether the property exists.
func (v *Values) Get(name string) (any, bool) {
	value, ok := v.values[propertyKey(name)]
	return value, ok
}

// Properties returns all resolved property names in sorted order.
func (v *Values) Properties() []string {
	return slices.Sorted(maps.Keys(v.values))
}

// Map returns a copy of all resolved values.
func (v *Values) Map() map[string]any {
	return maps.Clone(v.values)
}

// String retrieves a string value. Numeric and boolean values are formatted.
func (v *Values) String(name string) (string, error) {
	val, found := v.Get(name)
	if !found {
		return "", fmt.Errorf("%w: %s", ErrUnknownProperty, name)
	}
	switch s := val.(type) {
	case nil:
		return "", nil // Treat nil as empty string for convenience
	case string:
		return s, nil
	case int64:
		return strconv.FormatInt(s, 10), nil
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(s), nil
	case fmt.Stringer:
		return s.String(), nil
	default:
		return "", fmt.Errorf("cannot convert type %T to string for %s", val, name)
	}
}

// Bool retrieves a boolean value. An optional flag must be explicitly set.
func (v *Values) Bool(name string) (bool, error) {
	val, found := v.Get(name)
	if !found {
		return false, fmt.Errorf("%w: %s", ErrUnknownProperty, name)
	}
	switch b := val.(type) {
	case bool:
		return b, nil
	case TriState:
		if !b.IsSet() {
			return false, fmt.Errorf("value for %s is unset, cannot convert to bool", name)
		}
		return b.Bool(false), nil
	default:
		return false, fmt.Errorf("cannot convert type %T to bool for %s", val, name)
	}
}

// TriState retrieves an optional flag. Plain flags convert to True or False.
func (v *Values) TriState(name string) (TriState, error) {
	val, found := v.Get(name)
	if !found {
		return Unset, fmt.Errorf("%w: %s", ErrUnknownProperty, name)
	}
	switch t := val.(type) {
	case TriState:
		return t, nil
	case bool:
		return TriStateOf(t), nil
	default:
		return Unset, fmt.Errorf("cannot convert type %T to tri-state for %s", val, name)
	}
}

// Int64 retrieves an integer value.
func (v *Values) Int64(name string) (int64, error) {
	val, found := v.Get(name)
	if !found {
		return 0, fmt.Errorf("%w: %s", ErrUnknownProperty, name)
	}
	switch i := val.(type) {
	case int64:
		return i, nil
	case float64:
		return int64(i), nil // Truncate
	case string:
		parsed, err := strconv.ParseInt(i, 0, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert string %q to int64 for %s: %w", i, name, err)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("cannot convert type %T to int64 for %s", val, name)
	}
}

// Float64 retrieves a floating point value.
func (v *Values) Float64(name string) (float64, error) {
	val, found := v.Get(name)
	if !found {
		return 0, fmt.Errorf("%w: %s", ErrUnknownProperty, name)
	}
	switch f := val.(type) {
	case float64:
		return f, nil
	case int64:
		return float64(f), nil
	case string:
		parsed, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert string %q to float64 for %s: %w", f, name, err)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("cannot convert type %T to float64 for %s", val, name)
	}
}

// Strings retrieves a sequence value. A scalar string becomes a one-element sequence.
func (v *Values) Strings(name string) ([]string, error) {
	val, found := v.Get(name)
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProperty, name)
	}
	switch s := val.(type) {
	case []string:
		return slices.Clone(s), nil
	case string:
		return []string{s}, nil
	case nil:
		return []string{}, nil
	default:
		return nil, fmt.Errorf("cannot convert type %T to []string for %s", val, name)
	}
}

func propertyKey(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}
