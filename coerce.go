// FILE: wordfence/config/coerce.go
package config

import (
	"encoding/base64"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// truthValues mirrors the boolean spellings accepted in INI files.
var truthValues = map[string]bool{
	"1":     true,
	"yes":   true,
	"true":  true,
	"on":    true,
	"0":     false,
	"no":    false,
	"false": false,
	"off":   false,
}

// canonicalize converts a raw value from any source into the canonical type of the option.
// The same rules apply whichever extractor produced the raw value.
func canonicalize(def ItemDefinition, raw any) (any, error) {
	var (
		value any
		err   error
	)
	switch def.Kind {
	case KindFlag:
		value, err = coerceBool(raw)
	case KindOptionalFlag:
		value, err = coerceTriState(raw)
	case KindOption:
		value, err = coerceScalar(def, raw)
	case KindOptionRepeatable:
		value, err = coerceSequence(def, raw)
	default:
		err = fmt.Errorf("unsupported argument kind %s", def.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("%w for option %q: %w", ErrInvalidValue, def.Name, err)
	}
	return value, nil
}

// canonicalDefault decodes and coerces the declared default of an option.
// Decoding happens here, at application time, never at declaration time.
func canonicalDefault(def ItemDefinition) (any, error) {
	raw := def.Default

	if def.DefaultEncoding == EncodingBase64 && raw != nil {
		encoded, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w for option %q: base64 default must be a string, got %T", ErrInvalidValue, def.Name, raw)
		}
		decoded, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("%w for option %q: decode base64 default: %w", ErrInvalidValue, def.Name, err)
		}
		raw = string(decoded)
	}

	if raw == nil {
		switch def.Kind {
		case KindFlag:
			return false, nil
		case KindOptionalFlag:
			return Unset, nil
		case KindOptionRepeatable:
			return []string{}, nil
		default:
			return nil, nil
		}
	}

	return canonicalize(def, raw)
}

func coerceBool(raw any) (bool, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case TriState:
		if !v.IsSet() {
			return false, fmt.Errorf("unset tri-state cannot be used as a boolean")
		}
		return v.Bool(false), nil
	case string:
		b, ok := truthValues[strings.ToLower(strings.TrimSpace(v))]
		if !ok {
			return false, fmt.Errorf("%q is not a boolean", v)
		}
		return b, nil
	case int:
		return v != 0, nil
	case int64:
		return v != 0, nil
	case float64:
		return v != 0, nil
	default:
		// Remaining numeric types, including json.Number
		var f float64
		if err := mapstructure.WeakDecode(raw, &f); err != nil {
			return false, fmt.Errorf("cannot convert %T to boolean", raw)
		}
		return f != 0, nil
	}
}

func coerceTriState(raw any) (TriState, error) {
	if t, ok := raw.(TriState); ok {
		return t, nil
	}
	b, err := coerceBool(raw)
	if err != nil {
		return Unset, err
	}
	return TriStateOf(b), nil
}

func coerceScalar(def ItemDefinition, raw any) (any, error) {
	if raw == nil {
		return nil, fmt.Errorf("missing value")
	}

	var value any
	switch def.ValueType {
	case TypeInt:
		var i int64
		if err := mapstructure.WeakDecode(raw, &i); err != nil {
			return nil, err
		}
		value = i
	case TypeFloat:
		var f float64
		if err := mapstructure.WeakDecode(raw, &f); err != nil {
			return nil, err
		}
		value = f
	default:
		// Weak decoding renders booleans as "1"/"0"
		if b, ok := raw.(bool); ok {
			value = strconv.FormatBool(b)
			break
		}
		var s string
		if err := mapstructure.WeakDecode(raw, &s); err != nil {
			return nil, err
		}
		value = s
	}

	if err := checkValidOptions(def, fmt.Sprint(value)); err != nil {
		return nil, err
	}
	return value, nil
}

func coerceSequence(def ItemDefinition, raw any) ([]string, error) {
	var elements []string
	switch v := raw.(type) {
	case string:
		elements = []string{v}
	case []string:
		elements = v
	default:
		if err := mapstructure.WeakDecode(raw, &elements); err != nil {
			return nil, err
		}
	}

	result := make([]string, 0, len(elements))
	for _, element := range elements {
		result = append(result, splitSequence(element, def.Separator)...)
	}

	for _, element := range result {
		if err := checkValidOptions(def, element); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// splitSequence splits a delimited string, trimming elements and dropping empty ones.
func splitSequence(s, separator string) []string {
	parts := []string{s}
	if separator != "" {
		parts = strings.Split(s, separator)
	}
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func checkValidOptions(def ItemDefinition, value string) error {
	if len(def.ValidOptions) == 0 || slices.Contains(def.ValidOptions, value) {
		return nil
	}
	return fmt.Errorf("%q is not one of [%s]", value, strings.Join(def.ValidOptions, ", "))
}
