package config

import (
	"fmt"
	"strings"
)

// Value is the result of asking a source for an option.
// A present value may be falsy (false, "", 0, an empty sequence); only
// Absent means the source has nothing to say about the option.
type Value struct {
	value   any
	present bool
}

// Present wraps a canonical value provided by a source.
func Present(v any) Value {
	return Value{value: v, present: true}
}

// Absent reports that a source does not provide the option.
func Absent() Value {
	return Value{}
}

// IsPresent reports whether the source provided a value.
func (v Value) IsPresent() bool {
	return v.present
}

// Get returns the wrapped value and whether it is present.
func (v Value) Get() (any, bool) {
	return v.value, v.present
}

func (v Value) String() string {
	if !v.present {
		return "<absent>"
	}
	return fmt.Sprintf("%v", v.value)
}

// TriState is the canonical value of an optional flag.
// Unset is distinct from both True and False so a later source can turn an
// earlier True back to False.
type TriState int8

const (
	Unset TriState = iota
	True
	False
)

// TriStateOf converts a plain boolean into an explicit tri-state.
func TriStateOf(b bool) TriState {
	if b {
		return True
	}
	return False
}

// IsSet reports whether the flag was explicitly enabled or disabled.
func (t TriState) IsSet() bool {
	return t == True || t == False
}

// Bool returns the explicit value, or fallback when the flag is unset.
func (t TriState) Bool(fallback bool) bool {
	switch t {
	case True:
		return true
	case False:
		return false
	default:
		return fallback
	}
}

func (t TriState) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unset"
	}
}

// MarshalText renders the tri-state for TOML and JSON encoders.
func (t TriState) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText accepts "true", "false" and "unset" (or an empty string).
func (t *TriState) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "true":
		*t = True
	case "false":
		*t = False
	case "", "unset":
		*t = Unset
	default:
		return fmt.Errorf("%w: %q is not a tri-state value", ErrInvalidValue, string(text))
	}
	return nil
}
