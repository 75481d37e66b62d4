// File: wordfence/config/debug.go
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
)

// Snapshot is implemented by resolved records that can list their values by property name.
type Snapshot interface {
	Map() map[string]any
}

// Debug returns a formatted string showing every resolved value and its source
func (r *Result) Debug(values Snapshot) string {
	current := values.Map()

	var b strings.Builder
	b.WriteString("Configuration Debug Info:\n")
	fmt.Fprintf(&b, "Subcommand: %s\n", orNone(r.SubcommandName()))
	fmt.Fprintf(&b, "File: %s\n", orNone(r.FilePath))
	if len(r.TrailingArguments) > 0 {
		fmt.Fprintf(&b, "Trailing arguments: %q\n", r.TrailingArguments)
	}
	b.WriteString("Current values:\n")

	for _, def := range r.Definitions.Sorted() {
		property := def.PropertyName()
		fmt.Fprintf(&b, "  %s:\n", def.Name)
		fmt.Fprintf(&b, "    Current: %s\n", formatValue(current[property]))
		fmt.Fprintf(&b, "    Source: %s\n", r.Provenance[property])
	}

	return b.String()
}

// Dump writes the resolved values to w in TOML format, keyed by option name.
// Options resolved to nil are omitted.
func Dump(w io.Writer, values Snapshot) error {
	data := make(map[string]any)
	for property, value := range values.Map() {
		if value == nil {
			continue
		}
		data[strings.ReplaceAll(property, "_", "-")] = value
	}

	encoder := toml.NewEncoder(w)
	return encoder.Encode(data)
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "<nil>"
	case string:
		return fmt.Sprintf("%q", v)
	case []string:
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprint(v)
	}
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
