// FILE: wordfence/config/loader.go
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// FileFormat names a supported persistent file syntax.
type FileFormat string

const (
	FormatAuto FileFormat = ""
	FormatINI  FileFormat = "ini"
	FormatTOML FileFormat = "toml"
	FormatYAML FileFormat = "yaml"
	FormatJSON FileFormat = "json"
)

// LoadFile reads a configuration file into a sectioned file source,
// detecting the format from the extension, then from the content.
func LoadFile(path string) (*FileSource, error) {
	return LoadFileFormat(path, FormatAuto)
}

// LoadFileFormat reads a configuration file using an explicit format.
// FormatAuto falls back to detection.
func LoadFileFormat(path string, format FileFormat) (*FileSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	if format == FormatAuto {
		format = detectFileFormat(path)
		if format == FormatAuto {
			format = detectFormatFromContent(data)
		}
	}

	sections, err := parseSections(data, format)
	if err != nil {
		return nil, fmt.Errorf("%w '%s': %w", ErrMalformedFile, path, err)
	}
	return NewFileSource(path, sections), nil
}

// ParseFile parses configuration content that did not come from disk.
func ParseFile(data []byte, format FileFormat) (*FileSource, error) {
	if format == FormatAuto {
		format = detectFormatFromContent(data)
	}
	sections, err := parseSections(data, format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedFile, err)
	}
	return NewFileSource("", sections), nil
}

func parseSections(data []byte, format FileFormat) (map[string]map[string]any, error) {
	switch format {
	case FormatINI:
		return parseINI(data)
	case FormatTOML:
		tree := make(map[string]any)
		if err := toml.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
		return splitTree(tree)
	case FormatYAML:
		tree := make(map[string]any)
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		return splitTree(tree)
	case FormatJSON:
		tree := make(map[string]any)
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber() // Preserve number precision
		if err := decoder.Decode(&tree); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		return splitTree(tree)
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}
}

// parseINI keeps values as written; the DEFAULT section is not merged into
// the others here, extractors fall back to it instead.
func parseINI(data []byte) (map[string]map[string]any, error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment: true,
		AllowBooleanKeys:    true,
	}, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse INI: %w", err)
	}

	sections := make(map[string]map[string]any)
	for _, section := range file.Sections() {
		keys := section.Keys()
		if len(keys) == 0 && section.Name() == ini.DefaultSection {
			continue
		}
		values := make(map[string]any, len(keys))
		for _, key := range keys {
			values[key.Name()] = key.Value()
		}
		sections[section.Name()] = values
	}
	return sections, nil
}

// splitTree maps a nested document onto sections: tables become sections,
// top-level scalars belong to DEFAULT.
func splitTree(tree map[string]any) (map[string]map[string]any, error) {
	sections := make(map[string]map[string]any)
	for key, value := range tree {
		table, ok := value.(map[string]any)
		if !ok {
			if sections[DefaultSection] == nil {
				sections[DefaultSection] = make(map[string]any)
			}
			if _, exists := sections[DefaultSection][key]; exists {
				return nil, fmt.Errorf("key %q is set both at top level and in [%s]", key, DefaultSection)
			}
			sections[DefaultSection][key] = value
			continue
		}
		if key == DefaultSection {
			if sections[DefaultSection] == nil {
				sections[DefaultSection] = make(map[string]any, len(table))
			}
			for k, v := range table {
				if _, exists := sections[DefaultSection][k]; exists {
					return nil, fmt.Errorf("key %q is set both at top level and in [%s]", k, DefaultSection)
				}
				sections[DefaultSection][k] = v
			}
			continue
		}
		sections[key] = table
	}
	return sections, nil
}

// detectFileFormat determines format from file extension
func detectFileFormat(path string) FileFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ini", ".conf", ".cfg":
		return FormatINI
	case ".toml", ".tml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatAuto
	}
}

// detectFormatFromContent attempts to detect format by parsing.
// Sectioned files with bare values are INI even when they also parse as TOML.
func detectFormatFromContent(data []byte) FileFormat {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return FormatINI
	}

	if trimmed[0] == '{' {
		var js map[string]any
		if json.Unmarshal(trimmed, &js) == nil {
			return FormatJSON
		}
	}

	if looksLikeINI(trimmed) {
		return FormatINI
	}

	var tm map[string]any
	if toml.Unmarshal(data, &tm) == nil {
		return FormatTOML
	}

	var ym map[string]any
	if yaml.Unmarshal(data, &ym) == nil {
		return FormatYAML
	}

	return FormatINI
}

// looksLikeINI reports whether the first meaningful line is a section header
// and no value uses TOML quoting.
func looksLikeINI(data []byte) bool {
	for line := range strings.Lines(string(data)) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		if !strings.HasPrefix(line, "[") {
			return false
		}
		break
	}
	for line := range strings.Lines(string(data)) {
		if _, value, ok := strings.Cut(line, "="); ok {
			value = strings.TrimSpace(value)
			if strings.HasPrefix(value, `"`) || strings.HasPrefix(value, "[") || strings.HasPrefix(value, "'") {
				return false
			}
		}
	}
	return true
}
