package options

import (
	"fmt"
	"maps"
	"slices"

	"github.com/wordfence/config"
	"github.com/wordfence/config/internal/logging"
)

// Options is the resolved configuration of one invocation. Fields that the
// invoked subcommand does not declare keep their zero value.
type Options struct {
	Configuration  string
	License        string
	CacheDirectory string
	Cache          config.TriState
	Verbose        config.TriState
	Debug          bool
	Quiet          bool
	Color          config.TriState
	Banner         config.TriState
	CheckForUpdate config.TriState
	Version        bool

	ReadStdin     config.TriState
	PathSeparator string

	Output        config.TriState
	OutputPath    string
	OutputColumns []string
	OutputFormat  string
	OutputHeaders config.TriState

	WordpressPath         []string
	PluginDirectory       []string
	ThemeDirectory        []string
	RelativeContentPath   []string
	RelativePluginsPath   []string
	RelativeMuPluginsPath []string
	RequirePath           bool
	ExcludeVulnerability  []string
	IncludeVulnerability  []string
	Informational         bool
	Feed                  string

	IncludeFiles        []string
	IncludeFilesPattern []string
	ExcludeFiles        []string
	ExcludeFilesPattern []string
	Images              bool
	ChunkSize           int64
	ScannedContentLimit int64
	Workers             int64
	MatchEngine         string

	Subcommand        string
	TrailingArguments []string
	FilePath          string

	resolved map[string]struct{}
}

// field binds one property to its struct field.
type field struct {
	set func(o *Options, value any) error
	get func(o *Options) any
}

func bind[T any](ptr func(o *Options) *T) field {
	return field{
		set: func(o *Options, value any) error {
			if value == nil {
				var zero T
				*ptr(o) = zero
				return nil
			}
			v, ok := value.(T)
			if !ok {
				var zero T
				return fmt.Errorf("%w: expected %T, got %T", config.ErrInvalidValue, zero, value)
			}
			*ptr(o) = v
			return nil
		},
		get: func(o *Options) any {
			return *ptr(o)
		},
	}
}

// fields is the dispatch table from property name to setter, built once.
var fields = map[string]field{
	"configuration":    bind(func(o *Options) *string { return &o.Configuration }),
	"license":          bind(func(o *Options) *string { return &o.License }),
	"cache_directory":  bind(func(o *Options) *string { return &o.CacheDirectory }),
	"cache":            bind(func(o *Options) *config.TriState { return &o.Cache }),
	"verbose":          bind(func(o *Options) *config.TriState { return &o.Verbose }),
	"debug":            bind(func(o *Options) *bool { return &o.Debug }),
	"quiet":            bind(func(o *Options) *bool { return &o.Quiet }),
	"color":            bind(func(o *Options) *config.TriState { return &o.Color }),
	"banner":           bind(func(o *Options) *config.TriState { return &o.Banner }),
	"check_for_update": bind(func(o *Options) *config.TriState { return &o.CheckForUpdate }),
	"version":          bind(func(o *Options) *bool { return &o.Version }),

	"read_stdin":     bind(func(o *Options) *config.TriState { return &o.ReadStdin }),
	"path_separator": bind(func(o *Options) *string { return &o.PathSeparator }),

	"output":         bind(func(o *Options) *config.TriState { return &o.Output }),
	"output_path":    bind(func(o *Options) *string { return &o.OutputPath }),
	"output_columns": bind(func(o *Options) *[]string { return &o.OutputColumns }),
	"output_format":  bind(func(o *Options) *string { return &o.OutputFormat }),
	"output_headers": bind(func(o *Options) *config.TriState { return &o.OutputHeaders }),

	"wordpress_path":           bind(func(o *Options) *[]string { return &o.WordpressPath }),
	"plugin_directory":         bind(func(o *Options) *[]string { return &o.PluginDirectory }),
	"theme_directory":          bind(func(o *Options) *[]string { return &o.ThemeDirectory }),
	"relative_content_path":    bind(func(o *Options) *[]string { return &o.RelativeContentPath }),
	"relative_plugins_path":    bind(func(o *Options) *[]string { return &o.RelativePluginsPath }),
	"relative_mu_plugins_path": bind(func(o *Options) *[]string { return &o.RelativeMuPluginsPath }),
	"require_path":             bind(func(o *Options) *bool { return &o.RequirePath }),
	"exclude_vulnerability":    bind(func(o *Options) *[]string { return &o.ExcludeVulnerability }),
	"include_vulnerability":    bind(func(o *Options) *[]string { return &o.IncludeVulnerability }),
	"informational":            bind(func(o *Options) *bool { return &o.Informational }),
	"feed":                     bind(func(o *Options) *string { return &o.Feed }),

	"include_files":         bind(func(o *Options) *[]string { return &o.IncludeFiles }),
	"include_files_pattern": bind(func(o *Options) *[]string { return &o.IncludeFilesPattern }),
	"exclude_files":         bind(func(o *Options) *[]string { return &o.ExcludeFiles }),
	"exclude_files_pattern": bind(func(o *Options) *[]string { return &o.ExcludeFilesPattern }),
	"images":                bind(func(o *Options) *bool { return &o.Images }),
	"chunk_size":            bind(func(o *Options) *int64 { return &o.ChunkSize }),
	"scanned_content_limit": bind(func(o *Options) *int64 { return &o.ScannedContentLimit }),
	"workers":               bind(func(o *Options) *int64 { return &o.Workers }),
	"match_engine":          bind(func(o *Options) *string { return &o.MatchEngine }),
}

// Properties lists every property the record can hold, sorted.
func Properties() []string {
	return slices.Sorted(maps.Keys(fields))
}

// Set implements config.Target.
func (o *Options) Set(property string, value any) error {
	f, ok := fields[property]
	if !ok {
		return fmt.Errorf("%w: %q", config.ErrUnknownProperty, property)
	}
	if err := f.set(o, value); err != nil {
		return fmt.Errorf("property %q: %w", property, err)
	}
	if o.resolved == nil {
		o.resolved = make(map[string]struct{})
	}
	o.resolved[property] = struct{}{}
	return nil
}

// SetMetadata implements config.MetadataReceiver.
func (o *Options) SetMetadata(meta config.Metadata) {
	o.Subcommand = meta.Subcommand
	o.TrailingArguments = slices.Clone(meta.TrailingArguments)
	o.FilePath = meta.FilePath
}

// Map returns the resolved properties and their values.
func (o *Options) Map() map[string]any {
	out := make(map[string]any, len(o.resolved))
	for property := range o.resolved {
		out[property] = fields[property].get(o)
	}
	return out
}

// ReadStdinEnabled reports whether paths should be read from standard input.
// When --read-stdin was not given either way, stdin is read unless it is a terminal.
func (o *Options) ReadStdinEnabled(stdinIsTerminal bool) bool {
	return o.ReadStdin.Bool(!stdinIsTerminal)
}

// ColorEnabled resolves --color against the output being a terminal.
func (o *Options) ColorEnabled(stdoutIsTerminal bool) bool {
	return o.Color.Bool(stdoutIsTerminal)
}

// HasPaths reports whether any scan target was given, positionally or by option.
func (o *Options) HasPaths() bool {
	return len(o.TrailingArguments)+len(o.WordpressPath)+len(o.PluginDirectory)+len(o.ThemeDirectory) > 0
}

// LogLevel maps the logging options onto a level. Debug wins over quiet,
// quiet wins over verbose.
func (o *Options) LogLevel(stderrIsTerminal bool) logging.Level {
	switch {
	case o.Debug:
		return logging.DebugLevel
	case o.Quiet:
		return logging.ErrorLevel
	case o.Verbose.Bool(stderrIsTerminal):
		return logging.InfoLevel
	default:
		return logging.WarnLevel
	}
}
