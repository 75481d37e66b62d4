// File: wordfence/config/builder.go
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/wordfence/config/internal/logging"
)

// ConfigurationOption is the option whose command-line value names the persistent file.
const ConfigurationOption = "configuration"

// ValidatorFunc checks a fully resolved target. It runs after metadata has been recorded.
type ValidatorFunc func(target Target, result *Result) error

// Result describes a completed load.
type Result struct {
	Subcommand        *Subcommand
	Definitions       Definitions
	Provenance        Provenance
	FilePath          string
	TrailingArguments []string
}

// SubcommandName returns the invoked subcommand name, or "" for none.
func (r *Result) SubcommandName() string {
	if r.Subcommand == nil {
		return ""
	}
	return r.Subcommand.Name
}

// Builder provides a fluent interface for loading a configuration
type Builder struct {
	registry   *Registry
	args       []string
	cli        *CLISource
	subcommand string
	file       string
	format     FileFormat
	discovery  *FileDiscoveryOptions
	envPrefix  string
	logger     logging.Logger
	validators []ValidatorFunc
}

// NewBuilder creates a new builder over the declared options.
// Arguments default to os.Args[1:].
func NewBuilder(reg *Registry) *Builder {
	return &Builder{
		registry:   reg,
		args:       os.Args[1:],
		logger:     logging.Nop(),
		validators: make([]ValidatorFunc, 0),
	}
}

// WithArgs sets the command-line arguments, subcommand first
func (b *Builder) WithArgs(args []string) *Builder {
	b.args = slices.Clone(args)
	b.cli = nil
	return b
}

// WithCLISource uses command-line values that were already parsed elsewhere,
// for example by a cobra command. It replaces WithArgs.
func (b *Builder) WithCLISource(subcommand string, src *CLISource) *Builder {
	b.subcommand = subcommand
	b.cli = src
	return b
}

// WithFile sets the configuration file path. A --configuration value on the
// command line takes precedence.
func (b *Builder) WithFile(path string) *Builder {
	b.file = path
	return b
}

// WithFileFormat forces the file format instead of detecting it
func (b *Builder) WithFileFormat(format FileFormat) *Builder {
	b.format = format
	return b
}

// WithFileDiscovery enables automatic config file discovery when no path is given
func (b *Builder) WithFileDiscovery(opts FileDiscoveryOptions) *Builder {
	b.discovery = &opts
	return b
}

// WithEnvPrefix adds environment variables as a source between the file and
// the command line
func (b *Builder) WithEnvPrefix(prefix string) *Builder {
	b.envPrefix = prefix
	return b
}

// WithLogger sets the logger used for load diagnostics
func (b *Builder) WithLogger(logger logging.Logger) *Builder {
	if logger != nil {
		b.logger = logger
	}
	return b
}

// WithValidator adds a validation function that runs at the end of the build process
// Multiple validators can be added and are executed in the order they are added
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build resolves every option into target. On error the target may be
// partially populated and must be discarded.
func (b *Builder) Build(target Target) (*Result, error) {
	if b.registry == nil {
		return nil, fmt.Errorf("%w: builder has no registry", ErrInvalidDefinition)
	}
	if target == nil {
		return nil, fmt.Errorf("resolution target cannot be nil")
	}

	inv, err := b.invocation()
	if err != nil {
		return nil, err
	}
	b.logger.Debug("invocation parsed", "subcommand", inv.SubcommandName(), "trailing", len(inv.CLI.TrailingArguments()))

	file, err := b.loadFile(inv)
	if err != nil {
		return nil, err
	}

	sources := []Source{file}
	var extractors []Extractor
	if inv.Subcommand != nil {
		extractors = append(extractors, NewSubcommandExtractor(inv.Subcommand))
	}
	extractors = append(extractors, NewDefaultExtractor(), CLIExtractor{})

	if b.envPrefix != "" {
		env, err := LoadEnv(b.envPrefix)
		if err != nil {
			return nil, err
		}
		sources = append(sources, env)
		extractors = append(extractors, EnvExtractor{})
	}
	sources = append(sources, inv.CLI)

	resolver := NewResolver(extractors...).WithLogger(b.logger)
	provenance, err := resolver.Resolve(inv.Definitions, target, sources...)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Subcommand:        inv.Subcommand,
		Definitions:       inv.Definitions,
		Provenance:        provenance,
		FilePath:          file.Path(),
		TrailingArguments: inv.CLI.TrailingArguments(),
	}
	if receiver, ok := target.(MetadataReceiver); ok {
		receiver.SetMetadata(Metadata{
			Subcommand:        result.SubcommandName(),
			TrailingArguments: result.TrailingArguments,
			FilePath:          result.FilePath,
		})
	}

	for _, validator := range b.validators {
		if err := validator(target, result); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}

	return result, nil
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild(target Target) *Result {
	result, err := b.Build(target)
	if err != nil {
		panic(fmt.Sprintf("config build failed: %v", err))
	}
	return result
}

func (b *Builder) invocation() (*Invocation, error) {
	if b.cli == nil {
		return ParseArgs(b.registry, b.args)
	}
	defs, sc, err := b.registry.ForSubcommand(b.subcommand)
	if err != nil {
		return nil, err
	}
	return &Invocation{Subcommand: sc, Definitions: defs, CLI: b.cli}, nil
}

// loadFile picks the file path by precedence and loads it. Nothing found by
// discovery yields an empty file source; an explicitly named file must exist.
func (b *Builder) loadFile(inv *Invocation) (*FileSource, error) {
	path, explicit := b.file, b.file != ""

	if def, ok := inv.Definitions[ConfigurationOption]; ok && def.Context.allowsCLI() {
		if raw, ok := inv.CLI.Occurrences(ConfigurationOption); ok && len(raw) > 0 {
			path, explicit = raw[len(raw)-1], true
		}
	}

	if path == "" && b.discovery != nil {
		path, explicit = Discover(*b.discovery)
	}

	if path == "" {
		b.logger.Debug("no configuration file found")
		return NewFileSource("", nil), nil
	}

	file, err := LoadFileFormat(path, b.format)
	if err != nil {
		if errors.Is(err, ErrConfigNotFound) && !explicit {
			b.logger.Debug("configuration file disappeared", "path", path)
			return NewFileSource("", nil), nil
		}
		return nil, err
	}
	b.logger.Debug("configuration file loaded", "path", path, "sections", file.SectionNames())
	return file, nil
}
