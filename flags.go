// FILE: wordfence/config/flags.go
package config

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// Invocation is the outcome of splitting raw arguments into a subcommand and
// a tokenized command-line source.
type Invocation struct {
	// Subcommand is nil when the arguments name none
	Subcommand  *Subcommand
	Definitions Definitions
	CLI         *CLISource
}

// SubcommandName returns the invoked subcommand name, or "" for none.
func (i *Invocation) SubcommandName() string {
	if i.Subcommand == nil {
		return ""
	}
	return i.Subcommand.Name
}

// ParseArgs detects the subcommand and tokenizes the remaining arguments.
// The first argument names the subcommand unless it is a flag; an unknown
// subcommand fails before any flag is parsed.
func ParseArgs(reg *Registry, args []string) (*Invocation, error) {
	name := ""
	rest := args
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		name = args[0]
		rest = args[1:]
	}

	defs, sc, err := reg.ForSubcommand(name)
	if err != nil {
		return nil, err
	}

	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if err := BindFlags(fs, defs); err != nil {
		return nil, err
	}
	if err := fs.Parse(rest); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCLIParse, err)
	}

	cli, err := CLISourceFromFlags(fs, defs, fs.Args())
	if err != nil {
		return nil, err
	}

	return &Invocation{Subcommand: sc, Definitions: defs, CLI: cli}, nil
}

// BindFlags registers every option the command line may supply on fs.
// Optional flags also get a --no-<name> negation; repeatable options accept
// multiple occurrences.
func BindFlags(fs *pflag.FlagSet, defs Definitions) error {
	for _, def := range defs.Sorted() {
		if !def.Context.allowsCLI() {
			continue
		}
		if fs.Lookup(def.Name) != nil {
			return fmt.Errorf("%w: flag --%s is already defined", ErrInvalidDefinition, def.Name)
		}
		if def.ShortName != "" && fs.ShorthandLookup(def.ShortName) != nil {
			return fmt.Errorf("%w: flag -%s is already defined", ErrInvalidDefinition, def.ShortName)
		}

		switch def.Kind {
		case KindFlag:
			fs.BoolP(def.Name, def.ShortName, false, def.Description)
		case KindOptionalFlag:
			if fs.Lookup(def.NegationName()) != nil {
				return fmt.Errorf("%w: flag --%s is already defined", ErrInvalidDefinition, def.NegationName())
			}
			fs.BoolP(def.Name, def.ShortName, false, def.Description)
			fs.Bool(def.NegationName(), false, fmt.Sprintf("Explicitly disable --%s.", def.Name))
			if def.Hidden {
				_ = fs.MarkHidden(def.NegationName())
			}
		case KindOption:
			fs.StringP(def.Name, def.ShortName, "", def.Description)
		case KindOptionRepeatable:
			fs.StringArrayP(def.Name, def.ShortName, nil, def.Description)
		default:
			return fmt.Errorf("%w: option %q has unsupported kind %s", ErrInvalidDefinition, def.Name, def.Kind)
		}

		// Help output shows the declared default rather than the flag's zero value
		fs.Lookup(def.Name).DefValue = defaultText(def)
		if def.Hidden {
			_ = fs.MarkHidden(def.Name)
		}
	}
	return nil
}

// CLISourceFromFlags collects the flags that were actually given on fs.
// Flags left at their zero value are absent, never explicit false.
func CLISourceFromFlags(fs *pflag.FlagSet, defs Definitions, trailing []string) (*CLISource, error) {
	src := NewCLISource().SetTrailing(trailing)

	for _, def := range defs.Sorted() {
		if !def.Context.allowsCLI() {
			continue
		}

		if def.Kind == KindOptionalFlag && fs.Changed(def.NegationName()) {
			negated, err := fs.GetBool(def.NegationName())
			if err != nil {
				return nil, fmt.Errorf("%w: --%s: %w", ErrCLIParse, def.NegationName(), err)
			}
			if negated {
				src.Negate(def.Name)
			}
		}

		if !fs.Changed(def.Name) {
			continue
		}

		switch def.Kind {
		case KindFlag, KindOptionalFlag:
			b, err := fs.GetBool(def.Name)
			if err != nil {
				return nil, fmt.Errorf("%w: --%s: %w", ErrCLIParse, def.Name, err)
			}
			src.Add(def.Name, strconv.FormatBool(b))
		case KindOption:
			s, err := fs.GetString(def.Name)
			if err != nil {
				return nil, fmt.Errorf("%w: --%s: %w", ErrCLIParse, def.Name, err)
			}
			src.Add(def.Name, s)
		case KindOptionRepeatable:
			values, err := fs.GetStringArray(def.Name)
			if err != nil {
				return nil, fmt.Errorf("%w: --%s: %w", ErrCLIParse, def.Name, err)
			}
			src.Add(def.Name, values...)
		}
	}

	return src, nil
}

// defaultText renders a declared default for help output.
func defaultText(def ItemDefinition) string {
	value, err := canonicalDefault(def)
	if err != nil {
		return ""
	}
	switch v := value.(type) {
	case nil:
		return ""
	case bool:
		return strconv.FormatBool(v)
	case TriState:
		return strconv.FormatBool(v == True)
	case []string:
		return "[" + strings.Join(v, ",") + "]"
	default:
		return fmt.Sprint(v)
	}
}
