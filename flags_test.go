package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	reg := testRegistry(t)

	t.Run("SubcommandAndTrailing", func(t *testing.T) {
		inv, err := ParseArgs(reg, []string{"vuln-scan", "-f", "production", "/var/www", "--informational", "/srv/site"})
		require.NoError(t, err)
		assert.Equal(t, "vuln-scan", inv.SubcommandName())
		assert.Equal(t, []string{"/var/www", "/srv/site"}, inv.CLI.TrailingArguments())

		feed, ok := inv.CLI.Occurrences("feed")
		require.True(t, ok)
		assert.Equal(t, []string{"production"}, feed)

		informational, ok := inv.CLI.Occurrences("informational")
		require.True(t, ok)
		assert.Equal(t, []string{"true"}, informational)
	})

	t.Run("NoSubcommand", func(t *testing.T) {
		inv, err := ParseArgs(reg, []string{"--debug"})
		require.NoError(t, err)
		assert.Nil(t, inv.Subcommand)
		assert.Equal(t, "", inv.SubcommandName())
		_, ok := inv.Definitions["feed"]
		assert.False(t, ok, "subcommand options are not bound without a subcommand")
	})

	t.Run("UnknownSubcommand", func(t *testing.T) {
		_, err := ParseArgs(reg, []string{"malware-scan", "--debug"})
		assert.ErrorIs(t, err, ErrUnknownSubcommand)
	})

	t.Run("UnknownFlag", func(t *testing.T) {
		_, err := ParseArgs(reg, []string{"vuln-scan", "--no-such-flag"})
		assert.ErrorIs(t, err, ErrCLIParse)
	})

	t.Run("RepeatableOccurrences", func(t *testing.T) {
		inv, err := ParseArgs(reg, []string{"vuln-scan", "-e", "a,b", "--exclude-vulnerability=c"})
		require.NoError(t, err)
		raw, _ := inv.CLI.Occurrences("exclude-vulnerability")
		assert.Equal(t, []string{"a,b", "c"}, raw)
	})

	t.Run("Negation", func(t *testing.T) {
		inv, err := ParseArgs(reg, []string{"vuln-scan", "--no-read-stdin"})
		require.NoError(t, err)
		assert.True(t, inv.CLI.Negated("read-stdin"))
		_, given := inv.CLI.Occurrences("read-stdin")
		assert.False(t, given)
	})

	t.Run("UnchangedFlagsAbsent", func(t *testing.T) {
		inv, err := ParseArgs(reg, []string{"vuln-scan"})
		require.NoError(t, err)
		_, given := inv.CLI.Occurrences("debug")
		assert.False(t, given, "an omitted flag is absent, not false")
	})

	t.Run("DoubleDashEndsOptions", func(t *testing.T) {
		inv, err := ParseArgs(reg, []string{"vuln-scan", "--", "--debug"})
		require.NoError(t, err)
		assert.Equal(t, []string{"--debug"}, inv.CLI.TrailingArguments())
	})
}

func TestBindFlags(t *testing.T) {
	t.Run("ContextConfigNotBound", func(t *testing.T) {
		fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
		defs := NewDefinitions(
			ItemDefinition{Name: "license", Kind: KindOption, Context: ContextConfig},
			ItemDefinition{Name: "cache", Kind: KindOptionalFlag, Default: true},
		)
		require.NoError(t, BindFlags(fs, defs))

		assert.Nil(t, fs.Lookup("license"))
		require.NotNil(t, fs.Lookup("cache"))
		assert.NotNil(t, fs.Lookup("no-cache"))
		assert.Equal(t, "true", fs.Lookup("cache").DefValue)
	})

	t.Run("HiddenOption", func(t *testing.T) {
		fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
		require.NoError(t, BindFlags(fs, NewDefinitions(ItemDefinition{Name: "internal", Kind: KindFlag, Hidden: true})))
		assert.True(t, fs.Lookup("internal").Hidden)
	})

	t.Run("ConflictingFlag", func(t *testing.T) {
		fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
		fs.Bool("debug", false, "")
		err := BindFlags(fs, NewDefinitions(ItemDefinition{Name: "debug", Kind: KindFlag}))
		assert.ErrorIs(t, err, ErrInvalidDefinition)
	})

	t.Run("SourceFromParsedFlags", func(t *testing.T) {
		fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
		defs := NewDefinitions(
			ItemDefinition{Name: "debug", ShortName: "d", Kind: KindFlag},
			ItemDefinition{Name: "workers", Kind: KindOption, ValueType: TypeInt},
		)
		require.NoError(t, BindFlags(fs, defs))
		require.NoError(t, fs.Parse([]string{"-d=false", "--workers", "3", "path"}))

		src, err := CLISourceFromFlags(fs, defs, fs.Args())
		require.NoError(t, err)
		debug, _ := src.Occurrences("debug")
		assert.Equal(t, []string{"false"}, debug)
		workers, _ := src.Occurrences("workers")
		assert.Equal(t, []string{"3"}, workers)
		assert.Equal(t, []string{"path"}, src.TrailingArguments())
	})
}
